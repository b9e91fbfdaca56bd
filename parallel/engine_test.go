package parallel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/axis"
	"github.com/dxframe/frame/content"
	"github.com/dxframe/frame/index"
)

func newDoubleFrame(t *testing.T, rows, cols int) *content.FrameContent[int32, int32] {
	t.Helper()
	rowKeys := make([]int32, rows)
	for i := range rowKeys {
		rowKeys[i] = int32(i)
	}
	colKeys := make([]int32, cols)
	for i := range colKeys {
		colKeys[i] = int32(i)
	}
	rowIdx, err := index.Of(rowKeys)
	require.NoError(t, err)
	colIdx, err := index.Of([]int32{})
	require.NoError(t, err)
	fc := content.New[int32, int32](rowIdx, colIdx)
	for _, c := range colKeys {
		_, err := fc.AddColumn(c, array.Double, array.Dense, 0)
		require.NoError(t, err)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fc.Set(r, c, float64(r*cols+c))
		}
	}
	return fc
}

func snapshotValues(fc *content.FrameContent[int32, int32]) []float64 {
	out := make([]float64, 0, fc.Rows()*fc.Cols())
	for r := 0; r < fc.Rows(); r++ {
		for c := 0; c < fc.Cols(); c++ {
			out = append(out, fc.Get(r, c).(float64))
		}
	}
	return out
}

func TestApplyValuesParallelVsSequentialBitIdentical(t *testing.T) {
	seq := newDoubleFrame(t, 500, 5)
	par := newDoubleFrame(t, 500, 5)

	e := New()
	double := func(v any) any { return v.(float64) * 2 }

	ApplyValues(e, seq, 10_000, false, double)
	ApplyValues(e, par, 8, true, double) // tiny threshold forces many splits

	require.Equal(t, snapshotValues(seq), snapshotValues(par))
}

func TestSelectKeysPreservesOrderAcrossSplits(t *testing.T) {
	fc := newDoubleFrame(t, 100, 1)
	e := New()
	match := func(ordinal int) bool { return ordinal%3 == 0 }

	seq := e.SelectKeys(fc.Rows(), 10_000, false, match)
	par := e.SelectKeys(fc.Rows(), 4, true, match)

	require.Equal(t, seq, par)
	require.True(t, len(seq) > 0)
	for i := 1; i < len(seq); i++ {
		require.Less(t, seq[i-1], seq[i])
	}
}

func TestMinMaxFindsExtremum(t *testing.T) {
	fc := newDoubleFrame(t, 50, 1)
	e := New()
	less := func(a, b int) bool { return fc.Get(a, 0).(float64) < fc.Get(b, 0).(float64) }
	include := func(ordinal int) bool { return true }

	min := e.MinMax(fc.Rows(), 4, true, include, less)
	require.Equal(t, 0, min)

	greater := func(a, b int) bool { return less(b, a) }
	max := e.MinMax(fc.Rows(), 4, true, include, greater)
	require.Equal(t, fc.Rows()-1, max)
}

func TestForEachValueColumnMajorOrderSequential(t *testing.T) {
	fc := newDoubleFrame(t, 3, 2)
	e := New()

	var seen []float64
	ForEachValue(e, fc, 10_000, false, func(v axis.DataFrameValue[int32, int32]) {
		seen = append(seen, v.Value.(float64))
	})
	// sequential (non-parallel) traversal must visit in column-major
	// linear order: col0 rows 0..2, then col1 rows 0..2.
	require.Equal(t, []float64{0, 2, 4, 1, 3, 5}, seen)
}

func TestForEachVectorCursorReusesOneCursorPerLeaf(t *testing.T) {
	fc := newDoubleFrame(t, 10, 1)
	e := New()

	var sum float64
	cursors := map[*axis.Cursor[int32, int32]]struct{}{}
	ForEachVectorCursor(e, fc, true, 10_000, false, func(cur *axis.Cursor[int32, int32]) {
		cursors[cur] = struct{}{}
		sum += cur.Value().(float64)
	})
	require.Len(t, cursors, 1) // sequential run: a single leaf, so a single cursor
	require.Equal(t, snapshotValues(fc)[0]+snapshotValues(fc)[1]+snapshotValues(fc)[2]+
		snapshotValues(fc)[3]+snapshotValues(fc)[4]+snapshotValues(fc)[5]+
		snapshotValues(fc)[6]+snapshotValues(fc)[7]+snapshotValues(fc)[8]+snapshotValues(fc)[9], sum)
}

func TestForkJoinPropagatesPanic(t *testing.T) {
	e := New()
	require.Panics(t, func() {
		e.ForEachVector(100, 4, true, func(lo, hi int) {
			if lo == 0 {
				panic("boom")
			}
		})
	})
}
