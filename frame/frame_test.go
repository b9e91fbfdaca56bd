package frame

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/axis"
)

func newDoubleFrame(t *testing.T, rowKeys []int32, colKeys []string, values func(r, c int) float64) *Frame[int32, string] {
	t.Helper()
	var cols []ColumnSpec[string]
	for _, ck := range colKeys {
		cols = append(cols, ColumnSpec[string]{Key: ck, Kind: array.Double, Style: array.Dense})
	}
	fr, err := OfColumns[int32, string](rowKeys, cols)
	require.NoError(t, err)
	for i := range rowKeys {
		for j, ck := range colKeys {
			_, colOrdinal, err := fr.ordinalsOf(rowKeys[i], ck)
			require.NoError(t, err)
			fr.Set(i, colOrdinal, values(i, j))
		}
	}
	return fr
}

// S1: sorting a double frame by one column reorders rows ascending by
// that column's value without disturbing column storage.
func TestSortRowsByColumnsAscendingDoubleFrame(t *testing.T) {
	rowKeys := []int32{0, 1, 2, 3}
	fr := newDoubleFrame(t, rowKeys, []string{"x"}, func(r, c int) float64 {
		return []float64{30, 10, 40, 20}[r]
	})

	require.NoError(t, fr.SortRowsByColumns([]string{"x"}, array.Ascending))

	var got []float64
	for i := 0; i < fr.Rows(); i++ {
		got = append(got, fr.Get(i, 0).(float64))
	}
	require.Equal(t, []float64{10, 20, 30, 40}, got)
}

// S2: multi-key lexicographic sort on a large frame; ties on the primary
// key are broken by the secondary key.
func TestSortRowsByColumnsMultiKeyLargeFrame(t *testing.T) {
	const n = 10_000
	rowKeys := make([]int32, n)
	for i := range rowKeys {
		rowKeys[i] = int32(i)
	}
	fr := newDoubleFrame(t, rowKeys, []string{"a", "b"}, func(r, c int) float64 {
		if c == 0 {
			return float64(r % 3) // only 3 distinct primary values -> heavy ties
		}
		return float64(n - r) // distinct secondary values, descending
	})

	require.NoError(t, fr.SortRowsByColumns([]string{"a", "b"}, array.Ascending))

	for i := 1; i < fr.Rows(); i++ {
		a0 := fr.Get(i-1, 0).(float64)
		a1 := fr.Get(i, 0).(float64)
		require.True(t, a0 < a1 || (a0 == a1 && fr.Get(i-1, 1).(float64) < fr.Get(i, 1).(float64)))
	}
}

// S6: Head returns a view sharing storage with its parent -- a write
// through the view is visible on the parent.
func TestHeadSharesStorageWithParent(t *testing.T) {
	rowKeys := []int32{0, 1, 2, 3, 4}
	fr := newDoubleFrame(t, rowKeys, []string{"x"}, func(r, c int) float64 { return float64(r) })

	head, err := fr.Head(3)
	require.NoError(t, err)
	require.Equal(t, 3, head.Rows())

	head.Set(0, 0, 999.0)
	require.Equal(t, 999.0, fr.Get(0, 0))
}

func TestTailLeftRight(t *testing.T) {
	rowKeys := []int32{0, 1, 2, 3}
	fr := newDoubleFrame(t, rowKeys, []string{"a", "b", "c"}, func(r, c int) float64 {
		return float64(r*10 + c)
	})

	tail, err := fr.Tail(2)
	require.NoError(t, err)
	require.Equal(t, 2, tail.Rows())
	require.Equal(t, fr.Get(2, 0), tail.Get(0, 0))

	left, err := fr.Left(2)
	require.NoError(t, err)
	require.Equal(t, 2, left.Cols())

	right, err := fr.Right(1)
	require.NoError(t, err)
	require.Equal(t, 1, right.Cols())
	require.Equal(t, fr.Get(0, 2), right.Get(0, 0))
}

func TestCopyIsFullyIndependent(t *testing.T) {
	rowKeys := []int32{0, 1, 2}
	fr := newDoubleFrame(t, rowKeys, []string{"x"}, func(r, c int) float64 { return float64(r) })

	cp := fr.Copy()
	cp.Set(0, 0, 111.0)
	require.Equal(t, 0.0, fr.Get(0, 0))
	require.True(t, fr.Equals(fr))
	require.False(t, fr.Equals(cp))
}

func TestUpdateGrowsAndOverlaysSourceWins(t *testing.T) {
	base, err := OfColumns[int32, string]([]int32{0, 1}, []ColumnSpec[string]{
		{Key: "x", Kind: array.Double, Style: array.Dense},
	})
	require.NoError(t, err)
	base.Set(0, 0, 1.0)
	base.Set(1, 0, 2.0)

	patch, err := OfColumns[int32, string]([]int32{1, 2}, []ColumnSpec[string]{
		{Key: "x", Kind: array.Double, Style: array.Dense},
		{Key: "y", Kind: array.Double, Style: array.Dense},
	})
	require.NoError(t, err)
	patch.Set(0, 0, 20.0) // row 1, col x
	patch.Set(0, 1, 200.0)
	patch.Set(1, 0, 30.0) // row 2, col x
	patch.Set(1, 1, 300.0)

	require.NoError(t, base.Update(patch, true, true))

	require.Equal(t, 3, base.Rows())
	require.Equal(t, 2, base.Cols())
	require.Equal(t, 1.0, base.Get(0, 0))  // row 0 untouched
	require.Equal(t, 20.0, base.Get(1, 0)) // overlaid by patch
	require.Equal(t, 30.0, base.Get(2, 0)) // new row from patch
	require.Equal(t, 300.0, base.Get(2, 1))
}

func TestSignReturnsIntFrame(t *testing.T) {
	rowKeys := []int32{0, 1, 2}
	fr := newDoubleFrame(t, rowKeys, []string{"x"}, func(r, c int) float64 {
		return []float64{-5, 0, 5}[r]
	})
	signed, err := fr.Sign()
	require.NoError(t, err)
	require.Equal(t, int32(-1), signed.Get(0, 0))
	require.Equal(t, int32(0), signed.Get(1, 0))
	require.Equal(t, int32(1), signed.Get(2, 0))
}

func TestMapToIntsTruncates(t *testing.T) {
	rowKeys := []int32{0, 1}
	fr := newDoubleFrame(t, rowKeys, []string{"x"}, func(r, c int) float64 { return float64(r) + 0.9 })
	mapped, err := fr.MapToInts(func(v any) int32 { return int32(v.(float64)) })
	require.NoError(t, err)
	require.Equal(t, int32(0), mapped.Get(0, 0))
	require.Equal(t, int32(1), mapped.Get(1, 0))
}

func TestCombineFirstUnionsKeysLeftWins(t *testing.T) {
	left, err := OfColumns[int32, string]([]int32{0, 1}, []ColumnSpec[string]{
		{Key: "x", Kind: array.Double, Style: array.Dense},
	})
	require.NoError(t, err)
	left.Set(0, 0, 1.0)
	left.Set(1, 0, 2.0)

	right, err := OfColumns[int32, string]([]int32{1, 2}, []ColumnSpec[string]{
		{Key: "x", Kind: array.Double, Style: array.Dense},
	})
	require.NoError(t, err)
	right.Set(0, 0, 999.0) // row 1: left already has a value here, left should win
	right.Set(1, 0, 3.0)   // row 2: only right has this

	combined, err := CombineFirst(left, right)
	require.NoError(t, err)
	require.Equal(t, 3, combined.Rows())

	rows := combined.allRowKeys()
	require.Equal(t, []int32{0, 1, 2}, rows)
	require.Equal(t, 2.0, combined.Get(1, 0)) // left's value wins
	require.Equal(t, 3.0, combined.Get(2, 0)) // right fills in the gap
}

func TestConcatRowsRequiresMatchingColumns(t *testing.T) {
	a, err := OfColumns[int32, string]([]int32{0}, []ColumnSpec[string]{{Key: "x", Kind: array.Double, Style: array.Dense}})
	require.NoError(t, err)
	b, err := OfColumns[int32, string]([]int32{1}, []ColumnSpec[string]{{Key: "y", Kind: array.Double, Style: array.Dense}})
	require.NoError(t, err)

	_, err = ConcatRows(a, b)
	require.Error(t, err)
}

func TestConcatRowsStacks(t *testing.T) {
	a, err := OfColumns[int32, string]([]int32{0, 1}, []ColumnSpec[string]{{Key: "x", Kind: array.Double, Style: array.Dense}})
	require.NoError(t, err)
	a.Set(0, 0, 1.0)
	a.Set(1, 0, 2.0)
	b, err := OfColumns[int32, string]([]int32{2, 3}, []ColumnSpec[string]{{Key: "x", Kind: array.Double, Style: array.Dense}})
	require.NoError(t, err)
	b.Set(0, 0, 3.0)
	b.Set(1, 0, 4.0)

	out, err := ConcatRows(a, b)
	require.NoError(t, err)
	require.Equal(t, 4, out.Rows())
	require.Equal(t, 3.0, out.Get(2, 0))
}

func TestConcatColumnsSideBySide(t *testing.T) {
	a, err := OfColumns[int32, string]([]int32{0, 1}, []ColumnSpec[string]{{Key: "x", Kind: array.Double, Style: array.Dense}})
	require.NoError(t, err)
	a.Set(0, 0, 1.0)
	a.Set(1, 0, 2.0)
	b, err := OfColumns[int32, string]([]int32{0, 1}, []ColumnSpec[string]{{Key: "y", Kind: array.Double, Style: array.Dense}})
	require.NoError(t, err)
	b.Set(0, 0, 10.0)
	b.Set(1, 0, 20.0)

	out, err := ConcatColumns(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, out.Cols())
	require.Equal(t, 10.0, out.Get(0, 1))
}

func TestFromRowsAdaptsArbitraryGoValues(t *testing.T) {
	type widget struct {
		ID    int32
		Price float64
	}
	rows := []widget{{1, 9.99}, {2, 19.99}, {3, 29.99}}

	fr, err := FromRows(rows, func(w widget) int32 { return w.ID }, []RowColumnSpec[widget, string]{
		{Key: "price", Kind: array.Double, Style: array.Dense, Extract: func(w widget) any { return w.Price }},
	})
	require.NoError(t, err)
	require.Equal(t, 3, fr.Rows())
	require.Equal(t, 19.99, fr.Get(1, 0))
}

func TestForEachValueVisitsEveryCell(t *testing.T) {
	rowKeys := []int32{0, 1}
	fr := newDoubleFrame(t, rowKeys, []string{"a", "b"}, func(r, c int) float64 { return float64(r*2 + c) })
	fr.SetParallel(false)

	var seen []float64
	fr.ForEachValue(func(v axis.DataFrameValue[int32, string]) {
		seen = append(seen, v.Value.(float64))
	})
	sort.Float64s(seen)
	require.Equal(t, []float64{0, 1, 2, 3}, seen)
}

// S2/S3: a Frame can host String, Object, and ZonedDateTime columns --
// the four kinds AddColumn used to reject with ErrUnsupportedOp are all
// reachable from the frame layer now.
func TestFrameHostsStringObjectAndZonedColumns(t *testing.T) {
	sharedCoding := array.NewCoding[string]()
	type payload struct{ n int }
	fr, err := OfColumns[int32, string]([]int32{0, 1, 2}, []ColumnSpec[string]{
		{Key: "name", Kind: array.String, Style: array.CodedDense, Coding: sharedCoding},
		{Key: "tags", Kind: array.Object, ObjectLess: func(a, b any) bool {
			return a.(payload).n < b.(payload).n
		}},
		{Key: "seen", Kind: array.ZonedDateTime, Style: array.Dense, DefaultZone: "America/New_York"},
	})
	require.NoError(t, err)

	fr.Set(0, 0, "alice")
	fr.Set(1, 0, "bob")
	fr.Set(0, 1, payload{n: 3})
	fr.Set(1, 1, payload{n: 1})
	fr.Set(0, 2, array.ZonedValue{Instant: time.UnixMilli(5000), Zone: "UTC"})

	require.Equal(t, "alice", fr.Get(0, 0))
	require.Equal(t, "bob", fr.Get(1, 0))
	require.Equal(t, payload{n: 3}, fr.Get(0, 1))
	zv := fr.Get(0, 2).(array.ZonedValue)
	require.Equal(t, int64(5000), zv.Instant.UnixMilli())
	// unset slot reads back in the column's configured default zone.
	require.Equal(t, "America/New_York", fr.Get(2, 2).(array.ZonedValue).Zone)

	// the String column encodes through the supplied coding, so the
	// written names land in that shared dictionary.
	require.GreaterOrEqual(t, sharedCoding.Size(), 2)

	cp := fr.Copy()
	require.Equal(t, "alice", cp.Get(0, 0))
	require.Equal(t, payload{n: 3}, cp.Get(0, 1))
}

// S2: a frame keyed by values with no natural comparable identity gets
// one mapped uuid.UUID row key per display value, and the parallel
// display slice recovers the original value from a row's ordinal.
func TestOfObjectRowsKeysByMintedUUID(t *testing.T) {
	type widget struct{ Name string }
	displays := []widget{{"alpha"}, {"beta"}}

	fr, back, err := OfObjectRows[widget, string](displays, []ColumnSpec[string]{
		{Key: "price", Kind: array.Double, Style: array.Dense},
	})
	require.NoError(t, err)
	require.Equal(t, 2, fr.Rows())
	require.Equal(t, displays, back)

	fr.Set(0, 0, 1.5)
	fr.Set(1, 0, 2.5)
	require.Equal(t, "beta", back[1].Name)
	require.Equal(t, 2.5, fr.Get(1, 0))
}

func TestApplyValuesDoublesEveryCell(t *testing.T) {
	rowKeys := []int32{0, 1, 2}
	fr := newDoubleFrame(t, rowKeys, []string{"x"}, func(r, c int) float64 { return float64(r + 1) })
	fr.SetParallel(false)
	fr.ApplyDoubles(func(v float64) float64 { return v * 2 })

	var got []float64
	for i := 0; i < fr.Rows(); i++ {
		got = append(got, fr.Get(i, 0).(float64))
	}
	sort.Float64s(got)
	require.Equal(t, []float64{2, 4, 6}, got)
}
