package axis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/content"
	"github.com/dxframe/frame/index"
)

func newFrame(t *testing.T, rows []int32, cols []string) *content.FrameContent[int32, string] {
	t.Helper()
	rowIdx, err := index.Of(rows)
	require.NoError(t, err)
	colIdx, err := index.Of([]string{})
	require.NoError(t, err)
	fc := content.New[int32, string](rowIdx, colIdx)
	for _, c := range cols {
		_, err := fc.AddColumn(c, array.Int, array.Dense, 0)
		require.NoError(t, err)
	}
	return fc
}

func TestRowAtAndAtKey(t *testing.T) {
	fc := newFrame(t, []int32{1, 2}, []string{"a", "b"})
	fc.Set(0, 0, int32(10))
	fc.Set(0, 1, int32(20))

	row := NewRow(fc, 0)
	require.Equal(t, int32(1), row.Key())
	require.Equal(t, int32(10), row.At(0))
	v, ok := row.AtKey("b")
	require.True(t, ok)
	require.Equal(t, int32(20), v)

	_, ok = row.AtKey("missing")
	require.False(t, ok)
}

func TestColumnForEachAndStats(t *testing.T) {
	fc := newFrame(t, []int32{1, 2, 3}, []string{"a"})
	fc.Set(0, 0, int32(10))
	fc.Set(1, 0, int32(20))
	fc.Set(2, 0, int32(30))

	col := NewColumn(fc, 0)
	var sum int32
	col.ForEach(func(rowOrdinal int, rowKey int32, v any) {
		sum += v.(int32)
	})
	require.Equal(t, int32(60), sum)

	stats := col.Stats()
	require.Equal(t, 3, stats.Count)
	require.InDelta(t, 20.0, stats.Mean, 0.0001)
	require.Equal(t, int32(10), stats.Min)
	require.Equal(t, int32(30), stats.Max)
}

func TestColumnDistinctAndBinarySearch(t *testing.T) {
	fc := newFrame(t, []int32{1, 2, 3, 4}, []string{"a"})
	fc.Set(0, 0, int32(1))
	fc.Set(1, 0, int32(1))
	fc.Set(2, 0, int32(2))
	fc.Set(3, 0, int32(3))

	col := NewColumn(fc, 0)
	distinct := col.Distinct(0)
	require.Equal(t, []any{int32(1), int32(2), int32(3)}, distinct)

	less := func(a, b any) bool { return a.(int32) < b.(int32) }
	idx := col.BinarySearch(int32(2), less)
	require.Equal(t, 2, idx)

	idx = col.BinarySearch(int32(99), less)
	require.Equal(t, -1, idx)
}

func TestGroupRowsByColumn(t *testing.T) {
	fc := newFrame(t, []int32{1, 2, 3, 4}, []string{"g"})
	fc.Set(0, 0, int32(1))
	fc.Set(1, 0, int32(2))
	fc.Set(2, 0, int32(1))
	fc.Set(3, 0, int32(2))

	groups, err := GroupRowsByColumn(fc, "g")
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, groups[int32(1)])
	require.Equal(t, []int{1, 3}, groups[int32(2)])
}

func TestSortRowsByKeyAndIdentityRestores(t *testing.T) {
	fc := newFrame(t, []int32{3, 1, 2}, []string{"a"})
	fc.Set(0, 0, int32(300))
	fc.Set(1, 0, int32(100))
	fc.Set(2, 0, int32(200))

	less := func(a, b int32) bool { return a < b }
	err := SortRowsByKey(fc, less, array.Ascending)
	require.NoError(t, err)
	require.Equal(t, int32(1), fc.RowIndex().KeyAt(0))
	require.Equal(t, int32(2), fc.RowIndex().KeyAt(1))
	require.Equal(t, int32(3), fc.RowIndex().KeyAt(2))
	require.Equal(t, int32(100), fc.Get(0, 0)) // coordinate-addressed column value follows its key

	err = SortRowsByKey(fc, less, array.Identity)
	require.NoError(t, err)
	require.Equal(t, int32(3), fc.RowIndex().KeyAt(0))
	require.Equal(t, int32(1), fc.RowIndex().KeyAt(1))
	require.Equal(t, int32(2), fc.RowIndex().KeyAt(2))
}

func TestSortRowsByColumnsMultiKey(t *testing.T) {
	fc := newFrame(t, []int32{1, 2, 3, 4}, []string{"a", "b"})
	// (a,b): (1,2) (1,1) (0,5) (1,1)
	a := []int32{1, 1, 0, 1}
	b := []int32{2, 1, 5, 1}
	for i := 0; i < 4; i++ {
		fc.Set(i, 0, a[i])
		fc.Set(i, 1, b[i])
	}

	err := SortRowsByColumns(fc, []string{"a", "b"}, array.Ascending)
	require.NoError(t, err)

	var gotA, gotB []int32
	for i := 0; i < fc.Rows(); i++ {
		gotA = append(gotA, fc.Get(i, 0).(int32))
		gotB = append(gotB, fc.Get(i, 1).(int32))
	}
	require.Equal(t, []int32{0, 1, 1, 1}, gotA)
	require.Equal(t, []int32{5, 1, 1, 2}, gotB)
	// rows 2 (key 2) and 4 (key 4) tie on (a,b)=(1,1); original relative
	// order (key 2 before key 4) must be preserved.
	require.Equal(t, int32(2), fc.RowIndex().KeyAt(1))
	require.Equal(t, int32(4), fc.RowIndex().KeyAt(2))
}
