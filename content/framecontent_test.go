package content

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/index"
)

func newIntFrame(t *testing.T, rows []int32, cols []string) *FrameContent[int32, string] {
	t.Helper()
	rowIdx, err := index.Of(rows)
	require.NoError(t, err)
	colIdx, err := index.Of([]string{})
	require.NoError(t, err)
	return New[int32, string](rowIdx, colIdx)
}

func TestAddColumnAndGetSet(t *testing.T) {
	fc := newIntFrame(t, []int32{1, 2, 3}, nil)
	_, err := fc.AddColumn("a", array.Int, array.Dense, 0)
	require.NoError(t, err)

	fc.Set(0, 0, int32(42))
	require.Equal(t, int32(42), fc.Get(0, 0))
	require.Equal(t, int32(0), fc.Get(1, 0))
}

func TestAddColumnDuplicateErrors(t *testing.T) {
	fc := newIntFrame(t, []int32{1}, nil)
	_, err := fc.AddColumn("a", array.Int, array.Dense, 0)
	require.NoError(t, err)
	_, err = fc.AddColumn("a", array.Int, array.Dense, 0)
	require.Error(t, err)
}

func TestFilterViewSharesStorage(t *testing.T) {
	fc := newIntFrame(t, []int32{1, 2, 3}, nil)
	_, err := fc.AddColumn("a", array.Int, array.Dense, 0)
	require.NoError(t, err)

	view, err := fc.Filter([]int32{1, 3}, []string{"a"})
	require.NoError(t, err)
	require.Equal(t, 2, view.Rows())

	view.Set(0, 0, int32(99))
	require.Equal(t, int32(99), fc.Get(0, 0)) // write through the view visible in parent
}

func TestMapColumnSharesOtherColumnsDeepCopiesMapped(t *testing.T) {
	fc := newIntFrame(t, []int32{1, 2}, nil)
	_, err := fc.AddColumn("a", array.Int, array.Dense, 0)
	require.NoError(t, err)
	_, err = fc.AddColumn("b", array.Int, array.Dense, 0)
	require.NoError(t, err)
	fc.Set(0, 0, int32(5))
	fc.Set(0, 1, int32(7))

	mapped, err := fc.MapColumn("a", array.Double, array.Dense, 0, func(v any) any {
		return float64(v.(int32)) * 2
	})
	require.NoError(t, err)

	require.Equal(t, float64(10), mapped.Get(0, 0))
	require.Equal(t, int32(5), fc.Get(0, 0)) // original column untouched

	mapped.Set(0, 1, int32(70))
	require.Equal(t, int32(70), fc.Get(0, 1)) // shared column: write visible in parent
}

func TestUniformKindAndTranspose(t *testing.T) {
	fc := newIntFrame(t, []int32{1, 2}, nil)
	_, err := fc.AddColumn("a", array.Int, array.Dense, 0)
	require.NoError(t, err)
	_, err = fc.AddColumn("b", array.Int, array.Dense, 0)
	require.NoError(t, err)
	fc.Set(0, 0, int32(1))
	fc.Set(0, 1, int32(2))
	fc.Set(1, 0, int32(3))
	fc.Set(1, 1, int32(4))

	kind, uniform := fc.UniformKind()
	require.True(t, uniform)
	require.Equal(t, array.Int, kind)

	transposed, err := Transpose[int32, string](fc)
	require.NoError(t, err)
	require.Equal(t, fc.Cols(), transposed.Rows())
	require.Equal(t, fc.Rows(), transposed.Cols())
	require.Equal(t, fc.Get(0, 0), transposed.Get(0, 0))
	require.Equal(t, fc.Get(1, 0), transposed.Get(0, 1))
}
