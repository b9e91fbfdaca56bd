package index

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAndContains(t *testing.T) {
	idx := Empty[int32](0)
	ok, err := idx.Add(10)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, idx.Contains(10))
	require.GreaterOrEqual(t, idx.Coordinate(10), int32(0))
}

func TestAddAllRejectsDuplicates(t *testing.T) {
	idx := Empty[string](0)
	n, err := idx.AddAll([]string{"a", "b", "c"}, false)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	idx2 := Empty[string](0)
	_, err = idx2.AddAll([]string{"a", "a"}, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateKey))
}

func TestAddAllIgnoreDuplicates(t *testing.T) {
	idx := Empty[string](0)
	n, err := idx.AddAll([]string{"a", "a", "b"}, true)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestReplacePreservesCoordinate(t *testing.T) {
	idx, err := Of([]int32{10, 20, 30})
	require.NoError(t, err)
	priorCoord := idx.Coordinate(20)

	newCoord, err := idx.Replace(20, 25)
	require.NoError(t, err)
	require.False(t, idx.Contains(20))
	require.True(t, idx.Contains(25))
	require.Equal(t, 1, idx.OrdinalOfKey(25))
	require.Equal(t, priorCoord, newCoord)
	require.Equal(t, priorCoord, idx.Coordinate(25))
}

func TestReplaceFailsOnUnknownOrDuplicate(t *testing.T) {
	idx, err := Of([]int32{1, 2, 3})
	require.NoError(t, err)

	_, err = idx.Replace(99, 100)
	require.True(t, errors.Is(err, ErrUnknownKey))

	_, err = idx.Replace(1, 2)
	require.True(t, errors.Is(err, ErrDuplicateKey))
}

func TestFilterViewIsSubsequenceAndSharesCoordinates(t *testing.T) {
	root, err := Of([]string{"a", "b", "c", "d"})
	require.NoError(t, err)

	view, err := root.Filter([]string{"b", "d"})
	require.NoError(t, err)
	require.Equal(t, 2, view.Size())
	require.Equal(t, "b", view.KeyAt(0))
	require.Equal(t, "d", view.KeyAt(1))
	require.Equal(t, root.Coordinate("b"), view.Coordinate("b"))
	require.Equal(t, root.Coordinate("d"), view.Coordinate("d"))
}

func TestFilterUnknownKeyErrors(t *testing.T) {
	root, err := Of([]string{"a", "b"})
	require.NoError(t, err)
	_, err = root.Filter([]string{"z"})
	require.True(t, errors.Is(err, ErrUnknownKey))
}

func TestViewRejectsStructuralMutation(t *testing.T) {
	root, err := Of([]string{"a", "b"})
	require.NoError(t, err)
	view := root.FilterPredicate(func(k string) bool { return k == "a" })

	_, err = view.Add("c")
	require.True(t, errors.Is(err, ErrViewMutation))

	_, err = view.Replace("a", "z")
	require.True(t, errors.Is(err, ErrViewMutation))
}

func TestIntersect(t *testing.T) {
	a, _ := Of([]int32{1, 2, 3, 4})
	b, _ := Of([]int32{2, 4, 6})
	view := a.Intersect(b)
	require.Equal(t, 2, view.Size())
	require.Equal(t, int32(2), view.KeyAt(0))
	require.Equal(t, int32(4), view.KeyAt(1))
}

func TestCopyShallowPreservesCoordinatesDeepDetaches(t *testing.T) {
	root, _ := Of([]string{"x", "y"})
	shallow := root.Copy(false)
	require.Equal(t, root.Coordinate("x"), shallow.Coordinate("x"))

	deep := root.Copy(true)
	ok, err := deep.Add("z")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, root.Contains("z"))
}

func TestNewObjectIndexIDMintsStableCoordinates(t *testing.T) {
	type widget struct{ Name string }
	displays := []widget{{"a"}, {"b"}, {"c"}}

	idx, back, err := NewObjectIndexID(displays)
	require.NoError(t, err)
	require.Equal(t, 3, idx.Size())
	require.Equal(t, displays, back)

	id1 := idx.KeyAt(1)
	require.True(t, idx.Contains(id1))
	require.Equal(t, "b", back[idx.OrdinalOfKey(id1)].Name)
}

func TestPreviousNextFirstLast(t *testing.T) {
	idx, _ := Of([]int32{10, 20, 30})
	first, ok := idx.First()
	require.True(t, ok)
	require.Equal(t, int32(10), first)

	last, ok := idx.Last()
	require.True(t, ok)
	require.Equal(t, int32(30), last)

	prev, ok := idx.PreviousKey(20)
	require.True(t, ok)
	require.Equal(t, int32(10), prev)

	next, ok := idx.NextKey(20)
	require.True(t, ok)
	require.Equal(t, int32(30), next)

	_, ok = idx.PreviousKey(10)
	require.False(t, ok)
	_, ok = idx.NextKey(30)
	require.False(t, ok)
}
