package content

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/index"
)

// FrameContent composes a row index, a column index, and one typed
// array per column, keyed by the column's coordinate (stable across
// reordering, per spec §3). Row coordinates align with slots in every
// column array: RowCoordinateAt(ordinal) is used directly as the index
// into whichever array a column lookup resolves to.
//
// Grounded on the teacher's matrix.go Dims/At/Set two-index dispatch
// (the mat.Matrix contract family) adapted from a single (row, col)
// float64 matrix to a (rowCoord, colCoord) -> array.Array lookup with
// per-column element types.
type FrameContent[R comparable, C comparable] struct {
	rowIndex *index.KeyIndex[R]
	colIndex *index.KeyIndex[C]
	columns  map[int32]array.Array // keyed by column coordinate
}

// New builds a root FrameContent with no columns yet.
func New[R comparable, C comparable](rowIndex *index.KeyIndex[R], colIndex *index.KeyIndex[C]) *FrameContent[R, C] {
	return &FrameContent[R, C]{rowIndex: rowIndex, colIndex: colIndex, columns: make(map[int32]array.Array)}
}

func (fc *FrameContent[R, C]) RowIndex() *index.KeyIndex[R] { return fc.rowIndex }
func (fc *FrameContent[R, C]) ColIndex() *index.KeyIndex[C] { return fc.colIndex }

func (fc *FrameContent[R, C]) Rows() int { return fc.rowIndex.Size() }
func (fc *FrameContent[R, C]) Cols() int { return fc.colIndex.Size() }

// IsView reports whether either axis of this content is a non-owning
// filter view; views reject structural mutation (AddColumn) but allow
// element writes, which are visible in the parent (shared column arrays).
func (fc *FrameContent[R, C]) IsView() bool {
	return fc.rowIndex.IsView() || fc.colIndex.IsView()
}

func (fc *FrameContent[R, C]) RowCoordinateAt(rowOrdinal int) int32 {
	return fc.rowIndex.CoordinateAt(rowOrdinal)
}

func (fc *FrameContent[R, C]) ColCoordinateAt(colOrdinal int) int32 {
	return fc.colIndex.CoordinateAt(colOrdinal)
}

// ColumnAt returns the backing array for colOrdinal.
func (fc *FrameContent[R, C]) ColumnAt(colOrdinal int) array.Array {
	return fc.columns[fc.ColCoordinateAt(colOrdinal)]
}

// ColumnByKey returns the backing array for a column key.
func (fc *FrameContent[R, C]) ColumnByKey(key C) (array.Array, error) {
	c := fc.colIndex.Coordinate(key)
	if c < 0 {
		return nil, newError(KindUnknownColKey, "ColumnByKey", key)
	}
	return fc.columns[c], nil
}

// GetCoord dispatches to the array registered under colCoord using
// rowCoord directly as the storage index, per spec §4.3's translation
// contract.
func (fc *FrameContent[R, C]) GetCoord(rowCoord, colCoord int32) any {
	return fc.columns[colCoord].GetValue(int(rowCoord))
}

func (fc *FrameContent[R, C]) SetCoord(rowCoord, colCoord int32, v any) any {
	return fc.columns[colCoord].SetValue(int(rowCoord), v)
}

func (fc *FrameContent[R, C]) Get(rowOrdinal, colOrdinal int) any {
	return fc.GetCoord(fc.RowCoordinateAt(rowOrdinal), fc.ColCoordinateAt(colOrdinal))
}

func (fc *FrameContent[R, C]) Set(rowOrdinal, colOrdinal int, v any) any {
	return fc.SetCoord(fc.RowCoordinateAt(rowOrdinal), fc.ColCoordinateAt(colOrdinal), v)
}

// AddColumn appends key to the column index and allocates a new array
// of kind/style sized to the current row count via array.CreateExtended
// -- every one of the eleven element kinds is constructible this way
// (String/Enum get a fresh private coding, Object a nil comparator,
// ZonedDateTime the UTC default); a caller that wants a column sharing
// an existing Coding, a specific Object comparator, or a non-UTC zoned
// default uses AddColumnExtended or AddColumnWith instead. Ordinal
// writes through Set are legal immediately afterward (spec §4.3).
func (fc *FrameContent[R, C]) AddColumn(key C, kind array.Kind, style array.Style, fillFactor float64) (array.Array, error) {
	return fc.AddColumnWith(key, func(length int) (array.Array, error) {
		return array.CreateExtended(kind, length, style, fillFactor, nil, nil, "")
	})
}

// AddColumnExtended is AddColumn's complement for String/Enum (a shared
// coding), Object (a comparator), and ZonedDateTime (a default zone).
func (fc *FrameContent[R, C]) AddColumnExtended(key C, kind array.Kind, style array.Style, fillFactor float64, coding *array.Coding[string], objectLess func(a, b any) bool, defaultZone string) (array.Array, error) {
	return fc.AddColumnWith(key, func(length int) (array.Array, error) {
		return array.CreateExtended(kind, length, style, fillFactor, coding, objectLess, defaultZone)
	})
}

// AddColumnWith is the general column-creation path behind AddColumn,
// AddColumnExtended, and the frame package's copy/combine/concat
// builders (MapColumn builds its replacement array directly): it handles the
// column-index bookkeeping and coordinate assignment, then hands the
// new column's required length to build, which is free to construct
// any array.Array -- a fresh one via Create/CreateExtended, or a clone
// of an existing column's storage via array.CreateLike or Array.Copy.
func (fc *FrameContent[R, C]) AddColumnWith(key C, build func(length int) (array.Array, error)) (array.Array, error) {
	ok, err := fc.colIndex.Add(key)
	if err != nil {
		return nil, newError(KindViewMutation, "AddColumn", key)
	}
	if !ok {
		return nil, newError(KindDuplicateColumn, "AddColumn", key)
	}
	c := fc.colIndex.Coordinate(key)
	arr, err := build(fc.rowIndex.Size())
	if err != nil {
		return nil, err
	}
	fc.columns[c] = arr
	return arr, nil
}

// CompareColumn orders two rows (by ordinal, in this content's own
// ordinal space) according to colKey's array.Compare. Used by row sort
// by data column (spec §4.5): comparisons go through the column's own
// typed Compare rather than boxing values, so a coded or zoned column
// sorts by its native ordering (code's backing value, instant) even
// though FrameContent itself only deals in `any`.
func (fc *FrameContent[R, C]) CompareColumn(rowOrdinalA, rowOrdinalB int, colKey C) (int, error) {
	cc := fc.colIndex.Coordinate(colKey)
	if cc < 0 {
		return 0, newError(KindUnknownColKey, "CompareColumn", colKey)
	}
	arr := fc.columns[cc]
	ra := fc.RowCoordinateAt(rowOrdinalA)
	rb := fc.RowCoordinateAt(rowOrdinalB)
	return arr.Compare(int(ra), int(rb)), nil
}

// Filter returns a non-owning view restricted to rowKeys x colKeys,
// sharing this content's column arrays (spec §4.3/§5: "filter views
// share storage with their parent; writes through the view are visible
// in the parent").
func (fc *FrameContent[R, C]) Filter(rowKeys []R, colKeys []C) (*FrameContent[R, C], error) {
	rv, err := fc.rowIndex.Filter(rowKeys)
	if err != nil {
		return nil, newError(KindUnknownRowKey, "Filter", nil)
	}
	cv, err := fc.colIndex.Filter(colKeys)
	if err != nil {
		return nil, newError(KindUnknownColKey, "Filter", nil)
	}
	return &FrameContent[R, C]{rowIndex: rv, colIndex: cv, columns: fc.columns}, nil
}

// FilterPredicate is Filter's predicate-driven counterpart.
func (fc *FrameContent[R, C]) FilterPredicate(rowPredicate func(R) bool, colPredicate func(C) bool) *FrameContent[R, C] {
	rv := fc.rowIndex.FilterPredicate(rowPredicate)
	cv := fc.colIndex.FilterPredicate(colPredicate)
	return &FrameContent[R, C]{rowIndex: rv, colIndex: cv, columns: fc.columns}
}

// MapColumn materializes column key as a new array of newKind/style by
// applying convert over its current values, returning a new content
// that deep-copies (replaces) only that one column's storage and shares
// every other column with the receiver — the Open Question decision
// recorded in SPEC_FULL.md §6 and DESIGN.md.
func (fc *FrameContent[R, C]) MapColumn(key C, newKind array.Kind, style array.Style, fillFactor float64, convert func(v any) any) (*FrameContent[R, C], error) {
	cc := fc.colIndex.Coordinate(key)
	if cc < 0 {
		return nil, newError(KindUnknownColKey, "MapColumn", key)
	}
	old := fc.columns[cc]
	newArr, err := array.CreateExtended(newKind, old.Len(), style, fillFactor, nil, nil, "")
	if err != nil {
		return nil, err
	}
	for i := 0; i < old.Len(); i++ {
		newArr.SetValue(i, convert(old.GetValue(i)))
	}
	shared := make(map[int32]array.Array, len(fc.columns))
	for k, v := range fc.columns {
		shared[k] = v
	}
	shared[cc] = newArr
	return &FrameContent[R, C]{rowIndex: fc.rowIndex, colIndex: fc.colIndex, columns: shared}, nil
}

// UniformKind returns the element kind shared by every column, and
// false if columns differ (or there are none) — the precondition
// Transpose checks per spec §4.3: "permitted only when all columns
// share one element type T".
func (fc *FrameContent[R, C]) UniformKind() (array.Kind, bool) {
	first := true
	var kind array.Kind
	ok := true
	fc.colIndex.ForEachEntry(func(_ C, coordinate int32) {
		k := fc.columns[coordinate].Kind()
		if first {
			kind, first = k, false
			return
		}
		if k != kind {
			ok = false
		}
	})
	if first {
		return 0, false
	}
	return kind, ok
}

// Transpose swaps the role of rows and columns. When all columns share
// one element type (UniformKind), the result keeps that type; otherwise
// it materializes an Object-typed frame, per spec §4.3. Go's type
// system requires the transposed content's row/column key types to
// swap too (FrameContent[C, R]), which rules out a zero-copy lazy view
// across the type boundary -- the result is eagerly materialized
// column-by-column instead, a deliberate simplification over the
// original's "view" framing.
func Transpose[R comparable, C comparable](fc *FrameContent[R, C]) (*FrameContent[C, R], error) {
	kind, uniform := fc.UniformKind()
	if !uniform {
		kind = array.Object
	}
	newRows := fc.colIndex.Copy(true)
	newCols := fc.rowIndex.Copy(true)
	out := New[C, R](newRows, newCols)

	rowCount := fc.Rows()
	colCount := fc.Cols()
	for newColOrdinal := 0; newColOrdinal < rowCount; newColOrdinal++ { // old row -> new column
		key := fc.rowIndex.KeyAt(newColOrdinal)
		arr, err := out.AddColumn(key, kind, array.Dense, 0)
		if err != nil {
			return nil, err
		}
		for newRowOrdinal := 0; newRowOrdinal < colCount; newRowOrdinal++ { // old col -> new row
			arr.SetValue(newRowOrdinal, fc.Get(newColOrdinal, newRowOrdinal))
		}
	}
	return out, nil
}

// AsMatrix bridges a uniform-Double FrameContent to gonum's mat.Matrix
// contract for downstream linear-algebra consumers -- explicitly out of
// this module's own scope, but a dependency this module can still hand
// off without copying row-major into a fresh buffer.
type matrixView[R comparable, C comparable] struct {
	fc *FrameContent[R, C]
}

func (m matrixView[R, C]) Dims() (int, int) { return m.fc.Rows(), m.fc.Cols() }
func (m matrixView[R, C]) At(i, j int) float64 {
	return m.fc.Get(i, j).(float64)
}
func (m matrixView[R, C]) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// AsMatrix returns a mat.Matrix view over fc. fc must be uniformly
// Double-typed; callers who violate that get a panic from At, matching
// the teacher's own unchecked At on out-of-range access.
func AsMatrix[R comparable, C comparable](fc *FrameContent[R, C]) mat.Matrix {
	return matrixView[R, C]{fc: fc}
}
