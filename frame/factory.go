package frame

import (
	"github.com/google/uuid"

	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/content"
	"github.com/dxframe/frame/index"
)

// Empty returns a root Frame with no rows and no columns.
func Empty[R comparable, C comparable]() *Frame[R, C] {
	rowIdx := index.Empty[R](0)
	colIdx := index.Empty[C](0)
	return Wrap(content.New[R, C](rowIdx, colIdx))
}

// Of builds a root Frame over rowKeys x colKeys with no columns
// allocated yet; callers add columns with AddColumn on Content().
func Of[R comparable, C comparable](rowKeys []R, colKeys []C) (*Frame[R, C], error) {
	rowIdx, err := index.Of(rowKeys)
	if err != nil {
		return nil, err
	}
	colIdx, err := index.Of(colKeys)
	if err != nil {
		return nil, err
	}
	return Wrap(content.New[R, C](rowIdx, colIdx)), nil
}

// ColumnSpec describes one column OfColumns should allocate. Coding,
// ObjectLess, and DefaultZone are only consulted for Kind ==
// String/Enum, Object, and ZonedDateTime respectively; leaving them
// zero still allocates the column (a fresh private coding, a nil
// comparator, or the UTC default), it just doesn't share state with any
// other column.
type ColumnSpec[C comparable] struct {
	Key         C
	Kind        array.Kind
	Style       array.Style
	FillFactor  float64
	Coding      *array.Coding[string]
	ObjectLess  func(a, b any) bool
	DefaultZone string
}

// OfColumns builds a root Frame over rowKeys, allocating the columns
// named by cols in order.
func OfColumns[R comparable, C comparable](rowKeys []R, cols []ColumnSpec[C]) (*Frame[R, C], error) {
	rowIdx, err := index.Of(rowKeys)
	if err != nil {
		return nil, err
	}
	colIdx := index.Empty[C](len(cols))
	fc := content.New[R, C](rowIdx, colIdx)
	for _, spec := range cols {
		if _, err := fc.AddColumnExtended(spec.Key, spec.Kind, spec.Style, spec.FillFactor, spec.Coding, spec.ObjectLess, spec.DefaultZone); err != nil {
			return nil, err
		}
	}
	return Wrap(fc), nil
}

// OfObjectRows builds a root Frame keyed by a freshly minted uuid.UUID
// per entry of displayRows, for Row values that aren't themselves a
// usable comparable key (or whose natural equality the caller doesn't
// want as the row key) -- spec S2's Object-row-keyed scenario. Returns
// the Frame plus displayRows itself, ordinal-aligned with the frame's
// row order, so callers can still look a row up by its original value.
func OfObjectRows[Row any, C comparable](displayRows []Row, cols []ColumnSpec[C]) (*Frame[uuid.UUID, C], []Row, error) {
	rowIdx, displays, err := index.NewObjectIndexID(displayRows)
	if err != nil {
		return nil, nil, err
	}
	colIdx := index.Empty[C](len(cols))
	fc := content.New[uuid.UUID, C](rowIdx, colIdx)
	for _, spec := range cols {
		if _, err := fc.AddColumnExtended(spec.Key, spec.Kind, spec.Style, spec.FillFactor, spec.Coding, spec.ObjectLess, spec.DefaultZone); err != nil {
			return nil, nil, err
		}
	}
	return Wrap(fc), displays, nil
}

// CombineFirst builds a new Frame over the union of left's and right's
// row keys and column keys (left's keys first, in left's order, then
// any right-only keys in right's order -- the Open Question decision
// recorded in DESIGN.md: the result is NOT re-sorted by row key).
// Wherever left has a value for a (rowKey, colKey) pair, left's value
// wins; otherwise right's value is used if right has one.
func CombineFirst[R comparable, C comparable](left, right *Frame[R, C]) (*Frame[R, C], error) {
	rowKeys := unionKeysPreserveOrder(left.fc.RowIndex(), right.fc.RowIndex())
	colKeys := unionKeysPreserveOrder(left.fc.ColIndex(), right.fc.ColIndex())

	rowIdx, err := index.Of(rowKeys)
	if err != nil {
		return nil, err
	}
	colIdx, err := index.Of(colKeys)
	if err != nil {
		return nil, err
	}
	fc := content.New[R, C](rowIdx, colIdx)
	for _, ck := range colKeys {
		src, ok := columnSourceOf(left, right, ck)
		if !ok {
			continue // neither side has this column's data; leave unallocated
		}
		if _, err := fc.AddColumnWith(ck, func(length int) (array.Array, error) { return array.CreateLike(src, length) }); err != nil {
			return nil, err
		}
	}
	for i, rk := range rowKeys {
		for j, ck := range colKeys {
			if lr, lc := left.fc.RowIndex().OrdinalOfKey(rk), left.fc.ColIndex().OrdinalOfKey(ck); lr >= 0 && lc >= 0 {
				fc.Set(i, j, left.fc.Get(lr, lc))
				continue
			}
			if rr, rc := right.fc.RowIndex().OrdinalOfKey(rk), right.fc.ColIndex().OrdinalOfKey(ck); rr >= 0 && rc >= 0 {
				fc.Set(i, j, right.fc.Get(rr, rc))
			}
		}
	}
	return Wrap(fc), nil
}

func columnSourceOf[R comparable, C comparable](left, right *Frame[R, C], key C) (array.Array, bool) {
	if co := left.fc.ColIndex().OrdinalOfKey(key); co >= 0 {
		return left.fc.ColumnAt(co), true
	}
	if co := right.fc.ColIndex().OrdinalOfKey(key); co >= 0 {
		return right.fc.ColumnAt(co), true
	}
	return nil, false
}

func unionKeysPreserveOrder[K comparable](a, b *index.KeyIndex[K]) []K {
	seen := make(map[K]struct{}, a.Size()+b.Size())
	out := make([]K, 0, a.Size()+b.Size())
	appendNew := func(idx *index.KeyIndex[K]) {
		for i := 0; i < idx.Size(); i++ {
			k := idx.KeyAt(i)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	appendNew(a)
	appendNew(b)
	return out
}

// ConcatRows stacks frames row-wise. Every frame must share the same
// column-key sequence; row keys across all frames must be mutually
// disjoint (enforced by the resulting row index rejecting duplicates).
func ConcatRows[R comparable, C comparable](frames ...*Frame[R, C]) (*Frame[R, C], error) {
	if len(frames) == 0 {
		return Empty[R, C](), nil
	}
	colKeys := frames[0].allColKeys()
	var rowKeys []R
	for _, fr := range frames {
		if err := requireSameColumnKeys(colKeys, fr); err != nil {
			return nil, err
		}
		rowKeys = append(rowKeys, fr.allRowKeys()...)
	}
	rowIdx, err := index.Of(rowKeys)
	if err != nil {
		return nil, err
	}
	colIdx, err := index.Of(colKeys)
	if err != nil {
		return nil, err
	}
	fc := content.New[R, C](rowIdx, colIdx)
	for j, ck := range colKeys {
		src := frames[0].fc.ColumnAt(j)
		if _, err := fc.AddColumnWith(ck, func(length int) (array.Array, error) { return array.CreateLike(src, length) }); err != nil {
			return nil, err
		}
	}
	rowOrdinal := 0
	for _, fr := range frames {
		for i := 0; i < fr.Rows(); i++ {
			for j := range colKeys {
				fc.Set(rowOrdinal, j, fr.fc.Get(i, j))
			}
			rowOrdinal++
		}
	}
	return Wrap(fc), nil
}

func requireSameColumnKeys[R comparable, C comparable](colKeys []C, fr *Frame[R, C]) error {
	if fr.Cols() != len(colKeys) {
		return newError(KindUnknownColKey, "ConcatRows", nil)
	}
	for j, ck := range colKeys {
		if fr.fc.ColIndex().KeyAt(j) != ck {
			return newError(KindUnknownColKey, "ConcatRows", ck)
		}
	}
	return nil
}

// ConcatColumns lays frames side by side. Every frame must share the
// same row-key sequence; column keys across all frames must be
// mutually disjoint (enforced by the resulting column index rejecting
// duplicates).
func ConcatColumns[R comparable, C comparable](frames ...*Frame[R, C]) (*Frame[R, C], error) {
	if len(frames) == 0 {
		return Empty[R, C](), nil
	}
	rowKeys := frames[0].allRowKeys()
	var colKeys []C
	for _, fr := range frames {
		if err := requireSameRowKeys(rowKeys, fr); err != nil {
			return nil, err
		}
		colKeys = append(colKeys, fr.allColKeys()...)
	}
	rowIdx, err := index.Of(rowKeys)
	if err != nil {
		return nil, err
	}
	colIdx, err := index.Of(colKeys)
	if err != nil {
		return nil, err
	}
	fc := content.New[R, C](rowIdx, colIdx)
	colOrdinal := 0
	for _, fr := range frames {
		for j := 0; j < fr.Cols(); j++ {
			key := fr.fc.ColIndex().KeyAt(j)
			src := fr.fc.ColumnAt(j)
			if _, err := fc.AddColumnWith(key, func(length int) (array.Array, error) { return array.CreateLike(src, length) }); err != nil {
				return nil, err
			}
			for i := 0; i < fr.Rows(); i++ {
				fc.Set(i, colOrdinal, fr.fc.Get(i, j))
			}
			colOrdinal++
		}
	}
	return Wrap(fc), nil
}

func requireSameRowKeys[R comparable, C comparable](rowKeys []R, fr *Frame[R, C]) error {
	if fr.Rows() != len(rowKeys) {
		return newError(KindUnknownRowKey, "ConcatColumns", nil)
	}
	for i, rk := range rowKeys {
		if fr.fc.RowIndex().KeyAt(i) != rk {
			return newError(KindUnknownRowKey, "ConcatColumns", rk)
		}
	}
	return nil
}

// RowColumnSpec describes one column FromRows should allocate, plus
// the extractor that reads that column's value out of a source Row.
// Coding, ObjectLess, and DefaultZone follow the same rules as
// ColumnSpec's fields of the same name.
type RowColumnSpec[Row any, C comparable] struct {
	Key         C
	Kind        array.Kind
	Style       array.Style
	FillFactor  float64
	Coding      *array.Coding[string]
	ObjectLess  func(a, b any) bool
	DefaultZone string
	Extract     func(Row) any
}

// FromRows adapts a slice of arbitrary Go values into a Frame: rowKeyFn
// derives each row's key, and cols describes the columns to allocate
// and how to pull each one's value out of a Row.
func FromRows[Row any, R comparable, C comparable](rows []Row, rowKeyFn func(Row) R, cols []RowColumnSpec[Row, C]) (*Frame[R, C], error) {
	rowKeys := make([]R, len(rows))
	for i, row := range rows {
		rowKeys[i] = rowKeyFn(row)
	}
	rowIdx, err := index.Of(rowKeys)
	if err != nil {
		return nil, err
	}
	colIdx := index.Empty[C](len(cols))
	fc := content.New[R, C](rowIdx, colIdx)
	for _, spec := range cols {
		if _, err := fc.AddColumnExtended(spec.Key, spec.Kind, spec.Style, spec.FillFactor, spec.Coding, spec.ObjectLess, spec.DefaultZone); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		for j, spec := range cols {
			fc.Set(i, j, spec.Extract(row))
		}
	}
	return Wrap(fc), nil
}
