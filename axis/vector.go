package axis

import (
	"sort"

	"github.com/dxframe/frame/content"
)

// Row is a cursor fixed to one row ordinal, walking column ordinals.
type Row[R comparable, C comparable] struct {
	lane[R, C]
}

// NewRow binds a Row cursor to rowOrdinal within fc.
func NewRow[R comparable, C comparable](fc *content.FrameContent[R, C], rowOrdinal int) *Row[R, C] {
	return &Row[R, C]{lane[R, C]{fc: fc, fixedRow: true, fixed: rowOrdinal}}
}

func (r *Row[R, C]) Key() R       { return r.fc.RowIndex().KeyAt(r.fixed) }
func (r *Row[R, C]) Ordinal() int { return r.fixed }
func (r *Row[R, C]) Len() int     { return r.lane.Len() }

func (r *Row[R, C]) At(colOrdinal int) any           { return r.lane.At(colOrdinal) }
func (r *Row[R, C]) SetAt(colOrdinal int, v any) any { return r.lane.SetAt(colOrdinal, v) }

func (r *Row[R, C]) AtKey(colKey C) (any, bool) {
	ord := r.fc.ColIndex().OrdinalOfKey(colKey)
	if ord < 0 {
		return nil, false
	}
	return r.At(ord), true
}

func (r *Row[R, C]) SetAtKey(colKey C, v any) (any, bool) {
	ord := r.fc.ColIndex().OrdinalOfKey(colKey)
	if ord < 0 {
		return nil, false
	}
	return r.SetAt(ord, v), true
}

// ForEach visits every (colOrdinal, colKey, value) triple in ordinal
// order, the Row counterpart of the teacher's Vector.DoNonZero.
func (r *Row[R, C]) ForEach(fn func(colOrdinal int, colKey C, value any)) {
	for i := 0; i < r.Len(); i++ {
		fn(i, r.lane.colKeyAt(i), r.lane.At(i))
	}
}

func (r *Row[R, C]) ToArray() []any {
	out := make([]any, r.Len())
	for i := range out {
		out[i] = r.lane.At(i)
	}
	return out
}

func (r *Row[R, C]) Select(predicate func(colOrdinal int, value any) bool) []DataFrameValue[R, C] {
	var out []DataFrameValue[R, C]
	for i := 0; i < r.Len(); i++ {
		if predicate(i, r.lane.At(i)) {
			out = append(out, r.lane.entryAt(i))
		}
	}
	return out
}

func (r *Row[R, C]) Stats() Stats { return computeStats(r.ToArray()) }

// Distinct returns up to limit distinct values in first-seen order;
// limit <= 0 means unlimited.
func (r *Row[R, C]) Distinct(limit int) []any {
	return distinctValues(r.ToArray(), limit)
}

// BinarySearch assumes the row's values are sorted ascending by less
// and returns the ordinal of v, or -1.
func (r *Row[R, C]) BinarySearch(v any, less func(a, b any) bool) int {
	return binarySearchValues(r.ToArray(), v, less)
}

// Column is a cursor fixed to one column ordinal, walking row ordinals.
type Column[R comparable, C comparable] struct {
	lane[R, C]
}

func NewColumn[R comparable, C comparable](fc *content.FrameContent[R, C], colOrdinal int) *Column[R, C] {
	return &Column[R, C]{lane[R, C]{fc: fc, fixedRow: false, fixed: colOrdinal}}
}

func (c *Column[R, C]) Key() C       { return c.fc.ColIndex().KeyAt(c.fixed) }
func (c *Column[R, C]) Ordinal() int { return c.fixed }
func (c *Column[R, C]) Len() int     { return c.lane.Len() }

func (c *Column[R, C]) At(rowOrdinal int) any           { return c.lane.At(rowOrdinal) }
func (c *Column[R, C]) SetAt(rowOrdinal int, v any) any { return c.lane.SetAt(rowOrdinal, v) }

func (c *Column[R, C]) AtKey(rowKey R) (any, bool) {
	ord := c.fc.RowIndex().OrdinalOfKey(rowKey)
	if ord < 0 {
		return nil, false
	}
	return c.At(ord), true
}

func (c *Column[R, C]) SetAtKey(rowKey R, v any) (any, bool) {
	ord := c.fc.RowIndex().OrdinalOfKey(rowKey)
	if ord < 0 {
		return nil, false
	}
	return c.SetAt(ord, v), true
}

func (c *Column[R, C]) ForEach(fn func(rowOrdinal int, rowKey R, value any)) {
	for i := 0; i < c.Len(); i++ {
		fn(i, c.lane.rowKeyAt(i), c.lane.At(i))
	}
}

func (c *Column[R, C]) ToArray() []any {
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.lane.At(i)
	}
	return out
}

func (c *Column[R, C]) Select(predicate func(rowOrdinal int, value any) bool) []DataFrameValue[R, C] {
	var out []DataFrameValue[R, C]
	for i := 0; i < c.Len(); i++ {
		if predicate(i, c.lane.At(i)) {
			out = append(out, c.lane.entryAt(i))
		}
	}
	return out
}

func (c *Column[R, C]) Stats() Stats { return computeStats(c.ToArray()) }

func (c *Column[R, C]) Distinct(limit int) []any {
	return distinctValues(c.ToArray(), limit)
}

func (c *Column[R, C]) BinarySearch(v any, less func(a, b any) bool) int {
	return binarySearchValues(c.ToArray(), v, less)
}

func distinctValues(values []any, limit int) []any {
	seen := make(map[any]struct{}, len(values))
	var out []any
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func binarySearchValues(values []any, target any, less func(a, b any) bool) int {
	n := sort.Search(len(values), func(i int) bool {
		return !less(values[i], target)
	})
	if n < len(values) && !less(target, values[n]) && !less(values[n], target) {
		return n
	}
	return -1
}

// GroupRowsByColumn partitions row ordinals by their value in colKey's
// column. The result is a map, so the groups themselves carry no order;
// within a group, row ordinals are ascending.
func GroupRowsByColumn[R comparable, C comparable](fc *content.FrameContent[R, C], colKey C) (map[any][]int, error) {
	if _, err := fc.ColumnByKey(colKey); err != nil {
		return nil, err
	}
	cc := fc.ColIndex().Coordinate(colKey)
	groups := make(map[any][]int)
	for i := 0; i < fc.Rows(); i++ {
		v := fc.GetCoord(fc.RowCoordinateAt(i), cc)
		groups[v] = append(groups[v], i)
	}
	return groups, nil
}

// GroupRowsByKeyFunc partitions row ordinals by keyFn(rowKey, rowOrdinal).
func GroupRowsByKeyFunc[R comparable, C comparable](fc *content.FrameContent[R, C], keyFn func(rowKey R, rowOrdinal int) any) map[any][]int {
	groups := make(map[any][]int)
	for i := 0; i < fc.Rows(); i++ {
		k := keyFn(fc.RowIndex().KeyAt(i), i)
		groups[k] = append(groups[k], i)
	}
	return groups
}

// GroupColumnsByRow is GroupRowsByColumn's column-axis counterpart:
// partitions column ordinals by their value in rowKey's row.
func GroupColumnsByRow[R comparable, C comparable](fc *content.FrameContent[R, C], rowKey R) (map[any][]int, error) {
	rc := fc.RowIndex().Coordinate(rowKey)
	if rc < 0 {
		return nil, content.ErrUnknownRowKey
	}
	groups := make(map[any][]int)
	for i := 0; i < fc.Cols(); i++ {
		v := fc.GetCoord(rc, fc.ColCoordinateAt(i))
		groups[v] = append(groups[v], i)
	}
	return groups, nil
}
