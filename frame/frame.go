// Package frame implements Frame[R,C], the façade spec §4.6/§4.7
// describes: one content.FrameContent plus the parallel engine and
// flag that decide whether its bulk operations fork/join or run
// inline. Everything axis- or value-shaped delegates to axis/content;
// Frame itself only adds whole-frame operations (copy, update, sign,
// map-to-type, slicing) and the factory surface in factory.go.
package frame

import (
	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/axis"
	"github.com/dxframe/frame/content"
	"github.com/dxframe/frame/parallel"
)

// Frame is a typed, two-dimensional, keyed table: one FrameContent plus
// the engine and parallel flag that its bulk operations consult.
// Grounded on the teacher's DenseMatrix/CSR wrapper types, which pair
// raw storage with the operations that act on the whole matrix rather
// than one row/column at a time.
type Frame[R comparable, C comparable] struct {
	fc       *content.FrameContent[R, C]
	engine   *parallel.Engine
	parallel bool
}

// Wrap builds a Frame around an existing FrameContent, with a fresh
// Engine seeded from the process-wide config and parallel execution on
// by default (spec §5: bulk operations default to parallel unless the
// caller opts out).
func Wrap[R comparable, C comparable](fc *content.FrameContent[R, C]) *Frame[R, C] {
	return &Frame[R, C]{fc: fc, engine: parallel.New(), parallel: true}
}

func (f *Frame[R, C]) Content() *content.FrameContent[R, C] { return f.fc }
func (f *Frame[R, C]) Rows() int                            { return f.fc.Rows() }
func (f *Frame[R, C]) Cols() int                            { return f.fc.Cols() }
func (f *Frame[R, C]) IsView() bool                          { return f.fc.IsView() }

func (f *Frame[R, C]) Parallel() bool       { return f.parallel }
func (f *Frame[R, C]) SetParallel(v bool)   { f.parallel = v }
func (f *Frame[R, C]) Engine() *parallel.Engine { return f.engine }

func (f *Frame[R, C]) Get(rowOrdinal, colOrdinal int) any { return f.fc.Get(rowOrdinal, colOrdinal) }
func (f *Frame[R, C]) Set(rowOrdinal, colOrdinal int, v any) any {
	return f.fc.Set(rowOrdinal, colOrdinal, v)
}

func (f *Frame[R, C]) GetByKey(rowKey R, colKey C) (any, error) {
	ro, co, err := f.ordinalsOf(rowKey, colKey)
	if err != nil {
		return nil, err
	}
	return f.fc.Get(ro, co), nil
}

func (f *Frame[R, C]) SetByKey(rowKey R, colKey C, v any) (any, error) {
	ro, co, err := f.ordinalsOf(rowKey, colKey)
	if err != nil {
		return nil, err
	}
	return f.fc.Set(ro, co, v), nil
}

func (f *Frame[R, C]) ordinalsOf(rowKey R, colKey C) (int, int, error) {
	ro := f.fc.RowIndex().OrdinalOfKey(rowKey)
	if ro < 0 {
		return 0, 0, newError(KindUnknownRowKey, "ordinalsOf", rowKey)
	}
	co := f.fc.ColIndex().OrdinalOfKey(colKey)
	if co < 0 {
		return 0, 0, newError(KindUnknownColKey, "ordinalsOf", colKey)
	}
	return ro, co, nil
}

func (f *Frame[R, C]) Row(ordinal int) *axis.Row[R, C]       { return axis.NewRow(f.fc, ordinal) }
func (f *Frame[R, C]) Column(ordinal int) *axis.Column[R, C] { return axis.NewColumn(f.fc, ordinal) }
func (f *Frame[R, C]) Cursor() *axis.Cursor[R, C]            { return axis.NewCursor(f.fc) }

// ForEachValue walks every cell via the parallel engine, honoring the
// frame's own parallel flag and its Engine's row threshold.
func (f *Frame[R, C]) ForEachValue(visit func(axis.DataFrameValue[R, C])) {
	parallel.ForEachValue(f.engine, f.fc, f.engine.RowThreshold, f.parallel, visit)
}

// ApplyValues mutates every cell in place via fn.
func (f *Frame[R, C]) ApplyValues(fn func(v any) any) {
	parallel.ApplyValues(f.engine, f.fc, f.engine.RowThreshold, f.parallel, fn)
}

func (f *Frame[R, C]) ApplyDoubles(fn func(v float64) float64) {
	f.ApplyValues(func(v any) any { return fn(v.(float64)) })
}

func (f *Frame[R, C]) ApplyInts(fn func(v int32) int32) {
	f.ApplyValues(func(v any) any { return fn(v.(int32)) })
}

// MinMax finds the extremum row ordinal in colKey's column.
func (f *Frame[R, C]) MinMax(colKey C, less func(a, b any) bool) (int, error) {
	co := f.fc.ColIndex().OrdinalOfKey(colKey)
	if co < 0 {
		return -1, newError(KindUnknownColKey, "MinMax", colKey)
	}
	include := func(ordinal int) bool { return true }
	ordinalLess := func(a, b int) bool { return less(f.fc.Get(a, co), f.fc.Get(b, co)) }
	return f.engine.MinMax(f.Rows(), f.engine.RowThreshold, f.parallel, include, ordinalLess), nil
}

func (f *Frame[R, C]) SortRowsByKey(less func(a, b R) bool, direction array.Direction) error {
	return axis.SortRowsByKey(f.fc, less, direction)
}

func (f *Frame[R, C]) SortRowsByColumns(colKeys []C, direction array.Direction) error {
	return axis.SortRowsByColumns(f.fc, colKeys, direction)
}

// Select returns a filter view restricted to rowKeys x colKeys, sharing
// this frame's column storage (spec §4.3).
func (f *Frame[R, C]) Select(rowKeys []R, colKeys []C) (*Frame[R, C], error) {
	view, err := f.fc.Filter(rowKeys, colKeys)
	if err != nil {
		return nil, err
	}
	return f.wrapChild(view), nil
}

func (f *Frame[R, C]) SelectPredicate(rowPredicate func(R) bool, colPredicate func(C) bool) *Frame[R, C] {
	return f.wrapChild(f.fc.FilterPredicate(rowPredicate, colPredicate))
}

func (f *Frame[R, C]) wrapChild(fc *content.FrameContent[R, C]) *Frame[R, C] {
	return &Frame[R, C]{fc: fc, engine: f.engine, parallel: f.parallel}
}

// Head, Tail, Left, and Right are row/column slices, implemented as
// Select views over the leading/trailing n keys rather than a new
// "slice" code path -- they share storage with the parent, same as any
// other filter view.
func (f *Frame[R, C]) Head(n int) (*Frame[R, C], error) { return f.rowSlice(0, n) }
func (f *Frame[R, C]) Tail(n int) (*Frame[R, C], error) { return f.rowSlice(f.Rows()-n, f.Rows()) }
func (f *Frame[R, C]) Left(n int) (*Frame[R, C], error) { return f.colSlice(0, n) }
func (f *Frame[R, C]) Right(n int) (*Frame[R, C], error) { return f.colSlice(f.Cols()-n, f.Cols()) }

func (f *Frame[R, C]) rowSlice(lo, hi int) (*Frame[R, C], error) {
	lo, hi = clampRange(lo, hi, f.Rows())
	keys := make([]R, 0, hi-lo)
	for i := lo; i < hi; i++ {
		keys = append(keys, f.fc.RowIndex().KeyAt(i))
	}
	return f.Select(keys, f.allColKeys())
}

func (f *Frame[R, C]) colSlice(lo, hi int) (*Frame[R, C], error) {
	lo, hi = clampRange(lo, hi, f.Cols())
	keys := make([]C, 0, hi-lo)
	for i := lo; i < hi; i++ {
		keys = append(keys, f.fc.ColIndex().KeyAt(i))
	}
	return f.Select(f.allRowKeys(), keys)
}

func (f *Frame[R, C]) allRowKeys() []R {
	out := make([]R, f.Rows())
	for i := range out {
		out[i] = f.fc.RowIndex().KeyAt(i)
	}
	return out
}

func (f *Frame[R, C]) allColKeys() []C {
	out := make([]C, f.Cols())
	for i := range out {
		out[i] = f.fc.ColIndex().KeyAt(i)
	}
	return out
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Copy deep-copies this frame: fresh row/column indexes (renumbered
// coordinates, per KeyIndex.Copy(true)) and a fresh array per column
// built by array.CreateLike and filled cell by cell, so the result
// shares no storage with the
// receiver. Preserves each column's element kind and style.
func (f *Frame[R, C]) Copy() *Frame[R, C] {
	newRows := f.fc.RowIndex().Copy(true)
	newCols := f.fc.ColIndex().Copy(true)
	out := content.New[R, C](newRows, newCols)
	for c := 0; c < f.Cols(); c++ {
		key := f.fc.ColIndex().KeyAt(c)
		src := f.fc.ColumnAt(c)
		if _, err := out.AddColumnWith(key, func(length int) (array.Array, error) { return array.CreateLike(src, length) }); err != nil {
			panic(err) // fresh index, key just came from it: cannot fail
		}
	}
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			out.Set(r, c, f.fc.Get(r, c))
		}
	}
	return f.wrapChild(out)
}

// Update overlays other's values onto this frame's matching (row,col)
// pairs, other's values winning at every overlap. When addRows/addCols
// is true, row/column keys present in other but absent here are
// appended first (growing this frame in place), so the overlay then
// has somewhere to land; when false, keys other has that this frame
// doesn't are silently skipped. Mutates the receiver; appending keys to
// an axis that is a non-owning view fails with a view-mutation error,
// while overlaying values onto a view's existing cells is allowed.
func (f *Frame[R, C]) Update(other *Frame[R, C], addRows, addColumns bool) error {
	if addColumns {
		for j := 0; j < other.Cols(); j++ {
			key := other.fc.ColIndex().KeyAt(j)
			if f.fc.ColIndex().Contains(key) {
				continue
			}
			src := other.fc.ColumnAt(j)
			if _, err := f.fc.AddColumnWith(key, func(length int) (array.Array, error) { return array.CreateLike(src, length) }); err != nil {
				return err
			}
		}
	}
	if addRows {
		var newKeys []R
		for i := 0; i < other.Rows(); i++ {
			k := other.fc.RowIndex().KeyAt(i)
			if !f.fc.RowIndex().Contains(k) {
				newKeys = append(newKeys, k)
			}
		}
		if len(newKeys) > 0 {
			if _, err := f.fc.RowIndex().AddAll(newKeys, false); err != nil {
				return err
			}
			grown := f.Rows()
			for j := 0; j < f.Cols(); j++ {
				f.fc.ColumnAt(j).Expand(grown)
			}
		}
	}
	for i := 0; i < other.Rows(); i++ {
		rowKey := other.fc.RowIndex().KeyAt(i)
		ro := f.fc.RowIndex().OrdinalOfKey(rowKey)
		if ro < 0 {
			continue
		}
		for j := 0; j < other.Cols(); j++ {
			colKey := other.fc.ColIndex().KeyAt(j)
			co := f.fc.ColIndex().OrdinalOfKey(colKey)
			if co < 0 {
				continue
			}
			f.fc.Set(ro, co, other.fc.Get(i, j))
		}
	}
	return nil
}

// Sign returns a new Int frame of the same shape holding -1/0/+1 per
// cell, by numeric sign; non-numeric cells map to 0.
func (f *Frame[R, C]) Sign() (*Frame[R, C], error) {
	return f.mapAll(array.Int, func(v any) any { return int32(signOf(v)) })
}

func signOf(v any) int {
	switch n := v.(type) {
	case int32:
		return intSign(int64(n))
	case int64:
		return intSign(n)
	case float64:
		switch {
		case n > 0:
			return 1
		case n < 0:
			return -1
		default:
			return 0
		}
	default:
		return 0
	}
}

func intSign(n int64) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func (f *Frame[R, C]) MapToBooleans(convert func(v any) bool) (*Frame[R, C], error) {
	return f.mapAll(array.Boolean, func(v any) any { return convert(v) })
}

func (f *Frame[R, C]) MapToInts(convert func(v any) int32) (*Frame[R, C], error) {
	return f.mapAll(array.Int, func(v any) any { return convert(v) })
}

func (f *Frame[R, C]) MapToLongs(convert func(v any) int64) (*Frame[R, C], error) {
	return f.mapAll(array.Long, func(v any) any { return convert(v) })
}

func (f *Frame[R, C]) MapToDoubles(convert func(v any) float64) (*Frame[R, C], error) {
	return f.mapAll(array.Double, func(v any) any { return convert(v) })
}

func (f *Frame[R, C]) MapToObjects(convert func(v any) any) (*Frame[R, C], error) {
	return f.mapAll(array.Object, convert)
}

// MapColumn replaces one column's storage with a newKind/style array
// built by applying convert over its current values (spec §6's Open
// Question decision: the other columns are shared with the receiver,
// not copied).
func (f *Frame[R, C]) MapColumn(key C, newKind array.Kind, style array.Style, convert func(v any) any) (*Frame[R, C], error) {
	newFC, err := f.fc.MapColumn(key, newKind, style, 0, convert)
	if err != nil {
		return nil, err
	}
	return f.wrapChild(newFC), nil
}

func (f *Frame[R, C]) mapAll(kind array.Kind, convert func(v any) any) (*Frame[R, C], error) {
	newRows := f.fc.RowIndex().Copy(true)
	newCols := f.fc.ColIndex().Copy(true)
	out := content.New[R, C](newRows, newCols)
	for c := 0; c < f.Cols(); c++ {
		key := f.fc.ColIndex().KeyAt(c)
		if _, err := out.AddColumn(key, kind, array.Dense, 0); err != nil {
			return nil, err
		}
	}
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			out.Set(r, c, convert(f.fc.Get(r, c)))
		}
	}
	return f.wrapChild(out), nil
}

// Equals reports whether f and other have identical row-key and
// column-key sequences and, for every cell, IsEqualTo-equal values
// using the receiver's column's own element-type-appropriate equality.
func (f *Frame[R, C]) Equals(other *Frame[R, C]) bool {
	if f.Rows() != other.Rows() || f.Cols() != other.Cols() {
		return false
	}
	for i := 0; i < f.Rows(); i++ {
		if f.fc.RowIndex().KeyAt(i) != other.fc.RowIndex().KeyAt(i) {
			return false
		}
	}
	for j := 0; j < f.Cols(); j++ {
		if f.fc.ColIndex().KeyAt(j) != other.fc.ColIndex().KeyAt(j) {
			return false
		}
	}
	for j := 0; j < f.Cols(); j++ {
		arr := f.fc.ColumnAt(j)
		for i := 0; i < f.Rows(); i++ {
			coord := f.fc.RowCoordinateAt(i)
			if !arr.IsEqualTo(int(coord), other.fc.Get(i, j)) {
				return false
			}
		}
	}
	return true
}
