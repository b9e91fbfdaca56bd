package array

import "io"

// objectArray stores arbitrary `any` payloads densely, for spec 4.1's
// Object kind (escape hatch for values outside the fixed primitive
// set). It gives up BinarySearch ordering guarantees unless the caller
// supplies a `less`, and it cannot serialize: arbitrary Go values have
// no generic wire format, grounded on the teacher's general refusal to
// serialize anything outside the float64 matrix types.
type objectArray struct {
	def  any
	data []any
	less func(a, b any) bool
}

// NewObjectArray creates an Object column. less may be nil, in which
// case Sort returns ErrUnsupportedOp and Compare/BinarySearch panic
// with it (spec 9:
// Object has no default total order).
func NewObjectArray(length int, less func(a, b any) bool) objectArray {
	return objectArray{data: make([]any, length), less: less}
}

func (a *objectArray) Len() int          { return len(a.data) }
func (a *objectArray) Kind() Kind        { return Object }
func (a *objectArray) Style() Style      { return Dense }
func (a *objectArray) DefaultValue() any { return a.def }

func (a *objectArray) IsNull(i int) bool {
	boundsPanic("IsNull", i, len(a.data))
	return a.data[i] == nil
}

func (a *objectArray) GetValue(i int) any {
	boundsPanic("GetValue", i, len(a.data))
	return a.data[i]
}

func (a *objectArray) SetValue(i int, v any) any {
	boundsPanic("SetValue", i, len(a.data))
	old := a.data[i]
	a.data[i] = v
	return old
}

func (a *objectArray) IsEqualTo(i int, v any) bool {
	boundsPanic("IsEqualTo", i, len(a.data))
	return a.data[i] == v
}

func (a *objectArray) Swap(i, j int) {
	boundsPanic("Swap", i, len(a.data))
	boundsPanic("Swap", j, len(a.data))
	a.data[i], a.data[j] = a.data[j], a.data[i]
}

func (a *objectArray) Compare(i, j int) int {
	if a.less == nil {
		panic(newError(KindUnsupportedOp, "Compare", -1, nil))
	}
	switch {
	case a.less(a.data[i], a.data[j]):
		return -1
	case a.less(a.data[j], a.data[i]):
		return 1
	default:
		return 0
	}
}

func (a *objectArray) Sort(start, end int, direction Direction) error {
	if a.less == nil {
		return newError(KindUnsupportedOp, "Sort", -1, nil)
	}
	if err := checkRange("Sort", start, end, len(a.data)); err != nil {
		return err
	}
	if direction == Identity {
		return newError(KindUnsupportedOp, "Sort", -1, nil)
	}
	less := a.less
	if direction < 0 {
		less = func(x, y any) bool { return a.less(y, x) }
	}
	slice := a.data[start:end]
	for i := 1; i < len(slice); i++ {
		for j := i; j > 0 && less(slice[j], slice[j-1]); j-- {
			slice[j], slice[j-1] = slice[j-1], slice[j]
		}
	}
	return nil
}

func (a *objectArray) Filter(predicate func(i int) bool) Array {
	out := make([]any, 0, len(a.data))
	for i := range a.data {
		if predicate(i) {
			out = append(out, a.data[i])
		}
	}
	return &objectArray{def: a.def, data: out, less: a.less}
}

func (a *objectArray) Copy() Array {
	return &objectArray{def: a.def, data: append([]any(nil), a.data...), less: a.less}
}

func (a *objectArray) CopyRange(start, end int) Array {
	if err := checkRange("CopyRange", start, end, len(a.data)); err != nil {
		panic(err)
	}
	return &objectArray{def: a.def, data: append([]any(nil), a.data[start:end]...), less: a.less}
}

func (a *objectArray) CopyIndexes(indexes []int) Array {
	out := make([]any, len(indexes))
	for k, i := range indexes {
		boundsPanic("CopyIndexes", i, len(a.data))
		out[k] = a.data[i]
	}
	return &objectArray{def: a.def, data: out, less: a.less}
}

func (a *objectArray) Expand(newLength int) {
	if newLength <= len(a.data) {
		return
	}
	grown := make([]any, newLength)
	copy(grown, a.data)
	a.data = grown
}

func (a *objectArray) Fill(v any, start, end int) error {
	if err := checkRange("Fill", start, end, len(a.data)); err != nil {
		return err
	}
	for i := start; i < end; i++ {
		a.data[i] = v
	}
	return nil
}

func (a *objectArray) BinarySearch(start, end int, v any) int {
	if a.less == nil {
		panic(newError(KindUnsupportedOp, "BinarySearch", start, nil))
	}
	lo, hi := start, end
	for lo < hi {
		mid := (lo + hi) / 2
		if a.less(a.data[mid], v) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < end && a.data[lo] == v {
		return lo
	}
	return -(lo) - 1
}

func (a *objectArray) Distinct(limit int) Array {
	seen := make(map[any]struct{}, len(a.data))
	out := make([]any, 0, len(a.data))
	for _, v := range a.data {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return &objectArray{def: a.def, data: out, less: a.less}
}

func (a *objectArray) CumSum() (Array, error) {
	return nil, newError(KindUnsupportedOp, "CumSum", -1, nil)
}

func (a *objectArray) WriteTo(w io.Writer) (int64, error) {
	return 0, newError(KindSerialization, "WriteTo", -1, nil)
}

// ObjectArray is the public wrapper (matches the IntArray/LongArray
// embedding convention even though objectArray itself already
// implements Array; kept so Object columns type-assert consistently
// with the rest of the family).
type ObjectArray struct{ Array }

func NewObjectColumn(length int, less func(a, b any) bool) ObjectArray {
	oa := NewObjectArray(length, less)
	return ObjectArray{&oa}
}

// objectLessOf reports the comparator backing src, for CreateLike to
// propagate when cloning an Object column.
func objectLessOf(src Array) func(a, b any) bool {
	if oa, ok := src.(*objectArray); ok {
		return oa.less
	}
	return nil
}
