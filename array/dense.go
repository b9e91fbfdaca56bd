package array

import (
	"encoding/binary"
	"io"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// Numeric is the type set the generic dense core supports: the three
// fixed-width primitive kinds (Int, Long, Double) plus the epoch-ms
// int64 payload shared by LocalDate/LocalTime/LocalDateTime (spec 9).
// Boolean gets its own bitmap-backed arm (bool.go); String/Enum go
// through the coded arm (coded.go, which also backs the Mapped style)
// and Object through object.go instead, since their backing storage
// isn't a flat fixed-width slice.
type Numeric interface {
	~int32 | ~int64 | ~float64
}

// denseArray is the generic Dense-style core: a contiguous backing
// slice, grounded on the teacher's diagonal.go (DIA format: one
// contiguous []float64 with no per-slot presence tracking).
type denseArray[T Numeric] struct {
	kind Kind
	def  T
	data []T
	orig []T // snapshot of pre-sort order, nil until first non-identity Sort
	ops  elemOps[T]
}

func newDenseArray[T Numeric](kind Kind, length int, def T, ops elemOps[T]) *denseArray[T] {
	data := make([]T, length)
	if def != ops.zero {
		for i := range data {
			data[i] = def
		}
	}
	return &denseArray[T]{kind: kind, def: def, data: data, ops: ops}
}

func (d *denseArray[T]) Len() int          { return len(d.data) }
func (d *denseArray[T]) Kind() Kind        { return d.kind }
func (d *denseArray[T]) Style() Style      { return Dense }
func (d *denseArray[T]) DefaultValue() any { return d.def }

// IsNull is always false: a dense primitive array with no null
// tracking carries no concept of an unset slot (spec 4.1).
func (d *denseArray[T]) IsNull(i int) bool {
	boundsPanic("IsNull", i, len(d.data))
	return false
}

func (d *denseArray[T]) GetValue(i int) any {
	boundsPanic("GetValue", i, len(d.data))
	return d.data[i]
}

func (d *denseArray[T]) SetValue(i int, v any) any {
	boundsPanic("SetValue", i, len(d.data))
	old := d.data[i]
	d.data[i] = v.(T)
	return old
}

func (d *denseArray[T]) IsEqualTo(i int, v any) bool {
	boundsPanic("IsEqualTo", i, len(d.data))
	tv, ok := v.(T)
	return ok && d.ops.equal(d.data[i], tv)
}

func (d *denseArray[T]) Swap(i, j int) {
	boundsPanic("Swap", i, len(d.data))
	boundsPanic("Swap", j, len(d.data))
	d.data[i], d.data[j] = d.data[j], d.data[i]
}

func (d *denseArray[T]) Compare(i, j int) int {
	boundsPanic("Compare", i, len(d.data))
	boundsPanic("Compare", j, len(d.data))
	a, b := d.data[i], d.data[j]
	switch {
	case d.ops.less(a, b):
		return -1
	case d.ops.less(b, a):
		return 1
	default:
		return 0
	}
}

func (d *denseArray[T]) cmp(direction Direction) func(a, b T) int {
	base := func(a, b T) int {
		switch {
		case d.ops.less(a, b):
			return -1
		case d.ops.less(b, a):
			return 1
		default:
			return 0
		}
	}
	if direction < 0 {
		return func(a, b T) int { return -base(a, b) }
	}
	return base
}

func (d *denseArray[T]) Sort(start, end int, direction Direction) error {
	if err := checkRange("Sort", start, end, len(d.data)); err != nil {
		return err
	}
	if direction == Identity {
		if d.orig == nil {
			return newError(KindUnsupportedOp, "Sort", -1, nil)
		}
		copy(d.data, d.orig)
		return nil
	}
	if d.orig == nil {
		d.orig = append([]T(nil), d.data...)
	}
	slices.SortFunc(d.data[start:end], d.cmp(direction))
	return nil
}

func (d *denseArray[T]) Filter(predicate func(i int) bool) Array {
	out := make([]T, 0, len(d.data))
	for i := range d.data {
		if predicate(i) {
			out = append(out, d.data[i])
		}
	}
	return &denseArray[T]{kind: d.kind, def: d.def, data: out, ops: d.ops}
}

func (d *denseArray[T]) Copy() Array {
	return &denseArray[T]{kind: d.kind, def: d.def, data: append([]T(nil), d.data...), ops: d.ops}
}

func (d *denseArray[T]) CopyRange(start, end int) Array {
	if err := checkRange("CopyRange", start, end, len(d.data)); err != nil {
		panic(err)
	}
	return &denseArray[T]{kind: d.kind, def: d.def, data: append([]T(nil), d.data[start:end]...), ops: d.ops}
}

func (d *denseArray[T]) CopyIndexes(indexes []int) Array {
	out := make([]T, len(indexes))
	for k, i := range indexes {
		boundsPanic("CopyIndexes", i, len(d.data))
		out[k] = d.data[i]
	}
	return &denseArray[T]{kind: d.kind, def: d.def, data: out, ops: d.ops}
}

func (d *denseArray[T]) Expand(newLength int) {
	if newLength <= len(d.data) {
		return
	}
	grown := make([]T, newLength)
	copy(grown, d.data)
	if d.def != d.ops.zero {
		for i := len(d.data); i < newLength; i++ {
			grown[i] = d.def
		}
	}
	d.data = grown
}

func (d *denseArray[T]) Fill(v any, start, end int) error {
	if err := checkRange("Fill", start, end, len(d.data)); err != nil {
		return err
	}
	tv, ok := v.(T)
	if !ok {
		return newError(KindTypeMismatch, "Fill", start, nil)
	}
	for i := start; i < end; i++ {
		d.data[i] = tv
	}
	return nil
}

func (d *denseArray[T]) BinarySearch(start, end int, v any) int {
	if err := checkRange("BinarySearch", start, end, len(d.data)); err != nil {
		panic(err)
	}
	tv, ok := v.(T)
	if !ok {
		panic(newError(KindTypeMismatch, "BinarySearch", start, nil))
	}
	idx, found := slices.BinarySearchFunc(d.data[start:end], tv, func(a, b T) int {
		switch {
		case d.ops.less(a, b):
			return -1
		case d.ops.less(b, a):
			return 1
		default:
			return 0
		}
	})
	if found {
		return start + idx
	}
	return -(start + idx) - 1
}

func (d *denseArray[T]) Distinct(limit int) Array {
	seen := make(map[T]struct{}, len(d.data))
	out := make([]T, 0, len(d.data))
	for _, v := range d.data {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return &denseArray[T]{kind: d.kind, def: d.def, data: out, ops: d.ops}
}

func (d *denseArray[T]) CumSum() (Array, error) {
	out := make([]T, len(d.data))
	if fs, ok := any(d.data).([]float64); ok {
		dst := make([]float64, len(fs))
		copy(dst, fs)
		floats.CumSum(dst, dst)
		result := any(dst).([]T)
		out = result
	} else {
		var running T
		for i, v := range d.data {
			running += v
			out[i] = running
		}
	}
	return &denseArray[T]{kind: d.kind, def: d.def, data: out, ops: d.ops}, nil
}

// WriteTo encodes the dense array as: length (int64) followed by the
// raw little-endian primitive sequence, per the dense numeric layout
// spec 6 mandates, directly grounded on persistence.go's
// offset-documented MarshalBinary layouts.
func (d *denseArray[T]) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.LittleEndian, int64(len(d.data))); err != nil {
		return n, err
	}
	n += 8
	if err := binary.Write(w, binary.LittleEndian, d.data); err != nil {
		return n, err
	}
	n += int64(len(d.data)) * int64(binary.Size(d.def))
	return n, nil
}

// readDenseFrom mirrors WriteTo's layout; readZonedFrom (zoned.go) uses
// it to decode both halves of a Dense zoned column.
func readDenseFrom[T Numeric](r io.Reader, kind Kind, def T, ops elemOps[T]) (*denseArray[T], error) {
	var n int64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	data := make([]T, n)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	return &denseArray[T]{kind: kind, def: def, data: data, ops: ops}, nil
}
