package array

import (
	"encoding/binary"
	"io"
	"sort"

	"golang.org/x/exp/slices"
)

// sparseArray is the generic Sparse-style core: only entries whose
// value differs from the default are stored, in an open int-keyed map,
// grounded on the teacher's coordinate.go (COO: parallel index/value
// storage for only the non-default/non-zero entries) generalized from
// float64 to any Numeric T. fillFactor is a sizing hint for the initial
// map capacity (spec 5's "sparse arrays are created with a fill-factor
// hint").
type sparseArray[T Numeric] struct {
	kind       Kind
	def        T
	length     int
	entries    map[int]T
	fillFactor float64
	ops        elemOps[T]
}

func newSparseArray[T Numeric](kind Kind, length int, def T, fillFactor float64, ops elemOps[T]) *sparseArray[T] {
	if fillFactor <= 0 {
		fillFactor = 0.2
	}
	cap := int(float64(length) * fillFactor)
	if cap < 8 {
		cap = 8
	}
	return &sparseArray[T]{
		kind: kind, def: def, length: length,
		entries: make(map[int]T, cap), fillFactor: fillFactor, ops: ops,
	}
}

func (s *sparseArray[T]) Len() int          { return s.length }
func (s *sparseArray[T]) Kind() Kind        { return s.kind }
func (s *sparseArray[T]) Style() Style      { return Sparse }
func (s *sparseArray[T]) DefaultValue() any { return s.def }

func (s *sparseArray[T]) IsNull(i int) bool {
	boundsPanic("IsNull", i, s.length)
	_, ok := s.entries[i]
	return !ok
}

func (s *sparseArray[T]) GetValue(i int) any {
	boundsPanic("GetValue", i, s.length)
	if v, ok := s.entries[i]; ok {
		return v
	}
	return s.def
}

// SetValue stores v at i, or removes the stored entry entirely when v
// equals the default (spec 4.1: "writing the default value in a sparse
// array removes the entry").
func (s *sparseArray[T]) SetValue(i int, v any) any {
	boundsPanic("SetValue", i, s.length)
	old := s.def
	if prev, ok := s.entries[i]; ok {
		old = prev
	}
	tv := v.(T)
	if s.ops.equal(tv, s.def) {
		delete(s.entries, i)
	} else {
		s.entries[i] = tv
	}
	return old
}

func (s *sparseArray[T]) IsEqualTo(i int, v any) bool {
	boundsPanic("IsEqualTo", i, s.length)
	tv, ok := v.(T)
	return ok && s.ops.equal(s.getOrDefault(i), tv)
}

func (s *sparseArray[T]) getOrDefault(i int) T {
	if v, ok := s.entries[i]; ok {
		return v
	}
	return s.def
}

func (s *sparseArray[T]) Swap(i, j int) {
	boundsPanic("Swap", i, s.length)
	boundsPanic("Swap", j, s.length)
	vi, iok := s.entries[i]
	vj, jok := s.entries[j]
	switch {
	case iok && jok:
		s.entries[i], s.entries[j] = vj, vi
	case iok && !jok:
		delete(s.entries, i)
		s.entries[j] = vi
	case !iok && jok:
		delete(s.entries, j)
		s.entries[i] = vj
	}
}

func (s *sparseArray[T]) Compare(i, j int) int {
	boundsPanic("Compare", i, s.length)
	boundsPanic("Compare", j, s.length)
	a, b := s.getOrDefault(i), s.getOrDefault(j)
	switch {
	case s.ops.less(a, b):
		return -1
	case s.ops.less(b, a):
		return 1
	default:
		return 0
	}
}

// Sort materializes [start,end) densely, sorts, and re-sparsifies:
// sparse arrays don't track insertion order, so direction 0 (restore
// identity) is unsupported per spec 9's invitation to "disallow" for
// variants lacking an order tracker.
func (s *sparseArray[T]) Sort(start, end int, direction Direction) error {
	if err := checkRange("Sort", start, end, s.length); err != nil {
		return err
	}
	if direction == Identity {
		return newError(KindUnsupportedOp, "Sort", -1, nil)
	}
	buf := make([]T, end-start)
	for i := start; i < end; i++ {
		buf[i-start] = s.getOrDefault(i)
	}
	base := func(a, b T) int {
		switch {
		case s.ops.less(a, b):
			return -1
		case s.ops.less(b, a):
			return 1
		default:
			return 0
		}
	}
	if direction < 0 {
		orig := base
		base = func(a, b T) int { return -orig(a, b) }
	}
	slices.SortFunc(buf, base)
	for i := start; i < end; i++ {
		s.SetValue(i, buf[i-start])
	}
	return nil
}

func (s *sparseArray[T]) Filter(predicate func(i int) bool) Array {
	out := newSparseArray[T](s.kind, 0, s.def, s.fillFactor, s.ops)
	n := 0
	for i := 0; i < s.length; i++ {
		if predicate(i) {
			if v, ok := s.entries[i]; ok {
				out.entries[n] = v
			}
			n++
		}
	}
	out.length = n
	return out
}

func (s *sparseArray[T]) Copy() Array {
	out := newSparseArray[T](s.kind, s.length, s.def, s.fillFactor, s.ops)
	for k, v := range s.entries {
		out.entries[k] = v
	}
	return out
}

func (s *sparseArray[T]) CopyRange(start, end int) Array {
	if err := checkRange("CopyRange", start, end, s.length); err != nil {
		panic(err)
	}
	out := newSparseArray[T](s.kind, end-start, s.def, s.fillFactor, s.ops)
	for i := start; i < end; i++ {
		if v, ok := s.entries[i]; ok {
			out.entries[i-start] = v
		}
	}
	return out
}

func (s *sparseArray[T]) CopyIndexes(indexes []int) Array {
	out := newSparseArray[T](s.kind, len(indexes), s.def, s.fillFactor, s.ops)
	for k, i := range indexes {
		boundsPanic("CopyIndexes", i, s.length)
		if v, ok := s.entries[i]; ok {
			out.entries[k] = v
		}
	}
	return out
}

func (s *sparseArray[T]) Expand(newLength int) {
	if newLength > s.length {
		s.length = newLength
	}
}

func (s *sparseArray[T]) Fill(v any, start, end int) error {
	if err := checkRange("Fill", start, end, s.length); err != nil {
		return err
	}
	tv, ok := v.(T)
	if !ok {
		return newError(KindTypeMismatch, "Fill", start, nil)
	}
	if s.ops.equal(tv, s.def) {
		for i := start; i < end; i++ {
			delete(s.entries, i)
		}
		return nil
	}
	for i := start; i < end; i++ {
		s.entries[i] = tv
	}
	return nil
}

func (s *sparseArray[T]) BinarySearch(start, end int, v any) int {
	tv, ok := v.(T)
	if !ok {
		panic(newError(KindTypeMismatch, "BinarySearch", start, nil))
	}
	idx := sort.Search(end-start, func(k int) bool {
		return !s.ops.less(s.getOrDefault(start+k), tv)
	})
	pos := start + idx
	if pos < end && s.ops.equal(s.getOrDefault(pos), tv) {
		return pos
	}
	return -(pos) - 1
}

func (s *sparseArray[T]) Distinct(limit int) Array {
	seen := make(map[T]struct{}, len(s.entries))
	var vals []T
	for i := 0; i < s.length; i++ {
		v := s.getOrDefault(i)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
		if limit > 0 && len(vals) >= limit {
			break
		}
	}
	out := newDenseArray[T](s.kind, len(vals), s.def, s.ops)
	copy(out.data, vals)
	return out
}

func (s *sparseArray[T]) CumSum() (Array, error) {
	out := newDenseArray[T](s.kind, s.length, s.def, s.ops)
	var running T
	for i := 0; i < s.length; i++ {
		running += s.getOrDefault(i)
		out.data[i] = running
	}
	return out, nil
}

// WriteTo encodes: length (int64), entry count (int64), then
// (index int64, value) pairs, per spec 6's sparse serialization layout.
func (s *sparseArray[T]) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.LittleEndian, int64(s.length)); err != nil {
		return n, err
	}
	n += 8
	if err := binary.Write(w, binary.LittleEndian, int64(len(s.entries))); err != nil {
		return n, err
	}
	n += 8
	for idx, v := range s.entries {
		if err := binary.Write(w, binary.LittleEndian, int64(idx)); err != nil {
			return n, err
		}
		n += 8
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return n, err
		}
		n += int64(binary.Size(v))
	}
	return n, nil
}

func readSparseFrom[T Numeric](r io.Reader, kind Kind, def T, fillFactor float64, ops elemOps[T]) (*sparseArray[T], error) {
	var length, count int64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	out := newSparseArray[T](kind, int(length), def, fillFactor, ops)
	for k := int64(0); k < count; k++ {
		var idx int64
		var v T
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return nil, newError(KindSerialization, "ReadFrom", -1, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, newError(KindSerialization, "ReadFrom", -1, err)
		}
		out.entries[int(idx)] = v
	}
	return out, nil
}
