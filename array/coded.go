package array

import (
	"encoding/binary"
	"io"
	"sync"
)

// Coding is the external code<->value map shared by coded arrays, per
// spec 4.1: "coded arrays... share an external Coding<T> that maps
// code<->value. Two coded arrays of the same coding can be copied
// between without decoding." Grounded on dictionaryofkeys.go's
// map[key]float64 (an external keyed lookup held alongside the matrix
// rather than inside it) generalized to a bidirectional comparable-key
// map.
type Coding[T comparable] struct {
	mu     sync.RWMutex
	codes  map[T]int32
	values []T
}

func NewCoding[T comparable]() *Coding[T] {
	return &Coding[T]{codes: make(map[T]int32)}
}

// Code returns the stable code for v, assigning a new one (len(values))
// on first sight.
func (c *Coding[T]) Code(v T) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code, ok := c.codes[v]; ok {
		return code
	}
	code := int32(len(c.values))
	c.values = append(c.values, v)
	c.codes[v] = code
	return code
}

// CodeOf returns the code for v without assigning a new one.
func (c *Coding[T]) CodeOf(v T) (int32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	code, ok := c.codes[v]
	return code, ok
}

func (c *Coding[T]) Value(code int32) T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[code]
}

func (c *Coding[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// codedArray backs CodedDense, CodedSparse, and Mapped. The three
// differ only in whether slots are stored densely or sparsely and
// whether the Coding is externally shared (CodedDense/CodedSparse) or
// privately owned and incrementally discovered (Mapped) -- spec 1 names
// "Mapped (range-compressed)" without detailing it; this module treats
// it as Coded-with-a-private-dictionary, per SPEC_FULL.md's supplement.
type codedArray[T comparable] struct {
	kind      Kind
	style     Style
	coding    *Coding[T]
	def       T
	defCode   int32
	dense     []int32       // CodedDense/Mapped-dense storage
	sparse    map[int]int32 // CodedSparse storage
	sparseLen int           // logical length when isDense is false
	isDense   bool
	ops       elemOps[T]
}

func newCodedArray[T comparable](kind Kind, style Style, coding *Coding[T], length int, def T, fillFactor float64, ops elemOps[T]) *codedArray[T] {
	a := &codedArray[T]{kind: kind, style: style, coding: coding, def: def, ops: ops}
	a.defCode = coding.Code(def)
	switch style {
	case CodedDense, Mapped:
		a.isDense = true
		a.dense = make([]int32, length)
		for i := range a.dense {
			a.dense[i] = a.defCode
		}
	case CodedSparse:
		cap := int(float64(length) * fillFactor)
		if cap < 8 {
			cap = 8
		}
		a.sparse = make(map[int]int32, cap)
		a.sparseLen = length
	}
	return a
}

func (a *codedArray[T]) Len() int {
	if a.isDense {
		return len(a.dense)
	}
	return a.sparseLen
}

func (a *codedArray[T]) Kind() Kind        { return a.kind }
func (a *codedArray[T]) Style() Style      { return a.style }
func (a *codedArray[T]) DefaultValue() any { return a.def }

func (a *codedArray[T]) codeAt(i int) int32 {
	if a.isDense {
		return a.dense[i]
	}
	if c, ok := a.sparse[i]; ok {
		return c
	}
	return a.defCode
}

func (a *codedArray[T]) setCode(i int, code int32) {
	if a.isDense {
		a.dense[i] = code
		return
	}
	if code == a.defCode {
		delete(a.sparse, i)
	} else {
		a.sparse[i] = code
	}
}

func (a *codedArray[T]) IsNull(i int) bool {
	boundsPanic("IsNull", i, a.Len())
	if a.isDense {
		return false
	}
	_, ok := a.sparse[i]
	return !ok
}

func (a *codedArray[T]) GetValue(i int) any {
	boundsPanic("GetValue", i, a.Len())
	return a.coding.Value(a.codeAt(i))
}

func (a *codedArray[T]) SetValue(i int, v any) any {
	boundsPanic("SetValue", i, a.Len())
	old := a.coding.Value(a.codeAt(i))
	a.setCode(i, a.coding.Code(v.(T)))
	return old
}

func (a *codedArray[T]) IsEqualTo(i int, v any) bool {
	boundsPanic("IsEqualTo", i, a.Len())
	tv, ok := v.(T)
	return ok && a.ops.equal(a.coding.Value(a.codeAt(i)), tv)
}

func (a *codedArray[T]) Swap(i, j int) {
	boundsPanic("Swap", i, a.Len())
	boundsPanic("Swap", j, a.Len())
	ci, cj := a.codeAt(i), a.codeAt(j)
	a.setCode(i, cj)
	a.setCode(j, ci)
}

func (a *codedArray[T]) Compare(i, j int) int {
	vi, vj := a.coding.Value(a.codeAt(i)), a.coding.Value(a.codeAt(j))
	switch {
	case a.ops.less(vi, vj):
		return -1
	case a.ops.less(vj, vi):
		return 1
	default:
		return 0
	}
}

func (a *codedArray[T]) Sort(start, end int, direction Direction) error {
	if err := checkRange("Sort", start, end, a.Len()); err != nil {
		return err
	}
	if direction == Identity {
		return newError(KindUnsupportedOp, "Sort", -1, nil)
	}
	idx := make([]int, end-start)
	for k := range idx {
		idx[k] = start + k
	}
	// Compare through a live dereference of idx[p]/idx[q] rather than a
	// value slice precomputed at position k: sortInts permutes idx in
	// place, so any comparator keyed by scratch position rather than the
	// current idx[p]/idx[q] desyncs after the first swap. Mirrors
	// zoned.go's Sort.
	less := func(p, q int) bool {
		vp, vq := a.coding.Value(a.codeAt(idx[p])), a.coding.Value(a.codeAt(idx[q]))
		if direction > 0 {
			return a.ops.less(vp, vq)
		}
		return a.ops.less(vq, vp)
	}
	sortInts(idx, less)
	codes := make([]int32, len(idx))
	for k, orig := range idx {
		codes[k] = a.codeAt(orig)
	}
	for k, code := range codes {
		a.setCode(start+k, code)
	}
	return nil
}

func (a *codedArray[T]) Filter(predicate func(i int) bool) Array {
	out := newCodedArray[T](a.kind, a.style, a.coding, 0, a.def, 0.2, a.ops)
	n := a.Len()
	if a.isDense {
		var kept []int32
		for i := 0; i < n; i++ {
			if predicate(i) {
				kept = append(kept, a.codeAt(i))
			}
		}
		out.dense = kept
	} else {
		k := 0
		for i := 0; i < n; i++ {
			if predicate(i) {
				if c, ok := a.sparse[i]; ok {
					out.sparse[k] = c
				}
				k++
			}
		}
		out.sparseLen = k
	}
	return out
}

func (a *codedArray[T]) Copy() Array {
	out := newCodedArray[T](a.kind, a.style, a.coding, a.Len(), a.def, 0.2, a.ops)
	if a.isDense {
		copy(out.dense, a.dense)
	} else {
		for k, v := range a.sparse {
			out.sparse[k] = v
		}
	}
	return out
}

func (a *codedArray[T]) CopyRange(start, end int) Array {
	out := newCodedArray[T](a.kind, a.style, a.coding, end-start, a.def, 0.2, a.ops)
	for i := start; i < end; i++ {
		out.setCode(i-start, a.codeAt(i))
	}
	return out
}

func (a *codedArray[T]) CopyIndexes(indexes []int) Array {
	out := newCodedArray[T](a.kind, a.style, a.coding, len(indexes), a.def, 0.2, a.ops)
	for k, i := range indexes {
		out.setCode(k, a.codeAt(i))
	}
	return out
}

func (a *codedArray[T]) Expand(newLength int) {
	if a.isDense {
		if newLength > len(a.dense) {
			grown := make([]int32, newLength)
			copy(grown, a.dense)
			for i := len(a.dense); i < newLength; i++ {
				grown[i] = a.defCode
			}
			a.dense = grown
		}
		return
	}
	if newLength > a.sparseLen {
		a.sparseLen = newLength
	}
}

func (a *codedArray[T]) Fill(v any, start, end int) error {
	tv, ok := v.(T)
	if !ok {
		return newError(KindTypeMismatch, "Fill", start, nil)
	}
	code := a.coding.Code(tv)
	for i := start; i < end; i++ {
		a.setCode(i, code)
	}
	return nil
}

func (a *codedArray[T]) BinarySearch(start, end int, v any) int {
	tv, ok := v.(T)
	if !ok {
		panic(newError(KindTypeMismatch, "BinarySearch", start, nil))
	}
	lo, hi := start, end
	for lo < hi {
		mid := (lo + hi) / 2
		mv := a.coding.Value(a.codeAt(mid))
		if a.ops.less(mv, tv) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < end && a.ops.equal(a.coding.Value(a.codeAt(lo)), tv) {
		return lo
	}
	return -(lo) - 1
}

func (a *codedArray[T]) Distinct(limit int) Array {
	seen := make(map[int32]struct{})
	var codes []int32
	n := a.Len()
	for i := 0; i < n; i++ {
		c := a.codeAt(i)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		codes = append(codes, c)
		if limit > 0 && len(codes) >= limit {
			break
		}
	}
	out := newCodedArray[T](a.kind, CodedDense, a.coding, len(codes), a.def, 0, a.ops)
	copy(out.dense, codes)
	return out
}

func (a *codedArray[T]) CumSum() (Array, error) {
	return nil, newError(KindUnsupportedOp, "CumSum", -1, nil)
}

// WriteTo encodes: length, coding size, the coding's values (via
// gob-free length-prefixed helper for string only; codings over other
// comparable T are not wire-stable and return ErrSerialization), then
// the per-slot code sequence.
func (a *codedArray[T]) WriteTo(w io.Writer) (int64, error) {
	strCoding, ok := any(a.coding).(*Coding[string])
	if !ok {
		return 0, newError(KindSerialization, "WriteTo", -1, nil)
	}
	var n int64
	n64 := int64(a.Len())
	if err := binary.Write(w, binary.LittleEndian, n64); err != nil {
		return n, err
	}
	n += 8
	size := int64(strCoding.Size())
	if err := binary.Write(w, binary.LittleEndian, size); err != nil {
		return n, err
	}
	n += 8
	for i := int32(0); i < int32(size); i++ {
		s := strCoding.Value(i)
		if err := binary.Write(w, binary.LittleEndian, int64(len(s))); err != nil {
			return n, err
		}
		n += 8
		if _, err := io.WriteString(w, s); err != nil {
			return n, err
		}
		n += int64(len(s))
	}
	for i := 0; i < int(n64); i++ {
		if err := binary.Write(w, binary.LittleEndian, a.codeAt(i)); err != nil {
			return n, err
		}
		n += 4
	}
	return n, nil
}

// stringCodingOf reports the Coding backing src, for CreateLike to
// propagate when cloning a String or Enum column. Only codedArray[string]
// (String and Enum both share that instantiation) carries one.
func stringCodingOf(src Array) (*Coding[string], bool) {
	if ca, ok := src.(*codedArray[string]); ok {
		return ca.coding, true
	}
	return nil, false
}

// sortInts is a plain insertion sort over a small index slice
// using an externally-supplied less(p,q int) comparator on positions
// within idx, used by codedArray.Sort to permute codes indirectly.
func sortInts(idx []int, less func(p, q int) bool) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
}
