package array

import (
	"encoding/binary"
	"io"

	"github.com/kelindar/bitmap"
)

// boolDenseArray is the Boolean/Dense arm, backed by a packed bitmap
// instead of []bool, grounded on kelindar/column's columnBool (see
// other_examples/610b9d42_kelindar-column__column.go.go): one bit per
// slot, Grow/Contains/Set/Remove instead of a byte-per-bool slice.
type boolDenseArray struct {
	length int
	data   bitmap.Bitmap
}

func newBoolDenseArray(length int) *boolDenseArray {
	b := &boolDenseArray{length: length}
	if length > 0 {
		b.data.Grow(uint32(length - 1))
	}
	return b
}

func (b *boolDenseArray) Len() int          { return b.length }
func (b *boolDenseArray) Kind() Kind        { return Boolean }
func (b *boolDenseArray) Style() Style      { return Dense }
func (b *boolDenseArray) DefaultValue() any { return false }
func (b *boolDenseArray) IsNull(i int) bool { boundsPanic("IsNull", i, b.length); return false }

func (b *boolDenseArray) GetValue(i int) any {
	boundsPanic("GetValue", i, b.length)
	return b.data.Contains(uint32(i))
}

func (b *boolDenseArray) SetValue(i int, v any) any {
	boundsPanic("SetValue", i, b.length)
	old := b.data.Contains(uint32(i))
	if v.(bool) {
		b.data.Set(uint32(i))
	} else {
		b.data.Remove(uint32(i))
	}
	return old
}

func (b *boolDenseArray) IsEqualTo(i int, v any) bool {
	boundsPanic("IsEqualTo", i, b.length)
	tv, ok := v.(bool)
	return ok && b.data.Contains(uint32(i)) == tv
}

func (b *boolDenseArray) Swap(i, j int) {
	boundsPanic("Swap", i, b.length)
	boundsPanic("Swap", j, b.length)
	vi, vj := b.data.Contains(uint32(i)), b.data.Contains(uint32(j))
	setBit(&b.data, i, vj)
	setBit(&b.data, j, vi)
}

func setBit(b *bitmap.Bitmap, i int, v bool) {
	if v {
		b.Set(uint32(i))
	} else {
		b.Remove(uint32(i))
	}
}

// Compare: false < true, matching elemOps' bool ordering in elemops.go.
func (b *boolDenseArray) Compare(i, j int) int {
	boundsPanic("Compare", i, b.length)
	boundsPanic("Compare", j, b.length)
	vi, vj := b.data.Contains(uint32(i)), b.data.Contains(uint32(j))
	switch {
	case vi == vj:
		return 0
	case !vi && vj:
		return -1
	default:
		return 1
	}
}

// Sort on a 2-valued domain is just a partition: ascending pushes all
// false before true, descending the reverse. Identity restore isn't
// tracked (matches the sparse/mapped styles' documented limitation).
func (b *boolDenseArray) Sort(start, end int, direction Direction) error {
	if err := checkRange("Sort", start, end, b.length); err != nil {
		return err
	}
	if direction == Identity {
		return newError(KindUnsupportedOp, "Sort", -1, nil)
	}
	trueFirst := direction < 0
	vals := make([]bool, end-start)
	for i := start; i < end; i++ {
		vals[i-start] = b.data.Contains(uint32(i))
	}
	pos := start
	target := !trueFirst
	// two-pass stable partition: write non-target value first, then target
	for _, v := range vals {
		if v != target {
			setBit(&b.data, pos, v)
			pos++
		}
	}
	for _, v := range vals {
		if v == target {
			setBit(&b.data, pos, v)
			pos++
		}
	}
	return nil
}

func (b *boolDenseArray) Filter(predicate func(i int) bool) Array {
	out := newBoolDenseArray(0)
	n := 0
	for i := 0; i < b.length; i++ {
		if predicate(i) {
			if b.data.Contains(uint32(i)) {
				out.data.Grow(uint32(n))
				out.data.Set(uint32(n))
			}
			n++
		}
	}
	out.length = n
	return out
}

func (b *boolDenseArray) Copy() Array {
	out := newBoolDenseArray(b.length)
	for i := 0; i < b.length; i++ {
		if b.data.Contains(uint32(i)) {
			out.data.Set(uint32(i))
		}
	}
	return out
}

func (b *boolDenseArray) CopyRange(start, end int) Array {
	if err := checkRange("CopyRange", start, end, b.length); err != nil {
		panic(err)
	}
	out := newBoolDenseArray(end - start)
	for i := start; i < end; i++ {
		if b.data.Contains(uint32(i)) {
			out.data.Set(uint32(i - start))
		}
	}
	return out
}

func (b *boolDenseArray) CopyIndexes(indexes []int) Array {
	out := newBoolDenseArray(len(indexes))
	for k, i := range indexes {
		boundsPanic("CopyIndexes", i, b.length)
		if b.data.Contains(uint32(i)) {
			out.data.Set(uint32(k))
		}
	}
	return out
}

func (b *boolDenseArray) Expand(newLength int) {
	if newLength > b.length {
		if newLength > 0 {
			b.data.Grow(uint32(newLength - 1))
		}
		b.length = newLength
	}
}

func (b *boolDenseArray) Fill(v any, start, end int) error {
	if err := checkRange("Fill", start, end, b.length); err != nil {
		return err
	}
	tv, ok := v.(bool)
	if !ok {
		return newError(KindTypeMismatch, "Fill", start, nil)
	}
	for i := start; i < end; i++ {
		setBit(&b.data, i, tv)
	}
	return nil
}

func (b *boolDenseArray) BinarySearch(start, end int, v any) int {
	tv := v.(bool)
	for i := start; i < end; i++ {
		if b.data.Contains(uint32(i)) == tv {
			return i
		}
	}
	return -(end) - 1
}

func (b *boolDenseArray) Distinct(limit int) Array {
	var seenFalse, seenTrue bool
	var vals []bool
	for i := 0; i < b.length; i++ {
		v := b.data.Contains(uint32(i))
		if v && !seenTrue {
			seenTrue = true
			vals = append(vals, true)
		} else if !v && !seenFalse {
			seenFalse = true
			vals = append(vals, false)
		}
		if limit > 0 && len(vals) >= limit {
			break
		}
	}
	out := newBoolDenseArray(len(vals))
	for i, v := range vals {
		if v {
			out.data.Set(uint32(i))
		}
	}
	return out
}

func (b *boolDenseArray) CumSum() (Array, error) {
	return nil, newError(KindUnsupportedOp, "CumSum", -1, nil)
}

// WriteTo encodes: length (int64), then one byte per slot (0/1),
// matching the dense-raw-sequence convention used by the numeric arms.
func (b *boolDenseArray) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.LittleEndian, int64(b.length)); err != nil {
		return n, err
	}
	n += 8
	buf := make([]byte, b.length)
	for i := 0; i < b.length; i++ {
		if b.data.Contains(uint32(i)) {
			buf[i] = 1
		}
	}
	if _, err := w.Write(buf); err != nil {
		return n, err
	}
	return n + int64(len(buf)), nil
}

func readBoolDenseFrom(r io.Reader) (*boolDenseArray, error) {
	var length int64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	out := newBoolDenseArray(int(length))
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	for i, v := range buf {
		if v != 0 {
			out.data.Set(uint32(i))
		}
	}
	return out, nil
}

// boolSparseArray stores only true entries (default is false), via a
// plain index set -- the 2-valued domain makes a map[int]struct{}
// sufficient without a generic sparseArray[bool] instantiation.
type boolSparseArray struct {
	length int
	set    map[int]struct{}
}

func newBoolSparseArray(length int, fillFactor float64) *boolSparseArray {
	cap := int(float64(length) * fillFactor)
	if cap < 8 {
		cap = 8
	}
	return &boolSparseArray{length: length, set: make(map[int]struct{}, cap)}
}

func (b *boolSparseArray) Len() int          { return b.length }
func (b *boolSparseArray) Kind() Kind        { return Boolean }
func (b *boolSparseArray) Style() Style      { return Sparse }
func (b *boolSparseArray) DefaultValue() any { return false }

func (b *boolSparseArray) IsNull(i int) bool {
	boundsPanic("IsNull", i, b.length)
	_, ok := b.set[i]
	return !ok
}

func (b *boolSparseArray) GetValue(i int) any {
	boundsPanic("GetValue", i, b.length)
	_, ok := b.set[i]
	return ok
}

func (b *boolSparseArray) SetValue(i int, v any) any {
	boundsPanic("SetValue", i, b.length)
	_, old := b.set[i]
	if v.(bool) {
		b.set[i] = struct{}{}
	} else {
		delete(b.set, i)
	}
	return old
}

func (b *boolSparseArray) IsEqualTo(i int, v any) bool {
	return b.GetValue(i).(bool) == v.(bool)
}

func (b *boolSparseArray) Swap(i, j int) {
	boundsPanic("Swap", i, b.length)
	boundsPanic("Swap", j, b.length)
	_, iok := b.set[i]
	_, jok := b.set[j]
	if iok {
		delete(b.set, i)
	}
	if jok {
		delete(b.set, j)
	}
	if jok {
		b.set[i] = struct{}{}
	}
	if iok {
		b.set[j] = struct{}{}
	}
}

func (b *boolSparseArray) Compare(i, j int) int {
	vi, vj := b.GetValue(i).(bool), b.GetValue(j).(bool)
	switch {
	case vi == vj:
		return 0
	case !vi && vj:
		return -1
	default:
		return 1
	}
}

func (b *boolSparseArray) Sort(start, end int, direction Direction) error {
	if direction == Identity {
		return newError(KindUnsupportedOp, "Sort", -1, nil)
	}
	trueCount := 0
	for i := start; i < end; i++ {
		if _, ok := b.set[i]; ok {
			trueCount++
		}
	}
	for i := start; i < end; i++ {
		delete(b.set, i)
	}
	if direction > 0 {
		for i := end - trueCount; i < end; i++ {
			b.set[i] = struct{}{}
		}
	} else {
		for i := start; i < start+trueCount; i++ {
			b.set[i] = struct{}{}
		}
	}
	return nil
}

func (b *boolSparseArray) Filter(predicate func(i int) bool) Array {
	out := newBoolSparseArray(0, 0.2)
	n := 0
	for i := 0; i < b.length; i++ {
		if predicate(i) {
			if _, ok := b.set[i]; ok {
				out.set[n] = struct{}{}
			}
			n++
		}
	}
	out.length = n
	return out
}

func (b *boolSparseArray) Copy() Array {
	out := newBoolSparseArray(b.length, 0.2)
	for k := range b.set {
		out.set[k] = struct{}{}
	}
	return out
}

func (b *boolSparseArray) CopyRange(start, end int) Array {
	out := newBoolSparseArray(end-start, 0.2)
	for i := start; i < end; i++ {
		if _, ok := b.set[i]; ok {
			out.set[i-start] = struct{}{}
		}
	}
	return out
}

func (b *boolSparseArray) CopyIndexes(indexes []int) Array {
	out := newBoolSparseArray(len(indexes), 0.2)
	for k, i := range indexes {
		if _, ok := b.set[i]; ok {
			out.set[k] = struct{}{}
		}
	}
	return out
}

func (b *boolSparseArray) Expand(newLength int) {
	if newLength > b.length {
		b.length = newLength
	}
}

func (b *boolSparseArray) Fill(v any, start, end int) error {
	tv, ok := v.(bool)
	if !ok {
		return newError(KindTypeMismatch, "Fill", start, nil)
	}
	for i := start; i < end; i++ {
		if tv {
			b.set[i] = struct{}{}
		} else {
			delete(b.set, i)
		}
	}
	return nil
}

func (b *boolSparseArray) BinarySearch(start, end int, v any) int {
	tv := v.(bool)
	for i := start; i < end; i++ {
		if b.GetValue(i).(bool) == tv {
			return i
		}
	}
	return -(end) - 1
}

func (b *boolSparseArray) Distinct(limit int) Array {
	out := newBoolDenseArray(0)
	var seenFalse, seenTrue bool
	n := 0
	for i := 0; i < b.length && (limit <= 0 || n < limit); i++ {
		v := b.GetValue(i).(bool)
		if v && !seenTrue {
			seenTrue = true
			out.Expand(n + 1)
			out.data.Set(uint32(n))
			n++
		} else if !v && !seenFalse {
			seenFalse = true
			out.Expand(n + 1)
			n++
		}
	}
	return out
}

func (b *boolSparseArray) CumSum() (Array, error) {
	return nil, newError(KindUnsupportedOp, "CumSum", -1, nil)
}

func (b *boolSparseArray) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.LittleEndian, int64(b.length)); err != nil {
		return n, err
	}
	n += 8
	if err := binary.Write(w, binary.LittleEndian, int64(len(b.set))); err != nil {
		return n, err
	}
	n += 8
	for idx := range b.set {
		if err := binary.Write(w, binary.LittleEndian, int64(idx)); err != nil {
			return n, err
		}
		n += 8
	}
	return n, nil
}

func readBoolSparseFrom(r io.Reader) (*boolSparseArray, error) {
	var length, count int64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	out := newBoolSparseArray(int(length), 0.2)
	for k := int64(0); k < count; k++ {
		var idx int64
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return nil, newError(KindSerialization, "ReadFrom", -1, err)
		}
		out.set[int(idx)] = struct{}{}
	}
	return out, nil
}

// BoolArray is the public Boolean wrapper adding the GetBool/SetBool
// fast path on top of whichever style backs it.
type BoolArray struct{ Array }

func (a BoolArray) GetBool(i int) bool         { return a.GetValue(i).(bool) }
func (a BoolArray) SetBool(i int, v bool) bool { return a.SetValue(i, v).(bool) }

func NewBooleanArray(length int, style Style) (BoolArray, error) {
	switch style {
	case Dense:
		return BoolArray{newBoolDenseArray(length)}, nil
	case Sparse:
		return BoolArray{newBoolSparseArray(length, 0.2)}, nil
	default:
		return BoolArray{}, newError(KindUnsupportedOp, "NewBooleanArray", -1, nil)
	}
}
