package array

import (
	"encoding/binary"
	"io"
	"sync"
	"time"
)

// zoneRegistry is the process-wide zone-id bimap: IANA zone names are
// interned to small int32 codes the first time they're seen, and the
// mapping is never removed once assigned (spec 9's ZonedDateTime needs
// a stable, compact companion array to the epoch-ms payload; a global,
// append-only registry is the only way two ZonedDateTime columns agree
// on what a code means without re-synchronizing on every write).
var zoneRegistry = struct {
	mu    sync.RWMutex
	code  map[string]int32
	names []string
}{code: make(map[string]int32)}

// ZoneCode interns name into the process-wide zone registry.
func ZoneCode(name string) int32 {
	zoneRegistry.mu.Lock()
	defer zoneRegistry.mu.Unlock()
	if c, ok := zoneRegistry.code[name]; ok {
		return c
	}
	c := int32(len(zoneRegistry.names))
	zoneRegistry.names = append(zoneRegistry.names, name)
	zoneRegistry.code[name] = c
	return c
}

// ZoneName resolves a previously interned code back to its name.
func ZoneName(code int32) string {
	zoneRegistry.mu.RLock()
	defer zoneRegistry.mu.RUnlock()
	return zoneRegistry.names[code]
}

// ZonedValue is the decoded element a ZonedDateTime array hands back
// from GetValue: an instant plus the zone it was recorded in, since
// the wall-clock reading depends on both.
type ZonedValue struct {
	Instant time.Time
	Zone    string
}

// zonedArray stores ZonedDateTime columns as two parallel int64 arrays
// -- epoch milliseconds and zone code -- rather than one slice of
// structs, so the instant half stays a plain Numeric array (Compare,
// Swap and Fill delegate to it) and only the zone half needs the registry
// indirection. millis/zones are held as the Array interface rather than
// a concrete *denseArray so a zoned column can be built Dense or Sparse,
// per the same style switch Create uses for every other Numeric kind.
// Grounded on the teacher's compressed.go parallel-slice CSR layout
// (indices/values held separately rather than as a struct slice).
type zonedArray struct {
	style       Style
	defaultZone string
	millis      Array
	zones       Array
}

func newZonedArray(length int, style Style, fillFactor float64, defaultZone string) (*zonedArray, error) {
	if defaultZone == "" {
		defaultZone = "UTC"
	}
	ops := numericOps[int64]()
	defZoneCode := int64(ZoneCode(defaultZone))
	switch style {
	case Dense:
		return &zonedArray{
			style:       Dense,
			defaultZone: defaultZone,
			millis:      newDenseArray[int64](ZonedDateTime, length, 0, ops),
			zones:       newDenseArray[int64](ZonedDateTime, length, defZoneCode, ops),
		}, nil
	case Sparse:
		return &zonedArray{
			style:       Sparse,
			defaultZone: defaultZone,
			millis:      newSparseArray[int64](ZonedDateTime, length, 0, fillFactor, ops),
			zones:       newSparseArray[int64](ZonedDateTime, length, defZoneCode, fillFactor, ops),
		}, nil
	default:
		return nil, newError(KindUnsupportedOp, "newZonedArray", -1, nil)
	}
}

func (z *zonedArray) Len() int          { return z.millis.Len() }
func (z *zonedArray) Kind() Kind        { return ZonedDateTime }
func (z *zonedArray) Style() Style      { return z.style }
func (z *zonedArray) DefaultValue() any { return ZonedValue{Zone: z.defaultZone} }

func (z *zonedArray) IsNull(i int) bool { return z.millis.IsNull(i) }

func (z *zonedArray) GetValue(i int) any {
	ms := z.millis.GetValue(i).(int64)
	zc := z.zones.GetValue(i).(int64)
	return ZonedValue{Instant: time.UnixMilli(ms).UTC(), Zone: ZoneName(int32(zc))}
}

func (z *zonedArray) SetValue(i int, v any) any {
	old := z.GetValue(i)
	zv := v.(ZonedValue)
	z.millis.SetValue(i, zv.Instant.UnixMilli())
	z.zones.SetValue(i, int64(ZoneCode(zv.Zone)))
	return old
}

func (z *zonedArray) IsEqualTo(i int, v any) bool {
	zv, ok := v.(ZonedValue)
	if !ok {
		return false
	}
	cur := z.GetValue(i).(ZonedValue)
	return cur.Instant.Equal(zv.Instant) && cur.Zone == zv.Zone
}

func (z *zonedArray) Swap(i, j int) {
	z.millis.Swap(i, j)
	z.zones.Swap(i, j)
}

// Compare orders by instant only: two readings of the same instant in
// different zones are simultaneous regardless of the zone they were
// recorded in.
func (z *zonedArray) Compare(i, j int) int {
	return z.millis.Compare(i, j)
}

// Sort reorders (millis, zones) together via pairwise Swap driven by a
// live Compare on the current positions -- the same live-dereference
// discipline coded.go's Sort follows, rather than a value slice keyed
// by scratch position that desyncs once the first swap happens. Works
// unchanged whether millis/zones are backed by Dense or Sparse storage.
func (z *zonedArray) Sort(start, end int, direction Direction) error {
	if err := checkRange("Sort", start, end, z.Len()); err != nil {
		return err
	}
	if direction == Identity {
		return newError(KindUnsupportedOp, "Sort", -1, nil)
	}
	less := func(i, j int) bool {
		if direction > 0 {
			return z.millis.Compare(i, j) < 0
		}
		return z.millis.Compare(i, j) > 0
	}
	for i := start + 1; i < end; i++ {
		for j := i; j > start && less(j, j-1); j-- {
			z.Swap(j, j-1)
		}
	}
	return nil
}

func (z *zonedArray) Filter(predicate func(i int) bool) Array {
	return &zonedArray{
		style:       z.style,
		defaultZone: z.defaultZone,
		millis:      z.millis.Filter(predicate),
		zones:       z.zones.Filter(predicate),
	}
}

func (z *zonedArray) Copy() Array {
	return &zonedArray{
		style:       z.style,
		defaultZone: z.defaultZone,
		millis:      z.millis.Copy(),
		zones:       z.zones.Copy(),
	}
}

func (z *zonedArray) CopyRange(start, end int) Array {
	return &zonedArray{
		style:       z.style,
		defaultZone: z.defaultZone,
		millis:      z.millis.CopyRange(start, end),
		zones:       z.zones.CopyRange(start, end),
	}
}

func (z *zonedArray) CopyIndexes(indexes []int) Array {
	return &zonedArray{
		style:       z.style,
		defaultZone: z.defaultZone,
		millis:      z.millis.CopyIndexes(indexes),
		zones:       z.zones.CopyIndexes(indexes),
	}
}

func (z *zonedArray) Expand(newLength int) {
	z.millis.Expand(newLength)
	z.zones.Expand(newLength)
}

func (z *zonedArray) Fill(v any, start, end int) error {
	zv, ok := v.(ZonedValue)
	if !ok {
		return newError(KindTypeMismatch, "Fill", start, nil)
	}
	if err := z.millis.Fill(zv.Instant.UnixMilli(), start, end); err != nil {
		return err
	}
	return z.zones.Fill(int64(ZoneCode(zv.Zone)), start, end)
}

func (z *zonedArray) BinarySearch(start, end int, v any) int {
	zv, ok := v.(ZonedValue)
	if !ok {
		panic(newError(KindTypeMismatch, "BinarySearch", start, nil))
	}
	return z.millis.BinarySearch(start, end, zv.Instant.UnixMilli())
}

func (z *zonedArray) Distinct(limit int) Array {
	seen := make(map[[2]int64]struct{})
	var kept []ZonedValue
	n := z.Len()
	for i := 0; i < n; i++ {
		ms := z.millis.GetValue(i).(int64)
		zc := z.zones.GetValue(i).(int64)
		key := [2]int64{ms, zc}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, ZonedValue{Instant: time.UnixMilli(ms).UTC(), Zone: ZoneName(int32(zc))})
		if limit > 0 && len(kept) >= limit {
			break
		}
	}
	out, _ := newZonedArray(len(kept), Dense, 0, z.defaultZone)
	for i, v := range kept {
		out.SetValue(i, v)
	}
	return out
}

func (z *zonedArray) CumSum() (Array, error) {
	return nil, newError(KindUnsupportedOp, "CumSum", -1, nil)
}

// WriteTo encodes a leading style byte (so ReadFrom knows whether to
// expect the Dense or Sparse wire layout for what follows) then the
// millis dense/sparse array followed by the zones array, mirroring
// spec 6's "parallel epoch-ms and zone-code arrays" layout for
// ZonedDateTime.
func (z *zonedArray) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.LittleEndian, byte(z.style)); err != nil {
		return n, err
	}
	n++
	n1, err := z.millis.WriteTo(w)
	if err != nil {
		return n + n1, err
	}
	n2, err := z.zones.WriteTo(w)
	return n + n1 + n2, err
}

func readZonedFrom(r io.Reader, defaultZone string) (*zonedArray, error) {
	if defaultZone == "" {
		defaultZone = "UTC"
	}
	ops := numericOps[int64]()
	defZoneCode := int64(ZoneCode(defaultZone))
	var styleByte byte
	if err := binary.Read(r, binary.LittleEndian, &styleByte); err != nil {
		return nil, newError(KindSerialization, "ReadFrom", -1, err)
	}
	style := Style(styleByte)
	switch style {
	case Dense:
		millis, err := readDenseFrom[int64](r, ZonedDateTime, 0, ops)
		if err != nil {
			return nil, err
		}
		zones, err := readDenseFrom[int64](r, ZonedDateTime, defZoneCode, ops)
		if err != nil {
			return nil, err
		}
		return &zonedArray{style: style, defaultZone: defaultZone, millis: millis, zones: zones}, nil
	case Sparse:
		millis, err := readSparseFrom[int64](r, ZonedDateTime, 0, 0.2, ops)
		if err != nil {
			return nil, err
		}
		zones, err := readSparseFrom[int64](r, ZonedDateTime, defZoneCode, 0.2, ops)
		if err != nil {
			return nil, err
		}
		return &zonedArray{style: style, defaultZone: defaultZone, millis: millis, zones: zones}, nil
	default:
		return nil, newError(KindUnsupportedOp, "ReadFrom", -1, nil)
	}
}

// ZonedDateTimeArray is the public wrapper, adding zone-aware typed
// accessors on top of the promoted Array methods.
type ZonedDateTimeArray struct{ Array }

func (a ZonedDateTimeArray) GetZoned(i int) ZonedValue { return a.GetValue(i).(ZonedValue) }
func (a ZonedDateTimeArray) SetZoned(i int, v ZonedValue) ZonedValue {
	return a.SetValue(i, v).(ZonedValue)
}

// NewZonedDateTimeArray creates a ZonedDateTime column. style selects
// Dense or Sparse (spec S3's sparse zoned scenario); fillFactor only
// matters for Sparse; defaultZone names the zone a null/unset slot
// reads back as, with an empty string defaulting to "UTC".
func NewZonedDateTimeArray(length int, style Style, fillFactor float64, defaultZone string) (ZonedDateTimeArray, error) {
	z, err := newZonedArray(length, style, fillFactor, defaultZone)
	if err != nil {
		return ZonedDateTimeArray{}, err
	}
	return ZonedDateTimeArray{z}, nil
}

// zonedDefaultZoneOf reports the default zone backing src, for
// CreateLike to propagate when cloning a ZonedDateTime column.
func zonedDefaultZoneOf(src Array) (string, bool) {
	if za, ok := src.(*zonedArray); ok {
		return za.defaultZone, true
	}
	return "", false
}
