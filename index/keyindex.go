package index

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// KeyIndex is a bidirectional, insertion-ordered keyed index: an
// ordinal-addressed key array plus a key -> coordinate map. Coordinates
// are assigned once, at first insertion into a root index, and never
// change for that key's lifetime (spec §3's "coordinates survive filter
// views and column reordering; ordinals do not"). A filter view shares
// its parent's coordinate space: Coordinate(k) on a view returns the
// same value Coordinate(k) returns on the root.
//
// Grounded on dictionaryofkeys.go's map[key]float64 (external
// key-addressed lookup held alongside ordered storage) generalized from
// a fixed coordinate{i,j} key to any comparable K, crossed with
// coordinate.go's parallel insertion-ordered slices for the ordinal
// half.
type KeyIndex[K comparable] struct {
	keys       []K           // ordinal -> key
	ordToCoord []int32       // ordinal -> coordinate
	coordToOrd map[int32]int // coordinate -> ordinal (this index's own ordinal space)
	coord      map[K]int32   // key -> coordinate
	parent     *KeyIndex[K]  // nil for a root index
	nextCoord  *int32        // shared coordinate counter; root owns it, views borrow the root's
}

// Empty creates a root index with capacity preallocated.
func Empty[K comparable](capacity int) *KeyIndex[K] {
	var zero int32
	return &KeyIndex[K]{
		keys:       make([]K, 0, capacity),
		ordToCoord: make([]int32, 0, capacity),
		coordToOrd: make(map[int32]int, capacity),
		coord:      make(map[K]int32, capacity),
		nextCoord:  &zero,
	}
}

// Of builds a root index from keys, rejecting duplicates.
func Of[K comparable](keys []K) (*KeyIndex[K], error) {
	idx := Empty[K](len(keys))
	if _, err := idx.AddAll(keys, false); err != nil {
		return nil, err
	}
	return idx, nil
}

func newView[K comparable](parent *KeyIndex[K]) *KeyIndex[K] {
	return &KeyIndex[K]{
		keys:       make([]K, 0),
		ordToCoord: make([]int32, 0),
		coordToOrd: make(map[int32]int),
		coord:      make(map[K]int32),
		parent:     parent,
		nextCoord:  parent.nextCoord,
	}
}

func (v *KeyIndex[K]) appendOrdinal(k K, coordinate int32) {
	v.coordToOrd[coordinate] = len(v.keys)
	v.keys = append(v.keys, k)
	v.ordToCoord = append(v.ordToCoord, coordinate)
	v.coord[k] = coordinate
}

// IsView reports whether this index is a non-owning filter view; views
// reject structural mutation (Add/AddAll/Replace).
func (i *KeyIndex[K]) IsView() bool { return i.parent != nil }

func (i *KeyIndex[K]) Size() int { return len(i.keys) }

// Add appends k to a root index, returning false if k already exists.
func (i *KeyIndex[K]) Add(k K) (bool, error) {
	if i.IsView() {
		return false, newError(KindViewMutation, "Add", k)
	}
	if _, exists := i.coord[k]; exists {
		return false, nil
	}
	c := *i.nextCoord
	*i.nextCoord++
	i.appendOrdinal(k, c)
	return true, nil
}

// AddAll adds every key in keys. With ignoreDuplicates false, any key
// already present aborts with ErrDuplicateKey and no further keys are
// added; with it true, duplicates are skipped silently. Returns the
// count actually added.
func (i *KeyIndex[K]) AddAll(keys []K, ignoreDuplicates bool) (int, error) {
	if i.IsView() {
		return 0, newError(KindViewMutation, "AddAll", nil)
	}
	added := 0
	for _, k := range keys {
		ok, err := i.Add(k)
		if err != nil {
			return added, err
		}
		if ok {
			added++
			continue
		}
		if !ignoreDuplicates {
			return added, newError(KindDuplicateKey, "AddAll", k)
		}
	}
	return added, nil
}

// Replace rewrites the key at existing's slot to new, preserving its
// coordinate. Root indexes only.
func (i *KeyIndex[K]) Replace(existing, next K) (int32, error) {
	if i.IsView() {
		return -1, newError(KindViewMutation, "Replace", existing)
	}
	c, ok := i.coord[existing]
	if !ok {
		return -1, newError(KindUnknownKey, "Replace", existing)
	}
	if existing != next {
		if _, exists := i.coord[next]; exists {
			return -1, newError(KindDuplicateKey, "Replace", next)
		}
	}
	ordinal := i.coordToOrd[c]
	i.keys[ordinal] = next
	delete(i.coord, existing)
	i.coord[next] = c
	return c, nil
}

func (i *KeyIndex[K]) Contains(k K) bool {
	_, ok := i.coord[k]
	return ok
}

func (i *KeyIndex[K]) ContainsAll(keys []K) bool {
	for _, k := range keys {
		if !i.Contains(k) {
			return false
		}
	}
	return true
}

// Coordinate returns k's coordinate, or -1 if k isn't present in this
// index (root or view).
func (i *KeyIndex[K]) Coordinate(k K) int32 {
	if c, ok := i.coord[k]; ok {
		return c
	}
	return -1
}

// OrdinalOf returns the ordinal of coordinate c within this index's own
// (possibly filtered) ordinal space, or -1 if c isn't present here.
func (i *KeyIndex[K]) OrdinalOf(c int32) int {
	if ord, ok := i.coordToOrd[c]; ok {
		return ord
	}
	return -1
}

func (i *KeyIndex[K]) KeyAt(ordinal int) K {
	boundsCheck(ordinal, len(i.keys))
	return i.keys[ordinal]
}

// CoordinateAt returns the coordinate backing ordinal ord in this
// index's own ordinal space — the complement of OrdinalOf.
func (i *KeyIndex[K]) CoordinateAt(ordinal int) int32 {
	boundsCheck(ordinal, len(i.ordToCoord))
	return i.ordToCoord[ordinal]
}

// OrdinalOfKey is the Coordinate+OrdinalOf composite ergonomic lookup.
func (i *KeyIndex[K]) OrdinalOfKey(k K) int {
	c, ok := i.coord[k]
	if !ok {
		return -1
	}
	return i.coordToOrd[c]
}

func (i *KeyIndex[K]) PreviousKey(k K) (K, bool) {
	var zero K
	ord := i.OrdinalOfKey(k)
	if ord <= 0 {
		return zero, false
	}
	return i.keys[ord-1], true
}

func (i *KeyIndex[K]) NextKey(k K) (K, bool) {
	var zero K
	ord := i.OrdinalOfKey(k)
	if ord < 0 || ord >= len(i.keys)-1 {
		return zero, false
	}
	return i.keys[ord+1], true
}

func (i *KeyIndex[K]) First() (K, bool) {
	var zero K
	if len(i.keys) == 0 {
		return zero, false
	}
	return i.keys[0], true
}

func (i *KeyIndex[K]) Last() (K, bool) {
	var zero K
	if len(i.keys) == 0 {
		return zero, false
	}
	return i.keys[len(i.keys)-1], true
}

// Filter returns a non-owning view over this index containing only the
// given keys, in this index's own ordinal order (a subsequence of it).
// Any key not present here raises ErrUnknownKey.
func (i *KeyIndex[K]) Filter(keys []K) (*KeyIndex[K], error) {
	wanted := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		if !i.Contains(k) {
			return nil, newError(KindUnknownKey, "Filter", k)
		}
		wanted[k] = struct{}{}
	}
	view := newView(i)
	for ord, k := range i.keys {
		if _, ok := wanted[k]; ok {
			view.appendOrdinal(k, i.ordToCoord[ord])
		}
	}
	return view, nil
}

// FilterPredicate returns a non-owning view containing keys for which
// predicate is true, in this index's ordinal order.
func (i *KeyIndex[K]) FilterPredicate(predicate func(k K) bool) *KeyIndex[K] {
	view := newView(i)
	for ord, k := range i.keys {
		if predicate(k) {
			view.appendOrdinal(k, i.ordToCoord[ord])
		}
	}
	return view
}

// Intersect returns a view over this index restricted to keys also
// present in other.
func (i *KeyIndex[K]) Intersect(other *KeyIndex[K]) *KeyIndex[K] {
	view := newView(i)
	for ord, k := range i.keys {
		if other.Contains(k) {
			view.appendOrdinal(k, i.ordToCoord[ord])
		}
	}
	return view
}

// Copy detaches a new root index from this one. Shallow reuses this
// index's existing coordinate numbering (cheaper, and coordinate(k)
// stays comparable with the source); deep renumbers coordinates from
// zero so the result is a fully independent root unrelated to any
// prior coordinate space (e.g. before handing storage to a brand new
// FrameContent that shouldn't alias the source's column arrays by
// coordinate).
func (i *KeyIndex[K]) Copy(deep bool) *KeyIndex[K] {
	out := Empty[K](len(i.keys))
	if deep {
		for _, k := range i.keys {
			_, _ = out.Add(k)
		}
		return out
	}
	for ord, k := range i.keys {
		c := i.ordToCoord[ord]
		out.keys = append(out.keys, k)
		out.ordToCoord = append(out.ordToCoord, c)
		out.coordToOrd[c] = ord
		out.coord[k] = c
		if c >= *out.nextCoord {
			*out.nextCoord = c + 1
		}
	}
	return out
}

func (i *KeyIndex[K]) ForEachEntry(fn func(k K, coordinate int32)) {
	for ord, k := range i.keys {
		fn(k, i.ordToCoord[ord])
	}
}

// Reorder permutes this index's ordinal space in place: newOrder[newOrd]
// names the CURRENT ordinal that should occupy newOrd. Coordinates are
// untouched -- this is the "reorder the ordinal->coordinate permutation;
// column storage is untouched" operation spec §4.5 describes for row
// sort by axis key or by data column.
func (i *KeyIndex[K]) Reorder(newOrder []int) error {
	if len(newOrder) != len(i.keys) {
		return newError(KindUnknownKey, "Reorder", nil)
	}
	newKeys := make([]K, len(newOrder))
	newOrdToCoord := make([]int32, len(newOrder))
	for newOrd, oldOrd := range newOrder {
		newKeys[newOrd] = i.keys[oldOrd]
		newOrdToCoord[newOrd] = i.ordToCoord[oldOrd]
	}
	i.keys = newKeys
	i.ordToCoord = newOrdToCoord
	for newOrd, c := range newOrdToCoord {
		i.coordToOrd[c] = newOrd
	}
	return nil
}

// RestoreInsertionOrder reorders back to ascending coordinate order,
// i.e. the order keys were first added in -- coordinates are assigned
// monotonically at insertion, so sorting by coordinate IS restoring
// insertion order. Used by direction==Identity ("sort(null)") row sorts.
func (i *KeyIndex[K]) RestoreInsertionOrder() {
	order := make([]int, len(i.keys))
	for ord := range order {
		order[ord] = ord
	}
	sort.Slice(order, func(a, b int) bool {
		return i.ordToCoord[order[a]] < i.ordToCoord[order[b]]
	})
	_ = i.Reorder(order)
}

func boundsCheck(ordinal, n int) {
	if ordinal < 0 || ordinal >= n {
		panic(newError(KindUnknownKey, "KeyAt", ordinal))
	}
}

// NewInt, NewLong, NewDouble, NewString, NewLocalDate, and NewObject are
// the per-key-type ergonomic constructors spec §4.2 calls for; Go's
// generics make them thin instantiations of Of rather than distinct
// implementations.
func NewInt(keys []int32) (*KeyIndex[int32], error)         { return Of(keys) }
func NewLong(keys []int64) (*KeyIndex[int64], error)        { return Of(keys) }
func NewDouble(keys []float64) (*KeyIndex[float64], error)  { return Of(keys) }
func NewString(keys []string) (*KeyIndex[string], error)    { return Of(keys) }
func NewLocalDate(keys []time.Time) (*KeyIndex[time.Time], error) { return Of(keys) }
func NewObject[K comparable](keys []K) (*KeyIndex[K], error) { return Of(keys) }

// NewObjectIndexID builds a root index over display keys that aren't
// themselves usable as a comparable map key (or whose equality the
// caller doesn't want to define): it mints one coordinate-stable
// uuid.UUID per display key, in order, and returns both the resulting
// KeyIndex[uuid.UUID] and the parallel []K slice so callers can map a
// coordinate back to its original display value. frame.OfObjectRows is
// the construction path that calls this for spec S2's Object-row-keyed
// frame scenario.
func NewObjectIndexID[K any](displayKeys []K) (*KeyIndex[uuid.UUID], []K, error) {
	ids := make([]uuid.UUID, len(displayKeys))
	for i := range ids {
		ids[i] = uuid.New()
	}
	idx, err := Of(ids)
	if err != nil {
		return nil, nil, err
	}
	return idx, displayKeys, nil
}
