package array

import (
	"testing"
	"time"
)

func TestIntArrayDenseGetSet(t *testing.T) {
	a, err := NewIntArray(5, Dense, 0)
	if err != nil {
		t.Fatalf("NewIntArray: %v", err)
	}
	a.SetInt(2, 42)
	if got := a.GetInt(2); got != 42 {
		t.Fatalf("GetInt(2) = %d, want 42", got)
	}
	if got := a.GetInt(0); got != 0 {
		t.Fatalf("GetInt(0) = %d, want 0 (default)", got)
	}
	if a.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", a.Len())
	}
}

func TestIntArrayBoundsPanic(t *testing.T) {
	a, _ := NewIntArray(3, Dense, 0)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range GetInt")
		}
	}()
	a.GetInt(3)
}

func TestIntArraySparseDefaultRemovesEntry(t *testing.T) {
	a, err := NewIntArray(10, Sparse, 0.2)
	if err != nil {
		t.Fatalf("NewIntArray: %v", err)
	}
	a.SetInt(4, 7)
	if a.IsNull(4) {
		t.Fatal("slot with a non-default value should not be null")
	}
	a.SetInt(4, 0)
	if !a.IsNull(4) {
		t.Fatal("writing the default value should remove the sparse entry")
	}
}

func TestDenseArraySortAndIdentityRestore(t *testing.T) {
	a, _ := NewIntArray(5, Dense, 0)
	vals := []int32{5, 3, 1, 4, 2}
	for i, v := range vals {
		a.SetInt(i, v)
	}
	if err := a.Sort(0, 5, Ascending); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	want := []int32{1, 2, 3, 4, 5}
	for i, w := range want {
		if got := a.GetInt(i); got != w {
			t.Fatalf("after ascending sort, GetInt(%d) = %d, want %d", i, got, w)
		}
	}
	if err := a.Sort(0, 5, Identity); err != nil {
		t.Fatalf("identity restore: %v", err)
	}
	for i, w := range vals {
		if got := a.GetInt(i); got != w {
			t.Fatalf("after identity restore, GetInt(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestSparseArraySortIdentityUnsupported(t *testing.T) {
	a, _ := NewIntArray(5, Sparse, 0.2)
	if err := a.Sort(0, 5, Identity); err == nil {
		t.Fatal("expected ErrUnsupportedOp for sparse identity sort")
	}
}

func TestDenseArrayCumSum(t *testing.T) {
	a, _ := NewDoubleArray(4, Dense, 0)
	for i, v := range []float64{1, 2, 3, 4} {
		a.SetDouble(i, v)
	}
	cum, err := a.CumSum()
	if err != nil {
		t.Fatalf("CumSum: %v", err)
	}
	want := []float64{1, 3, 6, 10}
	for i, w := range want {
		if got := cum.GetValue(i).(float64); got != w {
			t.Fatalf("CumSum[%d] = %f, want %f", i, got, w)
		}
	}
}

func TestBooleanArrayDenseAndSparse(t *testing.T) {
	for _, style := range []Style{Dense, Sparse} {
		a, err := NewBooleanArray(6, style)
		if err != nil {
			t.Fatalf("NewBooleanArray(%v): %v", style, err)
		}
		a.SetBool(1, true)
		a.SetBool(3, true)
		if !a.GetBool(1) || !a.GetBool(3) {
			t.Fatalf("style %v: expected slots 1,3 true", style)
		}
		if a.GetBool(0) {
			t.Fatalf("style %v: expected slot 0 false (default)", style)
		}
		if err := a.Sort(0, 6, Ascending); err != nil {
			t.Fatalf("Sort: %v", err)
		}
		if a.GetBool(0) || a.GetBool(1) {
			t.Fatalf("style %v: ascending sort should push false before true", style)
		}
	}
}

func TestCodedStringArraySharedCoding(t *testing.T) {
	coding := NewCoding[string]()
	a, err := NewStringArray(3, CodedDense, coding, 0)
	if err != nil {
		t.Fatalf("NewStringArray: %v", err)
	}
	b, err := NewStringArray(3, CodedDense, coding, 0)
	if err != nil {
		t.Fatalf("NewStringArray: %v", err)
	}
	a.SetString(0, "red")
	b.SetString(0, "red")
	if coding.Size() != 2 { // "" default + "red"
		t.Fatalf("coding.Size() = %d, want 2", coding.Size())
	}
	if a.GetString(0) != b.GetString(0) {
		t.Fatal("arrays sharing a coding should decode to the same value")
	}
}

func TestMappedStringArrayPrivateDictionary(t *testing.T) {
	a := NewMappedStringArray(2)
	a.SetString(0, "a")
	a.SetString(1, "b")
	if a.GetString(0) != "a" || a.GetString(1) != "b" {
		t.Fatal("mapped array round-trip failed")
	}
}

func TestZonedDateTimeArrayCompareByInstant(t *testing.T) {
	a, err := NewZonedDateTimeArray(2, Dense, 0, "")
	if err != nil {
		t.Fatalf("NewZonedDateTimeArray: %v", err)
	}
	a.SetZoned(0, ZonedValue{Instant: time.UnixMilli(1000), Zone: "UTC"})
	a.SetZoned(1, ZonedValue{Instant: time.UnixMilli(2000), Zone: "America/New_York"})
	if a.Compare(0, 1) >= 0 {
		t.Fatal("expected slot 0 to sort before slot 1 by instant")
	}
}

// S3: a sparse zoned array with a non-UTC default reads back its unset
// slots in that default zone, and sort still orders by instant with
// Sparse-backed millis/zones.
func TestZonedDateTimeArraySparseWithNonUTCDefault(t *testing.T) {
	a, err := NewZonedDateTimeArray(4, Sparse, 0.2, "America/Los_Angeles")
	if err != nil {
		t.Fatalf("NewZonedDateTimeArray: %v", err)
	}
	if a.Style() != Sparse {
		t.Fatalf("Style() = %v, want Sparse", a.Style())
	}
	if zv := a.GetZoned(2); zv.Zone != "America/Los_Angeles" {
		t.Fatalf("unset slot zone = %q, want America/Los_Angeles", zv.Zone)
	}
	a.SetZoned(0, ZonedValue{Instant: time.UnixMilli(3000), Zone: "UTC"})
	a.SetZoned(1, ZonedValue{Instant: time.UnixMilli(1000), Zone: "UTC"})
	if err := a.Sort(0, 2, Ascending); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if a.GetZoned(0).Instant.UnixMilli() != 1000 {
		t.Fatal("expected ascending sort to move the earlier instant to slot 0")
	}
}

// a.coded.Sort compared through a precomputed value slice keyed by
// scratch position instead of a live dereference of idx[p]/idx[q] once
// desynced from idx after the first swap, producing the wrong order.
func TestCodedArraySortOrdersByValueNotInsertionCode(t *testing.T) {
	coding := NewCoding[string]()
	a, err := NewStringArray(3, CodedDense, coding, 0)
	if err != nil {
		t.Fatalf("NewStringArray: %v", err)
	}
	// Insertion/code order is "3","1","2"; ascending value order is
	// "1","2","3".
	a.SetString(0, "3")
	a.SetString(1, "1")
	a.SetString(2, "2")
	if err := a.Sort(0, 3, Ascending); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	got := []string{a.GetString(0), a.GetString(1), a.GetString(2)}
	want := []string{"1", "2", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort order = %v, want %v", got, want)
		}
	}
}

func TestObjectArrayRequiresLessForOrdering(t *testing.T) {
	a := NewObjectColumn(3, nil)
	a.SetValue(0, "x")
	if err := a.Sort(0, 3, Ascending); err == nil {
		t.Fatal("expected ErrUnsupportedOp without a less function")
	}
}
