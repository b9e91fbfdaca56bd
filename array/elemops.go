package array

// elemOps supplies the handful of per-type operations the generic dense
// and sparse cores need: zero value, natural-order comparison, and
// value equality. This is the "storage trait" spec 9 asks for in place
// of per-type class duplication — one generic core, instantiated per
// kind via a small ops table rather than copy-pasted per element type
// the way the teacher duplicates COO/CSR/CSC per concept instead of
// per element type (this module only has one element type, float64, to
// duplicate across formats; we have eleven, so the trait is load-bearing
// here in a way it wasn't for the teacher).
type elemOps[T any] struct {
	zero  T
	less  func(a, b T) bool
	equal func(a, b T) bool
}

func numericOps[T int32 | int64 | float64]() elemOps[T] {
	return elemOps[T]{
		zero:  T(0),
		less:  func(a, b T) bool { return a < b },
		equal: func(a, b T) bool { return a == b },
	}
}

func stringOps() elemOps[string] {
	return elemOps[string]{
		zero:  "",
		less:  func(a, b string) bool { return a < b },
		equal: func(a, b string) bool { return a == b },
	}
}

// epochOps backs LocalDate/LocalTime/LocalDateTime: all three are
// stored as an epoch-millisecond int64 payload per spec 9 ("Date-like
// arrays store a primitive long epoch-millisecond payload"); the Kind
// tag alone distinguishes their formatting/semantic meaning.
func epochOps() elemOps[int64] {
	return numericOps[int64]()
}
