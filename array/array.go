// Package array implements the typed column storage family: dense and
// sparse primitive arrays that share one type-erased contract while
// keeping per-type fast paths on the hot path, per the Array design.
//
// Every variant is one of eleven element kinds crossed with a storage
// style (Dense, Sparse, Mapped, CodedDense, CodedSparse); see Kind and
// Style below. The uniform Array interface is deliberately narrow —
// length, default value, typed reads/writes by ordinal, and the
// structural operations (copy, slice, gather, swap, sort, filter,
// extend) — with typed fast-path interfaces (BoolReader, IntReader, ...)
// layered on top for callers that know the concrete kind.
package array

import "io"

// Kind identifies the element type stored by an Array.
type Kind uint8

const (
	Boolean Kind = iota
	Int
	Long
	Double
	LocalDate
	LocalTime
	LocalDateTime
	ZonedDateTime
	String
	Enum
	Object
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "Boolean"
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Double:
		return "Double"
	case LocalDate:
		return "LocalDate"
	case LocalTime:
		return "LocalTime"
	case LocalDateTime:
		return "LocalDateTime"
	case ZonedDateTime:
		return "ZonedDateTime"
	case String:
		return "String"
	case Enum:
		return "Enum"
	case Object:
		return "Object"
	default:
		return "Unknown"
	}
}

// Style identifies the backing storage strategy of an Array.
type Style uint8

const (
	Dense Style = iota
	Sparse
	Mapped
	CodedDense
	CodedSparse
)

func (s Style) String() string {
	switch s {
	case Dense:
		return "Dense"
	case Sparse:
		return "Sparse"
	case Mapped:
		return "Mapped"
	case CodedDense:
		return "CodedDense"
	case CodedSparse:
		return "CodedSparse"
	default:
		return "Unknown"
	}
}

// Direction controls Sort: +1 ascending, -1 descending, 0 restores
// insertion order where the variant supports it.
type Direction int

const (
	Descending Direction = -1
	Identity   Direction = 0
	Ascending  Direction = 1
)

// Array is the type-erased contract every storage variant implements.
// Typed accessors (GetBool, GetInt, ...) live on narrower Reader/Writer
// interfaces a concrete Array also satisfies; callers who know the Kind
// should type-assert to those instead of paying the GetValue/any cost.
type Array interface {
	Len() int
	Kind() Kind
	Style() Style
	DefaultValue() any

	// IsNull reports whether slot i carries no value: always false for
	// dense primitive arrays with no null tracking, true for a sparse
	// slot that is unset when the default is the style's null sentinel.
	IsNull(i int) bool

	GetValue(i int) any
	// SetValue returns the previous value. Setting the default value in a
	// Sparse or CodedSparse array removes the stored entry; Dense, Mapped
	// and CodedDense arrays store it like any other value.
	SetValue(i int, v any) any
	IsEqualTo(i int, v any) bool

	Swap(i, j int)
	// Compare returns -1, 0, or 1 using the element kind's natural order.
	Compare(i, j int) int
	// Sort reorders [start,end) in place. direction 0 restores the
	// permutation before any sort call, for variants that track it
	// (see ErrUnsupportedOp otherwise).
	Sort(start, end int, direction Direction) error

	Filter(predicate func(i int) bool) Array
	Copy() Array
	CopyRange(start, end int) Array
	CopyIndexes(indexes []int) Array
	Expand(newLength int)
	Fill(v any, start, end int) error

	// BinarySearch requires [start,end) sorted ascending; behavior is
	// undefined otherwise. Returns the ordinal, or -(insertion+1).
	BinarySearch(start, end int, v any) int
	// Distinct returns order-preserving first occurrences, up to limit
	// (limit <= 0 means unbounded).
	Distinct(limit int) Array
	// CumSum returns a running-total array; numeric kinds only.
	CumSum() (Array, error)

	WriteTo(w io.Writer) (int64, error)
}

// BoolReader/BoolWriter etc. are the typed fast paths spec 4.1 calls
// for: "getBoolean/Int/Long/Double/Value(i)" without boxing through
// GetValue's `any`.
type (
	BoolReader   interface{ GetBool(i int) bool }
	BoolWriter   interface{ SetBool(i int, v bool) bool }
	IntReader    interface{ GetInt(i int) int32 }
	IntWriter    interface{ SetInt(i int, v int32) int32 }
	LongReader   interface{ GetLong(i int) int64 }
	LongWriter   interface{ SetLong(i int, v int64) int64 }
	DoubleReader interface{ GetDouble(i int) float64 }
	DoubleWriter interface{ SetDouble(i int, v float64) float64 }
	StringReader interface{ GetString(i int) string }
	StringWriter interface{ SetString(i int, v string) string }
)

func checkRange(op string, start, end, n int) error {
	if start < 0 || end > n || start > end {
		return newError(KindOutOfRange, op, start, nil)
	}
	return nil
}
