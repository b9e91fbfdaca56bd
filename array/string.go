package array

// StringArray and EnumArray are the coded-string-family public wrappers
// (spec 4.1's String and Enum kinds), each backed by a shared, external
// *Coding[string] so two columns drawing from the same dictionary can
// copy codes between them without decode/re-encode.
type (
	StringArray struct{ Array }
	EnumArray   struct{ Array }
)

func (a StringArray) GetString(i int) string           { return a.GetValue(i).(string) }
func (a StringArray) SetString(i int, v string) string { return a.SetValue(i, v).(string) }

func (a EnumArray) GetEnum(i int) string           { return a.GetValue(i).(string) }
func (a EnumArray) SetEnum(i int, v string) string { return a.SetValue(i, v).(string) }

// NewStringArray creates a CodedDense or CodedSparse String column
// against an externally supplied coding. Pass a fresh NewCoding[string]()
// to start an unshared dictionary, or share one across columns to get
// direct code-copy semantics.
func NewStringArray(length int, style Style, coding *Coding[string], fillFactor float64) (StringArray, error) {
	switch style {
	case CodedDense, CodedSparse:
		return StringArray{newCodedArray[string](String, style, coding, length, "", fillFactor, stringOps())}, nil
	default:
		return StringArray{}, newError(KindUnsupportedOp, "NewStringArray", -1, nil)
	}
}

// NewMappedStringArray creates a Mapped-style String column with a
// private, incrementally-discovered dictionary (SPEC_FULL.md's
// supplement to spec 1's "Mapped (range-compressed)" style): the first
// write of each distinct string assigns it the next code, and no other
// array shares the dictionary.
func NewMappedStringArray(length int) StringArray {
	return StringArray{newCodedArray[string](String, Mapped, NewCoding[string](), length, "", 0, stringOps())}
}

// NewEnumArray mirrors NewStringArray for a closed Enum domain; the
// coding is still a *Coding[string] since enum members are spelled as
// strings at this layer, with callers expected to validate membership
// against their own enum set before writing.
func NewEnumArray(length int, style Style, coding *Coding[string], fillFactor float64) (EnumArray, error) {
	switch style {
	case CodedDense, CodedSparse:
		return EnumArray{newCodedArray[string](Enum, style, coding, length, "", fillFactor, stringOps())}, nil
	default:
		return EnumArray{}, newError(KindUnsupportedOp, "NewEnumArray", -1, nil)
	}
}
