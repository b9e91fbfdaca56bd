// Package axis implements per-axis cursors (Row, Column) over a
// content.FrameContent: single-dimension views that read and write
// along one axis while holding the other axis's ordinal fixed.
//
// Grounded on the teacher's vector.go Vector: a 1-D cursor over
// 2-D-shaped storage (Dims/At/AtVec) with DoNonZero-style iteration and
// NNZ/createWorkspace helpers, generalized from a single float64-typed
// sparse vector to a generic cursor over any column kind bound to
// either axis of a FrameContent.
package axis

import (
	"github.com/dxframe/frame/content"
)

// DataFrameValue pairs a coordinate on the moving axis with the value
// found there, the unit Select/Filter operate over.
type DataFrameValue[R comparable, C comparable] struct {
	RowKey R
	ColKey C
	Value  any
}

// Cursor is the mutable (frameRef, rowOrdinal, colOrdinal) triple spec
// §4.4 describes: unlike Row/Column it is free to move along both
// axes, which is what the parallel engine's per-leaf cursor reuse
// needs (one Cursor walks an entire ordinal sub-range via repeated
// MoveTo calls instead of allocating a new Row/Column per ordinal).
type Cursor[R comparable, C comparable] struct {
	fc         *content.FrameContent[R, C]
	rowOrdinal int
	colOrdinal int
}

func NewCursor[R comparable, C comparable](fc *content.FrameContent[R, C]) *Cursor[R, C] {
	return &Cursor[R, C]{fc: fc}
}

func (c *Cursor[R, C]) MoveTo(rowOrdinal, colOrdinal int) {
	c.rowOrdinal, c.colOrdinal = rowOrdinal, colOrdinal
}

func (c *Cursor[R, C]) RowOrdinal() int { return c.rowOrdinal }
func (c *Cursor[R, C]) ColOrdinal() int { return c.colOrdinal }
func (c *Cursor[R, C]) RowKey() R       { return c.fc.RowIndex().KeyAt(c.rowOrdinal) }
func (c *Cursor[R, C]) ColKey() C       { return c.fc.ColIndex().KeyAt(c.colOrdinal) }
func (c *Cursor[R, C]) Value() any      { return c.fc.Get(c.rowOrdinal, c.colOrdinal) }
func (c *Cursor[R, C]) SetValue(v any) any {
	return c.fc.Set(c.rowOrdinal, c.colOrdinal, v)
}

// lane abstracts "the moving axis": the length, cell access and key
// lookups that Row and Column both embed. The vector operations
// themselves (ForEach, ToArray, Select, Stats, Distinct, BinarySearch)
// are defined on Row and Column separately, over these accessors.
type lane[R comparable, C comparable] struct {
	fc       *content.FrameContent[R, C]
	fixedRow bool // true: row ordinal is fixed, ordinal i walks columns (this is a Row)
	fixed    int  // the fixed axis's ordinal
}

func (l lane[R, C]) Len() int {
	if l.fixedRow {
		return l.fc.Cols()
	}
	return l.fc.Rows()
}

// At returns AtVec(i)'s value, as in the teacher's Vector.AtVec:
// panics via the underlying array.Array if i is out of range.
func (l lane[R, C]) At(i int) any {
	if l.fixedRow {
		return l.fc.Get(l.fixed, i)
	}
	return l.fc.Get(i, l.fixed)
}

func (l lane[R, C]) SetAt(i int, v any) any {
	if l.fixedRow {
		return l.fc.Set(l.fixed, i, v)
	}
	return l.fc.Set(i, l.fixed, v)
}

func (l lane[R, C]) rowKeyAt(i int) R {
	if l.fixedRow {
		return l.fc.RowIndex().KeyAt(l.fixed)
	}
	return l.fc.RowIndex().KeyAt(i)
}

func (l lane[R, C]) colKeyAt(i int) C {
	if l.fixedRow {
		return l.fc.ColIndex().KeyAt(i)
	}
	return l.fc.ColIndex().KeyAt(l.fixed)
}

func (l lane[R, C]) entryAt(i int) DataFrameValue[R, C] {
	return DataFrameValue[R, C]{RowKey: l.rowKeyAt(i), ColKey: l.colKeyAt(i), Value: l.At(i)}
}

// Stats is the aggregate reduction a numeric lane reports: count of
// values seen, their sum and mean (0 when non-numeric or empty), and
// min/max by array.Array.Compare-equivalent natural ordering of the
// boxed value.
type Stats struct {
	Count int
	Sum   float64
	Mean  float64
	Min   any
	Max   any
}

func computeStats(values []any) Stats {
	var s Stats
	var haveMin, haveMax bool
	for _, v := range values {
		s.Count++
		if f, ok := toFloat(v); ok {
			s.Sum += f
		}
		if !haveMin || lessAny(v, s.Min) {
			s.Min, haveMin = v, true
		}
		if !haveMax || lessAny(s.Max, v) {
			s.Max, haveMax = v, true
		}
	}
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func lessAny(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af < bf
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return false
}
