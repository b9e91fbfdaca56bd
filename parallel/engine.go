// Package parallel implements the fork/join bulk-operation engine: one
// shared recursive split/merge primitive (forkJoin) used by every
// parallel entry point (ForEachVector, SelectKeys, MinMax, ForEachValue,
// ApplyValues) so the determinism and ordering guarantees in spec §5
// are implemented exactly once rather than per operation.
//
// No pack example implements a fork/join task scheduler directly (the
// closest, arxos's ParallelPipeline.Process, is a flat sync.WaitGroup
// fan-out with no recursive split/merge); the goroutine-tree shape here
// follows stdlib sync/goroutine idiom, the same place the teacher
// itself reaches for stdlib sync.Pool-based reuse rather than an
// ecosystem scheduler.
package parallel

import (
	"log"
	"sync"

	"github.com/dxframe/frame/axis"
	"github.com/dxframe/frame/config"
	"github.com/dxframe/frame/content"
)

// Engine holds the split thresholds and diagnostic logger a bulk
// operation reads from. A frame's parallel flag picks whether a given
// call runs its task tree at all (parallelFlag == false runs the whole
// range inline on the calling goroutine) -- spec §5's "both modes
// yield identical observable results".
type Engine struct {
	RowThreshold int
	ColThreshold int
	Logger       *log.Logger // nil: silent, matching the ambient-stack decision to log sparingly
}

// New builds an Engine from the current process-wide config.
func New() *Engine {
	cfg := config.Global()
	return &Engine{RowThreshold: cfg.RowSplitThreshold, ColThreshold: cfg.ColSplitThreshold}
}

// forkJoin recursively splits [lo,hi) at the midpoint while hi-lo
// exceeds threshold, running the right half on the calling goroutine
// and the left half on a spawned one, then merges. A panic in the left
// goroutine is recovered, logged if a Logger is set, and re-raised on
// the calling goroutine after Wait -- the "first failure encountered"
// propagation spec §5 requires. A panic in the right half is likewise
// held until Wait returns, so the caller never sees a failure while the
// left half is still running; if both sides panic, the left panic wins.
func forkJoin[T any](lo, hi, threshold int, logger *log.Logger, leaf func(lo, hi int) T, merge func(left, right T) T) T {
	if hi-lo <= threshold {
		return leaf(lo, hi)
	}
	mid := lo + (hi-lo)/2

	var left T
	var panicVal any
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				panicVal = r
				if logger != nil {
					logger.Printf("parallel: recovered panic in [%d,%d): %v", lo, mid, r)
				}
			}
		}()
		left = forkJoin(lo, mid, threshold, logger, leaf, merge)
	}()

	var right T
	var rightPanic any
	func() {
		defer func() {
			if r := recover(); r != nil {
				rightPanic = r
			}
		}()
		right = forkJoin(mid, hi, threshold, logger, leaf, merge)
	}()
	wg.Wait()

	if panicVal != nil {
		panic(panicVal)
	}
	if rightPanic != nil {
		panic(rightPanic)
	}
	return merge(left, right)
}

// ForEachVector partitions [0,axisLen) under threshold and calls visit
// on each undivided leaf's [lo,hi) sub-range.
func (e *Engine) ForEachVector(axisLen, threshold int, parallelFlag bool, visit func(lo, hi int)) {
	leaf := func(lo, hi int) struct{} {
		visit(lo, hi)
		return struct{}{}
	}
	if !parallelFlag {
		leaf(0, axisLen)
		return
	}
	forkJoin(0, axisLen, threshold, e.Logger, leaf, func(struct{}, struct{}) struct{} { return struct{}{} })
}

// ForEachVectorCursor is ForEachVector specialized to walk a
// content.FrameContent axis with one reusable axis.Cursor per leaf
// (spec §4.6: "each leaf walks its sub-range with one reusable
// cursor"), rather than allocating one per ordinal. rowAxis selects
// which axis is being partitioned; visit is responsible for reading
// the opposite axis's ordinal off the cursor if it needs it.
func ForEachVectorCursor[R comparable, C comparable](e *Engine, fc *content.FrameContent[R, C], rowAxis bool, threshold int, parallelFlag bool, visit func(cursor *axis.Cursor[R, C])) {
	axisLen := fc.Cols()
	if rowAxis {
		axisLen = fc.Rows()
	}
	leaf := func(lo, hi int) struct{} {
		cur := axis.NewCursor(fc)
		for i := lo; i < hi; i++ {
			if rowAxis {
				cur.MoveTo(i, cur.ColOrdinal())
			} else {
				cur.MoveTo(cur.RowOrdinal(), i)
			}
			visit(cur)
		}
		return struct{}{}
	}
	if !parallelFlag {
		leaf(0, axisLen)
		return
	}
	forkJoin(0, axisLen, threshold, e.Logger, leaf, func(struct{}, struct{}) struct{} { return struct{}{} })
}

// SelectKeys partitions [0,axisLen), each leaf emitting matching
// ordinals in ordinal order into a pooled scratch buffer; merge
// concatenates left then right so the final result is in original
// order regardless of how the range was split (spec §4.6).
func (e *Engine) SelectKeys(axisLen, threshold int, parallelFlag bool, match func(ordinal int) bool) []int {
	leaf := func(lo, hi int) []int {
		buf := getWorkspace()
		for i := lo; i < hi; i++ {
			if match(i) {
				buf = append(buf, i)
			}
		}
		out := make([]int, len(buf))
		copy(out, buf)
		putWorkspace(buf)
		return out
	}
	if !parallelFlag {
		return leaf(0, axisLen)
	}
	merge := func(left, right []int) []int { return append(left, right...) }
	return forkJoin(0, axisLen, threshold, e.Logger, leaf, merge)
}

// MinMax finds the extremum ordinal among ordinals where include is
// true, using less(a,b) to mean "a precedes b" (pass a flipped
// comparator to find a max). Returns -1 if no ordinal qualifies.
func (e *Engine) MinMax(axisLen, threshold int, parallelFlag bool, include func(ordinal int) bool, less func(a, b int) bool) int {
	leaf := func(lo, hi int) int {
		best := -1
		for i := lo; i < hi; i++ {
			if !include(i) {
				continue
			}
			if best == -1 || less(i, best) {
				best = i
			}
		}
		return best
	}
	if !parallelFlag {
		return leaf(0, axisLen)
	}
	merge := func(left, right int) int {
		switch {
		case left == -1:
			return right
		case right == -1:
			return left
		case less(left, right):
			return left
		default:
			return right
		}
	}
	return forkJoin(0, axisLen, threshold, e.Logger, leaf, merge)
}

// ForEachValue is the value-stream spliterator spec §4.6 describes:
// flattens (row, col) to a linear ordinal i = rowOrdinal + colOrdinal *
// rowCount (column-major, matching storage locality per spec §9) and
// splits that linear range. Per spec §5, a parallel ForEachValue gives
// the consumer no ordering guarantee.
func ForEachValue[R comparable, C comparable](e *Engine, fc *content.FrameContent[R, C], threshold int, parallelFlag bool, visit func(v axis.DataFrameValue[R, C])) {
	rowCount := fc.Rows()
	total := rowCount * fc.Cols()
	leaf := func(lo, hi int) struct{} {
		for i := lo; i < hi; i++ {
			rowOrdinal := i % rowCount
			colOrdinal := i / rowCount
			visit(axis.DataFrameValue[R, C]{
				RowKey: fc.RowIndex().KeyAt(rowOrdinal),
				ColKey: fc.ColIndex().KeyAt(colOrdinal),
				Value:  fc.Get(rowOrdinal, colOrdinal),
			})
		}
		return struct{}{}
	}
	if !parallelFlag {
		leaf(0, total)
		return
	}
	forkJoin(0, total, threshold, e.Logger, leaf, func(struct{}, struct{}) struct{} { return struct{}{} })
}

// ApplyValues is ForEachValue's mutating counterpart: it writes
// fn(existing value) back into every cell. Partitions are disjoint
// ordinal ranges mapping to disjoint storage slots, so concurrent
// writes across leaves are safe (spec §5), and the result is
// order-independent of the split -- spec §8's S5 property (parallel
// vs. sequential apply are bit-identical).
func ApplyValues[R comparable, C comparable](e *Engine, fc *content.FrameContent[R, C], threshold int, parallelFlag bool, fn func(v any) any) {
	rowCount := fc.Rows()
	total := rowCount * fc.Cols()
	leaf := func(lo, hi int) struct{} {
		for i := lo; i < hi; i++ {
			rowOrdinal := i % rowCount
			colOrdinal := i / rowCount
			fc.Set(rowOrdinal, colOrdinal, fn(fc.Get(rowOrdinal, colOrdinal)))
		}
		return struct{}{}
	}
	if !parallelFlag {
		leaf(0, total)
		return
	}
	forkJoin(0, total, threshold, e.Logger, leaf, func(struct{}, struct{}) struct{} { return struct{}{} })
}
