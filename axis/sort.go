package axis

import (
	"sort"

	"github.com/dxframe/frame/array"
	"github.com/dxframe/frame/content"
)

// SortRowsByKey reorders fc's row index's ordinal space by row key,
// using less for ascending order; direction flips it for Descending
// and direction == array.Identity restores the original insertion
// order instead of touching less at all. Column storage is untouched
// (spec §4.5): only the row index's ordinal->coordinate permutation
// changes.
func SortRowsByKey[R comparable, C comparable](fc *content.FrameContent[R, C], less func(a, b R) bool, direction array.Direction) error {
	if direction == array.Identity {
		fc.RowIndex().RestoreInsertionOrder()
		return nil
	}
	order := identityOrder(fc.Rows())
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := fc.RowIndex().KeyAt(order[a]), fc.RowIndex().KeyAt(order[b])
		if direction < 0 {
			return less(kb, ka)
		}
		return less(ka, kb)
	})
	return fc.RowIndex().Reorder(order)
}

// SortRowsByColumns reorders rows by comparing colKeys lexicographically
// left to right, using each column's own array.Compare (so coded and
// zoned columns sort by their native ordering, not a boxed value
// comparison). Rows tying on every key keep their relative input order
// (spec §4.5's "ties preserve input order"). direction == array.Identity
// restores insertion order without consulting colKeys.
func SortRowsByColumns[R comparable, C comparable](fc *content.FrameContent[R, C], colKeys []C, direction array.Direction) error {
	if direction == array.Identity {
		fc.RowIndex().RestoreInsertionOrder()
		return nil
	}
	order := identityOrder(fc.Rows())
	var sortErr error
	sort.SliceStable(order, func(a, b int) bool {
		if sortErr != nil {
			return false
		}
		ra, rb := order[a], order[b]
		for _, ck := range colKeys {
			c, err := fc.CompareColumn(ra, rb, ck)
			if err != nil {
				sortErr = err
				return false
			}
			if direction < 0 {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	if sortErr != nil {
		return sortErr
	}
	return fc.RowIndex().Reorder(order)
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
