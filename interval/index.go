// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"
)

// Index answers "which ranges contain this one" over a fixed set of ranges.
// It is backed by an augmented interval tree, so a query visits only the
// subtrees whose span could contain the query.
type Index struct {
	tree   interval.IntTree
	ranges []Range
}

type indexEntry struct {
	id uintptr
	r  Range
}

// Overlap implements interval.IntOverlapper with half-open semantics.
func (e indexEntry) Overlap(b interval.IntRange) bool {
	return b.End > int(e.r.Start) && b.Start < int(e.r.End)
}

// ID implements interval.IntInterface.
func (e indexEntry) ID() uintptr { return e.id }

// Range implements interval.IntRanger.
func (e indexEntry) Range() interval.IntRange {
	return interval.IntRange{Start: int(e.r.Start), End: int(e.r.End)}
}

// containmentQuery matches every tree span that fully contains it.  Because
// a node's span covers its whole subtree, the same predicate also prunes
// subtrees that cannot hold a match.
type containmentQuery Range

func (q containmentQuery) Overlap(b interval.IntRange) bool {
	return b.Start <= int(q.Start) && int(q.End) <= b.End
}

// NewIndex builds an Index over ranges.  ranges must be normalized.  Empty
// ranges are kept in Ranges() but never reported as containing anything.
func NewIndex(ranges []Range) (*Index, error) {
	x := &Index{ranges: ranges}
	for i, r := range ranges {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.Len() == 0 {
			continue
		}
		if err := x.tree.Insert(indexEntry{id: uintptr(i), r: r}, true); err != nil {
			return nil, ConsistencyError(err, fmt.Sprintf("index range %v", r))
		}
	}
	x.tree.AdjustRanges()
	return x, nil
}

// Ranges returns the ranges the index was built from.
func (x *Index) Ranges() []Range { return x.ranges }

// Containing returns the indices (into Ranges()) of all ranges that contain
// r, in increasing order.  A range always contains itself, so querying with an
// indexed non-empty range includes its own index.
func (x *Index) Containing(r Range) []int {
	var ids []int
	for _, e := range x.tree.Get(containmentQuery(r)) {
		ids = append(ids, int(e.ID()))
	}
	sort.Ints(ids)
	return ids
}

// CheckNonRedundant verifies the invariant every consolidated group must
// satisfy: no two ranges share bounds, and no range lies inside another.  It
// returns a ConsistencyError describing the first violation.
func CheckNonRedundant(ranges []Range) error {
	x, err := NewIndex(ranges)
	if err != nil {
		return err
	}
	for i, r := range ranges {
		for _, j := range x.Containing(r) {
			if j == i {
				continue
			}
			if SameBounds(r, ranges[j]) {
				return ConsistencyError(fmt.Sprintf("ranges #%d and #%d share bounds %v", j, i, r))
			}
			return ConsistencyError(fmt.Sprintf("range #%d %v is nested in #%d %v", i, r, j, ranges[j]))
		}
	}
	return nil
}
