// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import "sort"

// Union is an interval-union represented as a sorted sequence of endpoints:
// the start of disjoint interval #k is in element [2k] and its end in
// element [2k+1].  For example, the ranges
//   [5, 15)
//   [7, 17)
//   [20, 25)
// produce the endpoints {5, 17, 20, 25}.  Touching ranges are fused.
//
// Union is used to measure how much of a query an alignment result covers,
// independently of how the consolidator partitioned that coverage.
type Union struct {
	endpoints []PosType
}

// NewUnion returns the union of the given ranges.  The input is not modified;
// reversed ranges are normalized.
func NewUnion(ranges []Range) Union {
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	for i := range sorted {
		sorted[i].Normalize()
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	endpoints := make([]PosType, 0, 2*len(sorted))
	for _, r := range sorted {
		if r.Len() == 0 {
			continue
		}
		n := len(endpoints)
		if n > 0 && r.Start <= endpoints[n-1] {
			if r.End > endpoints[n-1] {
				endpoints[n-1] = r.End
			}
			continue
		}
		endpoints = append(endpoints, r.Start, r.End)
	}
	return Union{endpoints: endpoints}
}

// Len returns the number of disjoint intervals in the union.
func (u Union) Len() int {
	return len(u.endpoints) / 2
}

// Covered returns the total number of positions in the union.
func (u Union) Covered() PosType {
	var total PosType
	for i := 0; i < len(u.endpoints); i += 2 {
		total += u.endpoints[i+1] - u.endpoints[i]
	}
	return total
}

// Contains checks whether position pos lies inside the union.
func (u Union) Contains(pos PosType) bool {
	// The index of the first endpoint > pos is odd iff pos is inside an
	// interval.
	return searchPosType(u.endpoints, pos+1)&1 == 1
}

// Ranges returns the disjoint intervals of the union in increasing order.
func (u Union) Ranges() []Range {
	ranges := make([]Range, 0, u.Len())
	for i := 0; i < len(u.endpoints); i += 2 {
		ranges = append(ranges, Range{Start: u.endpoints[i], End: u.endpoints[i+1]})
	}
	return ranges
}

// searchPosType returns the index of x in a[], or the position where x would
// be inserted if x isn't in a (this could be len(a)).  It's exactly the same
// as sort.SearchInts(), except for PosType.
func searchPosType(a []PosType, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}
