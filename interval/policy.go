// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import "math"

// This file holds the merge rules shared by trf.Resolve and
// blast.Consolidate.  Every predicate assumes its arguments are normalized,
// and the two-argument "prev, cand" forms additionally assume the caller scans
// in (Start, End) order, so prev.Start <= cand.Start.

// SameBounds returns true iff a and b cover exactly the same span.
func SameBounds(a, b Range) bool {
	return a.Start == b.Start && a.End == b.End
}

// Contains returns true iff inner lies entirely within outer.  Identical
// ranges contain each other.
func Contains(outer, inner Range) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// PartialOverlap returns true iff cand starts strictly inside prev and ends
// strictly past it.  Ranges that merely touch (cand.Start == prev.End) do not
// overlap.
func PartialOverlap(prev, cand Range) bool {
	return cand.Start < prev.End && cand.End > prev.End
}

// Extends returns true iff cand starts inside or exactly at the end of prev
// and ends past it.  Unlike PartialOverlap, touching ranges qualify.
func Extends(prev, cand Range) bool {
	return cand.Start <= prev.End && cand.End > prev.End
}

// OverlapLen returns the number of positions shared by a and b, or 0.
func OverlapLen(a, b Range) PosType {
	start, end := a.Start, a.End
	if b.Start > start {
		start = b.Start
	}
	if b.End < end {
		end = b.End
	}
	if end <= start {
		return 0
	}
	return end - start
}

// OverlapRatio returns OverlapLen(a, b) divided by the length of the shorter
// range.  It is 0 when either range is empty.
func OverlapRatio(a, b Range) float64 {
	shorter := a.Len()
	if l := b.Len(); l < shorter {
		shorter = l
	}
	if shorter <= 0 {
		return 0
	}
	return float64(OverlapLen(a, b)) / float64(shorter)
}

// Similarity holds the two thresholds that decide whether two partially
// overlapping repeat arrays are the same array.
type Similarity struct {
	// OverlapRatio is the minimum OverlapRatio for a merge.
	OverlapRatio float64
	// CompositionDiff is the maximum absolute composition (GC fraction)
	// difference for a merge.
	CompositionDiff float64
}

// Mergeable returns true iff a and b overlap by at least s.OverlapRatio of
// the shorter range and their compositions differ by at most
// s.CompositionDiff.
func (s Similarity) Mergeable(a, b Range, compA, compB float64) bool {
	return OverlapRatio(a, b) >= s.OverlapRatio && math.Abs(compA-compB) <= s.CompositionDiff
}

// Gap returns the distance between the end of prev and the start of cand.
// Overlapping ranges yield the absolute value of the (negative) gap.
func Gap(prev, cand Range) PosType {
	d := cand.Start - prev.End
	if d < 0 {
		return -d
	}
	return d
}

// WithinGap returns true iff Gap(prev, cand) <= gapSize.
func WithinGap(prev, cand Range, gapSize PosType) bool {
	return Gap(prev, cand) <= gapSize
}

// LongEnough returns true iff r.Len() >= minLen.
func LongEnough(r Range, minLen PosType) bool {
	return r.Len() >= minLen
}

// KeepFirst breaks an identical-bounds tie: the first record survives unless
// the second has a strictly higher quality.
func KeepFirst(firstQuality, secondQuality float64) bool {
	return firstQuality >= secondQuality
}
