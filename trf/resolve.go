// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package trf

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/trseeker/interval"
)

// Opts controls when two partially overlapping calls are merged.
type Opts struct {
	// OverlapRatioCutoff is the minimum overlap, as a fraction of the shorter
	// call, for two calls to be merged.
	OverlapRatioCutoff float64
	// GCDiffCutoff is the maximum absolute difference in array GC fraction
	// for two calls to be merged.
	GCDiffCutoff float64
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	OverlapRatioCutoff: 0.30,
	GCDiffCutoff:       0.05,
}

// Validate checks that the cutoffs are in range.
func (o Opts) Validate() error {
	if !(o.OverlapRatioCutoff >= 0 && o.OverlapRatioCutoff <= 1) {
		return errors.E(errors.Invalid, fmt.Sprintf("trf: overlap ratio cutoff %v not in [0,1]", o.OverlapRatioCutoff))
	}
	if !(o.GCDiffCutoff >= 0 && o.GCDiffCutoff <= 1) {
		return errors.E(errors.Invalid, fmt.Sprintf("trf: gc diff cutoff %v not in [0,1]", o.GCDiffCutoff))
	}
	return nil
}

func (o Opts) similarity() interval.Similarity {
	return interval.Similarity{OverlapRatio: o.OverlapRatioCutoff, CompositionDiff: o.GCDiffCutoff}
}

// slot is a record in a resolution pass.  Removed records are tombstoned
// (live=false) and dropped by compact between passes.
type slot struct {
	rec  *Record
	live bool
}

func compact(slots []slot) []slot {
	n := 0
	for _, s := range slots {
		if s.live {
			slots[n] = s
			n++
		}
	}
	return slots[:n]
}

// absorb applies the duplicate and containment rules to the cursor slot at
// slots[cur] and the candidate at slots[i].  It returns the new cursor and
// whether either slot was tombstoned.  If neither contains the other, it
// returns (cur, false).
func absorb(slots []slot, cur, i int) (int, bool) {
	best, cand := slots[cur].rec, slots[i].rec
	switch {
	case interval.SameBounds(best.Range, cand.Range):
		if interval.KeepFirst(best.Quality, cand.Quality) {
			slots[i].live = false
			return cur, true
		}
		slots[cur].live = false
		return i, true
	case interval.Contains(best.Range, cand.Range):
		slots[i].live = false
		return cur, true
	case interval.Contains(cand.Range, best.Range):
		slots[cur].live = false
		return i, true
	}
	return cur, false
}

// Resolve reduces the calls of one sequence block to a set in which no two
// calls share bounds and no call lies inside another.  Partially overlapping
// calls are merged when they overlap by at least opts.OverlapRatioCutoff of
// the shorter call and their array GC fractions differ by at most
// opts.GCDiffCutoff.
//
// The input is not modified; the result holds copies, sorted by (Start, End).
func Resolve(calls []*Record, opts Opts) ([]*Record, error) {
	slots := make([]slot, len(calls))
	for i, c := range calls {
		if err := c.Validate(); err != nil {
			return nil, errors.E(err, fmt.Sprintf("trf: call %d (%s)", c.ID, c.GI))
		}
		cp := *c
		slots[i] = slot{rec: &cp, live: true}
	}
	if len(slots) < 2 {
		return records(slots), nil
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].rec.Range.Less(slots[j].rec.Range)
	})

	// Pass A: drop duplicates and nested calls.  The cursor always holds the
	// largest end seen so far, so any later call that ends at or before it is
	// nested.
	cur := 0
	for i := 1; i < len(slots); i++ {
		if next, absorbed := absorb(slots, cur, i); absorbed {
			cur = next
			continue
		}
		cur = i
	}
	slots = compact(slots)

	// Pass B: merge similar overlapping calls until nothing changes.
	sim := opts.similarity()
	for changed := true; changed; {
		changed = mergePass(slots, sim)
		slots = compact(slots)
	}
	return records(slots), nil
}

// mergePass makes one scan over slots.  Each live slot in turn is the
// cursor, and every later slot that starts at or before the cursor's end is
// tested against it, including those after a candidate that failed to merge.
// Similar partial overlaps are joined into the cursor, so its end grows as
// the scan proceeds.  It reports whether any slot changed.
func mergePass(slots []slot, sim interval.Similarity) bool {
	changed := false
	for cur := range slots {
		if !slots[cur].live {
			continue
		}
		for i := cur + 1; i < len(slots); i++ {
			if !slots[i].live {
				continue
			}
			a, b := slots[cur].rec, slots[i].rec
			if a.End < b.Start {
				break
			}
			if interval.PartialOverlap(a.Range, b.Range) {
				if sim.Mergeable(a.Range, b.Range, a.ArrayGC, b.ArrayGC) {
					a.join(b)
					slots[i].live = false
					changed = true
				}
				continue
			}
			if next, absorbed := absorb(slots, cur, i); absorbed {
				changed = true
				if next != cur {
					break
				}
			}
		}
	}
	return changed
}

func records(slots []slot) []*Record {
	out := make([]*Record, len(slots))
	for i, s := range slots {
		out[i] = s.rec
	}
	return out
}
