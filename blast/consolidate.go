// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package blast

import (
	"fmt"
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/trseeker/interval"
)

// Opts holds the consolidation thresholds.
type Opts struct {
	// GapSize is the largest distance between two spans that are still
	// bridged into one.
	GapSize interval.PosType
	// MinAlign is the minimum length of a span before gap bridging.
	MinAlign interval.PosType
	// MinLength is the minimum length of a final span.
	MinLength interval.PosType
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	GapSize:   1000,
	MinAlign:  500,
	MinLength: 2400,
}

// Validate checks that no threshold is negative.
func (o Opts) Validate() error {
	if o.GapSize < 0 || o.MinAlign < 0 || o.MinLength < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("blast: negative threshold in %+v", o))
	}
	return nil
}

// Interval is a consolidated span on the query.
type Interval struct {
	interval.Range
	// Changed is set when the span was extended by an overlapping or gapped
	// neighbor.
	Changed bool
	// Gapped is set when the span bridges a gap.
	Gapped bool
}

// Subject is the consolidated alignment of the query against one subject.
type Subject struct {
	ID        string
	Intervals []Interval
	// Coverage is the number of query positions covered by Intervals.
	Coverage interval.PosType
}

// Result holds the subjects that kept at least one interval, in ascending ID
// order.
type Result struct {
	Subjects []Subject
}

// IDs returns the subject IDs.
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Subjects))
	for i, s := range r.Subjects {
		ids[i] = s.ID
	}
	return ids
}

// Empty reports whether no subject survived.
func (r *Result) Empty() bool { return len(r.Subjects) == 0 }

// subjectHits groups the query spans of one subject.  It is ordered by id in
// an llrb.Tree.
type subjectHits struct {
	id     string
	ranges []interval.Range
}

// Compare implements llrb.Comparable.
func (s *subjectHits) Compare(c llrb.Comparable) int {
	o := c.(*subjectHits)
	switch {
	case s.id < o.id:
		return -1
	case s.id > o.id:
		return 1
	}
	return 0
}

// Consolidate groups hits by subject and consolidates the query spans of each
// subject.  Subjects left without intervals are dropped.
func Consolidate(hits []Hit, opts Opts) (*Result, error) {
	var tree llrb.Tree
	for i := range hits {
		h := &hits[i]
		key := &subjectHits{id: h.SubjectID}
		if c := tree.Get(key); c != nil {
			key = c.(*subjectHits)
		} else {
			tree.Insert(key)
		}
		key.ranges = append(key.ranges, h.QueryRange())
	}

	res := &Result{}
	var err error
	tree.Do(func(c llrb.Comparable) bool {
		s := c.(*subjectHits)
		var ivs []Interval
		if ivs, err = ConsolidateRanges(s.ranges, opts); err != nil {
			err = errors.E(err, "subject "+s.id)
			return true
		}
		if len(ivs) == 0 {
			return false
		}
		res.Subjects = append(res.Subjects, Subject{ID: s.id, Intervals: ivs, Coverage: coverage(ivs)})
		return false
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func coverage(ivs []Interval) interval.PosType {
	rs := make([]interval.Range, len(ivs))
	for i, iv := range ivs {
		rs[i] = iv.Range
	}
	return interval.NewUnion(rs).Covered()
}

// ConsolidateRanges runs the consolidation stages over the query spans of a
// single subject.  ranges is not modified.
func ConsolidateRanges(ranges []interval.Range, opts Opts) ([]Interval, error) {
	ivs := make([]Interval, len(ranges))
	for i, r := range ranges {
		r.Normalize()
		if err := r.Validate(); err != nil {
			return nil, err
		}
		ivs[i] = Interval{Range: r}
	}
	sort.SliceStable(ivs, func(i, j int) bool { return ivs[i].Less(ivs[j].Range) })

	ivs = absorbOverlaps(ivs)
	ivs = joinGapped(ivs, opts.GapSize, opts.MinAlign)
	return dropShort(ivs, opts.MinLength), nil
}

// absorbOverlaps drops spans that lie inside the span at the cursor and
// extends the cursor over spans that overlap its end.  ivs must be sorted.
func absorbOverlaps(ivs []Interval) []Interval {
	out := ivs[:0]
	for _, iv := range ivs {
		if len(out) == 0 {
			out = append(out, iv)
			continue
		}
		cur := &out[len(out)-1]
		switch {
		case interval.Contains(cur.Range, iv.Range):
		case interval.Extends(cur.Range, iv.Range):
			cur.End = iv.End
			cur.Changed = true
		default:
			out = append(out, iv)
		}
	}
	return out
}

// joinGapped drops spans shorter than minAlign, then joins each remaining
// span to the cursor when the distance between them is at most gapSize.
func joinGapped(ivs []Interval, gapSize, minAlign interval.PosType) []Interval {
	out := ivs[:0]
	for _, iv := range ivs {
		if !interval.LongEnough(iv.Range, minAlign) {
			continue
		}
		if len(out) == 0 {
			out = append(out, iv)
			continue
		}
		cur := &out[len(out)-1]
		if interval.WithinGap(cur.Range, iv.Range, gapSize) {
			cur.End = iv.End
			cur.Changed = true
			cur.Gapped = true
			continue
		}
		out = append(out, iv)
	}
	return out
}

func dropShort(ivs []Interval, minLength interval.PosType) []Interval {
	out := ivs[:0]
	for _, iv := range ivs {
		if interval.LongEnough(iv.Range, minLength) {
			out = append(out, iv)
		}
	}
	return out
}
