// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"
	"math"
)

// PosType is the type used to represent interval coordinates.  int32 is wide
// enough for any single chromosome or contig we annotate.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Range is a span on a single sequence.  Raw input may report Start > End
// (reverse-strand alignments); call Normalize before comparing Ranges.
type Range struct {
	Start PosType
	End   PosType
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Len returns End - Start.  It is only meaningful after Normalize.
func (r Range) Len() PosType {
	return r.End - r.Start
}

// Reversed returns true iff Start > End.
func (r Range) Reversed() bool {
	return r.Start > r.End
}

// Normalize swaps Start and End when the range is reversed.
func (r *Range) Normalize() {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
}

// Validate returns a ConsistencyError if r is reversed.
func (r Range) Validate() error {
	if r.Start > r.End {
		return ConsistencyError(fmt.Sprintf("start %d is after end %d", r.Start, r.End))
	}
	return nil
}

// Less orders ranges by (Start, End).
func (r Range) Less(o Range) bool {
	if r.Start != o.Start {
		return r.Start < o.Start
	}
	return r.End < o.End
}
