// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package trf

import (
	"regexp"
	"strings"

	"github.com/grailbio/trseeker/biosimd"
	"github.com/grailbio/trseeker/interval"
)

// Record is one tandem-repeat call.  Coordinates are TRF's: 1-based, and the
// array spans [Start, End].  The embedded Range is compared with the shared
// interval rules, so its Len() is End - Start.
type Record struct {
	// ID is assigned sequentially when raw TRF output is parsed.
	ID int64
	// Head is the FASTA header of the sequence the call was made on, with the
	// "Sequence: " prefix removed.
	Head string
	// GI is the sequence identifier extracted from Head.
	GI string
	// Chr is the chromosome name extracted from Head, or "?".
	Chr string
	// Params is the TRF parameter string the block was produced with.
	Params string

	interval.Range

	Period       int
	NCopy        float64
	ConsensusLen int
	// Quality is TRF's percent match (pmatch), 0-100.
	Quality float64
	Indels  float64
	Score   int
	NA      int
	NC      int
	NG      int
	NT      int
	Entropy float64

	// Consensus is the repeat unit, and Array the repeat array text.  Both are
	// cleaned to the acgtn alphabet.
	Consensus string
	Array     string
	// ArrayGC is the GC fraction of Array; it is the composition compared by
	// the overlap-merge rule.
	ArrayGC     float64
	ConsensusGC float64
	ArrayLen    int

	// Joined is set when this record is the result of merging overlapping
	// calls.
	Joined bool

	// Annotation columns filled in by the BLAST annotation passes.
	Repbase    string
	FamilySelf string
	FamilyRef  string
}

// PVar returns 100 - Quality, TRF's percent variability.
func (r *Record) PVar() float64 {
	return 100 - r.Quality
}

// join merges b into r.  b must start inside r and end past it.  The array
// text of b is appended without the positions the two already share; the
// metadata of the longer call wins; Quality becomes the length-weighted mean.
func (r *Record) join(b *Record) {
	lenA, lenB := r.Len(), b.Len()

	offset := int(r.End - b.Start)
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.Array) {
		offset = len(b.Array)
	}
	r.Array += b.Array[offset:]

	if lenA < lenB {
		r.Consensus = b.Consensus
		r.ConsensusGC = b.ConsensusGC
		r.ConsensusLen = b.ConsensusLen
		r.Period = b.Period
		r.NA, r.NC, r.NG, r.NT = b.NA, b.NC, b.NG, b.NT
	}
	if total := lenA + lenB; total > 0 {
		r.Quality = (r.Quality*float64(lenA) + b.Quality*float64(lenB)) / float64(total)
	}

	if len(r.Array) > 0 {
		r.ArrayGC = biosimd.GCFractionString(r.Array)
	} else if total := lenA + lenB; total > 0 {
		// Records built without array text keep a length-weighted composition.
		r.ArrayGC = (r.ArrayGC*float64(lenA) + b.ArrayGC*float64(lenB)) / float64(total)
	}

	if b.Start < r.Start {
		r.Start = b.Start
	}
	if b.End > r.End {
		r.End = b.End
	}
	r.ArrayLen = int(r.Len())
	if r.Period > 0 {
		r.NCopy = float64(r.ArrayLen) / float64(r.Period)
	}
	r.Joined = true
}

var chromosomeRE = regexp.MustCompile(`chromosome\s+([\w.]+)`)

// parseGI extracts the sequence identifier from a FASTA header.  NCBI-style
// "gi|12345|ref|..." headers yield "12345"; otherwise the first word is used.
func parseGI(head string) string {
	head = strings.TrimPrefix(strings.TrimSpace(head), ">")
	if strings.HasPrefix(head, "gi|") {
		fields := strings.Split(head, "|")
		return fields[1]
	}
	if fields := strings.Fields(head); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// parseChromosome extracts "X" from headers mentioning "chromosome X", or
// returns "?".
func parseChromosome(head string) string {
	if m := chromosomeRE.FindStringSubmatch(head); m != nil {
		return strings.TrimSuffix(m[1], ",")
	}
	return "?"
}
