// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package blast

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/trseeker/interval"
	"github.com/grailbio/trseeker/util"
)

// Hit is one row of BLAST tabular output (-outfmt 6 or 7) with the default
// columns:
//
//   qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore
type Hit struct {
	QueryID   string
	SubjectID string
	PIdent    float64
	Length    int
	Mismatch  int
	GapOpen   int
	QStart    int32
	QEnd      int32
	SStart    int32
	SEnd      int32
	EValue    float64
	BitScore  float64
}

// QueryRange returns the aligned span on the query.  It is reversed for
// minus-strand hits reported that way.
func (h *Hit) QueryRange() interval.Range {
	return interval.Range{Start: interval.PosType(h.QStart), End: interval.PosType(h.QEnd)}
}

// alphaMarker starts files that hold a precomputed alpha-satellite
// annotation instead of hits.
const alphaMarker = "ALPHA"

// Input is the content of one alignment file.
type Input struct {
	Hits []Hit
	// AlphaRef is set when the file is an alpha-satellite marker
	// ("ALPHA\t<ref>") rather than BLAST output.
	AlphaRef string
}

// Alpha reports whether the input is an alpha-satellite marker.
func (in *Input) Alpha() bool { return in.AlphaRef != "" }

// ReadHits reads BLAST tabular output from r.  "#" comment lines are
// skipped.
func ReadHits(r io.Reader) (Input, error) {
	br := bufio.NewReaderSize(r, 64<<10)
	if head, _ := br.Peek(len(alphaMarker)); bytes.Equal(head, []byte(alphaMarker)) {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return Input{}, err
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return Input{}, interval.ParseError("blast: malformed alpha marker", line)
		}
		return Input{AlphaRef: fields[1]}, nil
	}
	tr := tsv.NewReader(br)
	tr.Comment = '#'
	var in Input
	for {
		var h Hit
		if err := tr.Read(&h); err != nil {
			if err == io.EOF {
				break
			}
			return Input{}, interval.ParseError("blast: read hits", err)
		}
		in.Hits = append(in.Hits, h)
	}
	return in, nil
}

// ReadHitsFile reads the alignment file at path.  A missing or empty file
// means no alignments and yields an empty Input.
func ReadHitsFile(ctx context.Context, path string) (in Input, err error) {
	info, err := file.Stat(ctx, path)
	if err != nil {
		if interval.IsMissingInput(err) {
			log.Debug.Printf("%s: no alignments", path)
			return Input{}, nil
		}
		return Input{}, err
	}
	if info.Size() == 0 {
		return Input{}, nil
	}
	f, err := util.OpenInput(ctx, path)
	if err != nil {
		return Input{}, err
	}
	defer file.CloseAndReport(ctx, f, &err)
	return ReadHits(f)
}
