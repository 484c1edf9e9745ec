// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package trf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/trseeker/biosimd"
	"github.com/grailbio/trseeker/interval"
	"github.com/pkg/errors"
)

const (
	sequencePrefix   = "Sequence:"
	parametersPrefix = "Parameters:"
	// nDataFields is the number of space-separated fields on a TRF data line.
	nDataFields = 15
)

// Block is the raw TRF output for one input sequence.
type Block struct {
	// Head is the text after "Sequence:".
	Head string
	// Params is the text after "Parameters:".
	Params string
	// Lines holds the data lines, in file order.
	Lines []string
}

// Scanner splits TRF .dat output into Blocks.  The program banner that
// precedes the first "Sequence:" line is ignored.
//
// Usage:
//   sc := trf.NewScanner(r)
//   for sc.Scan() {
//     b := sc.Block()
//     ...
//   }
//   if err := sc.Err(); err != nil { ... }
type Scanner struct {
	r     *bufio.Reader
	next  string // pending "Sequence:" line that starts the next block
	block Block
	err   error
	done  bool
}

// NewScanner creates a Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, 1<<20)}
}

func (s *Scanner) readLine() (string, bool) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			s.err = errors.Wrap(err, "trf: read")
		}
		if len(line) == 0 {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Scan advances to the next block.  It returns false at EOF or on a read
// error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	head := s.next
	s.next = ""
	for head == "" {
		line, ok := s.readLine()
		if !ok {
			s.done = true
			return false
		}
		if strings.HasPrefix(line, sequencePrefix) {
			head = line
		}
	}
	s.block = Block{Head: strings.TrimSpace(strings.TrimPrefix(head, sequencePrefix))}
	for {
		line, ok := s.readLine()
		if !ok {
			s.done = true
			return true
		}
		switch {
		case strings.HasPrefix(line, sequencePrefix):
			s.next = line
			return true
		case strings.HasPrefix(line, parametersPrefix):
			s.block.Params = strings.TrimSpace(strings.TrimPrefix(line, parametersPrefix))
		case len(line) > 0 && line[0] >= '0' && line[0] <= '9':
			s.block.Lines = append(s.block.Lines, line)
		}
	}
}

// Block returns the block read by the last call to Scan.
func (s *Scanner) Block() Block { return s.block }

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error { return s.err }

// ParseLine parses one TRF data line.  The caller fills in the block-level
// fields (Head, GI, Chr, Params, ID).
func ParseLine(line string) (*Record, error) {
	f := strings.Fields(line)
	if len(f) < nDataFields {
		return nil, interval.ParseError("trf: expected", nDataFields, "fields, got", len(f), ":", line)
	}
	var (
		r   Record
		err error
	)
	ints := []struct {
		s   string
		dst *int
	}{
		{f[2], &r.Period}, {f[4], &r.ConsensusLen}, {f[7], &r.Score},
		{f[8], &r.NA}, {f[9], &r.NC}, {f[10], &r.NG}, {f[11], &r.NT},
	}
	var start, end int64
	if start, err = strconv.ParseInt(f[0], 10, 32); err != nil {
		return nil, interval.ParseError(errors.Wrapf(err, "trf: start %q", f[0]))
	}
	if end, err = strconv.ParseInt(f[1], 10, 32); err != nil {
		return nil, interval.ParseError(errors.Wrapf(err, "trf: end %q", f[1]))
	}
	r.Start, r.End = interval.PosType(start), interval.PosType(end)
	for _, v := range ints {
		if *v.dst, err = strconv.Atoi(v.s); err != nil {
			return nil, interval.ParseError(errors.Wrapf(err, "trf: field %q", v.s))
		}
	}
	floats := []struct {
		s   string
		dst *float64
	}{
		{f[3], &r.NCopy}, {f[5], &r.Quality}, {f[6], &r.Indels}, {f[12], &r.Entropy},
	}
	for _, v := range floats {
		if *v.dst, err = strconv.ParseFloat(v.s, 64); err != nil {
			return nil, interval.ParseError(errors.Wrapf(err, "trf: field %q", v.s))
		}
	}
	r.Consensus = biosimd.CleanSeq(f[13])
	r.Array = biosimd.CleanSeq(f[14])
	r.ArrayLen = len(r.Array)
	r.ArrayGC = biosimd.GCFractionString(r.Array)
	r.ConsensusGC = biosimd.GCFractionString(r.Consensus)
	return &r, nil
}

// ParseBlock converts a block to records.  Malformed lines are logged and
// skipped.
func ParseBlock(b Block) []*Record {
	gi, chr := parseGI(b.Head), parseChromosome(b.Head)
	recs := make([]*Record, 0, len(b.Lines))
	for _, line := range b.Lines {
		r, err := ParseLine(line)
		if err != nil {
			log.Error.Printf("%s: skipping line: %v", gi, err)
			continue
		}
		r.Head, r.GI, r.Chr, r.Params = b.Head, gi, chr, b.Params
		recs = append(recs, r)
	}
	return recs
}
