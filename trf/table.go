// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package trf

import (
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/trseeker/interval"
)

// tableColumns is the header row of a TR table.
var tableColumns = []string{
	"id", "head", "gi", "chr", "params",
	"start", "end", "period", "n_copy", "consensus_len",
	"pmatch", "pvar", "pindel", "score",
	"a", "c", "g", "t", "entropy",
	"consensus", "array", "array_gc", "consensus_gc", "array_len",
	"joined", "repbase", "family_self", "family_ref",
}

// tableRow is one row of a TR table as read by tsv.Reader.
type tableRow struct {
	ID           int64   `tsv:"id"`
	Head         string  `tsv:"head"`
	GI           string  `tsv:"gi"`
	Chr          string  `tsv:"chr"`
	Params       string  `tsv:"params"`
	Start        int32   `tsv:"start"`
	End          int32   `tsv:"end"`
	Period       int     `tsv:"period"`
	NCopy        float64 `tsv:"n_copy"`
	ConsensusLen int     `tsv:"consensus_len"`
	Quality      float64 `tsv:"pmatch"`
	PVar         float64 `tsv:"pvar"`
	Indels       float64 `tsv:"pindel"`
	Score        int     `tsv:"score"`
	NA           int     `tsv:"a"`
	NC           int     `tsv:"c"`
	NG           int     `tsv:"g"`
	NT           int     `tsv:"t"`
	Entropy      float64 `tsv:"entropy"`
	Consensus    string  `tsv:"consensus"`
	Array        string  `tsv:"array"`
	ArrayGC      float64 `tsv:"array_gc"`
	ConsensusGC  float64 `tsv:"consensus_gc"`
	ArrayLen     int     `tsv:"array_len"`
	Joined       int     `tsv:"joined"`
	Repbase      string  `tsv:"repbase"`
	FamilySelf   string  `tsv:"family_self"`
	FamilyRef    string  `tsv:"family_ref"`
}

func (row *tableRow) record() *Record {
	return &Record{
		ID:           row.ID,
		Head:         row.Head,
		GI:           row.GI,
		Chr:          row.Chr,
		Params:       row.Params,
		Range:        interval.Range{Start: interval.PosType(row.Start), End: interval.PosType(row.End)},
		Period:       row.Period,
		NCopy:        row.NCopy,
		ConsensusLen: row.ConsensusLen,
		Quality:      row.Quality,
		Indels:       row.Indels,
		Score:        row.Score,
		NA:           row.NA,
		NC:           row.NC,
		NG:           row.NG,
		NT:           row.NT,
		Entropy:      row.Entropy,
		Consensus:    row.Consensus,
		Array:        row.Array,
		ArrayGC:      row.ArrayGC,
		ConsensusGC:  row.ConsensusGC,
		ArrayLen:     row.ArrayLen,
		Joined:       row.Joined != 0,
		Repbase:      row.Repbase,
		FamilySelf:   row.FamilySelf,
		FamilyRef:    row.FamilyRef,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// TableWriter writes records as a TR table.  The header row is written
// before the first record.
type TableWriter struct {
	w           *tsv.Writer
	wroteHeader bool
}

// NewTableWriter creates a TableWriter that writes to w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: tsv.NewWriter(w)}
}

func (tw *TableWriter) writeHeader() error {
	for _, c := range tableColumns {
		tw.w.WriteString(c)
	}
	tw.wroteHeader = true
	return tw.w.EndLine()
}

// Write appends one record.
func (tw *TableWriter) Write(r *Record) error {
	if !tw.wroteHeader {
		if err := tw.writeHeader(); err != nil {
			return err
		}
	}
	w := tw.w
	w.WriteInt64(r.ID)
	w.WriteString(r.Head)
	w.WriteString(r.GI)
	w.WriteString(r.Chr)
	w.WriteString(r.Params)
	w.WriteInt64(int64(r.Start))
	w.WriteInt64(int64(r.End))
	w.WriteInt64(int64(r.Period))
	w.WriteString(formatFloat(r.NCopy))
	w.WriteInt64(int64(r.ConsensusLen))
	w.WriteString(formatFloat(r.Quality))
	w.WriteString(formatFloat(r.PVar()))
	w.WriteString(formatFloat(r.Indels))
	w.WriteInt64(int64(r.Score))
	w.WriteInt64(int64(r.NA))
	w.WriteInt64(int64(r.NC))
	w.WriteInt64(int64(r.NG))
	w.WriteInt64(int64(r.NT))
	w.WriteString(formatFloat(r.Entropy))
	w.WriteString(r.Consensus)
	w.WriteString(r.Array)
	w.WriteString(formatFloat(r.ArrayGC))
	w.WriteString(formatFloat(r.ConsensusGC))
	w.WriteInt64(int64(r.ArrayLen))
	if r.Joined {
		w.WriteByte('1')
	} else {
		w.WriteByte('0')
	}
	w.WriteString(r.Repbase)
	w.WriteString(r.FamilySelf)
	w.WriteString(r.FamilyRef)
	return w.EndLine()
}

// Flush flushes buffered rows to the underlying writer.  A table with no
// records still gets its header row.
func (tw *TableWriter) Flush() error {
	if !tw.wroteHeader {
		if err := tw.writeHeader(); err != nil {
			return err
		}
	}
	return tw.w.Flush()
}

// WriteTable writes recs as a TR table.
func WriteTable(w io.Writer, recs []*Record) error {
	tw := NewTableWriter(w)
	for _, r := range recs {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// ReadTable reads a TR table written by WriteTable.
func ReadTable(r io.Reader) ([]*Record, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	var recs []*Record
	for {
		var row tableRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, interval.ParseError("trf: read table", err)
		}
		recs = append(recs, row.record())
	}
	return recs, nil
}
