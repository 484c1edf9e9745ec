// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fasta writes FASTA-formatted sequences.  Each record is a
// ">name" line followed by the sequence, optionally wrapped:
//
// >17
// aatcgaatggaatcg
package fasta

import "io"

var newline = []byte{'\n'}

// Writer is a FASTA file writer.
type Writer struct {
	w io.Writer
	// LineWidth wraps sequences every LineWidth bytes.  Zero writes each
	// sequence on one line.
	LineWidth int
	err       error
}

// NewWriter constructs a new FASTA writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes one sequence.  An error is returned if any write so far
// failed.
func (w *Writer) Write(name, seq string) error {
	w.writeln(">" + name)
	if w.LineWidth <= 0 {
		w.writeln(seq)
		return w.err
	}
	for len(seq) > w.LineWidth {
		w.writeln(seq[:w.LineWidth])
		seq = seq[w.LineWidth:]
	}
	if len(seq) > 0 {
		w.writeln(seq)
	}
	return w.err
}

func (w *Writer) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}
