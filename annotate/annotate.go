// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package annotate runs the trseeker batch steps: resolving TRF output into
// TR tables, and annotating TR tables with consolidated BLAST results.
//
// Work is split into shards processed with traverse.Each.  A unit (one TRF
// file or one repeat's alignment file) that fails is logged and skipped,
// except for missing TRF files, which abort the batch.  Every output file is
// written with file.Create, so it only appears once it is complete.
package annotate

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/trseeker/blast"
	"github.com/grailbio/trseeker/interval"
	"github.com/grailbio/trseeker/trf"
)

// Kind selects which annotation column a BLAST run fills in.
type Kind int

const (
	// Repbase: hits against a repeat family library.  Fills Record.Repbase.
	Repbase Kind = iota
	// Self: hits against the other repeats of the dataset.  Fills
	// Record.FamilySelf.
	Self
	// Ref: hits against a reference assembly.  Fills Record.FamilyRef.
	Ref
)

// ParseKind converts "repbase", "self" or "ref" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "repbase":
		return Repbase, nil
	case "self":
		return Self, nil
	case "ref":
		return Ref, nil
	}
	return 0, errors.E(errors.Invalid, fmt.Sprintf("annotate: unknown kind %q", s))
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Repbase:
		return "repbase"
	case Self:
		return "self"
	case Ref:
		return "ref"
	}
	return "kind" + strconv.Itoa(int(k))
}

func (k Kind) formatter() blast.Formatter {
	if k == Repbase {
		return blast.FamilyFormat
	}
	return blast.SelfFormat
}

func (k Kind) set(r *trf.Record, v string) {
	switch k {
	case Repbase:
		r.Repbase = v
	case Self:
		r.FamilySelf = v
	case Ref:
		r.FamilyRef = v
	default:
		log.Panicf("annotate: bad kind %v", k)
	}
}

// Opts configures a batch.
type Opts struct {
	TRF   trf.Opts
	Blast blast.Opts
	// Parallelism is the number of shards.  Zero means runtime.NumCPU().
	Parallelism int
	// Verify checks every resolved TRF block for shared bounds and nesting
	// before it is written.
	Verify bool
}

func (o Opts) parallelism(n int) int {
	p := o.Parallelism
	if p <= 0 {
		p = runtime.NumCPU()
	}
	if p > n {
		p = n
	}
	return p
}

// shards calls fn for every index in [0, n), split into contiguous shards.
func shards(n, parallelism int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	return traverse.Each(parallelism, func(jobIdx int) error {
		start := (jobIdx * n) / parallelism
		end := ((jobIdx + 1) * n) / parallelism
		for i := start; i < end; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	})
}

// Stats counts the units of a batch.
type Stats struct {
	Units   int
	Failed  int
	Records int
}

// ResolveTRF parses and resolves every TRF output file in inputs and writes
// the surviving records of inputs[i] as a TR table to outputs[i].  Record IDs
// are sequential across all inputs, in input order, starting at 1.  A missing
// input aborts the batch before anything is written.
func ResolveTRF(ctx context.Context, inputs, outputs []string, opts Opts) (Stats, error) {
	if len(inputs) != len(outputs) {
		log.Panicf("annotate: %d inputs, %d outputs", len(inputs), len(outputs))
	}
	stats := Stats{Units: len(inputs)}
	results := make([][]*trf.Record, len(inputs))
	p := opts.parallelism(len(inputs))
	err := shards(len(inputs), p, func(i int) error {
		recs, s, err := trf.ParseFile(ctx, inputs[i], opts.TRF, 1)
		if err != nil {
			return err
		}
		log.Printf("%s: %v", inputs[i], s)
		results[i] = recs
		return nil
	})
	if err != nil {
		return stats, err
	}

	var id int64 = 1
	for _, recs := range results {
		for _, r := range recs {
			r.ID = id
			id++
		}
		stats.Records += len(recs)
	}

	var failed int32
	err = shards(len(inputs), p, func(i int) error {
		if opts.Verify {
			if err := verify(results[i]); err != nil {
				log.Error.Printf("%s: %v", inputs[i], err)
				atomic.AddInt32(&failed, 1)
				return nil
			}
		}
		return trf.WriteTableFile(ctx, outputs[i], results[i])
	})
	stats.Failed = int(failed)
	return stats, err
}

// verify checks the records of each sequence separately.
func verify(recs []*trf.Record) error {
	byHead := map[string][]interval.Range{}
	var heads []string
	for _, r := range recs {
		if _, ok := byHead[r.Head]; !ok {
			heads = append(heads, r.Head)
		}
		byHead[r.Head] = append(byHead[r.Head], r.Range)
	}
	for _, h := range heads {
		if err := interval.CheckNonRedundant(byHead[h]); err != nil {
			return errors.E(err, h)
		}
	}
	return nil
}

// BlastPath returns the alignment file of record id in dir.
func BlastPath(dir string, id int64) string {
	return filepath.Join(dir, strconv.FormatInt(id, 10)+".blast")
}

// Annotate fills the kind column of every record from the consolidated hits
// in dir/<ID>.blast.  Records without an alignment file get an empty
// annotation.  A record whose file cannot be read is logged, counted as
// failed and left unchanged.
func Annotate(ctx context.Context, recs []*trf.Record, dir string, kind Kind, opts Opts) (Stats, error) {
	stats := Stats{Units: len(recs), Records: len(recs)}
	if len(recs) == 0 {
		return stats, nil
	}
	var failed int32
	f := kind.formatter()
	err := shards(len(recs), opts.parallelism(len(recs)), func(i int) error {
		r := recs[i]
		path := BlastPath(dir, r.ID)
		in, err := blast.ReadHitsFile(ctx, path)
		if err == nil && in.Alpha() && kind != Self {
			err = interval.ParseError("alpha marker outside self annotation")
		}
		var v string
		if err == nil {
			v, err = blast.Annotation(in, opts.Blast, f)
		}
		if err != nil {
			log.Error.Printf("%s: %v", path, err)
			atomic.AddInt32(&failed, 1)
			return nil
		}
		kind.set(r, v)
		return nil
	})
	stats.Failed = int(failed)
	return stats, err
}

// AnnotateTable reads the TR table at in, annotates it from dir, and writes
// the result to out.
func AnnotateTable(ctx context.Context, in, out, dir string, kind Kind, opts Opts) (Stats, error) {
	recs, err := trf.ReadTableFile(ctx, in)
	if err != nil {
		return Stats{}, err
	}
	stats, err := Annotate(ctx, recs, dir, kind, opts)
	if err != nil {
		return stats, err
	}
	log.Printf("%s: %s annotation: %d records, %d failed", in, kind, stats.Records, stats.Failed)
	return stats, trf.WriteTableFile(ctx, out, recs)
}
