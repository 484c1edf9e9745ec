// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package trf

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/trseeker/interval"
	"github.com/grailbio/trseeker/util"
)

// Stats counts what ParseFile did.
type Stats struct {
	Blocks  int
	Skipped int // blocks dropped because they failed to resolve
	Raw     int // calls read
	Kept    int // calls after resolution
	Joined  int // kept calls that are merges
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("blocks=%d skipped=%d raw=%d kept=%d joined=%d", s.Blocks, s.Skipped, s.Raw, s.Kept, s.Joined)
}

// Read parses TRF output from r, resolves every block and returns the
// surviving records in file order.  IDs are assigned sequentially starting
// at firstID.  A block whose calls fail to resolve is logged and skipped.
func Read(r io.Reader, opts Opts, firstID int64) ([]*Record, Stats, error) {
	var (
		stats Stats
		out   []*Record
		id    = firstID
	)
	sc := NewScanner(r)
	for sc.Scan() {
		b := sc.Block()
		stats.Blocks++
		raw := ParseBlock(b)
		stats.Raw += len(raw)
		recs, err := Resolve(raw, opts)
		if err != nil {
			log.Error.Printf("%s: skipping block: %v", b.Head, err)
			stats.Skipped++
			continue
		}
		for _, rec := range recs {
			rec.ID = id
			id++
			if rec.Joined {
				stats.Joined++
			}
		}
		stats.Kept += len(recs)
		out = append(out, recs...)
	}
	return out, stats, sc.Err()
}

// ParseFile is Read for a TRF .dat file, possibly compressed.  A missing
// file is an error: every block needs a source.
func ParseFile(ctx context.Context, path string, opts Opts, firstID int64) (recs []*Record, stats Stats, err error) {
	in, err := util.OpenInput(ctx, path)
	if err != nil {
		if interval.IsMissingInput(err) {
			return nil, stats, interval.MissingInputError(path, err)
		}
		return nil, stats, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	recs, stats, err = Read(in, opts, firstID)
	if err != nil {
		return nil, stats, errors.E(err, path)
	}
	log.Debug.Printf("%s: %v", path, stats)
	return recs, stats, nil
}

// WriteTableFile writes recs as a TR table to path.  A ".gz" suffix selects
// gzip output.
func WriteTableFile(ctx context.Context, path string, recs []*Record) error {
	return util.WriteOutput(ctx, path, func(w io.Writer) error {
		return WriteTable(w, recs)
	})
}

// ReadTableFile reads a TR table from path, possibly compressed.
func ReadTableFile(ctx context.Context, path string) (recs []*Record, err error) {
	in, err := util.OpenInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	return ReadTable(in)
}
