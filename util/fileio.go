// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package util

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// newReaderPath is replaced in tests.
var newReaderPath = compress.NewReaderPath

// Input is an open input file.  Reads are decompressed when the file name
// has a known compression extension.
type Input struct {
	io.Reader
	f   file.File
	dec io.ReadCloser
}

// OpenInput opens path for reading.  The caller must Close the result.
func OpenInput(ctx context.Context, path string) (*Input, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	in := &Input{Reader: f.Reader(ctx), f: f}
	if u := newReaderPath(in.Reader, f.Name()); u != nil {
		in.Reader, in.dec = u, u
	}
	return in, nil
}

// Name returns the path of the underlying file.
func (in *Input) Name() string { return in.f.Name() }

// Close closes the decompressor, if any, and then the file.  The
// decompressor may hold buffers outside the Go heap.
func (in *Input) Close(ctx context.Context) error {
	var err error
	if in.dec != nil {
		err = in.dec.Close()
	}
	if e := in.f.Close(ctx); e != nil && err == nil {
		err = e
	}
	return err
}

// WriteOutput creates path and calls fn with a writer for it.  Paths ending
// in ".gz" are gzip compressed.  The file only appears under path once fn
// and Close succeed.
func WriteOutput(ctx context.Context, path string, fn func(w io.Writer) error) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := out.Writer(ctx)
	if !strings.HasSuffix(path, ".gz") {
		return fn(w)
	}
	gz := gzip.NewWriter(w)
	if err = fn(gz); err != nil {
		gz.Close() // nolint: errcheck
		return err
	}
	return gz.Close()
}
