// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package trf reads Tandem Repeats Finder (TRF) output and reduces the calls
// reported for each sequence block to a canonical, non-redundant set.
//
// TRF reports every candidate repeat it finds, for every period it tried, so
// one tandem array usually shows up as several records: exact duplicates,
// calls nested inside a longer call, and calls that partially overlap
// because TRF split one array into two.  Resolve removes the first two kinds
// and merges the third when the overlap is large and the GC composition of
// the two arrays agrees.
//
// The tab-delimited TR table produced by WriteTable (and read back by
// ReadTable) is the record format the rest of trseeker works with.
package trf
