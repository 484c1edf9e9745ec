// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides byte-table and SIMD-backed helpers for the
// sequence text carried by tandem-repeat records: cleaning TRF output to the
// acgtn alphabet, and measuring GC composition.
//
// See base/simd/doc.go for more comments on the overall design.
package biosimd
