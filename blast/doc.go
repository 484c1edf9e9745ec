// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package blast consolidates BLAST tabular hits into per-subject alignment
// intervals.
//
// The hits of one query (typically a tandem-repeat array) are grouped by
// subject.  For each subject the query spans are normalized to ascending
// orientation, nested spans are dropped, overlapping spans are merged, short
// spans are dropped, spans separated by small gaps are bridged, and finally
// spans that are still too short are dropped.  The subjects that keep at
// least one span are the annotation for the query; see Result.Format.
package blast
