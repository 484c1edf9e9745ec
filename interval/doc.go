// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package interval holds the coordinate types and merge rules shared by the
  tandem-repeat and alignment consolidators.

  A Range is a [Start, End) span on one sequence; its length is End - Start,
  which matches how TRF and BLAST coordinates are compared throughout
  trseeker (an overlap of A and B is A.End - B.Start).  The predicates in
  policy.go are pure functions over Ranges; the resolvers in packages trf and
  blast decide in which order to apply them.

  Union (an interval-union stored as a sorted endpoint sequence) and Index (a
  containment index over an interval tree) are used to measure and validate
  consolidated output.
*/
package interval
