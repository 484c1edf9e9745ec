// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"os"

	"github.com/grailbio/base/errors"
)

// The three per-unit failure classes map onto base/errors kinds so that
// callers can use errors.Is and still get the usual error chaining:
//
//   parse failure       errors.Invalid    unit skipped, batch continues
//   consistency failure errors.Integrity  unit aborted, logged as a data defect
//   missing input       errors.NotExist   empty result (alignments) or fatal (TRF)

// ParseError returns an error for unparseable bounds or fields.  args are
// passed to errors.E after the kind.
func ParseError(args ...interface{}) error {
	return errors.E(append([]interface{}{errors.Invalid}, args...)...)
}

// ConsistencyError returns an error for a violated post-normalization
// invariant, e.g. Start > End.
func ConsistencyError(args ...interface{}) error {
	return errors.E(append([]interface{}{errors.Integrity}, args...)...)
}

// MissingInputError returns an error for an absent per-unit input.
func MissingInputError(args ...interface{}) error {
	return errors.E(append([]interface{}{errors.NotExist}, args...)...)
}

// IsParseError reports whether err was created by ParseError.
func IsParseError(err error) bool { return errors.Is(errors.Invalid, err) }

// IsConsistencyError reports whether err was created by ConsistencyError.
func IsConsistencyError(err error) bool { return errors.Is(errors.Integrity, err) }

// IsMissingInput reports whether err was created by MissingInputError, or
// otherwise indicates a missing file.
func IsMissingInput(err error) bool {
	return errors.Is(errors.NotExist, err) || os.IsNotExist(err)
}
