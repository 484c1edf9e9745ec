// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"github.com/grailbio/base/simd"
)

// cleanSeqTable maps every byte to its lowercase acgtn form, or to 0 if the
// byte is dropped (whitespace, digits, IUPAC ambiguity codes, etc.).
var cleanSeqTable = func() (table [256]byte) {
	for _, c := range []byte("acgtn") {
		table[c] = c
		table[c-'a'+'A'] = c
	}
	return
}()

// CleanSeqInplace lowercases the a/c/g/t/n characters of ascii8, removes
// everything else, and returns the shortened slice.  TRF array and consensus
// text is cleaned this way before any composition is computed, so that
// sequences printed with line breaks or mixed case compare equal.
func CleanSeqInplace(ascii8 []byte) []byte {
	n := 0
	for _, c := range ascii8 {
		if cleaned := cleanSeqTable[c]; cleaned != 0 {
			ascii8[n] = cleaned
			n++
		}
	}
	return ascii8[:n]
}

// CleanSeq is the string version of CleanSeqInplace.
func CleanSeq(seq string) string {
	return string(CleanSeqInplace([]byte(seq)))
}

// GCFraction returns the fraction of 'c'/'g' bytes in a cleaned sequence, or
// 0 for an empty sequence.
func GCFraction(cleaned []byte) float64 {
	if len(cleaned) == 0 {
		return 0
	}
	return float64(simd.Count2Bytes(cleaned, 'c', 'g')) / float64(len(cleaned))
}

// GCFractionString is the string version of GCFraction.  s need not be
// cleaned.
func GCFractionString(s string) float64 {
	return GCFraction(CleanSeqInplace([]byte(s)))
}
