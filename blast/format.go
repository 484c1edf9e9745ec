// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package blast

import "strings"

// Formatter renders the surviving subject IDs of a Result as an annotation
// string.
type Formatter interface {
	Format(ids []string) string
}

type joinFormatter string

func (sep joinFormatter) Format(ids []string) string {
	return strings.Join(ids, string(sep))
}

var (
	// FamilyFormat joins subject IDs with ";".  It is used for hits against a
	// repeat family library such as Repbase.
	FamilyFormat Formatter = joinFormatter(";")
	// SelfFormat joins subject IDs with ",".  It is used for hits against
	// other repeats of the same dataset and against a reference assembly.
	SelfFormat Formatter = joinFormatter(",")
)

// Format renders r with f.
func (r *Result) Format(f Formatter) string {
	return f.Format(r.IDs())
}

// Annotation returns the annotation string for in: the alpha-satellite
// marker as "ALPHA:<ref>", or else the formatted consolidation result.
func Annotation(in Input, opts Opts, f Formatter) (string, error) {
	if in.Alpha() {
		return alphaMarker + ":" + in.AlphaRef, nil
	}
	res, err := Consolidate(in.Hits, opts)
	if err != nil {
		return "", err
	}
	return res.Format(f), nil
}
