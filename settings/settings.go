// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package settings loads the trseeker thresholds from a TOML file.
//
// Example:
//
//   [trf]
//   overlap_ratio_cutoff = 0.3
//   gc_diff_cutoff = 0.05
//
//   [blast]
//   gap_size = 1000
//   min_align = 500
//   min_length = 2400
//
// Every key is required.
package settings

import (
	"context"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/trseeker/blast"
	"github.com/grailbio/trseeker/interval"
	"github.com/grailbio/trseeker/trf"
	"github.com/pelletier/go-toml/v2"
)

type trfSection struct {
	OverlapRatioCutoff *float64 `toml:"overlap_ratio_cutoff"`
	GCDiffCutoff       *float64 `toml:"gc_diff_cutoff"`
}

type blastSection struct {
	GapSize   *int32 `toml:"gap_size"`
	MinAlign  *int32 `toml:"min_align"`
	MinLength *int32 `toml:"min_length"`
}

type document struct {
	TRF   *trfSection   `toml:"trf"`
	Blast *blastSection `toml:"blast"`
}

// Settings holds the resolver thresholds.
type Settings struct {
	TRF   trf.Opts
	Blast blast.Opts
}

// Default returns the built-in thresholds.
func Default() Settings {
	return Settings{TRF: trf.DefaultOpts, Blast: blast.DefaultOpts}
}

// Parse decodes TOML settings.  A missing key is an error.
func Parse(data []byte) (Settings, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Settings{}, interval.ParseError("settings", err)
	}
	var missing []string
	if doc.TRF == nil {
		doc.TRF = &trfSection{}
	}
	if doc.Blast == nil {
		doc.Blast = &blastSection{}
	}
	var s Settings
	if v := doc.TRF.OverlapRatioCutoff; v != nil {
		s.TRF.OverlapRatioCutoff = *v
	} else {
		missing = append(missing, "trf.overlap_ratio_cutoff")
	}
	if v := doc.TRF.GCDiffCutoff; v != nil {
		s.TRF.GCDiffCutoff = *v
	} else {
		missing = append(missing, "trf.gc_diff_cutoff")
	}
	if v := doc.Blast.GapSize; v != nil {
		s.Blast.GapSize = interval.PosType(*v)
	} else {
		missing = append(missing, "blast.gap_size")
	}
	if v := doc.Blast.MinAlign; v != nil {
		s.Blast.MinAlign = interval.PosType(*v)
	} else {
		missing = append(missing, "blast.min_align")
	}
	if v := doc.Blast.MinLength; v != nil {
		s.Blast.MinLength = interval.PosType(*v)
	} else {
		missing = append(missing, "blast.min_length")
	}
	if len(missing) > 0 {
		return Settings{}, errors.E(errors.Invalid, "settings: missing "+strings.Join(missing, ", "))
	}
	return s, s.Validate()
}

// Validate checks every threshold.
func (s Settings) Validate() error {
	if err := s.TRF.Validate(); err != nil {
		return err
	}
	return s.Blast.Validate()
}

// Load reads settings from path.
func Load(ctx context.Context, path string) (Settings, error) {
	data, err := file.ReadFile(ctx, path)
	if err != nil {
		return Settings{}, errors.E(err, "settings: read", path)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, errors.E(err, path)
	}
	return s, nil
}
