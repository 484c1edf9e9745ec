// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/trseeker/annotate"
	"github.com/grailbio/trseeker/blast"
	"github.com/grailbio/trseeker/interval"
	"github.com/grailbio/trseeker/settings"
	"github.com/grailbio/trseeker/trf"
	"v.io/x/lib/cmdline"
)

// thresholdFlags are the settings overrides shared by all subcommands.
type thresholdFlags struct {
	settingsPath *string
	overlapRatio *float64
	gcDiff       *float64
	gapSize      *int
	minAlign     *int
	minLength    *int
}

func addThresholdFlags(fs *flag.FlagSet) thresholdFlags {
	d := settings.Default()
	return thresholdFlags{
		settingsPath: fs.String("settings", "", "TOML settings file. Flags given explicitly override its values. Without it, every threshold the subcommand uses must be given as a flag"),
		overlapRatio: fs.Float64("overlap-ratio", d.TRF.OverlapRatioCutoff, "Minimum overlap, as a fraction of the shorter call, for merging two TRF calls"),
		gcDiff:       fs.Float64("gc-diff", d.TRF.GCDiffCutoff, "Maximum array GC fraction difference for merging two TRF calls"),
		gapSize:      fs.Int("gap-size", int(d.Blast.GapSize), "Largest gap bridged between two alignment spans"),
		minAlign:     fs.Int("min-align", int(d.Blast.MinAlign), "Minimum alignment span length before gap bridging"),
		minLength:    fs.Int("min-length", int(d.Blast.MinLength), "Minimum consolidated alignment span length"),
	}
}

// Flags each subcommand needs, either explicitly or through -settings.
var (
	trfFlags   = []string{"overlap-ratio", "gc-diff"}
	blastFlags = []string{"gap-size", "min-align", "min-length"}
)

// load returns the settings file with explicitly set flags applied on top.
// Without -settings, every flag in required must be set explicitly.
func (f thresholdFlags) load(ctx context.Context, fs *flag.FlagSet, required []string) (settings.Settings, error) {
	s := settings.Default()
	if *f.settingsPath != "" {
		var err error
		if s, err = settings.Load(ctx, *f.settingsPath); err != nil {
			return s, err
		}
	} else {
		set := map[string]bool{}
		fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
		var missing []string
		for _, name := range required {
			if !set[name] {
				missing = append(missing, "-"+name)
			}
		}
		if len(missing) > 0 {
			return s, errors.E(errors.Invalid, fmt.Sprintf("missing configuration: pass -settings or %s", strings.Join(missing, ", ")))
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "overlap-ratio":
			s.TRF.OverlapRatioCutoff = *f.overlapRatio
		case "gc-diff":
			s.TRF.GCDiffCutoff = *f.gcDiff
		case "gap-size":
			s.Blast.GapSize = interval.PosType(*f.gapSize)
		case "min-align":
			s.Blast.MinAlign = interval.PosType(*f.minAlign)
		case "min-length":
			s.Blast.MinLength = interval.PosType(*f.minLength)
		}
	})
	return s, s.Validate()
}

// tableName maps "dir/seq1.dat.gz" to "seq1.trf.tsv".
func tableName(input string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".gz", ".dat"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".trf.tsv"
}

func newCmdParseTRF() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "parse-trf",
		Short:    "Resolve TRF .dat output into TR tables",
		ArgsName: "datpath...",
	}
	thresholds := addThresholdFlags(&cmd.Flags)
	outputDir := cmd.Flags.String("output-dir", ".", "Directory for the <name>.trf.tsv tables")
	parallelism := cmd.Flags.Int("parallelism", 0, "Number of files processed concurrently. Zero means the number of CPUs")
	verify := cmd.Flags.Bool("verify", false, "Check every resolved block for duplicate or nested calls before writing")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return fmt.Errorf("parse-trf takes at least one .dat path")
		}
		ctx := vcontext.Background()
		s, err := thresholds.load(ctx, &cmd.Flags, trfFlags)
		if err != nil {
			return err
		}
		outputs := make([]string, len(argv))
		for i, in := range argv {
			outputs[i] = filepath.Join(*outputDir, tableName(in))
		}
		stats, err := annotate.ResolveTRF(ctx, argv, outputs, annotate.Opts{
			TRF:         s.TRF,
			Parallelism: *parallelism,
			Verify:      *verify,
		})
		log.Printf("parse-trf: %d files, %d records, %d failed", stats.Units, stats.Records, stats.Failed)
		return err
	})
	return cmd
}

func newCmdAnnotateBlast() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "annotate-blast",
		Short:    "Annotate a TR table with consolidated BLAST hits",
		ArgsName: "intable outtable",
	}
	thresholds := addThresholdFlags(&cmd.Flags)
	kindFlag := cmd.Flags.String("kind", "repbase", "Annotation column to fill: repbase, self or ref")
	blastDir := cmd.Flags.String("blast-dir", "", "Directory holding one <id>.blast file per record")
	parallelism := cmd.Flags.Int("parallelism", 0, "Number of shards. Zero means the number of CPUs")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("annotate-blast takes intable outtable, but got %v", argv)
		}
		if *blastDir == "" {
			return fmt.Errorf("annotate-blast: -blast-dir is required")
		}
		kind, err := annotate.ParseKind(*kindFlag)
		if err != nil {
			return err
		}
		ctx := vcontext.Background()
		s, err := thresholds.load(ctx, &cmd.Flags, blastFlags)
		if err != nil {
			return err
		}
		_, err = annotate.AnnotateTable(ctx, argv[0], argv[1], *blastDir, kind, annotate.Opts{
			Blast:       s.Blast,
			Parallelism: *parallelism,
		})
		return err
	})
	return cmd
}

func newCmdResolveBlast() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "resolve-blast",
		Short:    "Print the consolidated intervals of one BLAST file",
		ArgsName: "blastpath",
	}
	thresholds := addThresholdFlags(&cmd.Flags)
	format := cmd.Flags.String("format", "self", "Annotation separator style: family (';') or self (',')")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("resolve-blast takes one pathname argument, but got %v", argv)
		}
		ctx := vcontext.Background()
		s, err := thresholds.load(ctx, &cmd.Flags, blastFlags)
		if err != nil {
			return err
		}
		var f blast.Formatter
		switch *format {
		case "family":
			f = blast.FamilyFormat
		case "self":
			f = blast.SelfFormat
		default:
			return fmt.Errorf("resolve-blast: unknown format %q", *format)
		}
		return resolveBlast(ctx, env.Stdout, argv[0], s.Blast, f)
	})
	return cmd
}

// resolveBlast writes the annotation string of path, then one
// "subject\tstart\tend\tflags" line per consolidated interval.
func resolveBlast(ctx context.Context, w io.Writer, path string, opts blast.Opts, f blast.Formatter) error {
	in, err := blast.ReadHitsFile(ctx, path)
	if err != nil {
		return err
	}
	if in.Alpha() {
		_, err = fmt.Fprintf(w, "ALPHA:%s\n", in.AlphaRef)
		return err
	}
	res, err := blast.Consolidate(in.Hits, opts)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintln(w, res.Format(f)); err != nil {
		return err
	}
	for _, s := range res.Subjects {
		for _, iv := range s.Intervals {
			flags := "-"
			if iv.Gapped {
				flags = "gapped"
			} else if iv.Changed {
				flags = "changed"
			}
			if _, err = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", s.ID, iv.Start, iv.End, flags); err != nil {
				return err
			}
		}
	}
	return nil
}

func newCmdExportFASTA() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "export-fasta",
		Short:    "Write the repeat arrays of a TR table as FASTA BLAST queries",
		ArgsName: "table fastapath",
	}
	monomer := cmd.Flags.Bool("monomer", false, "Write the consensus unit instead of the array")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("export-fasta takes table fastapath, but got %v", argv)
		}
		ctx := vcontext.Background()
		recs, err := trf.ReadTableFile(ctx, argv[0])
		if err != nil {
			return err
		}
		return trf.WriteFASTAFile(ctx, argv[1], recs, *monomer)
	})
	return cmd
}

// Run is the entry point of bio-trseeker.
func Run() {
	shutdown := grail.Init()
	cmdline.HideGlobalFlagsExcept()
	root := &cmdline.Command{
		Name:     "bio-trseeker",
		Short:    "Tandem repeat call and alignment interval consolidation",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdParseTRF(),
			newCmdAnnotateBlast(),
			newCmdResolveBlast(),
			newCmdExportFASTA(),
		},
	}
	env := cmdline.EnvFromOS()
	err := cmdline.ParseAndRun(root, env, os.Args[1:])
	shutdown()
	os.Exit(cmdline.ExitCode(err, env.Stderr))
}
