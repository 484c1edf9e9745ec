// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// bio-trseeker resolves Tandem Repeats Finder output into non-redundant
// tandem-repeat tables and annotates them with consolidated BLAST hits.
//
// Usage:
//   bio-trseeker parse-trf -settings=settings.toml -output-dir=out seq1.dat seq2.dat.gz
//   bio-trseeker annotate-blast -settings=settings.toml -kind=repbase -blast-dir=blast/repbase in.tsv out.tsv
//   bio-trseeker resolve-blast -gap-size=1000 -min-align=500 -min-length=2400 -format=family 17.blast
//   bio-trseeker export-fasta out/seq1.trf.tsv arrays.fa
package main

import "github.com/grailbio/trseeker/cmd/bio-trseeker/cmd"

func main() {
	cmd.Run()
}
