// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package trf

import (
	"context"
	"io"
	"strconv"

	"github.com/grailbio/trseeker/encoding/fasta"
	"github.com/grailbio/trseeker/util"
)

// WriteFASTA writes one FASTA record per repeat, named by ID.  The sequence
// is the repeat array, or the consensus unit if monomer is set.  These are
// the queries whose BLAST output Annotate consumes.
func WriteFASTA(w io.Writer, recs []*Record, monomer bool) error {
	fw := fasta.NewWriter(w)
	for _, r := range recs {
		seq := r.Array
		if monomer {
			seq = r.Consensus
		}
		if err := fw.Write(strconv.FormatInt(r.ID, 10), seq); err != nil {
			return err
		}
	}
	return nil
}

// WriteFASTAFile is WriteFASTA to path.
func WriteFASTAFile(ctx context.Context, path string, recs []*Record, monomer bool) error {
	return util.WriteOutput(ctx, path, func(w io.Writer) error {
		return WriteFASTA(w, recs, monomer)
	})
}
