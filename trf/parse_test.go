package trf

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/trseeker/interval"
	"github.com/grailbio/trseeker/util"
)

const testDat = `Tandem Repeats Finder Program written by:

Gary Benson
Program in Bioinformatics
Boston University
Version 4.09

Sequence: gi|224589800|ref|NC_000001.10| Homo sapiens chromosome 1, GRCh37.p13 Primary Assembly

Parameters: 2 7 7 80 10 50 500

10 50 4 10.2 4 95 0 74 25 25 25 25 2.00 ACGT ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTA
10 50 4 10.2 4 98 0 80 25 25 25 25 2.00 ACGT ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTA
12 x 4 10.2 4 98 0 80 25 25 25 25 2.00 ACGT ACGT
60 70 2 5.5 2 100 0 22 50 0 50 0 1.00 AG AGAGAGAGAGA
Sequence: contig_7 unplaced scaffold
Parameters: 2 7 7 80 10 50 500
1 10 1 10.0 1 100 0 20 0 50 50 0 1.00 C CCCCCGGGGG
`

func TestScanner(t *testing.T) {
	sc := NewScanner(strings.NewReader(testDat))
	var blocks []Block
	for sc.Scan() {
		blocks = append(blocks, sc.Block())
	}
	assert.NoError(t, sc.Err())
	assert.EQ(t, len(blocks), 2)
	expect.EQ(t, blocks[0].Head, "gi|224589800|ref|NC_000001.10| Homo sapiens chromosome 1, GRCh37.p13 Primary Assembly")
	expect.EQ(t, blocks[0].Params, "2 7 7 80 10 50 500")
	expect.EQ(t, len(blocks[0].Lines), 4)
	expect.EQ(t, blocks[1].Head, "contig_7 unplaced scaffold")
	expect.EQ(t, len(blocks[1].Lines), 1)
}

func TestParseLine(t *testing.T) {
	r, err := ParseLine("20 30 2 5.5 2 100 0 22 50 0 50 0 1.00 AG AGAGAGAGAGA")
	assert.NoError(t, err)
	expect.EQ(t, r.Range, interval.Range{Start: 20, End: 30})
	expect.EQ(t, r.Period, 2)
	expect.EQ(t, r.NCopy, 5.5)
	expect.EQ(t, r.Quality, 100.0)
	expect.EQ(t, r.Score, 22)
	expect.EQ(t, []int{r.NA, r.NC, r.NG, r.NT}, []int{50, 0, 50, 0})
	expect.EQ(t, r.Entropy, 1.0)
	expect.EQ(t, r.Consensus, "ag")
	expect.EQ(t, r.Array, "agagagagaga")
	expect.EQ(t, r.ArrayLen, 11)
	expect.EQ(t, r.ConsensusGC, 0.5)
	expect.EQ(t, r.PVar(), 0.0)

	for _, line := range []string{
		"20 30 2 5.5",
		"20 x 2 5.5 2 100 0 22 50 0 50 0 1.00 AG AGAG",
		"20 30 2 5.5 2 high 0 22 50 0 50 0 1.00 AG AGAG",
	} {
		_, err := ParseLine(line)
		expect.True(t, interval.IsParseError(err), "%s: %v", line, err)
	}
}

func TestHeadFields(t *testing.T) {
	tests := []struct {
		head    string
		gi, chr string
	}{
		{"gi|224589800|ref|NC_000001.10| Homo sapiens chromosome 1, GRCh37.p13", "224589800", "1"},
		{">chrX_random some text", "chrX_random", "?"},
		{"NT_1 Mus musculus chromosome X genomic contig", "NT_1", "X"},
		{"", "", "?"},
	}
	for _, test := range tests {
		expect.EQ(t, parseGI(test.head), test.gi, test.head)
		expect.EQ(t, parseChromosome(test.head), test.chr, test.head)
	}
}

func TestRead(t *testing.T) {
	recs, stats, err := Read(strings.NewReader(testDat), DefaultOpts, 1)
	assert.NoError(t, err)
	expect.EQ(t, stats, Stats{Blocks: 2, Raw: 4, Kept: 3})
	assert.EQ(t, len(recs), 3)

	expect.EQ(t, recs[0].ID, int64(1))
	expect.EQ(t, recs[0].Range, interval.Range{Start: 10, End: 50})
	expect.EQ(t, recs[0].Quality, 98.0)
	expect.EQ(t, recs[0].GI, "224589800")
	expect.EQ(t, recs[0].Chr, "1")
	expect.EQ(t, recs[0].Params, "2 7 7 80 10 50 500")

	expect.EQ(t, recs[1].Range, interval.Range{Start: 60, End: 70})
	expect.EQ(t, recs[1].ID, int64(2))

	expect.EQ(t, recs[2].ID, int64(3))
	expect.EQ(t, recs[2].GI, "contig_7")
	expect.EQ(t, recs[2].ArrayGC, 1.0)
}

func TestParseFile(t *testing.T) {
	ctx := context.Background()
	tmpDir, cleanup := testutil.TempDir(t, "", "trf")
	defer cleanup()

	_, _, err := ParseFile(ctx, filepath.Join(tmpDir, "missing.dat"), DefaultOpts, 1)
	expect.True(t, interval.IsMissingInput(err), "err: %v", err)

	path := filepath.Join(tmpDir, "in.dat.gz")
	assert.NoError(t, util.WriteOutput(ctx, path, func(w io.Writer) error {
		_, err := io.WriteString(w, testDat)
		return err
	}))
	recs, stats, err := ParseFile(ctx, path, DefaultOpts, 100)
	assert.NoError(t, err)
	expect.EQ(t, stats.Kept, 3)
	expect.EQ(t, recs[0].ID, int64(100))
}
