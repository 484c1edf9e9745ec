package annotate

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/trseeker/blast"
	"github.com/grailbio/trseeker/interval"
	"github.com/grailbio/trseeker/trf"
)

const dat1 = `Sequence: seq1 chromosome 2
Parameters: 2 7 7 80 10 50 500
10 50 4 10.2 4 95 0 74 25 25 25 25 2.00 ACGT ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTA
10 50 4 10.2 4 98 0 80 25 25 25 25 2.00 ACGT ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTA
Sequence: seq2 chromosome 3
Parameters: 2 7 7 80 10 50 500
1 10 1 10.0 1 100 0 20 0 50 50 0 1.00 C CCCCCGGGGG
`

const dat2 = `Sequence: seq3
Parameters: 2 7 7 80 10 50 500
5 25 2 10.0 2 90 0 40 50 0 50 0 1.00 AG AGAGAGAGAGAGAGAGAGAG
30 40 2 5.0 2 90 0 20 50 0 50 0 1.00 AG AGAGAGAGAG
`

const twoSubjects = "1\tchr2\t99\t3000\t0\t0\t1\t3000\t1\t3000\t0.0\t5000\n" +
	"1\tchr1\t99\t3000\t0\t0\t1\t3000\t1\t3000\t0.0\t5000\n" +
	"1\tchr9\t99\t30\t0\t0\t1\t30\t1\t30\t1e-5\t50\n"

func write(t *testing.T, path, data string) {
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
}

func TestResolveTRF(t *testing.T) {
	ctx := context.Background()
	tmpDir, cleanup := testutil.TempDir(t, "", "annotate")
	defer cleanup()

	in := []string{filepath.Join(tmpDir, "a.dat"), filepath.Join(tmpDir, "b.dat")}
	out := []string{filepath.Join(tmpDir, "a.tsv"), filepath.Join(tmpDir, "b.tsv.gz")}
	write(t, in[0], dat1)
	write(t, in[1], dat2)

	opts := Opts{TRF: trf.DefaultOpts, Parallelism: 2, Verify: true}
	stats, err := ResolveTRF(ctx, in, out, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats, Stats{Units: 2, Records: 4})

	a, err := trf.ReadTableFile(ctx, out[0])
	assert.NoError(t, err)
	b, err := trf.ReadTableFile(ctx, out[1])
	assert.NoError(t, err)
	assert.EQ(t, len(a), 2)
	assert.EQ(t, len(b), 2)
	expect.EQ(t, []int64{a[0].ID, a[1].ID, b[0].ID, b[1].ID}, []int64{1, 2, 3, 4})
	expect.EQ(t, a[0].Quality, 98.0)
	expect.EQ(t, a[1].Chr, "3")

	_, err = ResolveTRF(ctx, []string{filepath.Join(tmpDir, "missing.dat")}, []string{filepath.Join(tmpDir, "x.tsv")}, opts)
	expect.True(t, interval.IsMissingInput(err), "err: %v", err)
}

func TestAnnotate(t *testing.T) {
	ctx := context.Background()
	tmpDir, cleanup := testutil.TempDir(t, "", "annotate")
	defer cleanup()

	write(t, BlastPath(tmpDir, 1), twoSubjects)
	write(t, BlastPath(tmpDir, 2), "ALPHA\t77\n")
	write(t, BlastPath(tmpDir, 4), "")

	newRecs := func() []*trf.Record {
		return []*trf.Record{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	}
	opts := Opts{Blast: blast.DefaultOpts, Parallelism: 3}

	recs := newRecs()
	stats, err := Annotate(ctx, recs, tmpDir, Self, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats, Stats{Units: 4, Records: 4})
	expect.EQ(t, recs[0].FamilySelf, "chr1,chr2")
	expect.EQ(t, recs[1].FamilySelf, "ALPHA:77")
	expect.EQ(t, recs[2].FamilySelf, "")
	expect.EQ(t, recs[3].FamilySelf, "")

	recs = newRecs()
	recs[1].Repbase = "old"
	stats, err = Annotate(ctx, recs, tmpDir, Repbase, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Failed, 1)
	expect.EQ(t, recs[0].Repbase, "chr1;chr2")
	expect.EQ(t, recs[1].Repbase, "old")
}

func TestAnnotateTable(t *testing.T) {
	ctx := context.Background()
	tmpDir, cleanup := testutil.TempDir(t, "", "annotate")
	defer cleanup()

	in, out := filepath.Join(tmpDir, "in.tsv"), filepath.Join(tmpDir, "out.tsv")
	assert.NoError(t, trf.WriteTableFile(ctx, in, []*trf.Record{{ID: 1, GI: "seq1"}}))
	write(t, BlastPath(tmpDir, 1), twoSubjects)

	_, err := AnnotateTable(ctx, in, out, tmpDir, Ref, Opts{Blast: blast.DefaultOpts})
	assert.NoError(t, err)
	recs, err := trf.ReadTableFile(ctx, out)
	assert.NoError(t, err)
	assert.EQ(t, len(recs), 1)
	expect.EQ(t, recs[0].FamilyRef, "chr1,chr2")
	expect.EQ(t, recs[0].GI, "seq1")
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Repbase, Self, Ref} {
		got, err := ParseKind(k.String())
		assert.NoError(t, err)
		expect.EQ(t, got, k)
	}
	_, err := ParseKind("bogus")
	expect.True(t, err != nil)
}
