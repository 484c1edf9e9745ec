package blast

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/trseeker/interval"
)

const testBlast = `# BLASTN 2.2.28+
# Query: 17
# Database: repbase
# Fields: query id, subject id, % identity, alignment length, mismatches, gap opens, q. start, q. end, s. start, s. end, evalue, bit score
# 3 hits found
17	ALR_Alpha	91.18	2040	180	0	1	2040	1	2040	0.0	2959
17	ALR_Alpha	88.50	600	69	0	2600	2000	171	771	1e-150	537
17	SVA_A	75.00	120	30	0	3000	3120	5	125	2e-05	52.7
`

func TestReadHits(t *testing.T) {
	in, err := ReadHits(strings.NewReader(testBlast))
	assert.NoError(t, err)
	expect.False(t, in.Alpha())
	assert.EQ(t, len(in.Hits), 3)
	expect.EQ(t, in.Hits[0], Hit{
		QueryID: "17", SubjectID: "ALR_Alpha", PIdent: 91.18, Length: 2040, Mismatch: 180,
		QStart: 1, QEnd: 2040, SStart: 1, SEnd: 2040, EValue: 0, BitScore: 2959,
	})
	expect.EQ(t, in.Hits[1].QueryRange(), interval.Range{Start: 2600, End: 2000})
	expect.EQ(t, in.Hits[2].EValue, 2e-05)

	s, err := Annotation(in, DefaultOpts, FamilyFormat)
	assert.NoError(t, err)
	expect.EQ(t, s, "ALR_Alpha")

	in, err = ReadHits(strings.NewReader("ALPHA\t1234\n"))
	assert.NoError(t, err)
	expect.EQ(t, in.AlphaRef, "1234")

	_, err = ReadHits(strings.NewReader("ALPHA\n"))
	expect.True(t, interval.IsParseError(err), "err: %v", err)

	_, err = ReadHits(strings.NewReader("17\tALR\tnotanumber\t1\t1\t1\t1\t1\t1\t1\t1\t1\n"))
	expect.True(t, interval.IsParseError(err), "err: %v", err)
}

func TestReadHitsFile(t *testing.T) {
	ctx := context.Background()
	tmpDir, cleanup := testutil.TempDir(t, "", "blast")
	defer cleanup()

	in, err := ReadHitsFile(ctx, filepath.Join(tmpDir, "missing.blast"))
	assert.NoError(t, err)
	expect.EQ(t, len(in.Hits), 0)

	empty := filepath.Join(tmpDir, "empty.blast")
	assert.NoError(t, ioutil.WriteFile(empty, nil, 0644))
	in, err = ReadHitsFile(ctx, empty)
	assert.NoError(t, err)
	expect.EQ(t, len(in.Hits), 0)

	path := filepath.Join(tmpDir, "17.blast")
	assert.NoError(t, ioutil.WriteFile(path, []byte(testBlast), 0644))
	in, err = ReadHitsFile(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, len(in.Hits), 3)
}
