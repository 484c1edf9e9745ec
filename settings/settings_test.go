package settings

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/trseeker/blast"
	"github.com/grailbio/trseeker/trf"
	"github.com/stretchr/testify/require"
)

const full = `
[trf]
overlap_ratio_cutoff = 0.4
gc_diff_cutoff = 0.1

[blast]
gap_size = 500
min_align = 100
min_length = 1000
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(full))
	require.NoError(t, err)
	require.Equal(t, trf.Opts{OverlapRatioCutoff: 0.4, GCDiffCutoff: 0.1}, s.TRF)
	require.Equal(t, blast.Opts{GapSize: 500, MinAlign: 100, MinLength: 1000}, s.Blast)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"missing key", strings.Replace(full, "min_align = 100\n", "", 1), "blast.min_align"},
		{"missing section", "[blast]\ngap_size = 1\nmin_align = 1\nmin_length = 1\n", "trf.overlap_ratio_cutoff, trf.gc_diff_cutoff"},
		{"bad value", strings.Replace(full, "0.4", "1.4", 1), "overlap ratio"},
		{"syntax", "[trf\n", ""},
	}
	for _, test := range tests {
		_, err := Parse([]byte(test.doc))
		require.Error(t, err, test.name)
		expect.True(t, errors.Is(errors.Invalid, err), test.name)
		require.Contains(t, err.Error(), test.want, test.name)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	tmpDir, cleanup := testutil.TempDir(t, "", "settings")
	defer cleanup()

	path := filepath.Join(tmpDir, "settings.toml")
	assert.NoError(t, ioutil.WriteFile(path, []byte(full), 0644))
	s, err := Load(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, s.Blast.GapSize, blast.Opts{GapSize: 500}.GapSize)

	_, err = Load(ctx, filepath.Join(tmpDir, "nonexistent.toml"))
	expect.True(t, err != nil)

	expect.NoError(t, Default().Validate())
}
