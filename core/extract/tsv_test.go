package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSites = `# primer list
#site chr1 100 50 site-1
p1 80-100 160-180 1 0.25
p2 70-90 150-170 100

#site chr2 10 5
q1 1-4 20-24 7
`

func TestReadTSV(t *testing.T) {
	srcs, err := ReadTSV(strings.NewReader(twoSites))
	require.NoError(t, err)
	require.Len(t, srcs, 2)

	res, err := srcs[0].Extract()
	require.NoError(t, err)
	assert.Equal(t, "site-1", res.Site.ID)
	require.Len(t, res.Pairs, 2)
	require.NotNil(t, res.Pairs[0].Penalty)
	assert.Equal(t, 0.25, *res.Pairs[0].Penalty)
	assert.Equal(t, 100.0, res.Pairs[1].HitCount)

	res, err = srcs[1].Extract()
	require.NoError(t, err)
	assert.Equal(t, "chr2-10-5", res.Site.PanelID())
	assert.Len(t, res.Pairs, 1)
}

func TestReadTSV_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"record first":  "p1 1-2 3-4 1\n",
		"short site":    "#site chr1 100\n",
		"bad site num":  "#site chr1 x 5\n",
		"field count":   "#site chr1 1 5\np1 1-2 3-4\n",
		"too many cols": "#site chr1 1 5\np1 1-2 3-4 1 2 3\n",
	} {
		_, err := ReadTSV(strings.NewReader(in))
		assert.Error(t, err, name)
	}
}

func TestLoadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primers.tsv")
	require.NoError(t, os.WriteFile(path, []byte(twoSites), 0o644))

	srcs, err := LoadTSV(path)
	require.NoError(t, err)
	assert.Len(t, srcs, 2)

	_, err = LoadTSV(filepath.Join(t.TempDir(), "missing.tsv"))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("a.JSON", nil))
	assert.Equal(t, FormatHTML, DetectFormat("a.htm", nil))
	assert.Equal(t, FormatTSV, DetectFormat("a.txt", nil))
	assert.Equal(t, FormatJSON, DetectFormat("", []byte("  [ {} ]")))
	assert.Equal(t, FormatHTML, DetectFormat("", []byte("<html>")))
	assert.Equal(t, FormatTSV, DetectFormat("", []byte("#site a 1 2")))
	assert.Equal(t, FormatTSV, DetectFormat("", nil))
}

func TestRead_Dispatch(t *testing.T) {
	srcs, err := Read("", FormatAuto, strings.NewReader(`{"template":"a","target_start":1,"target_length":2}`))
	require.NoError(t, err)
	assert.Len(t, srcs, 1)

	_, err = Read("", "yaml", strings.NewReader(""))
	assert.Error(t, err)
}

func TestRecords_KeepsOrder(t *testing.T) {
	res, err := Records{Rows: []Raw{
		{ID: "b", Left: "1-2", Right: "5-6", Hit: "1"},
		{ID: "a", LeftStart: "3", LeftEnd: "4", Right: "7-8", Hit: "2.0"},
		{ID: "c", Left: "1-2", Right: "5-6", Hit: "1e400"},
	}}.Extract()
	require.NoError(t, err)
	require.Len(t, res.Pairs, 2)
	assert.Equal(t, "b", res.Pairs[0].ID)
	assert.Equal(t, "a", res.Pairs[1].ID)
	assert.Equal(t, [4]float64{3, 4, 7, 8}, res.Pairs[1].Coords())
	require.Len(t, res.Diagnostics, 1)
	assert.ErrorIs(t, res.Diagnostics[0], ErrNotNumeric)
}
