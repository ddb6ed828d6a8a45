package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"primerfig/core/primer"
)

func exportFixture() (primer.Site, []primer.Pair) {
	pen := 0.75
	site := primer.Site{TemplateName: "chr1", TargetStart: 100, TargetLength: 50}
	pairs := []primer.Pair{
		{ID: "p1", Label: "Primer 1", HitCount: 1, Penalty: &pen, Sequences: []string{"ACGT", "TTGA"}},
		{ID: "p2", Label: "Primer 2", HitCount: 12},
		{ID: "p3", HitCount: 3},
	}
	return site, pairs
}

func TestExportRows_FiltersByMaxHit(t *testing.T) {
	site, pairs := exportFixture()
	rows := ExportRows(site, pairs, 5)
	require.Len(t, rows, 2)
	assert.Equal(t, "chr1-100-50", rows[0].SiteID)
	assert.Equal(t, "Primer 1", rows[0].Primer)
	assert.Equal(t, "p3", rows[1].Primer, "falls back to the id")

	assert.Len(t, ExportRows(site, pairs, -1), 3)
	assert.Empty(t, ExportRows(site, pairs, 0))
}

func TestWriteTSV(t *testing.T) {
	site, pairs := exportFixture()
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, ExportRows(site, pairs, -1)))
	want := ExportHeader + "\n" +
		"chr1-100-50\tPrimer 1\t0.75\t1\tACGT\tTTGA\n" +
		"chr1-100-50\tPrimer 2\t\t12\n" +
		"chr1-100-50\tp3\t\t3\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteXLSX(t *testing.T) {
	site, pairs := exportFixture()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, ExportRows(site, pairs, 5)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Primers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "#Site_ID", rows[0][0])
	assert.Equal(t, []string{"chr1-100-50", "Primer 1", "0.75", "1", "ACGT", "TTGA"}, rows[1])
	assert.Equal(t, "p3", rows[2][1])
	assert.Equal(t, "", rows[2][2])
}

func TestExportRows_HeadingSiteID(t *testing.T) {
	_, pairs := exportFixture()
	site := primer.Site{Heading: "target near exon 2"}
	rows := ExportRows(site, pairs, -1)
	require.Len(t, rows, 3)
	assert.Equal(t, "target near exon 2", rows[0].SiteID)
}
