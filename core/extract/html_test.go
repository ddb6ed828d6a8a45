package extract

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelsFromHTML(t *testing.T) {
	fh, err := os.Open("testdata/panel.html")
	require.NoError(t, err)
	defer func() { _ = fh.Close() }()

	srcs, err := PanelsFromHTML(fh)
	require.NoError(t, err)
	require.Len(t, srcs, 2, "alert box must not count as a panel")

	res, err := srcs[0].Extract()
	require.NoError(t, err)
	assert.Equal(t, "site-1", res.Site.ID)
	assert.Equal(t, "chr1", res.Site.TemplateName)
	assert.Equal(t, 100, res.Site.TargetStart)
	assert.Equal(t, 50, res.Site.TargetLength)

	require.Len(t, res.Pairs, 2)
	p := res.Pairs[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Primer 1", p.Label)
	assert.Equal(t, [4]float64{80, 100, 160, 180}, p.Coords())
	assert.Equal(t, 1.0, p.HitCount)
	require.NotNil(t, p.Penalty)
	assert.InDelta(t, 0.42, *p.Penalty, 1e-9)
	assert.Equal(t, []string{"ACGTACGTACGTACGTACGT", "TTGCATTGCATTGCATTGCA"}, p.Sequences)

	assert.Equal(t, "p3", res.Pairs[1].ID)
	assert.Nil(t, res.Pairs[1].Penalty)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "p2", res.Diagnostics[0].ID)
	assert.ErrorIs(t, res.Diagnostics[0], ErrMalformedSpan)

	res, err = srcs[1].Extract()
	require.NoError(t, err)
	assert.Equal(t, "p-two", res.Site.ID)
	assert.Empty(t, res.Pairs)
}

func TestHTMLPanel_BadSiteDetail(t *testing.T) {
	doc := `<div class="panel"><small class="site-detail" data-seq="x" data-pos="abc" data-length="5"></small></div>`
	srcs, err := PanelsFromHTML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	_, err = srcs[0].Extract()
	assert.ErrorIs(t, err, ErrBadSite)
}

func TestHTMLPanel_Nil(t *testing.T) {
	_, err := HTMLPanel{}.Extract()
	assert.ErrorIs(t, err, ErrBadSite)
}

func TestPanelsFromHTML_NestedPanels(t *testing.T) {
	fh, err := os.Open("testdata/nested.html")
	require.NoError(t, err)
	defer func() { _ = fh.Close() }()

	srcs, err := PanelsFromHTML(fh)
	require.NoError(t, err)
	require.Len(t, srcs, 2, "wrapper panel must not become a site")

	want := []struct {
		id, template string
		pairs        []string
	}{
		{"site-chr1", "chr1", []string{"a1"}},
		{"site-chr2", "chr2", []string{"b1"}},
	}
	for i, w := range want {
		res, err := srcs[i].Extract()
		require.NoError(t, err)
		assert.Equal(t, w.id, res.Site.ID)
		assert.Equal(t, w.template, res.Site.TemplateName)
		var ids []string
		for _, p := range res.Pairs {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, w.pairs, ids, "site %s", w.template)
		assert.Empty(t, res.Diagnostics)
	}
}

func TestHTMLPanel_HeadingFallback(t *testing.T) {
	doc := `<div class="panel"><div class="panel-heading"><small class="site-detail"> my target </small></div>
<ul><li class="list-group-item"><h4 class="list-group-item-heading" id="p1">Primer 1</h4>
<span class="primer-left-region">1-5</span><span class="primer-right-region">9-12</span>
<span class="hit-num" data-hit="2">2</span></li></ul></div>`
	srcs, err := PanelsFromHTML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	res, err := srcs[0].Extract()
	require.NoError(t, err)
	assert.Equal(t, "my target", res.Site.Heading)
	assert.Equal(t, "my target", res.Site.Key())
	assert.Equal(t, 0, res.Site.TargetStart)
	require.Len(t, res.Pairs, 1)
}
