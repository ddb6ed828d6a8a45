package svg

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerfig/core/diagram"
	"primerfig/core/geom"
	"primerfig/core/primer"
	"primerfig/core/viewport"
)

func writeIfMissingOrUpdate(path string, got string) (created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		return true, os.WriteFile(path, []byte(got), 0o644)
	}
	if _, e := os.Stat(path); os.IsNotExist(e) {
		return true, os.WriteFile(path, []byte(got), 0o644)
	}
	return false, nil
}

func sample(t *testing.T) *diagram.Drawing {
	t.Helper()
	site := primer.Site{TemplateName: "chr1<&>", TargetStart: 100, TargetLength: 50}
	pairs := []primer.Pair{
		{ID: "p1", LeftStart: 80, LeftEnd: 100, RightStart: 160, RightEnd: 180, HitCount: 1},
		{ID: "p2", LeftStart: 85, LeftEnd: 104, RightStart: 150, RightEnd: 171, HitCount: 50},
	}
	d, err := diagram.Build(site, pairs, diagram.DefaultOptions)
	require.NoError(t, err)
	return d
}

func TestWrite_Golden(t *testing.T) {
	got := String(sample(t), viewport.Identity)
	path := filepath.Join("testdata", "two_rows.svg.golden")
	if created, err := writeIfMissingOrUpdate(path, got); err != nil {
		t.Fatalf("write golden: %v", err)
	} else if created {
		t.Logf("wrote %s", path)
		return
	}
	want, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), got)
}

func TestWrite_Structure(t *testing.T) {
	var sb strings.Builder
	tr := viewport.Transform{Scale: 0.5, TX: 10, TY: 20}
	require.NoError(t, Write(&sb, sample(t), tr, 640, 0))
	out := sb.String()

	assert.Contains(t, out, `width="640" height="150"`)
	assert.Contains(t, out, `<g class="viewport" transform="matrix(0.5,0,0,0.5,10,20)">`)
	assert.Contains(t, out, `<path class="domain" d="M0,-6V0H1000V-6"`)
	assert.Contains(t, out, `>Template chr1&lt;&amp;&gt;</text>`)
	assert.Contains(t, out, `<rect class="target" x="200" y="-15" width="500" height="30" fill="none" stroke="red" stroke-width="3"/>`)
	assert.Contains(t, out, `<a xlink:href="#p1" class="primerGroup" title="Primer 1"><title>Primer 1</title>`)
	assert.Contains(t, out, `<path d="M0,25L140,25L140,20L200,30L140,40L140,35L0,35L0,25" fill="rgb(0,0,0)" stroke="rgb(0,0,0)"/>`)
	assert.Contains(t, out, `<path d="M200,30L800,30"`)
	assert.Equal(t, 2, strings.Count(out, `class="primerGroup"`))
	assert.Equal(t, 6, strings.Count(out, `<path d=`))

	// Well-formed XML.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestPathData(t *testing.T) {
	assert.Equal(t, "", PathData(nil))
	assert.Equal(t, "M1.5,-2L3,4", PathData([]geom.Point{{X: 1.5, Y: -2}, {X: 3, Y: 4}}))
}
