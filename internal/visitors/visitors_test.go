package visitors

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"primerfig/core/diagram"
	"primerfig/core/primer"
	"primerfig/internal/cmdutil"
	"primerfig/internal/output"
	"primerfig/internal/pipeline"
)

func result(panel, tmpl string) pipeline.Result {
	site := primer.Site{TemplateName: tmpl, TargetStart: 1, TargetLength: 2}
	return pipeline.Result{
		Item: output.Item{PanelID: panel, Drawing: &diagram.Drawing{Site: site}},
		Site: site,
	}
}

func TestRendered(t *testing.T) {
	var b bytes.Buffer
	v := Rendered{Log: cmdutil.NewLogger(&b, cmdutil.LevelWarn)}

	keep, it, err := v.Visit(result("p1", "chr1"))
	assert.True(t, keep)
	assert.NoError(t, err)
	assert.Equal(t, "p1", it.PanelID)

	bad := pipeline.Result{Item: output.Item{PanelID: "p2", SourceFile: "in.json"}, Err: errors.New("empty")}
	keep, _, err = v.Visit(bad)
	assert.False(t, keep)
	assert.NoError(t, err)
	assert.Equal(t, "WARN: in.json: p2: empty\n", b.String())
}

func TestUniqueSites(t *testing.T) {
	var b bytes.Buffer
	v := NewUniqueSites(cmdutil.NewLogger(&b, cmdutil.LevelInfo))
	var kept []string
	for _, r := range []pipeline.Result{result("a", "chr1"), result("b", "chr2"), result("c", "chr1")} {
		if keep, it, _ := v.Visit(r); keep {
			kept = append(kept, it.PanelID)
		}
	}
	assert.Equal(t, []string{"a", "b"}, kept)
	assert.Contains(t, b.String(), "duplicate site chr1-1-2")
}
