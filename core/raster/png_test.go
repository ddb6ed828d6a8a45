package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"primerfig/core/diagram"
	"primerfig/core/geom"
	"primerfig/core/primer"
	"primerfig/core/viewport"
)

func drawing(t *testing.T) *diagram.Drawing {
	t.Helper()
	site := primer.Site{TemplateName: "chr1", TargetStart: 100, TargetLength: 50}
	pairs := []primer.Pair{{ID: "p1", LeftStart: 80, LeftEnd: 100, RightStart: 160, RightEnd: 180, HitCount: 1}}
	d, err := diagram.Build(site, pairs, diagram.DefaultOptions)
	require.NoError(t, err)
	return d
}

func fitted(d *diagram.Drawing, w, h float64) viewport.Transform {
	v := viewport.New(d.Bounds, w, h, viewport.DefaultOptions)
	v.Fit()
	v.Center()
	return v.Transform()
}

func TestWritePNG(t *testing.T) {
	d := drawing(t)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, d, fitted(d, 500, 150), Options{Width: 500, Height: 150, Supersample: 2}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestRender_DrawsGlyphs(t *testing.T) {
	d := drawing(t)
	tr := fitted(d, 1000, 300)
	img, err := Render(d, tr, Options{Width: 1000, Height: 300, Supersample: 1})
	require.NoError(t, err)

	// Middle of the forward arrow shaft is filled with the row color (black).
	p := tr.Apply(geom.Point{X: 70, Y: 30})
	c := color.RGBAModel.Convert(img.At(int(p.X), int(p.Y))).(color.RGBA)
	assert.Less(t, c.R, uint8(64))

	// Far corner stays background.
	c = color.RGBAModel.Convert(img.At(999, 299)).(color.RGBA)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c)
}

func TestRender_NominalSize(t *testing.T) {
	d := drawing(t)
	img, err := Render(d, viewport.Identity, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestRender_EmptyCanvas(t *testing.T) {
	_, err := Render(&diagram.Drawing{}, viewport.Identity, Options{})
	assert.Error(t, err)
}

// Run with -race: renders share the parsed font but never a face.
func TestRender_Concurrent(t *testing.T) {
	d := drawing(t)
	opt := Options{Supersample: 1}
	want, err := Render(d, viewport.Identity, opt)
	require.NoError(t, err)

	const n = 8
	got := make([][]byte, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			img, err := Render(d, viewport.Identity, opt)
			if err != nil {
				return err
			}
			got[i] = img.Pix
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for i := range got {
		assert.Equal(t, want.Pix, got[i], "render %d", i)
	}
}
