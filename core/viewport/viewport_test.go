package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"primerfig/core/geom"
)

var content = geom.Rect{X: 0, Y: -50, W: 1000, H: 200}

func TestFitAndCenter(t *testing.T) {
	v := New(content, 500, 500, DefaultOptions)
	v.Fit()
	tr := v.Transform()
	assert.InDelta(t, 0.5, tr.Scale, 1e-12)
	assert.InDelta(t, 0, tr.TX, 1e-12)
	assert.InDelta(t, 25, tr.TY, 1e-12)

	v.Center()
	tr = v.Transform()
	// 1000x200 at 0.5 is 500x100, centred vertically in 500.
	tl := tr.Apply(geom.Point{X: content.X, Y: content.Y})
	br := tr.Apply(geom.Point{X: content.MaxX(), Y: content.MaxY()})
	assert.InDelta(t, 0, tl.X, 1e-9)
	assert.InDelta(t, 200, tl.Y, 1e-9)
	assert.InDelta(t, 500, br.X, 1e-9)
	assert.InDelta(t, 300, br.Y, 1e-9)
}

func TestResizeThenFit(t *testing.T) {
	v := New(content, 500, 500, DefaultOptions)
	v.Resize(2000, 200)
	v.Fit()
	v.Center()
	tr := v.Transform()
	assert.InDelta(t, 1, tr.Scale, 1e-12)
	assert.InDelta(t, 500, tr.TX, 1e-12)
	assert.InDelta(t, 50, tr.TY, 1e-12)

	v.Resize(-3, -4)
	w, h := v.Size()
	assert.Equal(t, 0.0, w)
	assert.Equal(t, 0.0, h)
	v.Fit()
	assert.Equal(t, 1.0, v.Transform().Scale, "zero-sized viewport falls back to unit scale")
}

func TestZoomAt_KeepsPointFixed(t *testing.T) {
	v := New(content, 1000, 200, DefaultOptions)
	v.Fit()
	p := geom.Point{X: 300, Y: 80}
	before := v.Transform().Invert(p)
	v.ZoomAt(2, p)
	assert.InDelta(t, 2, v.Level(), 1e-12)
	after := v.Transform().Invert(p)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestZoomClamp(t *testing.T) {
	v := New(content, 1000, 200, Options{MinZoom: 0.5, MaxZoom: 4, ZoomStep: 2})
	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, 4.0, v.Level())
	for i := 0; i < 10; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, 0.5, v.Level())

	v.Zoom(0)
	v.Zoom(-1)
	assert.Equal(t, 0.5, v.Level(), "invalid factors ignored")
}

func TestPan(t *testing.T) {
	v := New(content, 1000, 200, DefaultOptions)
	v.Fit()
	before := v.Transform()
	v.Pan(10, -5)
	after := v.Transform()
	assert.Equal(t, before.TX+10, after.TX)
	assert.Equal(t, before.TY-5, after.TY)
	assert.Equal(t, before.Scale, after.Scale)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{MinZoom: 5, MaxZoom: 2}.withDefaults()
	assert.Equal(t, 2.0, o.MinZoom)
	assert.Equal(t, 5.0, o.MaxZoom)
	assert.Equal(t, DefaultOptions.ZoomStep, o.ZoomStep)
}

func TestMatrix(t *testing.T) {
	assert.Equal(t, "matrix(1,0,0,1,0,0)", Identity.Matrix())
	assert.Equal(t, "matrix(0.5,0,0,0.5,12.3457,0)", Transform{Scale: 0.5, TX: 12.345678, TY: -0.00001}.Matrix())
}
