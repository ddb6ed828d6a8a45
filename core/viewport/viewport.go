// Package viewport implements the pan/zoom view onto a drawing's content.
//
// Zoom levels are relative to the fitted scale: level 1 shows the whole
// content inside the viewport, level 2 doubles it. Levels are clamped to
// [MinZoom, MaxZoom].
package viewport

import (
	"fmt"
	"math"

	"primerfig/core/geom"
)

// Viewport is the capability the view controller drives for every panel.
type Viewport interface {
	Fit()
	Center()
	Resize(w, h float64)
	Pan(dx, dy float64)
	Zoom(factor float64)
	Transform() Transform
}

// Transform maps content coordinates to screen coordinates:
// screen = content*Scale + (TX, TY).
type Transform struct {
	Scale  float64
	TX, TY float64
}

// Identity leaves content coordinates unchanged.
var Identity = Transform{Scale: 1}

// Apply maps a content point to the screen.
func (t Transform) Apply(p geom.Point) geom.Point {
	return geom.Point{X: p.X*t.Scale + t.TX, Y: p.Y*t.Scale + t.TY}
}

// Invert maps a screen point back to content coordinates.
func (t Transform) Invert(p geom.Point) geom.Point {
	if t.Scale == 0 {
		return p
	}
	return geom.Point{X: (p.X - t.TX) / t.Scale, Y: (p.Y - t.TY) / t.Scale}
}

// Matrix renders t as an SVG transform attribute value.
func (t Transform) Matrix() string {
	return fmt.Sprintf("matrix(%s,0,0,%s,%s,%s)", num(t.Scale), num(t.Scale), num(t.TX), num(t.TY))
}

func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0 // drop negative zero
	}
	return fmt.Sprintf("%g", v)
}

// Options bound the zoom level.
type Options struct {
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64 // factor for ZoomIn/ZoomOut
}

// DefaultOptions match a typical wheel-zoom canvas.
var DefaultOptions = Options{MinZoom: 0.1, MaxZoom: 10, ZoomStep: 1.25}

func (o Options) withDefaults() Options {
	d := DefaultOptions
	if o.MinZoom <= 0 {
		o.MinZoom = d.MinZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = d.MaxZoom
	}
	if o.MaxZoom < o.MinZoom {
		o.MinZoom, o.MaxZoom = o.MaxZoom, o.MinZoom
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = d.ZoomStep
	}
	return o
}

// PanZoom is the default Viewport. It is not safe for concurrent use; the
// view controller serializes access per panel.
type PanZoom struct {
	opt     Options
	content geom.Rect
	w, h    float64

	level  float64
	tx, ty float64
}

var _ Viewport = (*PanZoom)(nil)

// New returns a viewport of size w x h showing content at level 1 with the
// content origin at the viewport origin. Callers normally Fit and Center
// right away.
func New(content geom.Rect, w, h float64, opt Options) *PanZoom {
	v := &PanZoom{opt: opt.withDefaults(), content: content, w: w, h: h, level: 1}
	s := v.scale()
	v.tx, v.ty = -content.X*s, -content.Y*s
	return v
}

// Factory builds a viewport for content on a surface of size w x h.
type Factory func(content geom.Rect, w, h float64) Viewport

// NewFactory returns a Factory producing PanZoom viewports with opt.
func NewFactory(opt Options) Factory {
	return func(content geom.Rect, w, h float64) Viewport { return New(content, w, h, opt) }
}

// fitScale is the scale at which the whole content fits.
func (v *PanZoom) fitScale() float64 {
	if v.content.W <= 0 || v.content.H <= 0 || v.w <= 0 || v.h <= 0 {
		return 1
	}
	return math.Min(v.w/v.content.W, v.h/v.content.H)
}

func (v *PanZoom) scale() float64 { return v.fitScale() * v.level }

// Fit resets the level to 1 and aligns the content origin with the viewport
// origin.
func (v *PanZoom) Fit() {
	v.level = 1
	s := v.scale()
	v.tx, v.ty = -v.content.X*s, -v.content.Y*s
}

// Center keeps the scale and centres the content in the viewport.
func (v *PanZoom) Center() {
	s := v.scale()
	v.tx = (v.w-v.content.W*s)/2 - v.content.X*s
	v.ty = (v.h-v.content.H*s)/2 - v.content.Y*s
}

// Resize records a new viewport size. The level is kept, so the on-screen
// scale follows the new fitted scale; callers normally Fit and Center next.
func (v *PanZoom) Resize(w, h float64) {
	v.w, v.h = max(w, 0), max(h, 0)
}

// Pan shifts the view by a screen-space delta.
func (v *PanZoom) Pan(dx, dy float64) {
	v.tx += dx
	v.ty += dy
}

// Zoom multiplies the level by factor about the viewport centre.
func (v *PanZoom) Zoom(factor float64) {
	v.ZoomAt(factor, geom.Point{X: v.w / 2, Y: v.h / 2})
}

// ZoomAt multiplies the level by factor keeping the screen point p fixed.
func (v *PanZoom) ZoomAt(factor float64, p geom.Point) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	before := v.scale()
	v.level = v.clamp(v.level * factor)
	after := v.scale()
	if before == 0 {
		return
	}
	k := after / before
	v.tx = p.X - (p.X-v.tx)*k
	v.ty = p.Y - (p.Y-v.ty)*k
}

// ZoomIn zooms one step in about the centre.
func (v *PanZoom) ZoomIn() { v.Zoom(v.opt.ZoomStep) }

// ZoomOut zooms one step out about the centre.
func (v *PanZoom) ZoomOut() { v.Zoom(1 / v.opt.ZoomStep) }

// Level is the zoom relative to the fitted scale.
func (v *PanZoom) Level() float64 { return v.level }

// Size is the current viewport size.
func (v *PanZoom) Size() (w, h float64) { return v.w, v.h }

// Content is the content rectangle the viewport shows.
func (v *PanZoom) Content() geom.Rect { return v.content }

// Transform returns the current content-to-screen mapping.
func (v *PanZoom) Transform() Transform {
	return Transform{Scale: v.scale(), TX: v.tx, TY: v.ty}
}

func (v *PanZoom) clamp(level float64) float64 {
	return min(max(level, v.opt.MinZoom), v.opt.MaxZoom)
}
