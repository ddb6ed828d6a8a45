// Package diagram composes the axis, the target rectangle, the template
// label and the glyph rows of one site into a single Drawing.
//
// A Drawing lives in content coordinates: x runs over the axis pixel range,
// the axis line sits at y=0 with its ticks above it, and glyph rows stack
// downward from FirstRowY. Viewport transforms are applied by renderers.
package diagram

import (
	"fmt"

	"primerfig/core/axis"
	"primerfig/core/geom"
	"primerfig/core/glyph"
	"primerfig/core/primer"
)

// Options bundle everything that shapes a Drawing.
type Options struct {
	Axis  axis.Options
	Glyph glyph.Options

	TargetHeight      float64 // centred on the axis line
	TargetStroke      string
	TargetStrokeWidth float64

	LabelPrefix   string
	LabelY        float64
	LabelFontSize float64
	TickFontSize  float64
}

// DefaultOptions reproduces the classic result-page figure.
var DefaultOptions = Options{
	Axis:              axis.DefaultOptions,
	Glyph:             glyph.DefaultOptions,
	TargetHeight:      30,
	TargetStroke:      "red",
	TargetStrokeWidth: 3,
	LabelPrefix:       "Template ",
	LabelY:            -30,
	LabelFontSize:     19.2, // 120% of a 16px base
	TickFontSize:      10,
}

// Text is a positioned string. Y is the baseline.
type Text struct {
	X, Y     float64
	Value    string
	FontSize float64
}

// Drawing is the complete, renderer-independent figure for one site.
type Drawing struct {
	Site  primer.Site
	Axis  axis.Model
	Ticks []axis.Tick

	Target            geom.Rect
	TargetStroke      string
	TargetStrokeWidth float64

	Label        Text
	TickFontSize float64

	Rows []glyph.Row

	// Width and Height are the nominal canvas size: the axis range and the
	// row-count dependent height.
	Width, Height float64

	// Bounds encloses everything drawn, including anything that extends
	// outside the nominal canvas such as an off-axis target.
	Bounds geom.Rect

	// Warnings are recovered, non-fatal conditions such as a degenerate
	// domain.
	Warnings []error
}

// Build lays out site and pairs. It fails only with axis.ErrEmptyInput.
func Build(site primer.Site, pairs []primer.Pair, opt Options) (*Drawing, error) {
	ax, err := axis.Build(pairs, opt.Axis)
	if err != nil {
		return nil, fmt.Errorf("diagram %s: %w", site.PanelID(), err)
	}

	d := &Drawing{
		Site:              site,
		Axis:              ax,
		Ticks:             ax.Ticks(),
		TargetStroke:      opt.TargetStroke,
		TargetStrokeWidth: opt.TargetStrokeWidth,
		Label: Text{
			X:        0,
			Y:        opt.LabelY,
			Value:    opt.LabelPrefix + site.TemplateName,
			FontSize: opt.LabelFontSize,
		},
		TickFontSize: opt.TickFontSize,
		Rows:         glyph.Layout(pairs, ax, opt.Glyph),
		Width:        ax.Width(),
	}
	if w := ax.Warning(); w != nil {
		d.Warnings = append(d.Warnings, w)
	}

	x, w := ax.TargetSpan(site)
	if w < 0 {
		x, w = x+w, -w
	}
	d.Target = geom.Rect{X: x, Y: -opt.TargetHeight / 2, W: w, H: opt.TargetHeight}
	d.Height = opt.Glyph.Height(len(d.Rows))
	d.Bounds = d.computeBounds()
	return d, nil
}

// RowCount is the number of glyph rows.
func (d *Drawing) RowCount() int { return len(d.Rows) }

// Row returns the row whose record id is id.
func (d *Drawing) Row(id string) (glyph.Row, bool) {
	for _, r := range d.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return glyph.Row{}, false
}

func (d *Drawing) computeBounds() geom.Rect {
	b := geom.Rect{X: d.Axis.RangeMin, Y: 0, W: d.Width, H: d.Height}

	// Tick marks and their labels above the axis line.
	top := axis.TickSize + axis.TickPadding + d.TickFontSize
	b = b.Union(geom.Rect{X: d.Axis.RangeMin, Y: -top, W: d.Width, H: top})
	if n := len(d.Ticks); n > 0 {
		lw := textWidth(d.Ticks[n-1].Label, d.TickFontSize)
		b = b.Union(geom.Rect{X: d.Ticks[0].X - lw/2, Y: -top, W: d.Ticks[n-1].X - d.Ticks[0].X + lw, H: top})
	}

	if d.Target.W > 0 || d.Target.H > 0 {
		sw := d.TargetStrokeWidth / 2
		b = b.Union(geom.Rect{X: d.Target.X - sw, Y: d.Target.Y - sw, W: d.Target.W + 2*sw, H: d.Target.H + 2*sw})
	}

	l := d.Label
	b = b.Union(geom.Rect{X: l.X, Y: l.Y - l.FontSize, W: textWidth(l.Value, l.FontSize), H: l.FontSize * 1.2})

	for _, r := range d.Rows {
		b = b.Union(r.Bounds())
	}
	return b
}

// textWidth estimates rendered width from an average glyph advance.
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}
