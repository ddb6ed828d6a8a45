// Package axis maps template coordinates onto the fixed horizontal pixel
// range of a diagram and lays out the tick marks drawn above the glyphs.
package axis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"primerfig/core/primer"
)

// Canonical geometry of the top-oriented axis.
const (
	TickSize    = 6 // tick marks run from y=0 up to y=-TickSize
	TickPadding = 3 // gap between tick end and label baseline
)

// ErrEmptyInput is returned by Build for a site with no primer pairs. The
// caller is expected to suppress the diagram entirely.
var ErrEmptyInput = errors.New("axis: no primer records")

// DegenerateDomainError reports that every footprint coordinate was the same
// value. It never aborts a render: Build recovers and returns a usable Model.
type DegenerateDomainError struct {
	Value float64
}

func (e *DegenerateDomainError) Error() string {
	return fmt.Sprintf("axis: degenerate domain, all coordinates equal %g", e.Value)
}

// Options control the pixel range and the advisory tick count.
type Options struct {
	PixelRange float64
	TickCount  int
}

// DefaultOptions is the canonical 1000-unit range with about 10 ticks.
var DefaultOptions = Options{PixelRange: 1000, TickCount: 10}

func (o Options) withDefaults() Options {
	d := DefaultOptions
	if o.PixelRange <= 0 {
		o.PixelRange = d.PixelRange
	}
	if o.TickCount <= 0 {
		o.TickCount = d.TickCount
	}
	return o
}

// Model is an affine map from [DomainMin, DomainMax] onto [RangeMin, RangeMax].
type Model struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
	TickCount            int

	// Degenerate is set when the input collapsed to one coordinate and the
	// domain was widened so that Scale(x) = x - DomainMin.
	Degenerate bool
}

// Build derives the axis from every footprint coordinate of pairs. The target
// region does not take part in the domain.
func Build(pairs []primer.Pair, opt Options) (Model, error) {
	if len(pairs) == 0 {
		return Model{}, ErrEmptyInput
	}
	opt = opt.withDefaults()

	coords := make([]float64, 0, 4*len(pairs))
	for _, p := range pairs {
		c := p.Coords()
		coords = append(coords, c[:]...)
	}
	m := Model{
		DomainMin: floats.Min(coords),
		DomainMax: floats.Max(coords),
		RangeMin:  0,
		RangeMax:  opt.PixelRange,
		TickCount: opt.TickCount,
	}
	if m.DomainMax == m.DomainMin {
		m.DomainMax = m.DomainMin + opt.PixelRange
		m.Degenerate = true
	}
	return m, nil
}

// Warning returns a *DegenerateDomainError when the domain was widened.
func (m Model) Warning() error {
	if !m.Degenerate {
		return nil
	}
	return &DegenerateDomainError{Value: m.DomainMin}
}

// Scale maps a template coordinate to pixels. Values outside the domain
// extrapolate.
func (m Model) Scale(x float64) float64 {
	span := m.DomainMax - m.DomainMin
	if span == 0 {
		return m.RangeMin + (x - m.DomainMin)
	}
	return m.RangeMin + (x-m.DomainMin)*(m.RangeMax-m.RangeMin)/span
}

// Invert maps pixels back to template coordinates.
func (m Model) Invert(px float64) float64 {
	r := m.RangeMax - m.RangeMin
	if r == 0 {
		return m.DomainMin + (px - m.RangeMin)
	}
	return m.DomainMin + (px-m.RangeMin)*(m.DomainMax-m.DomainMin)/r
}

// Span returns the pixel x and width of [start, end). The result is never
// clamped to the axis range.
func (m Model) Span(start, end float64) (x, w float64) {
	x = m.Scale(start)
	return x, m.Scale(end) - x
}

// TargetSpan returns the pixel x and width of the site's highlighted region.
func (m Model) TargetSpan(s primer.Site) (x, w float64) {
	return m.Span(float64(s.TargetStart), float64(s.TargetEnd()))
}

// Width is the pixel extent of the axis.
func (m Model) Width() float64 { return math.Abs(m.RangeMax - m.RangeMin) }
