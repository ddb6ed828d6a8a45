package glyph

import (
	"fmt"
	"image/color"
	"math"

	"primerfig/core/geom"
)

// ColorScale maps a hit count linearly from [DomainMin, DomainMax] onto
// [RangeMin, RangeMax] and multiplies by Intensity. The same value is used
// for all three channels, so low hit counts come out near black.
type ColorScale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
	Intensity            float64

	// Clamp limits hit counts to the domain before scaling. When false,
	// values outside the domain extrapolate.
	Clamp bool
}

// DefaultColorScale is the canonical [1,100] -> [0,32] x8 ramp, unclamped.
var DefaultColorScale = ColorScale{
	DomainMin: 1, DomainMax: 100,
	RangeMin: 0, RangeMax: 32,
	Intensity: 8,
}

// Scaled returns the linear-scale output before the intensity factor.
func (c ColorScale) Scaled(hits float64) float64 {
	if c.Clamp {
		lo, hi := c.DomainMin, c.DomainMax
		if lo > hi {
			lo, hi = hi, lo
		}
		hits = min(max(hits, lo), hi)
	}
	span := c.DomainMax - c.DomainMin
	if span == 0 {
		return c.RangeMin
	}
	return c.RangeMin + (hits-c.DomainMin)*(c.RangeMax-c.RangeMin)/span
}

// Gray returns the intensity for hits. Values beyond the int32 range are
// saturated before conversion so extreme hit counts keep their sign.
func (c ColorScale) Gray(hits float64) Gray {
	v := geom.RoundHalfUp(c.Scaled(hits) * c.Intensity)
	if math.IsNaN(v) {
		return 0
	}
	return Gray(math.Max(math.Min(v, math.MaxInt32), math.MinInt32))
}

// Gray is a raw grayscale intensity. It is not limited to [0,255]: an
// unclamped scale may produce 256 at hits=100 or negative values below 1.
type Gray int

// Channel is the intensity clamped to a valid 8-bit channel value.
func (g Gray) Channel() uint8 {
	switch {
	case g < 0:
		return 0
	case g > 255:
		return 255
	}
	return uint8(g)
}

// RGBA implements color.Color via the clamped channel.
func (g Gray) RGBA() (r, gg, b, a uint32) {
	return g.Color().RGBA()
}

// Color returns the opaque clamped color.
func (g Gray) Color() color.RGBA {
	v := g.Channel()
	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}

// CSS renders the color as an rgb() string.
func (g Gray) CSS() string {
	v := g.Channel()
	return fmt.Sprintf("rgb(%d,%d,%d)", v, v, v)
}
