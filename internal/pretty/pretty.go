// Package pretty draws a site diagram as fixed-width text for terminals and
// log files.
package pretty

import (
	"fmt"
	"math"
	"strings"

	"primerfig/core/diagram"
	"primerfig/core/glyph"
)

// Options control the ASCII rendering.
type Options struct {
	// Columns used for the axis range. If <=0, use default (80).
	Width int

	// Append "Primer n #id hits=h" after each row.
	ShowLegend bool

	// Glyphs
	ShaftGlyph   string // default "="
	FwdHeadGlyph string // default ">"
	RevHeadGlyph string // default "<"
	LinkGlyph    string // default "-"
	TargetGlyph  string // default "#"
}

// DefaultOptions is an 80-column figure with a legend.
var DefaultOptions = Options{
	Width:        80,
	ShowLegend:   true,
	ShaftGlyph:   "=",
	FwdHeadGlyph: ">",
	RevHeadGlyph: "<",
	LinkGlyph:    "-",
	TargetGlyph:  "#",
}

const linePrefix = "# "

func (o Options) WidthOrDefault() int {
	if o.Width <= 1 {
		return DefaultOptions.Width
	}
	return o.Width
}

func orDefault(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func (o Options) ShaftOrDefault() string { return orDefault(o.ShaftGlyph, DefaultOptions.ShaftGlyph) }
func (o Options) FwdHeadOrDefault() string {
	return orDefault(o.FwdHeadGlyph, DefaultOptions.FwdHeadGlyph)
}
func (o Options) RevHeadOrDefault() string {
	return orDefault(o.RevHeadGlyph, DefaultOptions.RevHeadGlyph)
}
func (o Options) LinkOrDefault() string { return orDefault(o.LinkGlyph, DefaultOptions.LinkGlyph) }
func (o Options) TargetOrDefault() string {
	return orDefault(o.TargetGlyph, DefaultOptions.TargetGlyph)
}

// scale an interior offset into the capped printed width (endpoint-preserving)
func scalePos(off, interior, inner int) int {
	if interior <= 1 || inner <= 1 {
		return 0
	}
	if off < 0 {
		off = 0
	}
	if off > interior-1 {
		off = interior - 1
	}
	return (off * (inner - 1)) / (interior - 1)
}

// line is a mutable row of cells.
type line []string

func newLine(n int, fill string) line {
	l := make(line, n)
	for i := range l {
		l[i] = fill
	}
	return l
}

func (l line) span(a, b int, g string) {
	if a > b {
		a, b = b, a
	}
	for i := max(a, 0); i <= b && i < len(l); i++ {
		l[i] = g
	}
}

func (l line) String() string { return strings.TrimRight(strings.Join(l, ""), " ") }

// RenderDrawing prints the axis, the target and one row per primer pair.
func RenderDrawing(d *diagram.Drawing, opt Options) string {
	width := opt.WidthOrDefault()
	lo := d.Axis.RangeMin
	interior := int(math.Round(d.Axis.RangeMax-lo)) + 1
	col := func(x float64) int { return scalePos(int(math.Round(x-lo)), interior, width) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s (%s)\n", linePrefix, d.Label.Value, d.Site.Key())

	// Tick labels, skipping any that would collide with the previous one.
	labels := newLine(width+8, " ")
	axisLine := newLine(width, "-")
	next := 0
	for _, tk := range d.Ticks {
		c := col(tk.X)
		axisLine[c] = "+"
		start := max(c-len(tk.Label)/2, 0)
		if start < next {
			continue
		}
		for i, r := range tk.Label {
			if start+i < len(labels) {
				labels[start+i] = string(r)
			}
		}
		next = start + len(tk.Label) + 1
	}
	axisLine[0], axisLine[width-1] = "|", "|"
	fmt.Fprintf(&b, "%s%s\n", linePrefix, labels)
	fmt.Fprintf(&b, "%s%s\n", linePrefix, axisLine)

	target := newLine(width, " ")
	target.span(col(d.Target.X), col(d.Target.MaxX()), opt.TargetOrDefault())
	fmt.Fprintf(&b, "%s%s\n", linePrefix, target)

	for _, r := range d.Rows {
		row := renderRow(r, col, width, opt)
		if opt.ShowLegend {
			fmt.Fprintf(&b, "%s%s  %s #%s hits=%g\n", linePrefix, padRight(row, width), r.Label, r.ID, r.HitCount)
		} else {
			fmt.Fprintf(&b, "%s%s\n", linePrefix, row)
		}
	}
	b.WriteString("\n")
	return b.String()
}

func renderRow(r glyph.Row, col func(float64) int, width int, opt Options) string {
	l := newLine(width, " ")
	// Connector first so overlapping arrows stay visible on top of it.
	l.span(col(r.Connector[0].X), col(r.Connector[1].X), opt.LinkOrDefault())

	// Forward: shaft from start to neck, head from neck to the point.
	fs, fm, fe := col(r.Left[0].X), col(r.Left[1].X), col(r.Left[3].X)
	l.span(fs, fm, opt.ShaftOrDefault())
	l.span(fm, fe, opt.FwdHeadOrDefault())

	// Reverse: head from the point to neck, shaft to the end.
	rs, rm, re := col(r.Right[0].X), col(r.Right[1].X), col(r.Right[3].X)
	l.span(rm, re, opt.ShaftOrDefault())
	l.span(rs, rm, opt.RevHeadOrDefault())
	return l.String()
}

func padRight(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
