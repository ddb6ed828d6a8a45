// Package glyph stacks one arrow row per primer pair and builds the polygon
// geometry for the forward and reverse footprints.
//
// Rows are ranked by input position and never reordered. Every x value is a
// whole pixel: footprint coordinates go through the axis scale and are then
// rounded half up.
package glyph

import (
	"fmt"

	"primerfig/core/axis"
	"primerfig/core/geom"
	"primerfig/core/primer"
)

// Options hold the row and arrow geometry.
type Options struct {
	FirstRowY float64 // BaseY of rank 1
	Pitch     float64 // vertical distance between rows

	ShaftHalfHeight float64
	HeadHalfHeight  float64

	// LabelFormat receives the 1-based rank.
	LabelFormat string

	BaseHeight   float64 // drawing height for up to RowThreshold rows
	RowThreshold int

	Color ColorScale
}

// DefaultOptions is the canonical layout: rows 30 units apart starting
// under the 30-unit target rectangle, 150 units tall for up to three rows.
var DefaultOptions = Options{
	FirstRowY:       30,
	Pitch:           30,
	ShaftHalfHeight: 5,
	HeadHalfHeight:  10,
	LabelFormat:     "Primer %d",
	BaseHeight:      150,
	RowThreshold:    3,
	Color:           DefaultColorScale,
}

// Row is one laid-out primer pair.
type Row struct {
	Rank  int
	ID    string
	Label string
	BaseY float64

	HitCount float64
	Color    Gray

	Left      []geom.Point // rightward arrow, closed polygon
	Right     []geom.Point // leftward arrow, closed polygon
	Connector [2]geom.Point

	// Overlapping is set when the forward footprint ends after the reverse
	// one starts; the connector then runs backwards.
	Overlapping bool
}

// Anchor is the in-page link target of the row's textual record.
func (r Row) Anchor() string { return "#" + r.ID }

// Bounds is the bounding box of both arrows and the connector.
func (r Row) Bounds() geom.Rect {
	pts := make([]geom.Point, 0, len(r.Left)+len(r.Right)+2)
	pts = append(pts, r.Left...)
	pts = append(pts, r.Right...)
	pts = append(pts, r.Connector[:]...)
	return geom.BoundsOf(pts...)
}

// BaseY returns the row centre line for a 1-based rank.
func (o Options) BaseY(rank int) float64 {
	return o.FirstRowY + o.Pitch*float64(rank-1)
}

// Height is the drawing height needed for rows rows. It grows by one pitch
// per row beyond RowThreshold.
func (o Options) Height(rows int) float64 {
	if rows > o.RowThreshold {
		return o.BaseHeight + float64(rows-o.RowThreshold)*o.Pitch
	}
	return o.BaseHeight
}

// Layout returns one Row per pair, in input order.
func Layout(pairs []primer.Pair, ax axis.Model, opt Options) []Row {
	rows := make([]Row, 0, len(pairs))
	for i, p := range pairs {
		rank := i + 1
		y := opt.BaseY(rank)
		x := func(v int) float64 { return geom.RoundHalfUp(ax.Scale(float64(v))) }

		rows = append(rows, Row{
			Rank:        rank,
			ID:          p.ID,
			Label:       fmt.Sprintf(opt.LabelFormat, rank),
			BaseY:       y,
			HitCount:    p.HitCount,
			Color:       opt.Color.Gray(p.HitCount),
			Left:        forwardArrow(x(p.LeftStart), x(leftNeck(p)), x(p.LeftEnd), y, opt),
			Right:       reverseArrow(x(p.RightStart), x(rightNeck(p)), x(p.RightEnd), y, opt),
			Connector:   [2]geom.Point{{X: x(p.LeftEnd), Y: y}, {X: x(p.RightStart), Y: y}},
			Overlapping: p.Overlapping(),
		})
	}
	return rows
}

// leftNeck is where the forward shaft meets the head: two thirds along.
func leftNeck(p primer.Pair) int {
	l := float64(p.LeftEnd - p.LeftStart + 1)
	return p.LeftStart + int(geom.RoundHalfUp(l/3*2))
}

// rightNeck is where the reverse head meets the shaft: one third along.
func rightNeck(p primer.Pair) int {
	r := float64(p.RightEnd - p.RightStart + 1)
	return p.RightStart + int(geom.RoundHalfUp(r/3))
}

func forwardArrow(s, m, e, y float64, opt Options) []geom.Point {
	sh, hh := opt.ShaftHalfHeight, opt.HeadHalfHeight
	return []geom.Point{
		{X: s, Y: y - sh},
		{X: m, Y: y - sh},
		{X: m, Y: y - hh},
		{X: e, Y: y},
		{X: m, Y: y + hh},
		{X: m, Y: y + sh},
		{X: s, Y: y + sh},
		{X: s, Y: y - sh},
	}
}

func reverseArrow(s, m, e, y float64, opt Options) []geom.Point {
	sh, hh := opt.ShaftHalfHeight, opt.HeadHalfHeight
	return []geom.Point{
		{X: s, Y: y},
		{X: m, Y: y - hh},
		{X: m, Y: y - sh},
		{X: e, Y: y - sh},
		{X: e, Y: y + sh},
		{X: m, Y: y + sh},
		{X: m, Y: y + hh},
		{X: s, Y: y},
	}
}
