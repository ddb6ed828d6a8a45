// Package svg serializes a diagram.Drawing as a standalone SVG document.
//
// The markup follows the classic result-page figure: a top-oriented axis
// group, the template label, the red target rectangle and one linked
// primerGroup per row, all inside a "viewport" group that carries the
// pan/zoom transform.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"primerfig/core/axis"
	"primerfig/core/diagram"
	"primerfig/core/geom"
	"primerfig/core/glyph"
	"primerfig/core/viewport"
)

const (
	nsSVG   = "http://www.w3.org/2000/svg"
	nsXLink = "http://www.w3.org/1999/xlink"
)

// Write renders d under transform t onto a width x height canvas. A zero
// width or height falls back to the drawing's nominal size.
func Write(w io.Writer, d *diagram.Drawing, t viewport.Transform, width, height float64) error {
	if width <= 0 {
		width = d.Width
	}
	if height <= 0 {
		height = d.Height
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="%s" xmlns:xlink="%s" class="PrimerFigure" width="%s" height="%s">`+"\n",
		nsSVG, nsXLink, num(width), num(height))
	fmt.Fprintf(&buf, `<g class="viewport" transform="%s">`+"\n", t.Matrix())

	writeAxis(&buf, d)
	fmt.Fprintf(&buf, `<text x="%s" y="%s" font-size="%s">%s</text>`+"\n",
		num(d.Label.X), num(d.Label.Y), num(d.Label.FontSize), escape(d.Label.Value))
	fmt.Fprintf(&buf, `<rect class="target" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		num(d.Target.X), num(d.Target.Y), num(d.Target.W), num(d.Target.H),
		escape(d.TargetStroke), num(d.TargetStrokeWidth))
	for _, r := range d.Rows {
		writeRow(&buf, r)
	}

	buf.WriteString("</g>\n</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// String is Write into a string, at the drawing's nominal size.
func String(d *diagram.Drawing, t viewport.Transform) string {
	var sb strings.Builder
	_ = Write(&sb, d, t, 0, 0)
	return sb.String()
}

func writeAxis(buf *bytes.Buffer, d *diagram.Drawing) {
	buf.WriteString(`<g class="axis">` + "\n")
	for _, tk := range d.Ticks {
		fmt.Fprintf(buf, `<g class="tick" transform="translate(%s,0)"><line x2="0" y2="-%d" stroke="black"/><text x="0" y="-%d" font-size="%s" text-anchor="middle">%s</text></g>`+"\n",
			num(tk.X), axis.TickSize, axis.TickSize+axis.TickPadding, num(d.TickFontSize), escape(tk.Label))
	}
	fmt.Fprintf(buf, `<path class="domain" d="M%s,-%dV0H%sV-%d" fill="none" stroke="black"/>`+"\n",
		num(d.Axis.RangeMin), axis.TickSize, num(d.Axis.RangeMax), axis.TickSize)
	buf.WriteString("</g>\n")
}

func writeRow(buf *bytes.Buffer, r glyph.Row) {
	c := r.Color.CSS()
	fmt.Fprintf(buf, `<a xlink:href="%s" class="primerGroup" title="%s"><title>%s</title><g>`+"\n",
		escape(r.Anchor()), escape(r.Label), escape(r.Label))
	for _, pts := range [][]geom.Point{r.Left, r.Right, r.Connector[:]} {
		fmt.Fprintf(buf, `<path d="%s" fill="%s" stroke="%s"/>`+"\n", PathData(pts), c, c)
	}
	buf.WriteString("</g></a>\n")
}

// PathData renders pts as a polyline path: "M0,25L140,25...".
func PathData(pts []geom.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(num(p.X))
		b.WriteByte(',')
		b.WriteString(num(p.Y))
	}
	return b.String()
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
