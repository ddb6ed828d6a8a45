package output

import (
	"primerfig/core/diagram"
	"primerfig/core/extract"
	"primerfig/core/geom"
	"primerfig/core/viewport"
	"primerfig/pkg/api"
)

// Item is one rendered site as handed to the writers.
type Item struct {
	PanelID    string
	SourceFile string
	Drawing    *diagram.Drawing

	// Transform is the fitted viewport transform; nil writes the drawing
	// in its own coordinates.
	Transform *viewport.Transform

	// Width and Height are the output canvas size; zero means nominal.
	Width, Height float64

	Diagnostics []*extract.ParseError
}

// ViewTransform is Transform or the identity.
func (it Item) ViewTransform() viewport.Transform {
	if it.Transform == nil {
		return viewport.Identity
	}
	return *it.Transform
}

// ToAPIDrawing converts an Item to the stable wire schema (v1).
func ToAPIDrawing(it Item) api.DrawingV1 {
	d := it.Drawing
	v := api.DrawingV1{
		PanelID: it.PanelID,
		Site: api.SiteV1{
			Key:          d.Site.Key(),
			Template:     d.Site.TemplateName,
			TargetStart:  d.Site.TargetStart,
			TargetLength: d.Site.TargetLength,
		},
		Axis: api.AxisV1{
			DomainMin:  d.Axis.DomainMin,
			DomainMax:  d.Axis.DomainMax,
			RangeMin:   d.Axis.RangeMin,
			RangeMax:   d.Axis.RangeMax,
			Degenerate: d.Axis.Degenerate,
			Ticks:      make([]api.TickV1, 0, len(d.Ticks)),
		},
		Target:     api.RectV1{X: d.Target.X, Y: d.Target.Y, W: d.Target.W, H: d.Target.H},
		Label:      d.Label.Value,
		Width:      d.Width,
		Height:     d.Height,
		Rows:       make([]api.RowV1, 0, len(d.Rows)),
		SourceFile: it.SourceFile,
	}
	if v.PanelID == "" {
		v.PanelID = d.Site.PanelID()
	}
	for _, tk := range d.Ticks {
		v.Axis.Ticks = append(v.Axis.Ticks, api.TickV1{Value: tk.Value, X: tk.X, Label: tk.Label})
	}
	for _, r := range d.Rows {
		v.Rows = append(v.Rows, api.RowV1{
			Rank:        r.Rank,
			ID:          r.ID,
			Label:       r.Label,
			BaseY:       r.BaseY,
			HitCount:    r.HitCount,
			Gray:        int(r.Color),
			Color:       r.Color.CSS(),
			Left:        points(r.Left),
			Right:       points(r.Right),
			Connector:   points(r.Connector[:]),
			Overlapping: r.Overlapping,
		})
	}
	if it.Transform != nil {
		v.Transform = &api.TransformV1{Scale: it.Transform.Scale, TX: it.Transform.TX, TY: it.Transform.TY}
	}
	for _, w := range d.Warnings {
		v.Warnings = append(v.Warnings, w.Error())
	}
	for _, pe := range it.Diagnostics {
		v.Diagnostics = append(v.Diagnostics, pe.Error())
	}
	return v
}

func points(pts []geom.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
