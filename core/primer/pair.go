// Package primer holds the per-site data model: one Site and the ordered
// primer-pair records returned for it by the design/specificity pipeline.
package primer

// Pair is one candidate primer pair for a Site.
//
// Coordinates are template positions. LeftStart <= LeftEnd and
// RightStart <= RightEnd hold for every extracted Pair; LeftEnd <= RightStart
// is the usual arrangement but is not required.
type Pair struct {
	ID string

	LeftStart  int
	LeftEnd    int
	RightStart int
	RightEnd   int

	// HitCount is the number of off-target binding sites; lower is better.
	HitCount float64

	// Optional fields carried for the primer-list export.
	Label     string
	Penalty   *float64
	Sequences []string
}

// Coords returns the four footprint coordinates in left-to-right field order.
func (p Pair) Coords() [4]float64 {
	return [4]float64{
		float64(p.LeftStart), float64(p.LeftEnd),
		float64(p.RightStart), float64(p.RightEnd),
	}
}

// Overlapping reports whether the forward footprint ends after the reverse
// footprint starts.
func (p Pair) Overlapping() bool { return p.LeftEnd > p.RightStart }

// ProductSpan is the amplicon length implied by the outer footprint ends.
func (p Pair) ProductSpan() int { return p.RightEnd - p.LeftStart + 1 }

// DisplayName is the Label when present, otherwise the ID.
func (p Pair) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}
