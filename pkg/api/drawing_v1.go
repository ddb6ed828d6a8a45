// pkg/api/drawing_v1.go
package api

// DrawingV1 is the stable JSON/JSONL schema for one rendered site diagram.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type DrawingV1 struct {
	PanelID string  `json:"panel_id"`
	Site    SiteV1  `json:"site"`
	Axis    AxisV1  `json:"axis"`
	Target  RectV1  `json:"target"`
	Label   string  `json:"label"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rows    []RowV1 `json:"rows"`

	Transform   *TransformV1 `json:"transform,omitempty"`
	Warnings    []string     `json:"warnings,omitempty"`
	Diagnostics []string     `json:"diagnostics,omitempty"`
	SourceFile  string       `json:"source_file,omitempty"`
}

type SiteV1 struct {
	Key          string `json:"key"` // "template-start-length"
	Template     string `json:"template"`
	TargetStart  int    `json:"target_start"`
	TargetLength int    `json:"target_length"`
}

type AxisV1 struct {
	DomainMin  float64  `json:"domain_min"`
	DomainMax  float64  `json:"domain_max"`
	RangeMin   float64  `json:"range_min"`
	RangeMax   float64  `json:"range_max"`
	Degenerate bool     `json:"degenerate,omitempty"`
	Ticks      []TickV1 `json:"ticks"`
}

type TickV1 struct {
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

type RectV1 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// RowV1 is one glyph row. Points are [x, y] pairs in drawing units.
type RowV1 struct {
	Rank        int          `json:"rank"`
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	BaseY       float64      `json:"base_y"`
	HitCount    float64      `json:"hit_count"`
	Gray        int          `json:"gray"`  // raw intensity, may exceed 255
	Color       string       `json:"color"` // clamped "rgb(v,v,v)"
	Left        [][2]float64 `json:"left"`
	Right       [][2]float64 `json:"right"`
	Connector   [][2]float64 `json:"connector"`
	Overlapping bool         `json:"overlapping,omitempty"`
}

type TransformV1 struct {
	Scale float64 `json:"scale"`
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
}
