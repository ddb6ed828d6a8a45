package view

// State is the lifecycle position of one panel.
//
//	Empty -> Rendered -> (Resized | PannedZoomed)* -> Empty
type State int

const (
	Empty State = iota
	Rendered
	Resized
	PannedZoomed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Rendered:
		return "rendered"
	case Resized:
		return "resized"
	case PannedZoomed:
		return "panned-zoomed"
	}
	return "unknown"
}

// Live reports whether a drawing is attached.
func (s State) Live() bool { return s != Empty }
