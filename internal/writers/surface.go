package writers

import (
	"errors"
	"io"
	"sync"

	"primerfig/core/diagram"
	"primerfig/core/viewport"
	"primerfig/internal/output"
)

// ErrNothingDrawn is returned by Surface.WriteTo before a Draw or after a Clear.
var ErrNothingDrawn = errors.New("surface: nothing drawn")

// Surface is an off-screen view.Surface. It records the latest drawing and
// transform so they can be serialized through the format registry.
type Surface struct {
	mu      sync.Mutex
	w, h    float64
	drawing *diagram.Drawing
	t       viewport.Transform
}

// NewSurface returns a w x h surface. A zero dimension tracks the nominal
// size of whatever is drawn.
func NewSurface(w, h float64) *Surface {
	return &Surface{w: w, h: h}
}

// Size reports the configured size, falling back to the drawing's.
func (s *Surface) Size() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.w, s.h
	if s.drawing != nil {
		if w <= 0 {
			w = s.drawing.Width
		}
		if h <= 0 {
			h = s.drawing.Height
		}
	}
	return w, h
}

// Resize changes the configured size, as a window resize would.
func (s *Surface) Resize(w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = w, h
}

func (s *Surface) Draw(d *diagram.Drawing) error {
	if d == nil {
		return errors.New("surface: nil drawing")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = d
	return nil
}

func (s *Surface) SetTransform(t viewport.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = nil
	s.t = viewport.Transform{}
}

// Drawing is the current drawing, nil when cleared.
func (s *Surface) Drawing() *diagram.Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing
}

// Transform is the last transform set.
func (s *Surface) Transform() viewport.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

// Item snapshots the surface for the writers.
func (s *Surface) Item(panelID string) (output.Item, error) {
	w, h := s.Size()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawing == nil {
		return output.Item{}, ErrNothingDrawn
	}
	t := s.t
	return output.Item{PanelID: panelID, Drawing: s.drawing, Transform: &t, Width: w, Height: h}, nil
}

// WriteTo serializes the current drawing in format.
func (s *Surface) WriteTo(format string, w io.Writer) error {
	it, err := s.Item("")
	if err != nil {
		return err
	}
	return WriteDrawing(format, w, it)
}
