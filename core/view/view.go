// Package view owns the live diagram of every open result panel.
//
// A Controller keeps at most one drawing per panel id. Show replaces any
// earlier drawing for the panel and returns a Handle; Hide drops it. Handles
// carry a generation id, so callbacks that arrive after a Hide or a newer
// Show find their generation gone and do nothing.
package view

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"primerfig/core/axis"
	"primerfig/core/diagram"
	"primerfig/core/extract"
	"primerfig/core/primer"
	"primerfig/core/viewport"
)

// Host misuse.
var (
	ErrNoPanelID = errors.New("view: panel has no id")
	ErrNoSurface = errors.New("view: panel has no surface")
	ErrNoSource  = errors.New("view: panel has no record source")
)

// ErrSuperseded is returned (wrapped) by Show when a Hide or a newer Show of
// the same panel ran before it could publish its drawing.
var ErrSuperseded = errors.New("view: superseded")

// ErrEmptyInput is returned (wrapped) by Show for a site without records.
// The panel stays Empty.
var ErrEmptyInput = axis.ErrEmptyInput

// Surface is the caller-supplied drawing target of one panel.
type Surface interface {
	// Size is the current on-screen size of the surface.
	Size() (w, h float64)
	Draw(d *diagram.Drawing) error
	SetTransform(t viewport.Transform)
	Clear()
}

// Panel is one expandable result panel.
type Panel struct {
	ID      string
	Surface Surface
	Source  extract.Source
}

// Handle is the live drawing of one panel, valid until the panel is hidden
// or shown again.
type Handle struct {
	gen     uuid.UUID
	panelID string
	ctl     *Controller

	drawing     *diagram.Drawing
	pairs       []primer.Pair
	vp          viewport.Viewport
	diagnostics []*extract.ParseError
}

// Generation identifies this particular Show.
func (h *Handle) Generation() string { return h.gen.String() }

// PanelID is the panel the handle belongs to.
func (h *Handle) PanelID() string { return h.panelID }

// Drawing is the laid-out figure.
func (h *Handle) Drawing() *diagram.Drawing { return h.drawing }

// Pairs are the extracted records in row order.
func (h *Handle) Pairs() []primer.Pair { return h.pairs }

// Diagnostics lists records skipped during extraction.
func (h *Handle) Diagnostics() []*extract.ParseError { return h.diagnostics }

// Live reports whether the handle is still the panel's current drawing.
func (h *Handle) Live() bool {
	h.ctl.mu.Lock()
	defer h.ctl.mu.Unlock()
	return h.ctl.current(h) != nil
}

// Transform is the viewport transform at the time of the call.
func (h *Handle) Transform() viewport.Transform {
	h.ctl.mu.Lock()
	defer h.ctl.mu.Unlock()
	return h.vp.Transform()
}

// Pan moves this drawing. It returns false if the handle is stale.
func (h *Handle) Pan(dx, dy float64) bool {
	return h.ctl.apply(h, PannedZoomed, func(vp viewport.Viewport) { vp.Pan(dx, dy) })
}

// Zoom scales this drawing about the viewport centre. It returns false if
// the handle is stale.
func (h *Handle) Zoom(factor float64) bool {
	return h.ctl.apply(h, PannedZoomed, func(vp viewport.Viewport) { vp.Zoom(factor) })
}

// Refit re-reads the surface size, then fits and centres. It returns false
// if the handle is stale.
func (h *Handle) Refit() bool {
	return h.ctl.apply(h, Resized, nil)
}

type panelState struct {
	panel  Panel
	handle *Handle
	state  State
}

// Controller tracks every live panel. It is safe for concurrent use.
type Controller struct {
	mu     sync.Mutex
	panels map[string]*panelState
	// pending holds the ticket of the Show in progress per panel. Hide and
	// newer Shows replace or remove it.
	pending map[string]uint64
	ticket  uint64

	opt         diagram.Options
	newViewport viewport.Factory
	warn        func(panelID string, err error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDiagramOptions sets the layout options used by Show.
func WithDiagramOptions(o diagram.Options) Option {
	return func(c *Controller) { c.opt = o }
}

// WithViewportFactory replaces the default PanZoom viewport.
func WithViewportFactory(f viewport.Factory) Option {
	return func(c *Controller) {
		if f != nil {
			c.newViewport = f
		}
	}
}

// WithWarnFunc receives non-fatal conditions: skipped records, recovered
// layout problems and failures of host-triggered Shows.
func WithWarnFunc(f func(panelID string, err error)) Option {
	return func(c *Controller) {
		if f != nil {
			c.warn = f
		}
	}
}

// NewController returns a controller with no live panels.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		panels:      map[string]*panelState{},
		pending:     map[string]uint64{},
		opt:         diagram.DefaultOptions,
		newViewport: viewport.NewFactory(viewport.DefaultOptions),
		warn:        func(string, error) {},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Show (re)draws p. Any previous drawing of the same panel is cleared first,
// so showing twice leaves exactly one drawing. When the source yields no
// records the panel is left Empty and the error wraps ErrEmptyInput.
//
// The controller lock is not held while the source, the surface or the warn
// func run, so any of them may call back into the controller. A Hide or a
// newer Show of the same panel that lands meanwhile wins: this Show then
// returns ErrSuperseded and leaves the surface as the winner wants it.
func (c *Controller) Show(p Panel) (*Handle, error) {
	switch {
	case p.ID == "":
		return nil, ErrNoPanelID
	case p.Surface == nil:
		return nil, ErrNoSurface
	case p.Source == nil:
		return nil, ErrNoSource
	}

	c.mu.Lock()
	c.ticket++
	ticket := c.ticket
	c.pending[p.ID] = ticket
	old := c.dropLocked(p.ID)
	c.mu.Unlock()
	published := false
	defer func() {
		if !published {
			c.release(p.ID, ticket)
		}
	}()

	if old != nil && old.panel.Surface != p.Surface {
		old.panel.Surface.Clear()
	}
	p.Surface.Clear()

	res, err := p.Source.Extract()
	if err != nil {
		return nil, fmt.Errorf("view: panel %s: %w", p.ID, err)
	}
	for _, d := range res.Diagnostics {
		c.warn(p.ID, d)
	}
	if res.Site.ID == "" {
		res.Site.ID = p.ID
	}

	d, err := diagram.Build(res.Site, res.Pairs, c.opt)
	if err != nil {
		return nil, fmt.Errorf("view: panel %s: %w", p.ID, err)
	}
	for _, w := range d.Warnings {
		c.warn(p.ID, w)
	}
	if err := p.Surface.Draw(d); err != nil {
		c.settle(p.ID, p.Surface)
		return nil, fmt.Errorf("view: panel %s: draw: %w", p.ID, err)
	}

	w, h := p.Surface.Size()
	vp := c.newViewport(d.Bounds, w, h)
	vp.Fit()
	vp.Center()
	t := vp.Transform()
	p.Surface.SetTransform(t)

	hd := &Handle{
		gen:         uuid.New(),
		panelID:     p.ID,
		ctl:         c,
		drawing:     d,
		pairs:       res.Pairs,
		vp:          vp,
		diagnostics: res.Diagnostics,
	}
	c.mu.Lock()
	if c.pending[p.ID] != ticket {
		c.mu.Unlock()
		c.settle(p.ID, p.Surface)
		return nil, fmt.Errorf("view: panel %s: %w", p.ID, ErrSuperseded)
	}
	delete(c.pending, p.ID)
	c.panels[p.ID] = &panelState{panel: p, handle: hd, state: Rendered}
	published = true
	c.mu.Unlock()
	return hd, nil
}

// Hide clears the panel's surface and forgets its drawing. Hiding a panel
// that is not live is a no-op, except that a Show still in progress for it
// is superseded.
func (c *Controller) Hide(panelID string) {
	c.mu.Lock()
	delete(c.pending, panelID)
	ps := c.dropLocked(panelID)
	c.mu.Unlock()
	if ps != nil {
		ps.panel.Surface.Clear()
	}
}

// release forgets ticket if it is still the panel's pending Show.
func (c *Controller) release(panelID string, ticket uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[panelID] == ticket {
		delete(c.pending, panelID)
	}
}

func (c *Controller) dropLocked(panelID string) *panelState {
	ps, ok := c.panels[panelID]
	if !ok {
		return nil
	}
	delete(c.panels, panelID)
	return ps
}

// settle makes s show what the controller currently holds for panelID:
// the live drawing if s is its surface, nothing otherwise.
func (c *Controller) settle(panelID string, s Surface) {
	c.mu.Lock()
	var (
		d *diagram.Drawing
		t viewport.Transform
	)
	if ps, ok := c.panels[panelID]; ok && ps.panel.Surface == s {
		d, t = ps.handle.drawing, ps.handle.vp.Transform()
	}
	c.mu.Unlock()

	if d == nil {
		s.Clear()
		return
	}
	if err := s.Draw(d); err != nil {
		c.warn(panelID, err)
		return
	}
	s.SetTransform(t)
}

// Pan moves the live drawing of panelID. Empty panels are ignored.
func (c *Controller) Pan(panelID string, dx, dy float64) bool {
	return c.applyID(panelID, PannedZoomed, func(vp viewport.Viewport) { vp.Pan(dx, dy) })
}

// Zoom scales the live drawing of panelID. Empty panels are ignored.
func (c *Controller) Zoom(panelID string, factor float64) bool {
	return c.applyID(panelID, PannedZoomed, func(vp viewport.Viewport) { vp.Zoom(factor) })
}

// ResizePanel re-reads one panel's surface size and refits it.
func (c *Controller) ResizePanel(panelID string) bool {
	return c.applyID(panelID, Resized, nil)
}

// Resize refits every live panel to its surface's current size. It is the
// process-wide resize handler and is fine with zero live panels. It returns
// the number of panels refitted.
func (c *Controller) Resize() int {
	c.mu.Lock()
	handles := make([]*Handle, 0, len(c.panels))
	for _, id := range slices.Sorted(maps.Keys(c.panels)) {
		handles = append(handles, c.panels[id].handle)
	}
	c.mu.Unlock()

	n := 0
	for _, h := range handles {
		if c.apply(h, Resized, nil) {
			n++
		}
	}
	return n
}

// State reports the lifecycle state of panelID.
func (c *Controller) State(panelID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ps, ok := c.panels[panelID]; ok {
		return ps.state
	}
	return Empty
}

// Handle returns the current handle of panelID.
func (c *Controller) Handle(panelID string) (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ps, ok := c.panels[panelID]; ok {
		return ps.handle, true
	}
	return nil, false
}

// Live lists the ids of panels with a drawing, sorted.
func (c *Controller) Live() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.panels))
}

func (c *Controller) current(h *Handle) *panelState {
	ps, ok := c.panels[h.panelID]
	if !ok || ps.handle != h {
		return nil
	}
	return ps
}

func (c *Controller) applyID(panelID string, next State, fn func(viewport.Viewport)) bool {
	h, ok := c.Handle(panelID)
	if !ok {
		return false
	}
	return c.apply(h, next, fn)
}

// apply runs fn on h's viewport, or refits it when fn is nil, and pushes the
// new transform to the surface. Surface calls happen outside the lock; a
// handle that goes stale in between is left alone.
func (c *Controller) apply(h *Handle, next State, fn func(viewport.Viewport)) bool {
	c.mu.Lock()
	ps := c.current(h)
	c.mu.Unlock()
	if ps == nil {
		return false
	}
	s := ps.panel.Surface

	var w, ht float64
	if fn == nil {
		w, ht = s.Size()
	}

	c.mu.Lock()
	if c.current(h) != ps {
		c.mu.Unlock()
		return false
	}
	vp := h.vp
	if fn == nil {
		vp.Resize(w, ht)
		vp.Fit()
		vp.Center()
	} else {
		fn(vp)
	}
	ps.state = next
	t := vp.Transform()
	c.mu.Unlock()

	s.SetTransform(t)
	return true
}
