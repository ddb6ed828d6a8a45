// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"primerfig/core/extract"
	"primerfig/core/primer"
	"primerfig/core/view"
	"primerfig/internal/output"
	"primerfig/internal/writers"
)

// Config controls the batch.
type Config struct {
	Threads int     // number of concurrent renders (>=1)
	Width   float64 // surface size used to fit each drawing; 0 = nominal
	Height  float64

	// Zoom is applied to each fitted view before it is captured; 0 or 1
	// keeps the fit.
	Zoom float64
}

// Input is one site to render.
type Input struct {
	Source     extract.Source
	SourceFile string
	// PanelID names the panel; empty means "panel-<n>" by input position.
	PanelID string
}

// Result is one rendered (or skipped) site.
type Result struct {
	Index int
	output.Item

	Site  primer.Site
	Pairs []primer.Pair

	// Err is a per-site failure such as an empty record list or an
	// unreadable envelope. It never aborts the batch.
	Err error
}

// Rendered reports whether a drawing was produced.
func (r Result) Rendered() bool { return r.Err == nil && r.Drawing != nil }

// ForEachSite shows every input on its own surface, snapshots the drawing,
// hides the panel again and calls visit with results in input order.
// It returns the first visit error or the context's error.
func ForEachSite(ctx context.Context, cfg Config, r Renderer, inputs []Input, visit func(Result) error) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	slots := make([]chan Result, len(inputs))
	for i := range slots {
		slots[i] = make(chan Result, 1)
	}

	// Feed work
	fed := make(chan struct{})
	go func() {
		defer close(fed)
		for i, in := range inputs {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i] <- renderOne(cfg, r, i, in)
				return nil
			})
		}
	}()

	// Deliver in order
	var verr error
deliver:
	for i := range slots {
		select {
		case res := <-slots[i]:
			if err := visit(res); err != nil {
				verr = err
				cancel()
				break deliver
			}
		case <-gctx.Done():
			break deliver
		}
	}

	<-fed
	// Workers only fail with the context's error, reported below.
	_ = g.Wait()
	if verr != nil {
		return verr
	}
	return ctx.Err()
}

func renderOne(cfg Config, r Renderer, i int, in Input) Result {
	id := in.PanelID
	if id == "" {
		id = fmt.Sprintf("panel-%d", i+1)
	}
	res := Result{Index: i, Item: output.Item{PanelID: id, SourceFile: in.SourceFile}}
	if in.Source == nil {
		res.Err = fmt.Errorf("panel %s: no source", id)
		return res
	}

	s := writers.NewSurface(cfg.Width, cfg.Height)
	h, err := r.Show(view.Panel{ID: id, Surface: s, Source: in.Source})
	defer r.Hide(id)
	if err != nil {
		res.Err = err
		return res
	}
	if cfg.Zoom > 0 && cfg.Zoom != 1 {
		h.Zoom(cfg.Zoom)
	}
	it, err := s.Item(id)
	if err != nil {
		res.Err = err
		return res
	}
	// Prefer the site's own id over the generated panel name.
	it.PanelID = h.Drawing().Site.PanelID()
	it.SourceFile = in.SourceFile
	it.Diagnostics = h.Diagnostics()
	res.Item = it
	res.Site = h.Drawing().Site
	res.Pairs = h.Pairs()
	return res
}
