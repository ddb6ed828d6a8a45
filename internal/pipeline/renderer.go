// internal/pipeline/renderer.go
package pipeline

import "primerfig/core/view"

// Renderer is the minimal capability the pipeline needs.
// *view.Controller satisfies it; fakes in tests can too.
type Renderer interface {
	Show(p view.Panel) (*view.Handle, error)
	Hide(panelID string)
}

var _ Renderer = (*view.Controller)(nil)
