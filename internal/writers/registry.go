// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"primerfig/internal/output"
)

// DrawingWriters maps a format name to its handler. Handlers register in
// init() blocks.
var DrawingWriters = map[string]func(w io.Writer, it output.Item) error{}

// RegisterDrawing adds or replaces a format (last wins).
func RegisterDrawing(format string, fn func(io.Writer, output.Item) error) {
	DrawingWriters[format] = fn
}

// WriteDrawing dispatches it to the writer registered for format.
func WriteDrawing(format string, w io.Writer, it output.Item) error {
	fn, ok := DrawingWriters[format]
	if !ok {
		return fmt.Errorf("unknown drawing format %q (no writer registered)", format)
	}
	if it.Drawing == nil {
		return fmt.Errorf("%s: nothing drawn", format)
	}
	return fn(w, it)
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	return slices.Sorted(maps.Keys(DrawingWriters))
}
