// internal/output/json.go
package output

import (
	"io"

	"primerfig/internal/jsonutil"
	"primerfig/pkg/api"
)

func toAPIDrawings(list []Item) []api.DrawingV1 {
	out := make([]api.DrawingV1, 0, len(list))
	for _, it := range list {
		out = append(out, ToAPIDrawing(it))
	}
	return out
}

// WriteJSON writes one pretty-indented v1 drawing.
func WriteJSON(w io.Writer, it Item) error {
	return jsonutil.EncodePretty(w, ToAPIDrawing(it))
}

// WriteJSONArray writes a single JSON array of v1 drawings.
func WriteJSONArray(w io.Writer, list []Item) error {
	return jsonutil.EncodePretty(w, toAPIDrawings(list))
}
