// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"primerfig/internal/jsonlutil"
	"primerfig/internal/output"
)

// StartDrawingJSONLWriter streams each rendered site as one JSON line (v1).
func StartDrawingJSONLWriter(out io.Writer, bufSize int) (chan<- output.Item, <-chan error) {
	return jsonlutil.Start[output.Item](out, bufSize,
		func(enc *json.Encoder, it output.Item) error {
			return enc.Encode(output.ToAPIDrawing(it))
		},
		IsBrokenPipe,
	)
}
