package writers

import (
	"io"
	"math"

	"primerfig/core/raster"
	"primerfig/core/svg"
	"primerfig/internal/output"
	"primerfig/internal/pretty"
)

func init() {
	RegisterDrawing(output.FormatSVG, writeSVG)
	RegisterDrawing(output.FormatPNG, PNGWriter(raster.DefaultOptions))
	RegisterDrawing(output.FormatJSON, output.WriteJSON)
	RegisterDrawing(output.FormatText, writeText)
}

func writeSVG(w io.Writer, it output.Item) error {
	return svg.Write(w, it.Drawing, it.ViewTransform(), it.Width, it.Height)
}

// PNGWriter rasterizes with base, sized to each item's canvas.
func PNGWriter(base raster.Options) func(io.Writer, output.Item) error {
	return func(w io.Writer, it output.Item) error {
		opt := base
		opt.Width = int(math.Ceil(it.Width))
		opt.Height = int(math.Ceil(it.Height))
		return raster.WritePNG(w, it.Drawing, it.ViewTransform(), opt)
	}
}

func writeText(w io.Writer, it output.Item) error {
	_, err := io.WriteString(w, pretty.RenderDrawing(it.Drawing, pretty.DefaultOptions))
	return err
}
