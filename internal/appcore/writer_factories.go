package appcore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"primerfig/core/raster"
	"primerfig/internal/common"
	"primerfig/internal/output"
	"primerfig/internal/writers"
)

// ---------------- Stream writer ----------------

// StreamWriterFactory writes every drawing to one output stream: json as a
// single array, jsonl one line per site, text figures separated by a blank
// line, svg and png as-is (callers allow those for one site only).
type StreamWriterFactory struct {
	Format string
	PNG    raster.Options
}

func NewStreamWriterFactory(format string, png raster.Options) StreamWriterFactory {
	return StreamWriterFactory{Format: format, PNG: png}
}

func (w StreamWriterFactory) Start(out io.Writer, bufSize int) (chan<- output.Item, <-chan error) {
	switch w.Format {
	case output.FormatJSONL:
		return writers.StartDrawingJSONLWriter(out, bufSize)
	case output.FormatJSON:
		return start(bufSize, func(in <-chan output.Item) error {
			items := []output.Item{}
			for it := range in {
				items = append(items, it)
			}
			return output.WriteJSONArray(out, items)
		})
	}
	write := itemWriter(w.Format, w.PNG)
	return start(bufSize, func(in <-chan output.Item) error {
		n := 0
		for it := range in {
			if n > 0 && w.Format == output.FormatText {
				if _, err := io.WriteString(out, "\n"); err != nil {
					return err
				}
			}
			if err := write(out, it); err != nil {
				return err
			}
			n++
		}
		return nil
	})
}

// ---------------- Directory writer ----------------

// DirWriterFactory writes one file per site into Dir, named after the site
// key ("template-start-length") with repeats suffixed.
type DirWriterFactory struct {
	Dir    string
	Format string
	PNG    raster.Options
}

func NewDirWriterFactory(dir, format string, png raster.Options) DirWriterFactory {
	return DirWriterFactory{Dir: dir, Format: format, PNG: png}
}

// Ext is the file extension used for format.
func Ext(format string) string {
	switch format {
	case output.FormatText:
		return ".txt"
	case output.FormatJSONL:
		return ".json"
	}
	return "." + format
}

func (w DirWriterFactory) Start(_ io.Writer, bufSize int) (chan<- output.Item, <-chan error) {
	write := itemWriter(w.Format, w.PNG)
	if w.Format == output.FormatJSONL {
		write = output.WriteJSON
	}
	return start(bufSize, func(in <-chan output.Item) error {
		if err := os.MkdirAll(w.Dir, 0o755); err != nil {
			return err
		}
		names := common.NameSet{}
		for it := range in {
			name := names.Claim(common.FileStem(it.Drawing.Site.Key())) + Ext(w.Format)
			if err := writeFile(filepath.Join(w.Dir, name), it, write); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFile(path string, it output.Item, write func(io.Writer, output.Item) error) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fh, it); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return fh.Close()
}

// itemWriter is the registered writer for format, with PNG rasterized at
// the configured quality.
func itemWriter(format string, png raster.Options) func(io.Writer, output.Item) error {
	if format == output.FormatPNG {
		return writers.PNGWriter(png)
	}
	return func(w io.Writer, it output.Item) error { return writers.WriteDrawing(format, w, it) }
}

// start runs consume on a buffered channel. After an error the channel is
// drained so senders never block.
func start(bufSize int, consume func(<-chan output.Item) error) (chan<- output.Item, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Item, bufSize)
	done := make(chan error, 1)
	go func() {
		err := consume(in)
		for range in {
		}
		done <- err
	}()
	return in, done
}
