package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Input formats understood by Read.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatHTML = "html"
	FormatTSV  = "tsv"
)

// DetectFormat guesses the input format from a file name, falling back to a
// sniff of the first non-space byte of data.
func DetectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".html", ".htm":
		return FormatHTML
	case ".tsv", ".txt":
		return FormatTSV
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatTSV
	}
	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	case '<':
		return FormatHTML
	}
	return FormatTSV
}

// Read splits r into per-site Sources. format may be FormatAuto, in which
// case name and content decide.
func Read(name, format string, r io.Reader) ([]Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if format == "" || format == FormatAuto {
		format = DetectFormat(name, data)
	}
	switch format {
	case FormatJSON:
		return SitesFromJSON(data)
	case FormatHTML:
		return PanelsFromHTML(bytes.NewReader(data))
	case FormatTSV:
		return ReadTSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// Load reads path ("-" for stdin) with Read.
func Load(path, format string) ([]Source, error) {
	if path == "-" {
		return Read("", format, os.Stdin)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	srcs, err := Read(path, format, fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return srcs, nil
}
