// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"

	"primerfig/core/extract"
	"primerfig/internal/output"
)

// Common holds the flags every command accepts.
type Common struct {
	ConfigFile string
	EnvFile    string
	LogLevel   string
	Quiet      bool
}

// RenderOptions holds the render command's flags and inputs.
type RenderOptions struct {
	Inputs      []string
	InputFormat string
	Format      string
	OutDir      string

	Width, Height float64
	Zoom          float64
	Threads       int
	Supersample   int
	Clamp         bool
	Unique        bool
}

// ExportOptions holds the export command's flags and inputs.
type ExportOptions struct {
	Inputs      []string
	InputFormat string
	Format      string
	Output      string
	MaxHit      float64
	Sort        bool
}

// ConfigKeys maps flag names to the configuration keys they override.
var ConfigKeys = map[string]string{
	"log-level":   "log.level",
	"width":       "render.width",
	"height":      "render.height",
	"zoom":        "render.zoom",
	"threads":     "render.threads",
	"supersample": "render.supersample",
	"clamp":       "color.clamp",
}

var (
	inputFormats  = []string{extract.FormatAuto, extract.FormatJSON, extract.FormatHTML, extract.FormatTSV}
	renderFormats = []string{output.FormatSVG, output.FormatPNG, output.FormatJSON, output.FormatJSONL, output.FormatText}
	exportFormats = []string{output.ExportTSV, output.ExportXLSX}
)

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// RegisterCommon adds the shared flags to fs.
func RegisterCommon(fs *pflag.FlagSet, o *Common) {
	fs.StringVar(&o.ConfigFile, "config", "", "YAML/TOML/JSON settings file")
	fs.StringVar(&o.EnvFile, "env-file", ".env", "dotenv file loaded before reading PRIMERFIG_* variables")
	fs.StringVar(&o.LogLevel, "log-level", "warn", "stderr verbosity: error | warn | info | debug")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "suppress warnings on stderr")
}

// RegisterRender adds the render flags to fs.
func RegisterRender(fs *pflag.FlagSet, o *RenderOptions) {
	fs.StringVarP(&o.InputFormat, "input-format", "i", extract.FormatAuto, "input format: auto | json | html | tsv")
	fs.StringVarP(&o.Format, "format", "f", output.FormatSVG, "output format: svg | png | json | jsonl | text")
	fs.StringVarP(&o.OutDir, "out-dir", "o", "", "write one file per site into this directory (default: stdout)")
	fs.Float64Var(&o.Width, "width", 0, "canvas width (0 = drawing width)")
	fs.Float64Var(&o.Height, "height", 0, "canvas height (0 = drawing height)")
	fs.Float64Var(&o.Zoom, "zoom", 0, "zoom factor applied after fitting (0 = fit)")
	fs.IntVarP(&o.Threads, "threads", "t", 0, "number of concurrent renders (0 = all CPUs)")
	fs.IntVar(&o.Supersample, "supersample", 4, "PNG supersampling factor")
	fs.BoolVar(&o.Clamp, "clamp", false, "clamp hit counts to the color domain")
	fs.BoolVar(&o.Unique, "unique", false, "draw each site (template-start-length) once")
}

// RegisterExport adds the export flags to fs.
func RegisterExport(fs *pflag.FlagSet, o *ExportOptions) {
	fs.StringVarP(&o.InputFormat, "input-format", "i", extract.FormatAuto, "input format: auto | json | html | tsv")
	fs.StringVarP(&o.Format, "format", "f", output.ExportTSV, "export format: tsv | xlsx")
	fs.StringVarP(&o.Output, "output", "o", "", "output file (default: stdout)")
	fs.Float64Var(&o.MaxHit, "max-hit", -1, "keep primers with at most this many hits (-1 = all)")
	fs.BoolVar(&o.Sort, "sort", false, "sort rows by site then hit count")
}

// Validate checks the render flags once inputs are set.
func (o RenderOptions) Validate() error {
	if len(o.Inputs) == 0 {
		return errors.New("at least one input file is required ('-' for stdin)")
	}
	if !slices.Contains(inputFormats, o.InputFormat) {
		return fmt.Errorf("invalid --input-format %q", o.InputFormat)
	}
	if !slices.Contains(renderFormats, o.Format) {
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New("--width and --height must be ≥ 0")
	}
	if o.Zoom < 0 {
		return errors.New("--zoom must be ≥ 0")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.Supersample < 1 {
		return errors.New("--supersample must be ≥ 1")
	}
	return nil
}

// Validate checks the export flags once inputs are set.
func (o ExportOptions) Validate() error {
	if len(o.Inputs) == 0 {
		return errors.New("at least one input file is required ('-' for stdin)")
	}
	if !slices.Contains(inputFormats, o.InputFormat) {
		return fmt.Errorf("invalid --input-format %q", o.InputFormat)
	}
	if !slices.Contains(exportFormats, o.Format) {
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if o.MaxHit < -1 {
		return errors.New("--max-hit must be ≥ -1")
	}
	return nil
}
