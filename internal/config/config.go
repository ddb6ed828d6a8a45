// Package config holds the settings shared by the render and export
// commands. Values come, lowest precedence first, from the built-in
// defaults, an optional YAML/TOML/JSON file, a .env file, PRIMERFIG_*
// environment variables and finally command-line flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"primerfig/core/axis"
	"primerfig/core/diagram"
	"primerfig/core/glyph"
	"primerfig/core/raster"
	"primerfig/core/viewport"
	"primerfig/internal/cmdutil"
)

// EnvPrefix is prepended to every environment key, e.g. PRIMERFIG_LOG_LEVEL.
const EnvPrefix = "PRIMERFIG"

// LayoutConfig places the primer rows.
type LayoutConfig struct {
	FirstRowY       float64 `mapstructure:"first-row-y"`
	Pitch           float64 `mapstructure:"pitch"`
	ShaftHalfHeight float64 `mapstructure:"shaft-half-height"`
	HeadHalfHeight  float64 `mapstructure:"head-half-height"`
	LabelFormat     string  `mapstructure:"label-format"`
	BaseHeight      float64 `mapstructure:"base-height"`
	RowThreshold    int     `mapstructure:"row-threshold"`
}

// ColorConfig is the hit-count to gray ramp.
type ColorConfig struct {
	DomainMin float64 `mapstructure:"domain-min"`
	DomainMax float64 `mapstructure:"domain-max"`
	RangeMin  float64 `mapstructure:"range-min"`
	RangeMax  float64 `mapstructure:"range-max"`
	Intensity float64 `mapstructure:"intensity"`
	Clamp     bool    `mapstructure:"clamp"`
}

// AxisConfig is the horizontal scale.
type AxisConfig struct {
	PixelRange float64 `mapstructure:"pixel-range"`
	TickCount  int     `mapstructure:"tick-count"`
}

// ViewportConfig bounds pan and zoom.
type ViewportConfig struct {
	MinZoom  float64 `mapstructure:"min-zoom"`
	MaxZoom  float64 `mapstructure:"max-zoom"`
	ZoomStep float64 `mapstructure:"zoom-step"`
}

// RenderConfig is the output surface.
type RenderConfig struct {
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
	Zoom        float64 `mapstructure:"zoom"`
	Supersample int     `mapstructure:"supersample"`
	Threads     int     `mapstructure:"threads"`
}

// LogConfig sets the stderr verbosity.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the root settings struct.
type Config struct {
	Layout   LayoutConfig   `mapstructure:"layout"`
	Color    ColorConfig    `mapstructure:"color"`
	Axis     AxisConfig     `mapstructure:"axis"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	Render   RenderConfig   `mapstructure:"render"`
	Log      LogConfig      `mapstructure:"log"`
}

// Default mirrors the core packages' defaults.
func Default() Config {
	g := glyph.DefaultOptions
	c := g.Color
	return Config{
		Layout: LayoutConfig{
			FirstRowY:       g.FirstRowY,
			Pitch:           g.Pitch,
			ShaftHalfHeight: g.ShaftHalfHeight,
			HeadHalfHeight:  g.HeadHalfHeight,
			LabelFormat:     g.LabelFormat,
			BaseHeight:      g.BaseHeight,
			RowThreshold:    g.RowThreshold,
		},
		Color: ColorConfig{
			DomainMin: c.DomainMin, DomainMax: c.DomainMax,
			RangeMin: c.RangeMin, RangeMax: c.RangeMax,
			Intensity: c.Intensity, Clamp: c.Clamp,
		},
		Axis: AxisConfig{
			PixelRange: axis.DefaultOptions.PixelRange,
			TickCount:  axis.DefaultOptions.TickCount,
		},
		Viewport: ViewportConfig{
			MinZoom:  viewport.DefaultOptions.MinZoom,
			MaxZoom:  viewport.DefaultOptions.MaxZoom,
			ZoomStep: viewport.DefaultOptions.ZoomStep,
		},
		Render: RenderConfig{Supersample: raster.DefaultOptions.Supersample},
		Log:    LogConfig{Level: "warn"},
	}
}

// SetDefaults registers every key with v so environment overrides are seen
// by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	for k, val := range map[string]any{
		"layout.first-row-y":       d.Layout.FirstRowY,
		"layout.pitch":             d.Layout.Pitch,
		"layout.shaft-half-height": d.Layout.ShaftHalfHeight,
		"layout.head-half-height":  d.Layout.HeadHalfHeight,
		"layout.label-format":      d.Layout.LabelFormat,
		"layout.base-height":       d.Layout.BaseHeight,
		"layout.row-threshold":     d.Layout.RowThreshold,
		"color.domain-min":         d.Color.DomainMin,
		"color.domain-max":         d.Color.DomainMax,
		"color.range-min":          d.Color.RangeMin,
		"color.range-max":          d.Color.RangeMax,
		"color.intensity":          d.Color.Intensity,
		"color.clamp":              d.Color.Clamp,
		"axis.pixel-range":         d.Axis.PixelRange,
		"axis.tick-count":          d.Axis.TickCount,
		"viewport.min-zoom":        d.Viewport.MinZoom,
		"viewport.max-zoom":        d.Viewport.MaxZoom,
		"viewport.zoom-step":       d.Viewport.ZoomStep,
		"render.width":             d.Render.Width,
		"render.height":            d.Render.Height,
		"render.zoom":              d.Render.Zoom,
		"render.supersample":       d.Render.Supersample,
		"render.threads":           d.Render.Threads,
		"log.level":                d.Log.Level,
	} {
		v.SetDefault(k, val)
	}
}

// LoadDotEnv loads path into the process environment if it exists. Variables
// already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Load reads the settings into v and decodes them. file may be empty.
// Flags should be bound to v (keys as in SetDefaults) before calling.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no drawing can be built with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, a ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, a...))
		}
	}
	check(c.Layout.Pitch > 0, "layout.pitch must be > 0 (got %g)", c.Layout.Pitch)
	check(c.Layout.BaseHeight > 0, "layout.base-height must be > 0 (got %g)", c.Layout.BaseHeight)
	check(c.Layout.RowThreshold >= 0, "layout.row-threshold must be >= 0 (got %d)", c.Layout.RowThreshold)
	check(c.Layout.ShaftHalfHeight > 0 && c.Layout.HeadHalfHeight >= c.Layout.ShaftHalfHeight,
		"layout: need 0 < shaft-half-height <= head-half-height (got %g, %g)",
		c.Layout.ShaftHalfHeight, c.Layout.HeadHalfHeight)
	check(strings.Count(c.Layout.LabelFormat, "%d") == 1, "layout.label-format must contain one %%d (got %q)", c.Layout.LabelFormat)
	check(c.Color.DomainMin != c.Color.DomainMax, "color: domain-min and domain-max must differ")
	check(c.Axis.PixelRange > 0, "axis.pixel-range must be > 0 (got %g)", c.Axis.PixelRange)
	check(c.Axis.TickCount > 0, "axis.tick-count must be > 0 (got %d)", c.Axis.TickCount)
	check(c.Viewport.MinZoom > 0 && c.Viewport.MaxZoom >= c.Viewport.MinZoom,
		"viewport: need 0 < min-zoom <= max-zoom (got %g, %g)", c.Viewport.MinZoom, c.Viewport.MaxZoom)
	check(c.Viewport.ZoomStep > 1, "viewport.zoom-step must be > 1 (got %g)", c.Viewport.ZoomStep)
	check(c.Render.Width >= 0 && c.Render.Height >= 0, "render: width and height must be >= 0")
	check(c.Render.Zoom >= 0, "render.zoom must be >= 0 (got %g)", c.Render.Zoom)
	check(c.Render.Supersample >= 1, "render.supersample must be >= 1 (got %d)", c.Render.Supersample)
	check(c.Render.Threads >= 0, "render.threads must be >= 0 (got %d)", c.Render.Threads)
	if _, err := cmdutil.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// GlyphOptions is the layout and color section as core options.
func (c Config) GlyphOptions() glyph.Options {
	return glyph.Options{
		FirstRowY:       c.Layout.FirstRowY,
		Pitch:           c.Layout.Pitch,
		ShaftHalfHeight: c.Layout.ShaftHalfHeight,
		HeadHalfHeight:  c.Layout.HeadHalfHeight,
		LabelFormat:     c.Layout.LabelFormat,
		BaseHeight:      c.Layout.BaseHeight,
		RowThreshold:    c.Layout.RowThreshold,
		Color: glyph.ColorScale{
			DomainMin: c.Color.DomainMin, DomainMax: c.Color.DomainMax,
			RangeMin: c.Color.RangeMin, RangeMax: c.Color.RangeMax,
			Intensity: c.Color.Intensity, Clamp: c.Color.Clamp,
		},
	}
}

// DiagramOptions overlays the configured sections on diagram.DefaultOptions.
func (c Config) DiagramOptions() diagram.Options {
	o := diagram.DefaultOptions
	o.Axis = axis.Options{PixelRange: c.Axis.PixelRange, TickCount: c.Axis.TickCount}
	o.Glyph = c.GlyphOptions()
	return o
}

// ViewportOptions is the viewport section as core options.
func (c Config) ViewportOptions() viewport.Options {
	return viewport.Options{MinZoom: c.Viewport.MinZoom, MaxZoom: c.Viewport.MaxZoom, ZoomStep: c.Viewport.ZoomStep}
}

// RasterOptions is the PNG setup; the canvas size comes from each item.
func (c Config) RasterOptions() raster.Options {
	o := raster.DefaultOptions
	o.Supersample = c.Render.Supersample
	return o
}

// LogLevel is the parsed log.level; Validate has already checked it.
func (c Config) LogLevel() cmdutil.Level {
	lv, _ := cmdutil.ParseLevel(c.Log.Level)
	return lv
}
