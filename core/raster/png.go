// Package raster renders a diagram.Drawing to PNG without a browser.
//
// Shapes are filled with the x/image vector rasterizer and text is drawn
// with the embedded Go Regular font. The image is rendered at a multiple of
// the target size and downsampled for smoother edges.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"primerfig/core/axis"
	"primerfig/core/diagram"
	"primerfig/core/geom"
	"primerfig/core/viewport"
)

// Options configures PNG rendering.
type Options struct {
	Width, Height int // zero means the drawing's nominal size
	Supersample   int
	Background    color.Color
}

// DefaultOptions renders at the nominal size with 4x supersampling on white.
var DefaultOptions = Options{Supersample: 4, Background: color.White}

var (
	colorAxis   = color.RGBA{0, 0, 0, 255}
	colorTarget = color.RGBA{255, 0, 0, 255}
)

type canvas struct {
	img *image.RGBA
	t   viewport.Transform
	k   float64 // supersample factor

	// faces belong to this canvas: a font.Face is not safe for concurrent
	// use, and Render may run on many goroutines at once.
	faces map[int]font.Face
}

// pt maps a content point to image pixels.
func (c *canvas) pt(p geom.Point) (float32, float32) {
	s := c.t.Apply(p)
	return float32(s.X * c.k), float32(s.Y * c.k)
}

// Render draws d under t and returns the downsampled image.
func Render(d *diagram.Drawing, t viewport.Transform, opt Options) (*image.RGBA, error) {
	w, h := opt.Width, opt.Height
	if w <= 0 {
		w = int(math.Ceil(d.Width))
	}
	if h <= 0 {
		h = int(math.Ceil(d.Height))
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: empty canvas %dx%d", w, h)
	}
	ss := opt.Supersample
	if ss < 1 {
		ss = 1
	}
	bg := opt.Background
	if bg == nil {
		bg = color.White
	}

	large := image.NewRGBA(image.Rect(0, 0, w*ss, h*ss))
	draw.Draw(large, large.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	c := &canvas{img: large, t: t, k: float64(ss), faces: map[int]font.Face{}}
	defer c.closeFaces()

	if err := c.drawAxis(d); err != nil {
		return nil, err
	}
	c.strokeRect(d.Target, d.TargetStrokeWidth, colorTarget)
	if err := c.text(d.Label.X, d.Label.Y, d.Label.Value, d.Label.FontSize, false, colorAxis); err != nil {
		return nil, err
	}
	for _, r := range d.Rows {
		col := r.Color.Color()
		c.fillPolygon(r.Left, col)
		c.fillPolygon(r.Right, col)
		c.line(r.Connector[0], r.Connector[1], 1, col)
	}

	if ss == 1 {
		return large, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), large, large.Bounds(), draw.Over, nil)
	return out, nil
}

// WritePNG renders d and encodes it to w.
func WritePNG(w io.Writer, d *diagram.Drawing, t viewport.Transform, opt Options) error {
	img, err := Render(d, t, opt)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (c *canvas) drawAxis(d *diagram.Drawing) error {
	lo, hi := d.Axis.RangeMin, d.Axis.RangeMax
	ts := float64(axis.TickSize)
	c.line(geom.Point{X: lo, Y: -ts}, geom.Point{X: lo, Y: 0}, 1, colorAxis)
	c.line(geom.Point{X: lo, Y: 0}, geom.Point{X: hi, Y: 0}, 1, colorAxis)
	c.line(geom.Point{X: hi, Y: 0}, geom.Point{X: hi, Y: -ts}, 1, colorAxis)
	for _, tk := range d.Ticks {
		c.line(geom.Point{X: tk.X, Y: 0}, geom.Point{X: tk.X, Y: -ts}, 1, colorAxis)
		y := -float64(axis.TickSize + axis.TickPadding)
		if err := c.text(tk.X, y, tk.Label, d.TickFontSize, true, colorAxis); err != nil {
			return err
		}
	}
	return nil
}

func (c *canvas) fillPolygon(pts []geom.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	x, y := c.pt(pts[0])
	z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = c.pt(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// line draws a segment of the given content-space width as a filled quad.
func (c *canvas) line(a, b geom.Point, width float64, col color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	hw := width / 2
	px, py := -dy/n*hw, dx/n*hw
	c.fillPolygon([]geom.Point{
		{X: a.X + px, Y: a.Y + py},
		{X: b.X + px, Y: b.Y + py},
		{X: b.X - px, Y: b.Y - py},
		{X: a.X - px, Y: a.Y - py},
	}, col)
}

func (c *canvas) strokeRect(r geom.Rect, width float64, col color.Color) {
	tl := geom.Point{X: r.X, Y: r.Y}
	tr := geom.Point{X: r.MaxX(), Y: r.Y}
	br := geom.Point{X: r.MaxX(), Y: r.MaxY()}
	bl := geom.Point{X: r.X, Y: r.MaxY()}
	c.line(tl, tr, width, col)
	c.line(tr, br, width, col)
	c.line(br, bl, width, col)
	c.line(bl, tl, width, col)
}

// text draws s with its baseline at content (x, y).
func (c *canvas) text(x, y float64, s string, size float64, centered bool, col color.Color) error {
	px := size * c.t.Scale * c.k
	if s == "" || px < 1 {
		return nil
	}
	face, err := c.faceAt(px)
	if err != nil {
		return err
	}
	sx, sy := c.pt(geom.Point{X: x, Y: y})
	dot := fixed.Point26_6{X: fixed.Int26_6(sx * 64), Y: fixed.Int26_6(sy * 64)}
	if centered {
		dot.X -= font.MeasureString(face, s) / 2
	}
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: face, Dot: dot}
	d.DrawString(s)
	return nil
}

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *opentype.Font
)

// parsedFont returns the shared Go Regular font. The parsed font may be
// used concurrently as long as every face has its own glyph buffer, which
// opentype.NewFace guarantees.
func parsedFont() (*opentype.Font, error) {
	fontOnce.Do(func() { goFont, fontErr = opentype.Parse(goregular.TTF) })
	return goFont, fontErr
}

// faceAt returns a Go Regular face at roughly px pixels, cached per canvas.
func (c *canvas) faceAt(px float64) (font.Face, error) {
	f, err := parsedFont()
	if err != nil {
		return nil, err
	}
	key := int(math.Round(px * 4))
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(key) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	c.faces[key] = face
	return face, nil
}

func (c *canvas) closeFaces() {
	for _, f := range c.faces {
		_ = f.Close()
	}
}
