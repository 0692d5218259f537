// Package raster renders line sets and their regions to images.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"isoplan/internal/arrange"
)

// Scene is everything one image shows.
type Scene struct {
	Segments []arrange.Segment
	Regions  []arrange.Region
	// Fills maps region IDs to colours. Regions without an entry are
	// coloured by depth when Options.AutoFill is set and left blank
	// otherwise.
	Fills map[string]string
}

// Option configures Render.
type Option func(*options)

type options struct {
	width, height int
	margin        float64
	projection    Projection
	background    string
	ink           string
	lineWidth     float64
	autoFill      bool
	labels        bool
}

func defaultOptions() options {
	return options{
		width:      800,
		height:     600,
		margin:     24,
		projection: Iso,
		background: "#10243e",
		ink:        "#e6eef8",
		lineWidth:  1.5,
		autoFill:   true,
	}
}

// WithSize sets the image size in pixels.
func WithSize(w, h int) Option {
	return func(o *options) {
		if w > 0 && h > 0 {
			o.width, o.height = w, h
		}
	}
}

func WithProjection(p Projection) Option {
	return func(o *options) { o.projection = p }
}

// WithColors sets the background and line colours as hex strings.
func WithColors(background, ink string) Option {
	return func(o *options) {
		o.background, o.ink = background, ink
	}
}

func WithLineWidth(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.lineWidth = px
		}
	}
}

// WithAutoFill toggles depth colouring of regions that have no fill.
func WithAutoFill(on bool) Option {
	return func(o *options) { o.autoFill = on }
}

// WithLabels prints each region's area at its anchor.
func WithLabels(on bool) Option {
	return func(o *options) { o.labels = on }
}

func parseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("raster: colour %q: %w", hex, err)
	}
	return c, nil
}

// fit maps plane coordinates into the image, preserving aspect ratio.
type fit struct {
	proj   Projection
	scale  float64
	dx, dy float64
}

func newFit(sc Scene, o options) fit {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(p arrange.UV) {
		x, y := o.projection.Project(p)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, s := range sc.Segments {
		add(s.A)
		add(s.B)
	}
	for _, r := range sc.Regions {
		for _, p := range r.Boundary {
			add(p)
		}
	}
	f := fit{proj: o.projection, scale: 1}
	if minX > maxX {
		return f
	}
	w := float64(o.width) - 2*o.margin
	h := float64(o.height) - 2*o.margin
	spanX, spanY := maxX-minX, maxY-minY
	switch {
	case spanX == 0 && spanY == 0:
	case spanX == 0:
		f.scale = h / spanY
	case spanY == 0:
		f.scale = w / spanX
	default:
		f.scale = math.Min(w/spanX, h/spanY)
	}
	f.dx = float64(o.width)/2 - (minX+maxX)/2*f.scale
	f.dy = float64(o.height)/2 - (minY+maxY)/2*f.scale
	return f
}

func (f fit) at(p arrange.UV) (float32, float32) {
	x, y := f.proj.Project(p)
	return float32(x*f.scale + f.dx), float32(y*f.scale + f.dy)
}

// Render draws sc: region fills first, holes cut out, then every segment on
// top.
func Render(sc Scene, opts ...Option) (*image.RGBA, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	bg, err := parseColor(o.background)
	if err != nil {
		return nil, err
	}
	ink, err := parseColor(o.ink)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, o.width, o.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	f := newFit(sc, o)
	z := vector.NewRasterizer(o.width, o.height)

	for _, r := range sc.Regions {
		hex, ok := sc.Fills[r.ID]
		if !ok {
			if !o.autoFill {
				continue
			}
			hex = DepthColor(r.Depth)
		}
		c, err := parseColor(hex)
		if err != nil {
			return nil, err
		}
		z.Reset(o.width, o.height)
		ring(z, f, r.Boundary, false)
		for _, h := range r.Holes {
			// boundaries and holes share an orientation; reversing the hole
			// makes its winding cancel the boundary's
			ring(z, f, h, true)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	src := image.NewUniform(ink)
	for _, s := range sc.Segments {
		z.Reset(o.width, o.height)
		stroke(z, f, s, o.lineWidth)
		z.Draw(img, img.Bounds(), src, image.Point{})
	}

	if o.labels {
		d := &font.Drawer{Dst: img, Src: src, Face: basicfont.Face7x13}
		for _, r := range sc.Regions {
			label := strconv.FormatFloat(r.Area, 'f', -1, 64)
			x, y := f.at(r.Anchor)
			w := d.MeasureString(label)
			d.Dot = fixed.Point26_6{
				X: fixed.I(int(x)) - w/2,
				Y: fixed.I(int(y) + basicfont.Face7x13.Ascent/2),
			}
			d.DrawString(label)
		}
	}
	return img, nil
}

func ring(z *vector.Rasterizer, f fit, pts []arrange.UV, reverse bool) {
	n := len(pts)
	if n < 3 {
		return
	}
	pt := func(i int) arrange.UV {
		if reverse {
			return pts[n-1-i]
		}
		return pts[i]
	}
	x, y := f.at(pt(0))
	z.MoveTo(x, y)
	for i := 1; i < n; i++ {
		x, y = f.at(pt(i))
		z.LineTo(x, y)
	}
	z.ClosePath()
}

// stroke adds a segment as a quad of the given pixel width.
func stroke(z *vector.Rasterizer, f fit, s arrange.Segment, width float64) {
	ax, ay := f.at(s.A)
	bx, by := f.at(s.B)
	dx, dy := float64(bx-ax), float64(by-ay)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx := float32(-dy / l * width / 2)
	ny := float32(dx / l * width / 2)
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG renders sc and writes it to path.
func SavePNG(path string, sc Scene, opts ...Option) error {
	img, err := Render(sc, opts...)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
