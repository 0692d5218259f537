package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"isoplan/internal/arrange"
	"isoplan/internal/raster"
	"isoplan/internal/shape"
)

// viewport maps UV into the braille microgrid (2x4 micro pixels per cell)
// through the current projection, zoom and pan.
type viewport struct {
	proj       raster.Projection
	cx, cy     float64 // plane coordinates at the centre of the map
	scale      float64 // micro pixels per plane unit
	wMic, hMic int
	offX, offY int
}

func (m Model) viewport(w, h int) viewport {
	v := viewport{
		proj:  m.proj,
		scale: 8,
		wMic:  w * 2,
		hMic:  h * 4,
		offX:  m.offsetX * 2,
		offY:  m.offsetY * 4,
	}
	ext := m.store.Extent()
	if !ext.IsEmpty() {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, c := range []arrange.UV{
			arrange.Pt(ext.X.Lo, ext.Y.Lo), arrange.Pt(ext.X.Hi, ext.Y.Lo),
			arrange.Pt(ext.X.Hi, ext.Y.Hi), arrange.Pt(ext.X.Lo, ext.Y.Hi),
		} {
			x, y := m.proj.Project(c)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		v.cx, v.cy = (minX+maxX)/2, (minY+maxY)/2
		sx, sy := maxX-minX, maxY-minY
		switch {
		case sx > 0 && sy > 0:
			v.scale = math.Min(float64(v.wMic-1)/sx, float64(v.hMic-1)/sy) * 0.9
		case sx > 0:
			v.scale = float64(v.wMic-1) / sx * 0.9
		case sy > 0:
			v.scale = float64(v.hMic-1) / sy * 0.9
		}
	}
	v.scale *= m.zoom
	return v
}

func (v viewport) toMicro(p arrange.UV) (int, int) {
	x, y := v.proj.Project(p)
	mx := int(math.Round((x-v.cx)*v.scale)) + v.wMic/2 + v.offX
	my := int(math.Round((y-v.cy)*v.scale)) + v.hMic/2 + v.offY
	return mx, my
}

func (v viewport) fromMicro(mx, my int) arrange.UV {
	x := float64(mx-v.wMic/2-v.offX)/v.scale + v.cx
	y := float64(my-v.hMic/2-v.offY)/v.scale + v.cy
	return v.proj.Unproject(x, y)
}

// cellToUV converts a map cell to the UV point under its centre.
func (m Model) cellToUV(cx, cy, w, h int) (arrange.UV, bool) {
	if w <= 1 || h <= 1 {
		return arrange.UV{}, false
	}
	return m.viewport(w, h).fromMicro(cx*2+1, cy*4+2), true
}

// canvas holds the line layer, the fill layer with one colour per cell and
// text overlays.
type canvas struct {
	w, h   int
	lines  *dots
	fills  *dots
	colors [][]string
	text   map[[2]int]rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:      w,
		h:      h,
		lines:  newDots(w, h),
		fills:  newDots(w, h),
		colors: make([][]string, h),
		text:   make(map[[2]int]rune),
	}
	for y := range c.colors {
		c.colors[y] = make([]string, w)
	}
	return c
}

// segment draws a to b on the line layer; dash > 0 draws it dashed.
func (c *canvas) segment(v viewport, a, b arrange.UV, dash int) {
	x0, y0 := v.toMicro(a)
	x1, y1 := v.toMicro(b)
	c.lines.line(x0, y0, x1, y1, dash)
}

// area fills boundary minus holes with even-odd scanlines on the microgrid.
func (c *canvas) area(v viewport, boundary []arrange.UV, holes [][]arrange.UV, color string) {
	var rings [][][2]int
	for _, ring := range append([][]arrange.UV{boundary}, holes...) {
		if len(ring) < 3 {
			continue
		}
		mic := make([][2]int, len(ring))
		for i, p := range ring {
			mx, my := v.toMicro(p)
			mic[i] = [2]int{mx, my}
		}
		rings = append(rings, mic)
	}
	if len(rings) == 0 {
		return
	}
	hMic := c.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for _, r := range rings {
			for i := range r {
				a := r[i]
				b := r[(i+1)%len(r)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			c.fills.span(yMic, xs[i], xs[i+1], func(cx, cy int) {
				c.colors[cy][cx] = color
			})
		}
	}
}

func (c *canvas) label(v viewport, at arrange.UV, s string) {
	mx, my := v.toMicro(at)
	cx, cy := mx/2-len(s)/2, my/4
	for i, r := range []rune(s) {
		c.text[[2]int{cx + i, cy}] = r
	}
}

func (c *canvas) String() string {
	rows := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		run, runColor := []rune{}, ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			ch, color := ' ', ""
			if r, ok := c.text[[2]int{x, y}]; ok {
				ch, color = r, labelColor
			} else if g, ok := c.lines.glyph(x, y); ok {
				ch = g
			} else if g, ok := c.fills.glyph(x, y); ok {
				ch, color = g, c.colors[y][x]
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run = append(run, ch)
		}
		flush()
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCanvas(w, h int) string {
	v := m.viewport(w, h)
	c := newCanvas(w, h)
	if m.showRegions {
		for _, r := range m.store.Regions().Regions {
			c.area(v, r.Boundary, r.Holes, raster.DepthColor(r.Depth))
		}
	}
	for _, s := range m.store.Shapes() {
		switch s := s.(type) {
		case *shape.Line:
			if !s.Hidden {
				c.segment(v, s.A, s.B, lockedDash(s.Locked))
			}
		case *shape.Polygon:
			if !s.Hidden {
				for _, e := range s.Edges() {
					c.segment(v, e.A, e.B, lockedDash(s.Locked))
				}
			}
		case *shape.Face:
			if !s.Hidden {
				c.area(v, s.Boundary, s.Holes, s.Color)
			}
		case *shape.FillRegion:
			if !s.Hidden {
				c.area(v, s.Boundary, s.Holes, s.Color)
			}
		case *shape.Measurement:
			if !s.Hidden {
				c.segment(v, s.A, s.B, 2)
				c.label(v, s.A.Add(s.B).Mul(0.5), s.Label())
			}
		case *shape.Group:
			// members draw themselves
		default:
			panic(fmt.Sprintf("tui: unknown shape %T", s))
		}
	}
	// hover highlight on the nearest vertex
	if m.hovering {
		c.text[[2]int{m.hoverMicX / 2, m.hoverMicY / 4}] = '●'
	}
	return c.String()
}

// locked lines do not enclose regions and are drawn dashed
func lockedDash(locked bool) int {
	if locked {
		return 3
	}
	return 0
}

// nearestVertex finds the line endpoint closest to the micro pixel (mx, my).
func (m Model) nearestVertex(v viewport, mx, my int) (int, int) {
	best := 1<<31 - 1
	bx, by := mx, my
	for _, l := range m.store.Lines() {
		for _, p := range []arrange.UV{l.A, l.B} {
			px, py := v.toMicro(p)
			dx, dy := px-mx, py-my
			if d := dx*dx + dy*dy; d < best {
				best = d
				bx, by = px, py
			}
		}
	}
	return bx, by
}
