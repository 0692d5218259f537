package tui

// dotBits maps a micro pixel inside a cell (column, row) to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// dots is one braille layer of the canvas: w x h cells, 2x4 micro pixels
// each.
type dots struct {
	w, h int
	mask [][]uint8
}

func newDots(w, h int) *dots {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &dots{w: w, h: h, mask: m}
}

// set turns on the micro pixel (mx, my). Points off the layer are ignored.
func (d *dots) set(mx, my int) bool {
	if mx < 0 || my < 0 {
		return false
	}
	cx, cy := mx/2, my/4
	if cx >= d.w || cy >= d.h {
		return false
	}
	d.mask[cy][cx] |= dotBits[mx%2][my%4]
	return true
}

// span sets the micro pixels x0..x1 on row my and reports the cells touched
// through mark.
func (d *dots) span(my, x0, x1 int, mark func(cx, cy int)) {
	for mx := max(0, x0); mx <= min(x1, d.w*2-1); mx++ {
		if d.set(mx, my) && mark != nil {
			mark(mx/2, my/4)
		}
	}
}

// line draws from (x0, y0) to (x1, y1) with Bresenham. A dash > 0 leaves
// gaps of dash pixels between dashes of the same length.
func (d *dots) line(x0, y0, x1, y1, dash int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if dash <= 0 || (step/dash)%2 == 0 {
			d.set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// glyph returns the braille rune of cell (x, y), or false when it is blank.
func (d *dots) glyph(x, y int) (rune, bool) {
	m := d.mask[y][x]
	if m == 0 {
		return ' ', false
	}
	return rune(0x2800 + int(m)), true
}
