package raster

import (
	"math"

	"isoplan/internal/arrange"
)

// Projection maps UV grid coordinates onto the drawing plane.
type Projection int

const (
	// Iso is the isometric view: the U axis runs down-right and the V axis
	// down-left at 30 degrees.
	Iso Projection = iota
	// Plan is the top-down view with V pointing up.
	Plan
)

func (p Projection) String() string {
	if p == Plan {
		return "plan"
	}
	return "iso"
}

var (
	isoX = math.Cos(math.Pi / 6)
	isoY = math.Sin(math.Pi / 6)
)

// Project returns plane coordinates for p with y growing downwards.
func (p Projection) Project(uv arrange.UV) (x, y float64) {
	if p == Plan {
		return uv.U, -uv.V
	}
	return (uv.U - uv.V) * isoX, (uv.U + uv.V) * isoY
}

// Unproject inverts Project.
func (p Projection) Unproject(x, y float64) arrange.UV {
	if p == Plan {
		return arrange.Pt(x, -y)
	}
	a, b := x/isoX, y/isoY
	return arrange.Pt((a+b)/2, (b-a)/2)
}

// Palette is the set of fill colours offered for regions, in cycling order.
var Palette = []string{
	"#5b8def",
	"#f2a65a",
	"#6cc070",
	"#d96c8a",
	"#a68cf2",
	"#e8d35a",
}

// DepthColor picks a palette colour for a region nested depth levels deep.
func DepthColor(depth int) string {
	return Palette[depth%len(Palette)]
}
