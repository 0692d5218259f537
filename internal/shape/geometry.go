package shape

import (
	"fmt"

	"github.com/golang/geo/r2"

	"isoplan/internal/arrange"
)

// Bounds is the bounding rectangle of s in UV. Groups span their members;
// an empty group has an empty rectangle.
func (st *Store) Bounds(s Shape) r2.Rect {
	switch s := s.(type) {
	case *Line:
		return arrange.Segment{A: s.A, B: s.B}.Bounds()
	case *Measurement:
		return arrange.Segment{A: s.A, B: s.B}.Bounds()
	case *Polygon:
		return arrange.RingBounds(s.Points)
	case *Face:
		return arrange.RingBounds(s.Boundary)
	case *FillRegion:
		return arrange.RingBounds(s.Boundary)
	case *Group:
		rect := r2.EmptyRect()
		for _, id := range s.Members {
			if m, ok := st.shapes[id]; ok {
				rect = rect.Union(st.Bounds(m))
			}
		}
		return rect
	default:
		panic(fmt.Sprintf("shape: unknown shape %T", s))
	}
}

// Extent is the bounding rectangle of every visible shape.
func (st *Store) Extent() r2.Rect {
	rect := r2.EmptyRect()
	for _, s := range st.Shapes() {
		if !s.base().Hidden {
			rect = rect.Union(st.Bounds(s))
		}
	}
	return rect
}

// HitTest reports whether p touches s: within tol of a line, a measurement
// or an outline, or inside a filled area.
func (st *Store) HitTest(s Shape, p UV, tol float64) bool {
	switch s := s.(type) {
	case *Line:
		return arrange.Segment{A: s.A, B: s.B}.DistTo(p) <= tol
	case *Measurement:
		return arrange.Segment{A: s.A, B: s.B}.DistTo(p) <= tol
	case *Polygon:
		for _, e := range s.Edges() {
			if e.DistTo(p) <= tol {
				return true
			}
		}
		return false
	case *Face:
		return inArea(p, s.Boundary, s.Holes)
	case *FillRegion:
		return inArea(p, s.Boundary, s.Holes)
	case *Group:
		for _, id := range s.Members {
			if m, ok := st.shapes[id]; ok && st.HitTest(m, p, tol) {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("shape: unknown shape %T", s))
	}
}

func inArea(p UV, boundary []UV, holes [][]UV) bool {
	return arrange.RegionContains(p, arrange.Region{
		Boundary: boundary,
		Holes:    holes,
		Bounds:   arrange.RingBounds(boundary),
	})
}

// ShapesAt returns the visible shapes hit at p, topmost first.
func (st *Store) ShapesAt(p UV, tol float64) []Shape {
	var out []Shape
	for i := len(st.order) - 1; i >= 0; i-- {
		s := st.shapes[st.order[i]]
		if !s.base().Hidden && st.HitTest(s, p, tol) {
			out = append(out, s)
		}
	}
	return out
}
