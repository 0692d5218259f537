// Package shape holds the drawing model of a blueprint: the closed set of
// shape kinds, the store that owns them and the tools that turn enclosed
// line regions into fills and faces.
package shape

import (
	"fmt"

	"isoplan/internal/arrange"
)

type UV = arrange.UV

// Kind tags the concrete type behind a Shape.
type Kind int

const (
	KindLine Kind = iota
	KindPolygon
	KindFace
	KindFillRegion
	KindGroup
	KindMeasurement
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	case KindFace:
		return "face"
	case KindFillRegion:
		return "fill"
	case KindGroup:
		return "group"
	case KindMeasurement:
		return "measurement"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Shape is implemented only by the types in this package. Code that
// consumes shapes switches on the concrete type and treats anything else as
// a programming error.
type Shape interface {
	Kind() Kind
	ID() string
	base() *Base
}

// Base carries the attributes every shape has.
type Base struct {
	id     string
	Color  string
	Hidden bool
	Locked bool
}

func (b *Base) ID() string   { return b.id }
func (b *Base) base() *Base { return b }

// Line is a single drawn segment. Active lines (not hidden, not locked)
// take part in region detection.
type Line struct {
	Base
	A, B UV
}

func (*Line) Kind() Kind { return KindLine }

// Endpoints implements arrange.Liner.
func (l *Line) Endpoints() (UV, UV) { return l.A, l.B }

func (l *Line) active() bool { return !l.Hidden && !l.Locked }

// Polygon is a closed outline drawn in one go. Its edges take part in region
// detection exactly like lines.
type Polygon struct {
	Base
	Points []UV
}

func (*Polygon) Kind() Kind { return KindPolygon }

// Edges returns the closing sequence of edges of p.
func (p *Polygon) Edges() []arrange.Segment {
	n := len(p.Points)
	out := make([]arrange.Segment, 0, n)
	for i := range p.Points {
		out = append(out, arrange.Segment{A: p.Points[i], B: p.Points[(i+1)%n]})
	}
	return out
}

// Face is a filled area that no longer follows the lines it came from.
type Face struct {
	Base
	Boundary []UV
	Holes    [][]UV
	// Source is the ID of the region the face was converted from.
	Source string
}

func (*Face) Kind() Kind { return KindFace }

// Area is the boundary area minus the hole areas.
func (f *Face) Area() float64 {
	a := arrange.RingArea(f.Boundary)
	for _, h := range f.Holes {
		a -= arrange.RingArea(h)
	}
	return max(a, 0)
}

// FillRegion colours a detected region. It tracks the region by ID and
// follows its geometry while the region exists.
type FillRegion struct {
	Base
	RegionID string
	Boundary []UV
	Holes    [][]UV
	Area     float64
}

func (*FillRegion) Kind() Kind { return KindFillRegion }

// Group bundles other shapes by ID.
type Group struct {
	Base
	Members []string
}

func (*Group) Kind() Kind { return KindGroup }

// Measurement is a dimension line between two points.
type Measurement struct {
	Base
	A, B UV
}

func (*Measurement) Kind() Kind { return KindMeasurement }

// Length is the UV distance between the measured points.
func (m *Measurement) Length() float64 { return m.A.Dist(m.B) }

// Label renders the length for display.
func (m *Measurement) Label() string {
	return fmt.Sprintf("%.2f", m.Length())
}

func copyRing(ring []UV) []UV {
	return append([]UV(nil), ring...)
}

func copyRings(rings [][]UV) [][]UV {
	if rings == nil {
		return nil
	}
	out := make([][]UV, len(rings))
	for i, r := range rings {
		out[i] = copyRing(r)
	}
	return out
}
