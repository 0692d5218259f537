package arrange

import (
	"math"
	"strconv"

	"github.com/golang/geo/r2"
)

// UV is a point in the planar grid space all arrangement geometry lives in.
type UV struct {
	U, V float64
}

// Pt is shorthand for UV{u, v}.
func Pt(u, v float64) UV {
	return UV{U: u, V: v}
}

func (p UV) Add(q UV) UV {
	return UV{U: p.U + q.U, V: p.V + q.V}
}

func (p UV) Sub(q UV) UV {
	return UV{U: p.U - q.U, V: p.V - q.V}
}

func (p UV) Mul(s float64) UV {
	return UV{U: p.U * s, V: p.V * s}
}

func (p UV) Dot(q UV) float64 {
	return p.U*q.U + p.V*q.V
}

// Cross returns the z component of the 3D cross product.
func (p UV) Cross(q UV) float64 {
	return p.U*q.V - p.V*q.U
}

func (p UV) Len() float64 {
	return math.Hypot(p.U, p.V)
}

func (p UV) Dist(q UV) float64 {
	return p.Sub(q).Len()
}

// Less orders points lexicographically by U then V.
func (p UV) Less(q UV) bool {
	if p.U != q.U {
		return p.U < q.U
	}
	return p.V < q.V
}

func (p UV) String() string {
	return "(" + formatCoord(p.U) + " " + formatCoord(p.V) + ")"
}

func (p UV) r2() r2.Point {
	return r2.Point{X: p.U, Y: p.V}
}

// snap rounds v to the nearest multiple of step. A non-positive step leaves v
// unchanged.
func snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	r := math.Round(v/step) * step
	if r == 0 {
		// normalize -0 so keys stay stable
		return 0
	}
	return r
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Segment is a raw input line in UV space.
type Segment struct {
	A, B UV
}

// Seg builds a segment from four coordinates.
func Seg(u0, v0, u1, v1 float64) Segment {
	return Segment{A: Pt(u0, v0), B: Pt(u1, v1)}
}

// Endpoints implements Liner.
func (s Segment) Endpoints() (UV, UV) {
	return s.A, s.B
}

// DistTo is the distance from p to the closest point of s.
func (s Segment) DistTo(p UV) float64 {
	return distToSegment(p, s.A, s.B)
}

// Len is the length of s.
func (s Segment) Len() float64 {
	return s.A.Dist(s.B)
}

// Bounds is the bounding rectangle of s.
func (s Segment) Bounds() r2.Rect {
	return r2.RectFromPoints(s.A.r2(), s.B.r2())
}

// Liner is anything that exposes two UV endpoints.
type Liner interface {
	Endpoints() (UV, UV)
}

// SegmentsOf converts line-like values into engine segments.
func SegmentsOf[L Liner](lines []L) []Segment {
	out := make([]Segment, 0, len(lines))
	for _, l := range lines {
		a, b := l.Endpoints()
		out = append(out, Segment{A: a, B: b})
	}
	return out
}

// signedArea is the shoelace area of a closed ring; counter-clockwise rings
// are positive.
func signedArea(ring []UV) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		sum += a.Cross(b)
	}
	return sum / 2
}

// centroid returns the area centroid of a ring, falling back to the vertex
// mean for degenerate rings.
func centroid(ring []UV) UV {
	n := len(ring)
	if n == 0 {
		return UV{}
	}
	a := signedArea(ring)
	if math.Abs(a) < 1e-12 {
		var s UV
		for _, p := range ring {
			s = s.Add(p)
		}
		return s.Mul(1 / float64(n))
	}
	var cu, cv float64
	for i := 0; i < n; i++ {
		p := ring[i]
		q := ring[(i+1)%n]
		f := p.Cross(q)
		cu += (p.U + q.U) * f
		cv += (p.V + q.V) * f
	}
	return UV{U: cu / (6 * a), V: cv / (6 * a)}
}

// RingBounds is the bounding rectangle of ring.
func RingBounds(ring []UV) r2.Rect {
	pts := make([]r2.Point, len(ring))
	for i, p := range ring {
		pts[i] = p.r2()
	}
	return r2.RectFromPoints(pts...)
}

// RingArea is the unsigned area enclosed by ring.
func RingArea(ring []UV) float64 {
	return math.Abs(signedArea(ring))
}

func reversed(ring []UV) []UV {
	out := make([]UV, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}
