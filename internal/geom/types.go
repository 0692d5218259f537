// Package geom loads line soups from common geometry formats and exports
// detected regions.
package geom

import (
	"math"

	"isoplan/internal/arrange"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBBox returns a box that any extend call replaces.
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b BBox) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

func (b *BBox) extend(u, v float64) {
	b.MinX = math.Min(b.MinX, u)
	b.MinY = math.Min(b.MinY, v)
	b.MaxX = math.Max(b.MaxX, u)
	b.MaxY = math.Max(b.MaxY, v)
}

// Data is a loaded line soup in UV coordinates.
type Data struct {
	Segments []arrange.Segment
	BBox     BBox
}

func newData() Data {
	return Data{BBox: EmptyBBox()}
}

// addSegment appends one segment, skipping zero-length ones.
func (d *Data) addSegment(u0, v0, u1, v1 float64) {
	if u0 == u1 && v0 == v1 {
		return
	}
	d.Segments = append(d.Segments, arrange.Seg(u0, v0, u1, v1))
	d.BBox.extend(u0, v0)
	d.BBox.extend(u1, v1)
}

// addPath appends the segments between consecutive points. Closed paths get
// a closing segment unless the last point repeats the first.
func (d *Data) addPath(pts [][2]float64, closed bool) {
	for i := 0; i+1 < len(pts); i++ {
		d.addSegment(pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1])
	}
	if closed && len(pts) > 2 {
		first, last := pts[0], pts[len(pts)-1]
		if first != last {
			d.addSegment(last[0], last[1], first[0], first[1])
		}
	}
}

// Merge appends the segments of o.
func (d *Data) Merge(o Data) {
	for _, s := range o.Segments {
		d.addSegment(s.A.U, s.A.V, s.B.U, s.B.V)
	}
}
