package geom

import (
	"errors"
	"fmt"
	"strings"

	sf "github.com/peterstace/simplefeatures/geom"
)

// ParseWKT turns line-like WKT into segments. LINESTRING, MULTILINESTRING,
// POLYGON and MULTIPOLYGON contribute every edge, holes included;
// GEOMETRYCOLLECTION is walked recursively. Points carry no edges and are
// ignored.
func ParseWKT(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	g, err := sf.UnmarshalWKT(s)
	if err != nil {
		return Data{}, fmt.Errorf("wkt: %w", err)
	}
	d := newData()
	addGeometry(&d, g)
	if len(d.Segments) == 0 {
		return Data{}, errors.New("wkt: no segments found")
	}
	return d, nil
}

func addGeometry(d *Data, g sf.Geometry) {
	switch {
	case g.IsLineString():
		addLineString(d, g.AsLineString(), false)
	case g.IsMultiLineString():
		mls := g.AsMultiLineString()
		for i := 0; i < mls.NumLineStrings(); i++ {
			addLineString(d, mls.LineStringN(i), false)
		}
	case g.IsPolygon():
		addPolygon(d, g.AsPolygon())
	case g.IsMultiPolygon():
		mp := g.AsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			addPolygon(d, mp.PolygonN(i))
		}
	case g.IsGeometryCollection():
		gc := g.AsGeometryCollection()
		for i := 0; i < gc.NumGeometries(); i++ {
			addGeometry(d, gc.GeometryN(i))
		}
	}
}

func addPolygon(d *Data, p sf.Polygon) {
	addLineString(d, p.ExteriorRing(), true)
	for i := 0; i < p.NumInteriorRings(); i++ {
		addLineString(d, p.InteriorRingN(i), true)
	}
}

func addLineString(d *Data, ls sf.LineString, closed bool) {
	seq := ls.Coordinates()
	pts := make([][2]float64, seq.Length())
	for i := range pts {
		xy := seq.GetXY(i)
		pts[i] = [2]float64{xy.X, xy.Y}
	}
	d.addPath(pts, closed)
}
