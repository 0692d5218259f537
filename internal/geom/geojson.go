package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	geojson "github.com/paulmach/go.geojson"

	"isoplan/internal/arrange"
)

// LoadGeo reads a GeoJSON file and returns its line-like geometry as
// segments.
func LoadGeo(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadGeo(f)
}

// ReadGeo decodes a GeoJSON FeatureCollection, Feature or bare geometry.
func ReadGeo(r io.Reader) (Data, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Data{}, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	d := newData()
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		for _, f := range fc.Features {
			walkGeometry(&d, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		walkGeometry(&d, f.Geometry)
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		walkGeometry(&d, g)
	}
	if len(d.Segments) == 0 {
		return Data{}, errors.New("no line geometries found")
	}
	return d, nil
}

func walkGeometry(d *Data, g *geojson.Geometry) {
	if g == nil {
		return
	}
	switch g.Type {
	case geojson.GeometryLineString:
		d.addPath(positions(g.LineString), false)
	case geojson.GeometryMultiLineString:
		for _, ls := range g.MultiLineString {
			d.addPath(positions(ls), false)
		}
	case geojson.GeometryPolygon:
		for _, ring := range g.Polygon {
			d.addPath(positions(ring), true)
		}
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			for _, ring := range poly {
				d.addPath(positions(ring), true)
			}
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			walkGeometry(d, sub)
		}
	}
}

func positions(coords [][]float64) [][2]float64 {
	out := make([][2]float64, 0, len(coords))
	for _, c := range coords {
		if len(c) >= 2 {
			out = append(out, [2]float64{c[0], c[1]})
		}
	}
	return out
}

// RegionsFeatureCollection exports regions as Polygon features: the
// boundary ring followed by one ring per hole, each closed. Holes are
// written clockwise.
func RegionsFeatureCollection(regions []arrange.Region) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range regions {
		rings := make([][][]float64, 0, 1+len(r.Holes))
		rings = append(rings, ring(r.Boundary, false))
		for _, h := range r.Holes {
			rings = append(rings, ring(h, true))
		}
		f := geojson.NewPolygonFeature(rings)
		f.ID = r.ID
		f.SetProperty("id", r.ID)
		f.SetProperty("area", r.Area)
		f.SetProperty("depth", r.Depth)
		if r.Parent != "" {
			f.SetProperty("parent", r.Parent)
		}
		fc.AddFeature(f)
	}
	return fc
}

func ring(pts []arrange.UV, reverse bool) [][]float64 {
	out := make([][]float64, 0, len(pts)+1)
	for i := range pts {
		p := pts[i]
		if reverse {
			p = pts[len(pts)-1-i]
		}
		out = append(out, []float64{p.U, p.V})
	}
	if len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

// WriteRegions writes regions as an indented GeoJSON FeatureCollection.
func WriteRegions(w io.Writer, regions []arrange.Region) error {
	fc := RegionsFeatureCollection(regions)
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("geojson: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// SaveRegions writes regions to a GeoJSON file.
func SaveRegions(path string, regions []arrange.Region) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRegions(f, regions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
