package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	Ring kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlMulti struct {
	Lines    []kmlCoords  `xml:"LineString"`
	Polygons []kmlPolygon `xml:"Polygon"`
}

type kmlPlacemark struct {
	Line    *kmlCoords  `xml:"LineString"`
	Ring    *kmlCoords  `xml:"LinearRing"`
	Polygon *kmlPolygon `xml:"Polygon"`
	Multi   *kmlMulti   `xml:"MultiGeometry"`
}

type kmlFolder struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlFolder    `xml:"Folder"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlFolder    `xml:"Folder"`
	Document   *kmlFolder     `xml:"Document"`
}

// LoadKML extracts LineString, LinearRing and Polygon coordinates from a
// KML file as segments. KML coordinates are "u,v[,alt]"; altitude is
// ignored.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadKML(f)
}

func ReadKML(r io.Reader) (Data, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Data{}, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Data{}, fmt.Errorf("kml: %w", err)
	}
	d := newData()
	walkFolder(&d, kmlFolder{Placemarks: doc.Placemarks, Folders: doc.Folders})
	if doc.Document != nil {
		walkFolder(&d, *doc.Document)
	}
	if len(d.Segments) == 0 {
		return Data{}, errors.New("kml: no lines found")
	}
	return d, nil
}

func walkFolder(d *Data, f kmlFolder) {
	for _, pm := range f.Placemarks {
		if pm.Line != nil {
			d.addPath(kmlTuples(pm.Line.Coordinates), false)
		}
		if pm.Ring != nil {
			d.addPath(kmlTuples(pm.Ring.Coordinates), true)
		}
		if pm.Polygon != nil {
			addKMLPolygon(d, *pm.Polygon)
		}
		if pm.Multi != nil {
			for _, l := range pm.Multi.Lines {
				d.addPath(kmlTuples(l.Coordinates), false)
			}
			for _, p := range pm.Multi.Polygons {
				addKMLPolygon(d, p)
			}
		}
	}
	for _, sub := range f.Folders {
		walkFolder(d, sub)
	}
}

func addKMLPolygon(d *Data, p kmlPolygon) {
	d.addPath(kmlTuples(p.Outer.Ring.Coordinates), true)
	for _, in := range p.Inner {
		d.addPath(kmlTuples(in.Ring.Coordinates), true)
	}
}

// kmlTuples parses whitespace separated "u,v[,alt]" tuples.
func kmlTuples(s string) [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		u, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		v, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{u, v})
	}
	return out
}
