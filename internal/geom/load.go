package geom

import (
	"os"
	"path/filepath"
	"strings"
)

// Supported reports whether the file extension of path has a loader.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".csv", ".kml", ".wkt":
		return true
	}
	return false
}

// Load picks a loader by file extension.
func Load(path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return Data{}, err
		}
		return ParseWKT(string(data))
	}
	return Data{}, &UnsupportedError{Ext: ext}
}

// UnsupportedError is returned by Load for unknown file types.
type UnsupportedError struct {
	Ext string
}

func (e *UnsupportedError) Error() string {
	return "unsupported file: " + e.Ext
}
