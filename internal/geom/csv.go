package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads one segment per row from a CSV with endpoint columns.
// Column detection (case-insensitive): u0|x0, v0|y0, u1|x1, v1|y1.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func ReadCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	idx := [4]int{-1, -1, -1, -1}
	for i, h := range recs[0] {
		col := -1
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "u0", "x0":
			col = 0
		case "v0", "y0":
			col = 1
		case "u1", "x1":
			col = 2
		case "v1", "y1":
			col = 3
		}
		if col >= 0 && idx[col] == -1 {
			idx[col] = i
		}
	}
	for _, i := range idx {
		if i == -1 {
			return Data{}, errors.New("csv: u0,v0,u1,v1 columns not found")
		}
	}
	d := newData()
	for _, row := range recs[1:] {
		var c [4]float64
		ok := true
		for k, i := range idx {
			if i >= len(row) {
				ok = false
				break
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				ok = false
				break
			}
			c[k] = v
		}
		if ok {
			d.addSegment(c[0], c[1], c[2], c[3])
		}
	}
	if len(d.Segments) == 0 {
		return Data{}, errors.New("csv: no valid segments parsed")
	}
	return d, nil
}
