package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"isoplan/internal/shape"
)

// refreshRegionTable rebuilds the table rows from the current regions.
func (m *Model) refreshRegionTable() {
	res := m.store.Regions()
	if len(res.Regions) == 0 {
		m.showTable = false
		m.status = "no regions in current drawing"
		return
	}
	fills := make(map[string]string)
	for _, s := range m.store.Shapes() {
		switch s := s.(type) {
		case *shape.FillRegion:
			fills[s.RegionID] = "fill " + s.Color
		case *shape.Face:
			if _, ok := fills[s.Source]; !ok {
				fills[s.Source] = "face " + s.Color
			}
		}
	}
	tcols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "id", Width: 14},
		{Title: "area", Width: 10},
		{Title: "depth", Width: 6},
		{Title: "parent", Width: 14},
		{Title: "holes", Width: 6},
		{Title: "paint", Width: 14},
	}
	trows := make([]table.Row, 0, len(res.Regions))
	for i, r := range res.Regions {
		trows = append(trows, table.Row{
			strconv.Itoa(i + 1),
			shortID(r.ID),
			strconv.FormatFloat(r.Area, 'f', -1, 64),
			strconv.Itoa(r.Depth),
			shortID(r.Parent),
			strconv.Itoa(len(r.Holes)),
			fills[r.ID],
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	d := res.Diagnostics
	m.status = fmt.Sprintf("regions=%d edges=%d vertices=%d", d.RegionCount, d.EdgeCount, d.VertexCount)
}
