package tui

import (
	"errors"
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"isoplan/internal/geom"
	"isoplan/internal/raster"
	"isoplan/internal/shape"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.layout()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				m.applyPaste()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showTable {
			switch msg.String() {
			case "t", "esc":
				m.showTable = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "v":
			if m.proj == raster.Iso {
				m.proj = raster.Plan
			} else {
				m.proj = raster.Iso
			}
			m.status = "view: " + m.proj.String()
		case "r":
			m.showRegions = !m.showRegions
			m.status = fmt.Sprintf("regions: %v (%d)", m.showRegions, len(m.store.Regions().Regions))
		case "t":
			m.showTable = true
			m.refreshRegionTable()
		case "c":
			m.colorIdx = (m.colorIdx + 1) % len(raster.Palette)
			m.status = "fill colour " + swatch(m.fillColor()) + " " + m.fillColor()
		case "f":
			m.convertHovered()
		case "d":
			l, ok := m.store.LastLine()
			if !ok {
				m.status = "no lines to delete"
				break
			}
			if err := m.store.Remove(l.ID()); err != nil {
				m.status = "delete error: " + err.Error()
				break
			}
			m.status = "deleted " + l.ID()
			m.refreshHoverRegion()
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				_, _, _, h := m.layout()
				m.l.SetSize(sidebarWidth-2, h-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "i":
			m.inspectHovered()
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.hovering {
			m.fillHovered()
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyPaste() {
	w := strings.TrimSpace(m.ta.Value())
	if w == "" {
		m.status = "paste: empty"
		return
	}
	d, err := geom.ParseWKT(w)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	m.store.AddLines(d.Segments)
	m.status = fmt.Sprintf("added %d lines  regions=%d", len(d.Segments), len(m.store.Regions().Regions))
	m.pasteMode = false
	m.ta.Blur()
}

// hover tracks the cursor over the map: its UV position, the nearest line
// vertex and the region underneath.
func (m *Model) hover(x, y int) {
	ox, oy, w, h := m.layout()
	if x < ox || x >= ox+w || y < oy || y >= oy+h {
		m.hovering = false
		m.hoverHasUV = false
		m.hoverRegion = ""
		return
	}
	m.hovering = true
	m.hoverCellX = x - ox
	m.hoverCellY = y - oy
	m.hoverUV, m.hoverHasUV = m.cellToUV(m.hoverCellX, m.hoverCellY, w, h)
	m.hoverMicX, m.hoverMicY = m.nearestVertex(m.viewport(w, h), m.hoverCellX*2, m.hoverCellY*4)
	m.refreshHoverRegion()
}

func (m *Model) refreshHoverRegion() {
	m.hoverRegion = ""
	if !m.hoverHasUV {
		return
	}
	if r, ok := m.store.RegionAt(m.hoverUV); ok {
		m.hoverRegion = r.ID
	}
}

func (m *Model) fillHovered() {
	if !m.hoverHasUV {
		return
	}
	f, err := m.store.FillAt(m.hoverUV, m.fillColor())
	switch {
	case errors.Is(err, shape.ErrNoRegion):
		m.status = err.Error()
	case err != nil:
		m.status = "fill error: " + err.Error()
	default:
		m.status = fmt.Sprintf("filled %s  area=%g", shortID(f.RegionID), f.Area)
	}
}

func (m *Model) convertHovered() {
	if m.hoverRegion == "" {
		m.status = shape.ErrNoRegion.Error()
		return
	}
	face, err := m.store.ConvertToFace(m.hoverRegion)
	if err != nil {
		m.status = "face error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("face %s  area=%g", face.ID(), face.Area())
}

func (m *Model) inspectHovered() {
	if m.hoverRegion == "" {
		m.inspectPopup = ""
		m.status = "no region under cursor"
		return
	}
	r, ok := m.store.Region(m.hoverRegion)
	if !ok {
		m.inspectPopup = ""
		return
	}
	parent := r.Parent
	if parent == "" {
		parent = "-"
	}
	meta := []string{
		"id: " + r.ID,
		fmt.Sprintf("area: %g (boundary %g)", r.Area, r.BoundaryArea),
		fmt.Sprintf("depth: %d  parent: %s", r.Depth, parent),
		fmt.Sprintf("vertices: %d  holes: %d", len(r.Boundary), len(r.Holes)),
		"centroid: " + fmtUV(r.Centroid),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}
