package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tdewolff/test"

	"isoplan/internal/arrange"
	"isoplan/internal/raster"
	"isoplan/internal/shape"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	st := shape.NewStore(shape.NewSequence(""))
	st.AddLines([]arrange.Segment{
		arrange.Seg(0, 0, 4, 0),
		arrange.Seg(4, 0, 4, 4),
		arrange.Seg(4, 4, 0, 4),
		arrange.Seg(0, 4, 0, 0),
	})
	m := New(st)
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(m Model, msg tea.Msg) Model {
	out, _ := m.Update(msg)
	return out.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// screenAt returns the terminal cell over p.
func screenAt(m Model, p arrange.UV) (int, int) {
	ox, oy, w, h := m.layout()
	mx, my := m.viewport(w, h).toMicro(p)
	return ox + mx/2, oy + my/4
}

func click(m Model, x, y int) Model {
	return send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestLayout(t *testing.T) {
	m := newTestModel(t)
	ox, oy, w, h := m.layout()
	test.T(t, ox, 0)
	test.T(t, oy, 1)
	test.T(t, w, 100)
	test.T(t, h, 37)

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	ox, _, w, _ = m.layout()
	test.T(t, ox, sidebarWidth+1)
	test.T(t, w, 100-sidebarWidth-1)
}

func TestHoverAndFill(t *testing.T) {
	m := newTestModel(t)
	x, y := screenAt(m, arrange.Pt(2, 2))
	m = send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	test.That(t, m.hovering)
	test.That(t, m.hoverHasUV)
	test.That(t, m.hoverRegion != "", "no region under the cursor")
	test.T(t, len(m.store.Fills()), 0)

	m = click(m, x, y)
	fills := m.store.Fills()
	test.T(t, len(fills), 1)
	test.String(t, fills[0].Color, raster.Palette[0])
	test.String(t, fills[0].RegionID, m.hoverRegion)
	test.That(t, strings.HasPrefix(m.status, "filled "), m.status)
}

func TestClickOutsideRegion(t *testing.T) {
	m := newTestModel(t)
	_, oy, _, _ := m.layout()
	m = click(m, 0, oy)
	test.That(t, m.hoverHasUV)
	test.String(t, m.status, "no enclosed region found")
	test.T(t, len(m.store.Fills()), 0)

	// outside the map area nothing is hovered
	m = click(m, 0, 0)
	test.That(t, !m.hovering)
}

func TestColourCycle(t *testing.T) {
	m := newTestModel(t)
	m = send(m, key("c"))
	test.String(t, m.fillColor(), raster.Palette[1])
	x, y := screenAt(m, arrange.Pt(1, 3))
	m = click(m, x, y)
	test.String(t, m.store.Fills()[0].Color, raster.Palette[1])
}

func TestConvertToFaceKey(t *testing.T) {
	m := newTestModel(t)
	m = send(m, key("f"))
	test.String(t, m.status, shape.ErrNoRegion.Error())

	x, y := screenAt(m, arrange.Pt(2, 2))
	m = click(m, x, y)
	m = send(m, key("f"))
	test.T(t, len(m.store.Fills()), 0)
	var faces int
	for _, s := range m.store.Shapes() {
		if s.Kind() == shape.KindFace {
			faces++
		}
	}
	test.T(t, faces, 1)
}

func TestDeleteLastLine(t *testing.T) {
	m := newTestModel(t)
	test.T(t, len(m.store.Regions().Regions), 1)
	m = send(m, key("d"))
	test.String(t, m.status, "deleted line-4")
	test.T(t, len(m.store.Lines()), 3)
	test.T(t, len(m.store.Regions().Regions), 0)

	for range 3 {
		m = send(m, key("d"))
	}
	m = send(m, key("d"))
	test.String(t, m.status, "no lines to delete")
}

func TestProjectionAndRegionToggles(t *testing.T) {
	m := newTestModel(t)
	test.T(t, m.proj, raster.Iso)
	m = send(m, key("v"))
	test.T(t, m.proj, raster.Plan)
	m = send(m, key("v"))
	test.T(t, m.proj, raster.Iso)

	m = send(m, key("r"))
	test.That(t, m.showRegions)
	test.String(t, m.status, "regions: true (1)")

	zoom := m.zoom
	m = send(m, key("+"))
	test.That(t, m.zoom > zoom)
	m = send(m, key("-"))
	test.Float(t, m.zoom, zoom)
}

func TestRegionTable(t *testing.T) {
	m := newTestModel(t)
	m = send(m, key("t"))
	test.That(t, m.showTable)
	test.T(t, len(m.tbl.Rows()), 1)
	test.String(t, m.status, "regions=1 edges=4 vertices=4")
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	test.That(t, !m.showTable)

	m.store.Clear()
	m = send(m, key("t"))
	test.That(t, !m.showTable)
	test.String(t, m.status, "no regions in current drawing")
}

func TestPasteWKT(t *testing.T) {
	m := New(shape.NewStore(shape.NewSequence("")))
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(m, key("p"))
	test.That(t, m.pasteMode)
	m.ta.SetValue("POLYGON((0 0, 6 0, 6 6, 0 6, 0 0))")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	test.That(t, !m.pasteMode)
	test.T(t, len(m.store.Lines()), 4)
	test.T(t, len(m.store.Regions().Regions), 1)

	m = send(m, key("p"))
	m.ta.SetValue("LINESTRING(0 0")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	test.That(t, m.pasteMode, "bad input keeps the editor open")
	test.That(t, strings.HasPrefix(m.status, "wkt error: "), m.status)
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	test.That(t, !m.pasteMode)
}

func TestInspect(t *testing.T) {
	m := newTestModel(t)
	m = send(m, key("i"))
	test.String(t, m.inspectPopup, "")
	test.String(t, m.status, "no region under cursor")

	x, y := screenAt(m, arrange.Pt(2, 2))
	m = send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	m = send(m, key("i"))
	test.That(t, strings.Contains(m.inspectPopup, "id: "+m.hoverRegion))
	test.That(t, strings.Contains(m.inspectPopup, "area: 16"))
}

func TestView(t *testing.T) {
	m := New(nil)
	test.String(t, m.View(), "")

	m = newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 240, Height: 40})
	m = send(m, key("r"))
	out := m.View()
	test.That(t, strings.Contains(out, "isoplan"))
	test.That(t, strings.Contains(out, "q quit"))

	m = send(m, key("h"))
	test.That(t, !strings.Contains(m.View(), "q quit"))
}

func TestCanvasDrawsLines(t *testing.T) {
	m := newTestModel(t)
	_, _, w, h := m.layout()
	out := m.renderCanvas(w, h)
	test.T(t, strings.Count(out, "\n"), h-1)
	test.That(t, strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }), "no braille dots")
}
