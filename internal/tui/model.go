package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"isoplan/internal/arrange"
	"isoplan/internal/raster"
	"isoplan/internal/shape"
)

const sidebarWidth = 28

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Drawing
	store       *shape.Store
	proj        raster.Projection
	showRegions bool
	colorIdx    int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasUV  bool
	hoverUV     arrange.UV
	hoverRegion string

	// region table
	showTable bool
	tbl       table.Model
}

// New returns a viewer over store. A nil store starts an empty drawing.
func New(store *shape.Store) Model {
	if store == nil {
		store = shape.NewStore(nil)
	}
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "isoplan ready",
		store:       store,
		proj:        raster.Iso,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (LINESTRING, MULTILINESTRING, POLYGON). Press Enter to add; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's lines at launch.
func NewWithPath(store *shape.Store, path string) Model {
	m := New(store)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Store returns the drawing the model edits.
func (m Model) Store() *shape.Store { return m.store }

func (m Model) fillColor() string {
	return raster.Palette[m.colorIdx%len(raster.Palette)]
}

// layout returns the map area in terminal cells. It must agree with View.
func (m Model) layout() (originX, originY, w, h int) {
	headerHeight := 1
	footerHeight := 2
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	return sw, headerHeight, max(10, contentWidth-sw), contentHeight
}
