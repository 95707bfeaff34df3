package tui

import (
	"io"
	"log/slog"
	"os"
	"slices"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"givio/internal/geom"
	"givio/internal/giv"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int
	// flipY draws Y upward, for lon/lat data
	flipY bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	data      *giv.Giv
	bbox      geom.BBox
	parseOpts []giv.Option
	highlight int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverDS     int
	hoverHasPos bool
	hoverPos    giv.Point

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New returns an empty viewer. opts are applied whenever giv text is
// parsed, from a file or from paste mode.
func New(opts ...giv.Option) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "giv ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		highlight:   -1,
		hoverDS:     -1,
		parseOpts:   opts,
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
	m.ta.Placeholder = "Paste giv text or WKT here. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string, opts ...giv.Option) Model {
	m := New(opts...)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Data returns the data currently shown, or nil.
func (m Model) Data() *giv.Giv { return m.data }

// parseOptions returns the caller's options plus a skipped-line collector.
// Skipped lines are reported in the status line instead of the log.
func (m Model) parseOptions(skipped *[]*giv.LineError) []giv.Option {
	opts := slices.Clone(m.parseOpts)
	return append(opts,
		giv.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		giv.WithSkipped(skipped),
	)
}

// hasData reports whether there is anything to project.
func (m Model) hasData() bool {
	return m.data != nil && m.bbox.Valid() && m.bbox.Width() > 0 && m.bbox.Height() > 0
}
