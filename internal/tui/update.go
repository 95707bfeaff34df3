package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	sidebarW     = 28
	headerHeight = 1
	footerHeight = 2
)

// layout holds the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebar            int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lo layout
	if m.showSidebar {
		lo.sidebar = sidebarW
		lo.mapX = sidebarW + 1
	}
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	lo.mapW = max(10, lo.contentW-lo.sidebar-1)
	lo.mapH = lo.contentH
	lo.mapY = headerHeight
	return lo
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarW-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs {
			if next, cmd, ok := m.updateAttrs(msg); ok {
				return next, cmd
			}
		}
		if next, cmd, ok := m.updateKey(msg); ok {
			return next, cmd
		}
	case tea.MouseMsg:
		m.updateHover(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if err := m.loadText(m.ta.Value()); err != nil {
			m.status = "paste error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateAttrs lets the attribute table take navigation keys. Enter
// highlights the selected dataset and closes the table.
func (m Model) updateAttrs(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd, true
	case "enter":
		m.highlight = m.tbl.Cursor()
		m.showAttrs = false
		m.status = m.describe(m.highlight)
		return m, nil, true
	case "esc":
		m.showAttrs = false
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "1":
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("marks: %v", m.showPoints)
	case "2":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "3":
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("fill: %v", m.showPolys)
	case "l":
		// toggle all layers
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints = !all
		m.showLines = !all
		m.showPolys = !all
		m.status = fmt.Sprintf("layers: marks=%v lines=%v fill=%v", m.showPoints, m.showLines, m.showPolys)
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
	case "f":
		m.flipY = !m.flipY
		m.status = fmt.Sprintf("y up: %v", m.flipY)
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarW-2, m.layout().contentH-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "n":
		m.cycleHighlight(1)
	case "N":
		m.cycleHighlight(-1)
	case "i":
		m.inspect()
	case "esc":
		m.inspectPopup = ""
	case "enter":
		if !m.showSidebar {
			return m, nil, false
		}
		if it, ok := m.l.SelectedItem().(fileItem); ok {
			m.loadPath(it.path)
		}
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	default:
		return m, nil, false
	}
	return m, nil, true
}

// cycleHighlight steps through the datasets, with "none" between the last
// and the first.
func (m *Model) cycleHighlight(step int) {
	if m.data == nil || m.data.Len() == 0 {
		m.status = "no data"
		return
	}
	n := m.data.Len() + 1
	m.highlight = (m.highlight+1+step%n+n)%n - 1
	m.status = m.describe(m.highlight)
	if m.showAttrs && m.highlight >= 0 {
		m.tbl.SetCursor(m.highlight)
	}
}

// describe is the one-line status for a dataset index.
func (m Model) describe(i int) string {
	if m.data == nil || i < 0 || i >= m.data.Len() {
		return "highlight: none"
	}
	ds := m.data.At(i)
	s := fmt.Sprintf("dataset %d/%d  points=%d", i+1, m.data.Len(), ds.Len())
	if b, ok := ds.Attr("balloon"); ok && b != "" {
		s += "  " + b
	}
	return s
}

func (m *Model) inspect() {
	h, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	ds := m.data.At(h.ds)
	meta := []string{
		fmt.Sprintf("source: %s", name),
		fmt.Sprintf("dataset: %d of %d", h.ds+1, m.data.Len()),
		fmt.Sprintf("points: %d  sub-paths: %d", ds.Len(), len(ds.SubPaths())),
		fmt.Sprintf("nearest: x=%.6g y=%.6g", h.pt.X, h.pt.Y),
	}
	for _, k := range ds.Attribs().Keys() {
		meta = append(meta, "$"+k+" "+ds.Attribs()[k])
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.highlight = h.ds
	m.status = "inspect popup"
}

// updateHover tracks the mouse over the map area and snaps to the nearest
// vertex.
func (m *Model) updateHover(msg tea.MouseMsg) {
	lo := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarW-2, lo.contentH-2)
	}
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	if cx < 0 || cx >= lo.mapW || cy < 0 || cy >= lo.mapH {
		m.hovering = false
		m.hoverDS = -1
		return
	}
	m.hoverPos, m.hoverHasPos = m.unproject(cx, cy, lo.mapW, lo.mapH)
	h, ok := m.nearest(cx*2, cy*4, lo.mapW, lo.mapH)
	m.hovering = ok
	if !ok {
		m.hoverDS = -1
		return
	}
	m.hoverMicX, m.hoverMicY = h.mx, h.my
	m.hoverDS = h.ds
}

// hoverLabel is the footer text for the mouse position.
func (m Model) hoverLabel() string {
	if !m.hoverHasPos {
		return ""
	}
	s := fmt.Sprintf("x=%.5g y=%.5g", m.hoverPos.X, m.hoverPos.Y)
	if m.hoverDS >= 0 && m.data != nil && m.hoverDS < m.data.Len() {
		s += fmt.Sprintf("  #%d", m.hoverDS+1)
		if b, ok := m.data.At(m.hoverDS).Attr("balloon"); ok && b != "" {
			s += " " + b
		}
	}
	return s
}
