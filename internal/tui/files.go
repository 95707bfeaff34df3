package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"givio/internal/geom"
	"givio/internal/giv"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

func skippedNote(skipped []*giv.LineError) string {
	if len(skipped) == 0 {
		return ""
	}
	return fmt.Sprintf("  skipped %d line(s), first at line %d", len(skipped), skipped[0].Line)
}

// loadPath loads a giv file, or any format geom imports, into the model.
// Giv files keep Y growing downward; imported lon/lat data is drawn north up.
func (m *Model) loadPath(p string) {
	var skipped []*giv.LineError
	g, err := geom.Import(p, m.parseOptions(&skipped)...)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.flipY = strings.ToLower(filepath.Ext(p)) != ".giv"
	m.setData(g)
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  datasets=%d", g.Len()) + skippedNote(skipped)
}

// loadText parses pasted text as giv, falling back to WKT when it yields no
// dataset.
func (m *Model) loadText(text string) error {
	var skipped []*giv.LineError
	g, err := giv.ParseString(text, m.parseOptions(&skipped)...)
	if err == nil && g.Len() > 0 {
		m.selPath = ""
		m.flipY = false
		m.setData(g)
		m.status = fmt.Sprintf("rendered giv  datasets=%d", g.Len()) + skippedNote(skipped)
		return nil
	}
	w, werr := geom.ParseWKT(text)
	if werr != nil {
		if err != nil {
			return err
		}
		return werr
	}
	m.selPath = ""
	m.flipY = true
	m.setData(w)
	m.status = fmt.Sprintf("rendered WKT  points=%d", w.At(0).Len())
	return nil
}

// setData replaces the shown data and resets the viewport.
func (m *Model) setData(g *giv.Giv) {
	m.data = g
	m.bbox = geom.BBox{}
	if bb, ok := geom.Extent(g); ok {
		m.bbox = bb.Pad()
	}
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.highlight = -1
	m.hovering = false
	m.hoverDS = -1
	m.inspectPopup = ""
	m.showPoints, m.showLines, m.showPolys = true, true, true
	// If attributes are currently shown, verify availability for the new data
	if m.showAttrs {
		m.refreshAttrs()
	}
}
