package tui

import (
	"slices"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"givio/internal/giv"
)

const maxColW = 24

// attrTable returns one row per dataset; the columns are the sorted union of
// every dataset's attribute keys. A dataset without a key gets an empty cell.
func attrTable(g *giv.Giv) ([]string, [][]string) {
	if g == nil || g.Len() == 0 {
		return nil, nil
	}
	seen := map[string]bool{}
	for _, ds := range g.DataSets() {
		for k := range ds.Attribs() {
			seen[k] = true
		}
	}
	var cols []string
	for k := range seen {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	rows := make([][]string, 0, g.Len())
	for _, ds := range g.DataSets() {
		vals := make([]string, len(cols))
		for i, k := range cols {
			vals[i], _ = ds.Attr(k)
		}
		rows = append(rows, vals)
	}
	return cols, rows
}

// refreshAttrs rebuilds the table columns/rows from the current data
func (m *Model) refreshAttrs() {
	cols, rows := attrTable(m.data)
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no attributes for current data"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for i, c := range cols {
		w := len(c)
		for _, r := range rows {
			w = max(w, len(r[i]))
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		trows = append(trows, table.Row(append([]string{strconv.Itoa(i)}, r...)))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	if m.highlight >= 0 && m.highlight < len(trows) {
		m.tbl.SetCursor(m.highlight)
	}
}
