package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"givio/internal/giv"
)

func TestBrailleSetPixel(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)
	b.setPixel(1, 3)
	b.setPixel(2, 1)
	b.setPixel(-1, 0)
	b.setPixel(4, 0)
	b.setPixel(0, 4)
	assert.Equal(t, uint8(0x01|0x80), b.m[0][0])
	assert.Equal(t, uint8(0x02), b.m[0][1])
	assert.Equal(t, '⢁', glyph(b.m[0][0]))
	assert.Equal(t, ' ', glyph(0))
}

func TestBrailleLine(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.drawLineMicro(0, 0, 3, 0)
	assert.Equal(t, uint8(0x01|0x08), b.m[0][0])
	assert.Equal(t, uint8(0x01|0x08), b.m[0][1])
}

func TestBrailleFillHole(t *testing.T) {
	b := newBrailleBuf(10, 5)
	outer := [][2]int{{0, 0}, {19, 0}, {19, 19}, {0, 19}}
	inner := [][2]int{{6, 6}, {13, 6}, {13, 13}, {6, 13}}
	b.fillEvenOdd([][][2]int{outer, inner})
	assert.NotZero(t, b.m[0][0])
	assert.Zero(t, b.m[2][4], "cell inside the hole")
	assert.NotZero(t, b.m[4][9])
}

func TestBraillePolylineSinglePoint(t *testing.T) {
	b := newBrailleBuf(1, 1)
	b.polyline([][2]int{{1, 2}}, false)
	assert.Equal(t, uint8(0x20), b.m[0][0])
}

const sample = `$color red
$balloon first
m 0 0
10 0
10 10
z

$balloon second
$color blue
m 0 10
5 5
`

func TestLoadTextGiv(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))
	require.NotNil(t, m.Data())
	assert.Equal(t, 2, m.Data().Len())
	assert.False(t, m.flipY)
	assert.True(t, m.hasData())
	assert.Equal(t, -1, m.highlight)
	assert.Contains(t, m.status, "datasets=2")
}

func TestLoadTextFallsBackToWKT(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText("MULTIPOINT((1 2), (3 4))"))
	assert.Equal(t, 1, m.Data().Len())
	assert.True(t, m.flipY)
	assert.Contains(t, m.status, "WKT")

	assert.Error(t, m.loadText("nothing to see"))
}

func TestLoadTextReportsSkipped(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText("m 0 0\nm x 1\n1 1\n"))
	assert.Contains(t, m.status, "skipped 1 line(s), first at line 2")
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.giv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	m := NewWithPath(path)
	assert.Equal(t, 2, m.Data().Len())
	assert.Equal(t, path, m.selPath)
	assert.Contains(t, m.status, "loaded: a.giv")

	m = NewWithPath(filepath.Join(dir, "missing.giv"))
	assert.Nil(t, m.Data())
	assert.Contains(t, m.status, "load error")
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestCycleHighlight(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))

	m = press(t, m, key("n"))
	assert.Equal(t, 0, m.highlight)
	assert.Contains(t, m.status, "first")
	m = press(t, m, key("n"))
	assert.Equal(t, 1, m.highlight)
	m = press(t, m, key("n"))
	assert.Equal(t, -1, m.highlight)
	m = press(t, m, key("N"))
	assert.Equal(t, 1, m.highlight)
}

func TestAttrTable(t *testing.T) {
	g, err := giv.ParseString("$a 1\nm 0 0\n\n$b 2\nm 1 1\n")
	require.NoError(t, err)
	cols, rows := attrTable(g)
	assert.Equal(t, []string{"a", "b"}, cols)
	assert.Equal(t, [][]string{{"1", ""}, {"1", "2"}}, rows)

	cols, rows = attrTable(giv.New())
	assert.Empty(t, cols)
	assert.Empty(t, rows)
}

func TestAttrsToggle(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))
	m = press(t, m, key("a"))
	assert.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Rows(), 2)
	assert.Len(t, m.tbl.Columns(), 3)

	empty := press(t, New(), key("a"))
	assert.False(t, empty.showAttrs)
}

func TestRenderMapDrawsData(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))
	out := m.renderMap(20, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	assert.NotEqual(t, strings.Repeat(" ", 20), lines[0])

	m.showPolys, m.showLines, m.showPoints = false, false, false
	assert.Equal(t, strings.Repeat(" ", 20), strings.Split(m.renderMap(20, 10), "\n")[0])
}

func TestProjectRoundTrip(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))
	p, ok := m.unproject(0, 0, 40, 20)
	require.True(t, ok)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)

	mx, my := m.project(giv.Point{X: 10, Y: 10}, 40, 20)
	assert.Equal(t, 79, mx)
	assert.Equal(t, 79, my)
}

func TestInspect(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))
	m.width, m.height = 80, 24
	m = press(t, m, key("i"))
	assert.Contains(t, m.inspectPopup, "$balloon")
	assert.GreaterOrEqual(t, m.highlight, 0)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.inspectPopup)
}

func TestHover(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = press(t, m, tea.MouseMsg{X: 0, Y: 1})
	assert.True(t, m.hovering)
	assert.Equal(t, 0, m.hoverDS)
	assert.Contains(t, m.hoverLabel(), "#1 first")

	m = press(t, m, tea.MouseMsg{X: 0, Y: 0})
	assert.False(t, m.hovering)
}

func TestViewRenders(t *testing.T) {
	m := New()
	require.NoError(t, m.loadText(sample))
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, m.View(), "giv")
	assert.Empty(t, New().View())
}
