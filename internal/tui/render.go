package tui

import (
	"strings"

	"givio/internal/geom"
	"givio/internal/giv"
)

// project maps a data coordinate into a 2x4 microgrid per cell for braille
// rendering, applying zoom around the centre and pan.
func (m Model) project(p giv.Point, w, h int) (int, int) {
	nx := (p.X - m.bbox.MinX) / m.bbox.Width()
	ny := (p.Y - m.bbox.MinY) / m.bbox.Height()
	if m.flipY {
		ny = 1 - ny
	}
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int(zy*float64(h*4-1)) + m.offsetY*4
	return sx, sy
}

// unproject converts a map cell back to a data coordinate.
func (m Model) unproject(cx, cy, w, h int) (giv.Point, bool) {
	if !m.hasData() || w <= 1 || h <= 1 {
		return giv.Point{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := float64(cy-m.offsetY) / float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	if m.flipY {
		ny = 1 - ny
	}
	return giv.Point{
		X: m.bbox.MinX + nx*m.bbox.Width(),
		Y: m.bbox.MinY + ny*m.bbox.Height(),
	}, true
}

// drawDataSet draws one dataset: polygon fill, then the path, then vertex
// marks, each subject to its layer toggle.
func (m Model) drawDataSet(b *brailleBuf, ds *giv.DataSet, w, h int) {
	if geom.Flag(ds, "hide") {
		return
	}
	subs := ds.SubPaths()
	proj := make([][][2]int, len(subs))
	for i, sp := range subs {
		pts := make([][2]int, 0, len(sp.Contour))
		for _, p := range sp.Contour {
			mx, my := m.project(p, w, h)
			pts = append(pts, [2]int{mx, my})
		}
		proj[i] = pts
	}
	polygon := geom.Flag(ds, "polygon")
	marksOnly := geom.MarksOnly(ds)
	if polygon && m.showPolys {
		b.fillEvenOdd(proj)
	}
	if !marksOnly && m.showLines {
		for i, pts := range proj {
			b.polyline(pts, subs[i].Closed || polygon)
		}
	}
	if m.showPoints && (marksOnly || geom.Marks(ds) != "") {
		for _, pts := range proj {
			for _, p := range pts {
				b.setPixel(p[0], p[1])
			}
		}
	}
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	// the highlighted dataset gets its own layer so it can be coloured
	hl := newBrailleBuf(w, h)
	if m.hasData() {
		for i, ds := range m.data.DataSets() {
			dst := br
			if i == m.highlight {
				dst = hl
			}
			m.drawDataSet(dst, ds, w, h)
		}
	}

	hoverX, hoverY := -1, -1
	if m.hovering {
		hoverX, hoverY = m.hoverMicX/2, m.hoverMicY/4
	}
	lines := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			switch {
			case x == hoverX && y == hoverY:
				sb.WriteString(hoverStyle.Render("◯"))
			case hl.m[y][x] != 0:
				sb.WriteString(highlightStyle.Render(string(glyph(br.m[y][x] | hl.m[y][x]))))
			default:
				sb.WriteRune(glyph(br.m[y][x]))
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// hit is a vertex found on screen.
type hit struct {
	ds     int
	pt     giv.Point
	mx, my int
}

// nearest finds the vertex closest to the micro-grid position (mx, my)
// among the visible datasets.
func (m Model) nearest(mx, my, w, h int) (hit, bool) {
	if !m.hasData() {
		return hit{}, false
	}
	best := hit{ds: -1}
	bestD := -1
	for i, ds := range m.data.DataSets() {
		if geom.Flag(ds, "hide") {
			continue
		}
		for _, p := range ds.Contour() {
			px, py := m.project(p, w, h)
			dx, dy := px-mx, py-my
			if d := dx*dx + dy*dy; bestD < 0 || d < bestD {
				bestD = d
				best = hit{ds: i, pt: p, mx: px, my: py}
			}
		}
	}
	return best, bestD >= 0
}

// inspectNearest finds the vertex closest to the viewport center.
func (m Model) inspectNearest() (hit, bool) {
	lo := m.layout()
	return m.nearest(lo.mapW, lo.mapH*2, lo.mapW, lo.mapH)
}
