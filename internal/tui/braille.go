package tui

import "sort"

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dots maps a micro-pixel inside a cell (column, row) to its braille bit.
var dots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dots[mx%2][my%4]
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	wMic, hMic := b.w*2, b.h*4
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= wMic && x1 >= wMic) || (y0 >= hMic && y1 >= hMic) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// polyline joins consecutive points, and the last to the first when closed.
// A single point is drawn as a dot.
func (b *brailleBuf) polyline(pts [][2]int, closed bool) {
	if len(pts) == 1 {
		b.setPixel(pts[0][0], pts[0][1])
		return
	}
	for i := 1; i < len(pts); i++ {
		b.drawLineMicro(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
	if closed && len(pts) > 2 {
		last := pts[len(pts)-1]
		b.drawLineMicro(last[0], last[1], pts[0][0], pts[0][1])
	}
}

// fillEvenOdd fills rings with the even-odd rule per micro scanline, so
// inner rings cut holes.
func (b *brailleBuf) fillEvenOdd(rings [][][2]int) {
	wMic, hMic := b.w*2, b.h*4
	var xs []int
	for yMic := 0; yMic < hMic; yMic++ {
		xs = xs[:0]
		for _, ring := range rings {
			if len(ring) < 3 {
				continue
			}
			for i := range ring {
				a := ring[i]
				c := ring[(i+1)%len(ring)]
				if a[1] == c[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], c[1]
				x0, x1 := a[0], c[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], wMic-1); xMic++ {
				b.setPixel(xMic, yMic)
			}
		}
	}
}

// glyph returns the braille rune of a cell mask, or a space.
func glyph(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
