package geom

import (
	"math"

	"givio/internal/giv"
)

// BBox is an axis-aligned bounding box in data coordinates.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Empty returns a box that any Extend call replaces.
func Empty() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// Extend grows b to cover p.
func (b *BBox) Extend(p giv.Point) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Valid reports whether b covers at least one point.
func (b BBox) Valid() bool { return b.MinX <= b.MaxX && b.MinY <= b.MaxY }

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Pad returns b grown so that neither side is degenerate. A single point or a
// horizontal/vertical line gets a unit extent around its centre.
func (b BBox) Pad() BBox {
	if b.Width() <= 0 {
		b.MinX -= 0.5
		b.MaxX += 0.5
	}
	if b.Height() <= 0 {
		b.MinY -= 0.5
		b.MaxY += 0.5
	}
	return b
}

func (b *BBox) extendDataSet(ds *giv.DataSet) {
	for i, n := 0, ds.Len(); i < n; i++ {
		if p := ds.Point(i); p.Op != giv.ClosePath {
			b.Extend(p.Point)
		}
	}
}

// Extent returns the box around every coordinate of g, ClosePath points
// excluded. ok is false when g has no coordinates.
func Extent(g *giv.Giv) (bbox BBox, ok bool) {
	bbox = Empty()
	for _, ds := range g.DataSets() {
		bbox.extendDataSet(ds)
	}
	return bbox, bbox.Valid()
}

// DataSetExtent is Extent for a single dataset.
func DataSetExtent(ds *giv.DataSet) (bbox BBox, ok bool) {
	bbox = Empty()
	bbox.extendDataSet(ds)
	return bbox, bbox.Valid()
}
