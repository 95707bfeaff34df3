package giv

import (
	"maps"
	"slices"
	"strings"
)

// Attribs maps attribute names (without the leading '$') to their raw values.
type Attribs map[string]string

// Clone returns a copy of a. A nil map clones to an empty one.
func (a Attribs) Clone() Attribs {
	out := make(Attribs, len(a))
	maps.Copy(out, a)
	return out
}

// Merge returns a new map holding a overlaid with other. Keys in other win.
func (a Attribs) Merge(other Attribs) Attribs {
	out := a.Clone()
	maps.Copy(out, other)
	return out
}

// Keys returns the attribute names in sorted order.
func (a Attribs) Keys() []string {
	var keys []string
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// DataSet is an ordered run of path points sharing one attribute set.
type DataSet struct {
	points  []PathPoint
	attribs Attribs
}

// NewDataSet returns a dataset holding copies of points and attribs.
func NewDataSet(points []PathPoint, attribs Attribs) *DataSet {
	return &DataSet{points: slices.Clone(points), attribs: attribs.Clone()}
}

// FromContour builds a dataset whose first point is a MoveTo and the rest
// LineTo. When closed is set a trailing ClosePath is appended.
func FromContour(c Contour, attribs Attribs, closed bool) *DataSet {
	ds := &DataSet{attribs: attribs.Clone()}
	ds.appendContour(c, closed)
	return ds
}

// FromContours builds one dataset out of several contours, each starting
// with its own MoveTo. When closed is set every contour gets a ClosePath.
func FromContours(cs []Contour, attribs Attribs, closed bool) *DataSet {
	ds := &DataSet{attribs: attribs.Clone()}
	for _, c := range cs {
		ds.appendContour(c, closed)
	}
	return ds
}

func (ds *DataSet) appendContour(c Contour, closed bool) {
	for i, p := range c {
		op := LineTo
		if i == 0 {
			op = MoveTo
		}
		ds.points = append(ds.points, PathPoint{Op: op, Point: p})
	}
	if closed {
		ds.points = append(ds.points, Close())
	}
}

// Len returns the number of path points.
func (ds *DataSet) Len() int { return len(ds.points) }

// Point returns the i'th path point.
func (ds *DataSet) Point(i int) PathPoint { return ds.points[i] }

// Points returns a copy of the path points.
func (ds *DataSet) Points() []PathPoint { return slices.Clone(ds.points) }

// Append adds points to the end of the path.
func (ds *DataSet) Append(pts ...PathPoint) { ds.points = append(ds.points, pts...) }

// Attribs returns the live attribute map. Changes to it change the dataset.
func (ds *DataSet) Attribs() Attribs {
	if ds.attribs == nil {
		ds.attribs = Attribs{}
	}
	return ds.attribs
}

// Attr returns the value of the named attribute.
func (ds *DataSet) Attr(key string) (string, bool) {
	v, ok := ds.attribs[key]
	return v, ok
}

// SetAttr sets one attribute, replacing any previous value.
func (ds *DataSet) SetAttr(key, value string) { ds.Attribs()[key] = value }

// DeleteAttr removes one attribute.
func (ds *DataSet) DeleteAttr(key string) { delete(ds.attribs, key) }

// SetAttribs replaces the attributes with a copy of attribs, or merges them
// into the existing set when merge is true.
func (ds *DataSet) SetAttribs(attribs Attribs, merge bool) {
	if !merge {
		ds.attribs = attribs.Clone()
		return
	}
	maps.Copy(ds.Attribs(), attribs)
}

// Clone returns a deep copy of ds.
func (ds *DataSet) Clone() *DataSet { return NewDataSet(ds.points, ds.attribs) }

// Contour returns every non-ClosePath coordinate in order.
func (ds *DataSet) Contour() Contour {
	c := make(Contour, 0, len(ds.points))
	for _, p := range ds.points {
		if p.Op != ClosePath {
			c = append(c, p.Point)
		}
	}
	return c
}

// SubPath is one MoveTo-started run of a dataset.
type SubPath struct {
	Contour Contour
	Closed  bool
}

// SubPaths splits the dataset at every MoveTo. A ClosePath marks the run it
// ends as closed; a LineTo after a ClosePath opens a new run.
func (ds *DataSet) SubPaths() []SubPath {
	var (
		out []SubPath
		cur *SubPath
	)
	flush := func() {
		if cur != nil && len(cur.Contour) > 0 {
			out = append(out, *cur)
		}
		cur = nil
	}
	for _, p := range ds.points {
		switch p.Op {
		case MoveTo:
			flush()
			cur = &SubPath{Contour: Contour{p.Point}}
		case LineTo:
			if cur == nil {
				cur = &SubPath{}
			}
			cur.Contour = append(cur.Contour, p.Point)
		case ClosePath:
			if cur != nil {
				cur.Closed = true
			}
			flush()
		}
	}
	flush()
	return out
}

// String returns the giv text form of the dataset.
func (ds *DataSet) String() string {
	var sb strings.Builder
	_ = ds.Save(&sb, nil)
	return sb.String()
}
