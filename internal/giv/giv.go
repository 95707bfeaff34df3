package giv

import (
	"maps"
	"slices"
)

// Giv is the content of one giv file: an ordered list of datasets.
type Giv struct {
	sets []*DataSet
}

// New returns an empty Giv.
func New() *Giv { return &Giv{} }

// Len returns the number of datasets.
func (g *Giv) Len() int { return len(g.sets) }

// At returns the i'th dataset. It panics when i is out of range, like a
// slice index; use Contour for a checked lookup.
func (g *Giv) At(i int) *DataSet { return g.sets[i] }

// DataSets returns the datasets in order. The slice is a copy but the
// datasets are shared.
func (g *Giv) DataSets() []*DataSet { return slices.Clone(g.sets) }

// Append adds datasets to the end.
func (g *Giv) Append(ds ...*DataSet) { g.sets = append(g.sets, ds...) }

// Clear drops every dataset.
func (g *Giv) Clear() { g.sets = nil }

// Contour returns dataset i as a plain contour, dropping ClosePath points.
func (g *Giv) Contour(i int) (Contour, error) {
	if i < 0 || i >= len(g.sets) {
		return nil, &IndexError{Index: i, Len: len(g.sets)}
	}
	return g.sets[i].Contour(), nil
}

// Join returns one dataset holding the points of every dataset in order.
// The first point of each source becomes a MoveTo so the sources stay
// separate sub-paths. Attributes are merged with later datasets winning.
// g is left unchanged.
func (g *Giv) Join() *DataSet {
	joined := &DataSet{attribs: Attribs{}}
	for _, ds := range g.sets {
		for i, p := range ds.points {
			if i == 0 {
				p.Op = MoveTo
			}
			joined.points = append(joined.points, p)
		}
		maps.Copy(joined.attribs, ds.attribs)
	}
	return joined
}
