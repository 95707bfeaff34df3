package giv

import "fmt"

// Op tells how a path point connects to the one before it.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	ClosePath
)

func (o Op) String() string {
	switch o {
	case MoveTo:
		return "m"
	case LineTo:
		return "l"
	case ClosePath:
		return "z"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Point is a raw planar coordinate.
type Point struct {
	X, Y float64
}

// Contour is a sequence of coordinates without operators.
type Contour []Point

// PathPoint is a coordinate tagged with its path operator. The coordinate of
// a ClosePath point carries no meaning and is never written out.
type PathPoint struct {
	Op Op
	Point
}

// Move returns a MoveTo point at (x, y).
func Move(x, y float64) PathPoint { return PathPoint{Op: MoveTo, Point: Point{x, y}} }

// Line returns a LineTo point at (x, y).
func Line(x, y float64) PathPoint { return PathPoint{Op: LineTo, Point: Point{x, y}} }

// Close returns a ClosePath point.
func Close() PathPoint { return PathPoint{Op: ClosePath} }
