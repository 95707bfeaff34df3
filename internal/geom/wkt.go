package geom

import (
	"errors"
	"strconv"
	"strings"

	"givio/internal/giv"
)

// parseTuples reads a comma separated list of "x y" pairs, skipping any pair
// that does not hold two numbers.
func parseTuples(block string) giv.Contour {
	var out giv.Contour
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, giv.Point{X: x, Y: y})
	}
	return out
}

// between returns the text between the first left and the last right
// delimiter.
func between(s, left, right string) (string, bool) {
	i := strings.Index(s, left)
	j := strings.LastIndex(s, right)
	if i < 0 || j <= i {
		return "", false
	}
	return s[i+len(left) : j], true
}

// ParseWKT converts one WKT geometry into a single-dataset Giv.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON and
// MULTIPOLYGON. Lines and rings become sub-paths of the same dataset.
func ParseWKT(wkt string) (*giv.Giv, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var ds *giv.DataSet
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"), strings.HasPrefix(up, "POINT"):
		body, ok := between(s, "(", ")")
		if !ok {
			return nil, errors.New("wkt point: invalid")
		}
		// MULTIPOINT((1 2), (3 4)) is as valid as MULTIPOINT(1 2, 3 4)
		body = strings.NewReplacer("(", "", ")", "").Replace(body)
		ds = pointsDataSet(parseTuples(body))
	case strings.HasPrefix(up, "MULTILINESTRING"):
		body, ok := between(s, "((", "))")
		if !ok {
			return nil, errors.New("wkt multilinestring: invalid")
		}
		var lines []giv.Contour
		for _, part := range splitParts(body) {
			if c := parseTuples(part); len(c) > 0 {
				lines = append(lines, c)
			}
		}
		ds = giv.FromContours(lines, styleAttribs(kindLine), false)
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		body, ok := between(s, "(((", ")))")
		if !ok {
			return nil, errors.New("wkt multipolygon: invalid")
		}
		ds = giv.FromContours(parseRings(body), styleAttribs(kindPolygon), true)
	case strings.HasPrefix(up, "LINESTRING"):
		body, ok := between(s, "(", ")")
		if !ok {
			return nil, errors.New("wkt linestring: invalid")
		}
		ds = giv.FromContour(parseTuples(body), styleAttribs(kindLine), false)
	case strings.HasPrefix(up, "POLYGON"):
		body, ok := between(s, "((", "))")
		if !ok {
			return nil, errors.New("wkt polygon: invalid")
		}
		ds = giv.FromContours(parseRings(body), styleAttribs(kindPolygon), true)
	default:
		return nil, errors.New("unsupported wkt type")
	}
	if ds.Len() == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	g := giv.New()
	g.Append(ds)
	return g, nil
}

// splitParts returns the innermost coordinate lists of a nested WKT body,
// so "a), (b)), ((c" yields a, b and c.
func splitParts(body string) []string {
	var parts []string
	for _, seg := range strings.Split(body, ")") {
		seg = strings.Trim(strings.ReplaceAll(seg, "(", ""), " ,\t\r\n")
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return parts
}

func parseRings(body string) []giv.Contour {
	var rings []giv.Contour
	for _, rp := range splitParts(body) {
		if ring := openRing(parseTuples(rp)); len(ring) > 0 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// pointsDataSet stores scattered points as one marks-only dataset. Each point
// is its own MoveTo so no segment joins them.
func pointsDataSet(pts giv.Contour) *giv.DataSet {
	cs := make([]giv.Contour, len(pts))
	for i, p := range pts {
		cs[i] = giv.Contour{p}
	}
	return giv.FromContours(cs, styleAttribs(kindPoints), false)
}

// openRing drops the repeated closing vertex of a ring; giv closes rings with
// a ClosePath instead.
func openRing(ring giv.Contour) giv.Contour {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}
