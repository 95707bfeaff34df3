package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"givio/internal/giv"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Name       string     `xml:"name"`
	Point      *kmlCoords `xml:"Point"`
	LineString *kmlCoords `xml:"LineString"`
	Polygon    *struct {
		Outer kmlCoords `xml:"outerBoundaryIs>LinearRing"`
	} `xml:"Polygon"`
}

// LoadKML reads the placemarks of a KML file into a Giv.
func LoadKML(path string) (*giv.Giv, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeKML(f)
}

// DecodeKML turns every Placemark holding a Point, LineString or Polygon
// into one dataset; a polygon keeps only its outer ring. The placemark name
// becomes the balloon attribute. Placemarks are found at any depth, so
// Document and Folder nesting is fine.
func DecodeKML(r io.Reader) (*giv.Giv, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	g := giv.New()
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, err
		}
		if ds := placemarkDataSet(pm); ds != nil {
			g.Append(ds)
		}
	}
	if g.Len() == 0 {
		return nil, errors.New("kml: no geometries found")
	}
	fillKeys(g)
	return g, nil
}

func placemarkDataSet(pm kmlPlacemark) *giv.DataSet {
	var ds *giv.DataSet
	switch {
	case pm.Point != nil:
		ds = pointsDataSet(kmlTuples(pm.Point.Coordinates))
	case pm.LineString != nil:
		ds = giv.FromContour(kmlTuples(pm.LineString.Coordinates), styleAttribs(kindLine), false)
	case pm.Polygon != nil:
		ds = giv.FromContour(openRing(kmlTuples(pm.Polygon.Outer.Coordinates)), styleAttribs(kindPolygon), true)
	default:
		return nil
	}
	if ds.Len() == 0 {
		return nil
	}
	if name := oneLine(strings.TrimSpace(pm.Name)); name != "" {
		ds.SetAttr("balloon", name)
	}
	return ds
}

// kmlTuples reads whitespace separated "lon,lat[,alt]" tuples; altitude is
// ignored.
func kmlTuples(s string) giv.Contour {
	var out giv.Contour
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, giv.Point{X: lon, Y: lat})
	}
	return out
}
