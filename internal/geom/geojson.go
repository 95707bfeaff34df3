package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"givio/internal/giv"
)

// geoObject covers every GeoJSON object type we read: geometries, features
// and feature collections.
type geoObject struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  []geoObject     `json:"geometries,omitempty"`
	Geometry    *geoObject      `json:"geometry,omitempty"`
	Properties  map[string]any  `json:"properties,omitempty"`
	Features    []geoObject     `json:"features,omitempty"`
}

// LoadGeoJSON reads a GeoJSON file into a Giv.
func LoadGeoJSON(path string) (*giv.Giv, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeGeoJSON(f)
}

// DecodeGeoJSON converts a GeoJSON document into one dataset per geometry.
// Feature properties become attributes of the datasets of that feature.
func DecodeGeoJSON(r io.Reader) (*giv.Giv, error) {
	var raw geoObject
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	if raw.Type == "" {
		return nil, errors.New("invalid geojson: missing type")
	}
	g := giv.New()
	var walkFeature func(o geoObject) error
	walkFeature = func(o geoObject) error {
		switch o.Type {
		case "FeatureCollection":
			for _, f := range o.Features {
				if err := walkFeature(f); err != nil {
					return err
				}
			}
			return nil
		case "Feature":
			if o.Geometry == nil {
				return nil
			}
			return walkGeometry(g, *o.Geometry, propertyAttribs(o.Properties))
		default:
			return walkGeometry(g, o, giv.Attribs{})
		}
	}
	if err := walkFeature(raw); err != nil {
		return nil, err
	}
	if g.Len() == 0 {
		return nil, errors.New("no geometries found")
	}
	fillKeys(g)
	return g, nil
}

func walkGeometry(g *giv.Giv, o geoObject, props giv.Attribs) error {
	add := func(ds *giv.DataSet) {
		if ds.Len() > 0 {
			ds.SetAttribs(props, true)
			g.Append(ds)
		}
	}
	var err error
	switch o.Type {
	case "Point":
		var p []float64
		if err = json.Unmarshal(o.Coordinates, &p); err == nil {
			add(pointsDataSet(toContour([][]float64{p})))
		}
	case "MultiPoint":
		var ps [][]float64
		if err = json.Unmarshal(o.Coordinates, &ps); err == nil {
			add(pointsDataSet(toContour(ps)))
		}
	case "LineString":
		var ls [][]float64
		if err = json.Unmarshal(o.Coordinates, &ls); err == nil {
			add(giv.FromContour(toContour(ls), styleAttribs(kindLine), false))
		}
	case "MultiLineString":
		var mls [][][]float64
		if err = json.Unmarshal(o.Coordinates, &mls); err == nil {
			add(giv.FromContours(toContours(mls, false), styleAttribs(kindLine), false))
		}
	case "Polygon":
		var poly [][][]float64
		if err = json.Unmarshal(o.Coordinates, &poly); err == nil {
			add(giv.FromContours(toContours(poly, true), styleAttribs(kindPolygon), true))
		}
	case "MultiPolygon":
		var mp [][][][]float64
		if err = json.Unmarshal(o.Coordinates, &mp); err == nil {
			var rings []giv.Contour
			for _, poly := range mp {
				rings = append(rings, toContours(poly, true)...)
			}
			add(giv.FromContours(rings, styleAttribs(kindPolygon), true))
		}
	case "GeometryCollection":
		for _, sub := range o.Geometries {
			if err := walkGeometry(g, sub, props); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported geojson type: %s", o.Type)
	}
	if err != nil {
		return fmt.Errorf("geojson %s: %w", o.Type, err)
	}
	return nil
}

func toContour(pts [][]float64) giv.Contour {
	c := make(giv.Contour, 0, len(pts))
	for _, p := range pts {
		if len(p) >= 2 {
			c = append(c, giv.Point{X: p[0], Y: p[1]})
		}
	}
	return c
}

func toContours(parts [][][]float64, rings bool) []giv.Contour {
	var cs []giv.Contour
	for _, part := range parts {
		c := toContour(part)
		if rings {
			c = openRing(c)
		}
		if len(c) > 0 {
			cs = append(cs, c)
		}
	}
	return cs
}

// propertyAttribs turns feature properties into attribute values. Strings
// are kept as they are, anything else is JSON encoded. Keys and values are
// flattened to a single line so they survive the line-oriented format.
func propertyAttribs(props map[string]any) giv.Attribs {
	a := giv.Attribs{}
	for k, v := range props {
		var s string
		switch t := v.(type) {
		case nil:
		case string:
			s = t
		default:
			b, _ := json.Marshal(t)
			s = string(b)
		}
		a[attrKey(k)] = oneLine(s)
	}
	return a
}

func attrKey(k string) string {
	return strings.Join(strings.Fields(k), "_")
}

func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

type geoFeature struct {
	Type       string      `json:"type"`
	Geometry   geoGeometry `json:"geometry"`
	Properties giv.Attribs `json:"properties"`
}

type geoGeometry struct {
	Type        string        `json:"type"`
	Coordinates any           `json:"coordinates,omitempty"`
	Geometries  []geoGeometry `json:"geometries,omitempty"`
}

type geoCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

func coords(c giv.Contour) [][2]float64 {
	out := make([][2]float64, len(c))
	for i, p := range c {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// datasetGeometry maps one dataset onto GeoJSON. Marks-only datasets become
// a MultiPoint, closed sub-paths the rings of one Polygon, and open sub-paths
// LineStrings. Several of these are wrapped in a GeometryCollection.
func datasetGeometry(ds *giv.DataSet) (geoGeometry, bool) {
	if MarksOnly(ds) {
		c := ds.Contour()
		if len(c) == 0 {
			return geoGeometry{}, false
		}
		return geoGeometry{Type: "MultiPoint", Coordinates: coords(c)}, true
	}
	var (
		parts []geoGeometry
		rings [][][2]float64
	)
	for _, sp := range ds.SubPaths() {
		if sp.Closed {
			ring := coords(sp.Contour)
			rings = append(rings, append(ring, ring[0]))
			continue
		}
		parts = append(parts, geoGeometry{Type: "LineString", Coordinates: coords(sp.Contour)})
	}
	if len(rings) > 0 {
		parts = append([]geoGeometry{{Type: "Polygon", Coordinates: rings}}, parts...)
	}
	switch len(parts) {
	case 0:
		return geoGeometry{}, false
	case 1:
		return parts[0], true
	}
	return geoGeometry{Type: "GeometryCollection", Geometries: parts}, true
}

// EncodeGeoJSON writes g as a FeatureCollection with one feature per
// non-empty dataset and the attributes as properties.
func EncodeGeoJSON(w io.Writer, g *giv.Giv) error {
	fc := geoCollection{Type: "FeatureCollection", Features: []geoFeature{}}
	for _, ds := range g.DataSets() {
		geo, ok := datasetGeometry(ds)
		if !ok {
			continue
		}
		fc.Features = append(fc.Features, geoFeature{Type: "Feature", Geometry: geo, Properties: ds.Attribs().Clone()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
