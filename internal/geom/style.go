package geom

import "givio/internal/giv"

type kind int

const (
	kindPoints kind = iota
	kindLine
	kindPolygon
)

// styleAttribs returns the style keys for one imported geometry. Every key is
// always set, because giv attributes are sticky: a dataset that left a key
// out would inherit it from the dataset before it once the file is reloaded.
func styleAttribs(k kind) giv.Attribs {
	a := giv.Attribs{"marks": "none", "line": "1", "polygon": "0"}
	switch k {
	case kindPoints:
		a["marks"] = "fcircle"
		a["line"] = "0"
	case kindPolygon:
		a["polygon"] = "1"
	}
	return a
}

// fillKeys gives every dataset the union of the attribute keys of g, so no
// dataset inherits another's value once the file is reloaded. Missing flag
// keys are filled with "0", anything else with "".
func fillKeys(g *giv.Giv) {
	keys := map[string]struct{}{}
	for _, ds := range g.DataSets() {
		for k := range ds.Attribs() {
			keys[k] = struct{}{}
		}
	}
	for _, ds := range g.DataSets() {
		for k := range keys {
			if _, ok := ds.Attr(k); ok {
				continue
			}
			switch k {
			case "hide", "noline":
				ds.SetAttr(k, "0")
			default:
				ds.SetAttr(k, "")
			}
		}
	}
}

// Flag reports whether a boolean style attribute is switched on. A flag is
// on when present with an empty value or any value but "0", "false" or "no".
func Flag(ds *giv.DataSet, key string) bool {
	v, ok := ds.Attr(key)
	if !ok {
		return false
	}
	switch v {
	case "0", "false", "no":
		return false
	}
	return true
}

// MarksOnly reports whether a dataset is drawn as vertices without lines.
func MarksOnly(ds *giv.DataSet) bool {
	if Flag(ds, "noline") {
		return true
	}
	v, ok := ds.Attr("line")
	return ok && (v == "0" || v == "false" || v == "no")
}

// Marks returns the mark shape of a dataset, or "" when it has none.
func Marks(ds *giv.DataSet) string {
	v, _ := ds.Attr("marks")
	if v == "none" {
		return ""
	}
	return v
}
