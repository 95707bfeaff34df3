// Package giv reads and writes giv files.
//
// A giv file is line oriented. Each non-blank line is one of
//
//	$key value      attribute, value is the verbatim rest of the line
//	m x y           move to
//	l x y           line to
//	x y             line to
//	z               close path
//
// and a blank line ends the current dataset. Attributes are sticky: once
// set they apply to every following dataset until they are overwritten.
// Lines that match none of the forms above are ignored.
//
// Usage:
//
//	g, err := giv.Load("shapes.giv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g.At(0).SetAttr("color", "green/.2")
//	err = g.Save("green.giv")
package giv
