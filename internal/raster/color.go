package raster

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor reads a giv colour: a CSS colour name, #rgb or #rrggbb,
// optionally followed by /alpha with alpha in [0, 1] ("red/.2").
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	name, alphaStr, hasAlpha := strings.Cut(s, "/")
	c, err := parseOpaque(strings.TrimSpace(name))
	if err != nil {
		return color.NRGBA{}, err
	}
	if !hasAlpha {
		return c, nil
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(alphaStr), 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: bad alpha: %w", s, err)
	}
	c.A = uint8(math.Round(min(max(a, 0), 1) * 0xff))
	return c, nil
}

func parseOpaque(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, errors.New("empty color")
	}
	if s[0] != '#' {
		nc, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("color name not found: %s", s)
		}
		return color.NRGBA{R: nc.R, G: nc.G, B: nc.B, A: nc.A}, nil
	}
	hex := s[1:]
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: bad hex", s)
	}
	switch len(hex) {
	case 3:
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return color.NRGBA{R: r | r<<4, G: g | g<<4, B: b | b<<4, A: 0xff}, nil
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.NRGBA{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
}
