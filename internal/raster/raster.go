// Package raster draws giv datasets into an image using their style
// attributes.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"givio/internal/geom"
	"givio/internal/giv"
)

// ErrEmpty is returned when there is no coordinate to draw.
var ErrEmpty = errors.New("raster: nothing to draw")

const (
	defaultSize     = 512
	defaultMargin   = 16
	defaultMarkSize = 6
)

// Options controls the output image. Zero Width, Height, Background and
// Logger take their defaults; Margin is used as given.
type Options struct {
	Width      int
	Height     int
	Margin     int
	Background color.Color
	Logger     *slog.Logger
}

// DefaultOptions returns a 512x512 white canvas with a 16 pixel margin.
func DefaultOptions() Options {
	return Options{Width: defaultSize, Height: defaultSize, Margin: defaultMargin, Background: color.White}
}

// transform maps data coordinates onto pixels with a uniform scale. Y grows
// downward in both.
type transform struct {
	minX, minY float64
	scale      float64
	offX, offY float64
}

func (t transform) apply(p giv.Point) (float64, float64) {
	return t.offX + (p.X-t.minX)*t.scale, t.offY + (p.Y-t.minY)*t.scale
}

// drawer is the part of rasterx.Filler and rasterx.Dasher used for marks.
type drawer interface {
	rasterx.Adder
	SetColor(c any)
	Draw()
	Clear()
}

type renderer struct {
	filler *rasterx.Filler
	dasher *rasterx.Dasher
	tr     transform
	log    *slog.Logger
}

// Render draws every dataset of g not marked hide, in order.
func Render(g *giv.Giv, opt Options) (*image.RGBA, error) {
	if opt.Width <= 0 {
		opt.Width = defaultSize
	}
	if opt.Height <= 0 {
		opt.Height = defaultSize
	}
	if opt.Background == nil {
		opt.Background = color.White
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	bb, ok := geom.Extent(g)
	if !ok {
		return nil, ErrEmpty
	}
	bb = bb.Pad()
	innerW := float64(opt.Width - 2*opt.Margin)
	innerH := float64(opt.Height - 2*opt.Margin)
	if innerW <= 0 || innerH <= 0 {
		return nil, fmt.Errorf("raster: margin %d leaves no room in %dx%d", opt.Margin, opt.Width, opt.Height)
	}
	s := min(innerW/bb.Width(), innerH/bb.Height())
	tr := transform{
		minX:  bb.MinX,
		minY:  bb.MinY,
		scale: s,
		offX:  float64(opt.Margin) + (innerW-bb.Width()*s)/2,
		offY:  float64(opt.Margin) + (innerH-bb.Height()*s)/2,
	}

	w, h := opt.Width, opt.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)

	// polygons fill even-odd, strokes non-zero
	fillScanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	strokeScanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	r := &renderer{
		filler: rasterx.NewFiller(w, h, fillScanner),
		dasher: rasterx.NewDasher(w, h, strokeScanner),
		tr:     tr,
		log:    opt.Logger,
	}
	r.filler.SetWinding(false)
	r.dasher.SetWinding(true)

	for i, ds := range g.DataSets() {
		if geom.Flag(ds, "hide") {
			continue
		}
		r.dataset(i, ds)
	}
	return img, nil
}

func (r *renderer) dataset(i int, ds *giv.DataSet) {
	polygon := geom.Flag(ds, "polygon")
	base := r.color(i, ds, "color", color.NRGBA{A: 0xff})
	stroke := base
	if polygon {
		stroke = r.color(i, ds, "outline_color", base)
	}
	subs := ds.SubPaths()

	if polygon {
		r.filler.SetColor(base)
		for _, sp := range subs {
			r.path(r.filler, sp.Contour, true)
		}
		r.filler.Draw()
		r.filler.Clear()
	}

	if !geom.MarksOnly(ds) {
		r.setStroke(r.number(i, ds, "lw", 1))
		r.dasher.SetColor(stroke)
		for _, sp := range subs {
			r.path(r.dasher, sp.Contour, sp.Closed || polygon)
		}
		r.dasher.Draw()
		r.dasher.Clear()
	}

	if mark := geom.Marks(ds); mark != "" {
		r.marks(i, ds, mark, base)
	}
}

func (r *renderer) setStroke(width float64) {
	r.dasher.SetStroke(fixed.Int26_6(width*64), fixed.I(4),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
}

func (r *renderer) path(a rasterx.Adder, c giv.Contour, closed bool) {
	if len(c) == 0 {
		return
	}
	a.Start(rasterx.ToFixedP(r.tr.apply(c[0])))
	for _, p := range c[1:] {
		a.Line(rasterx.ToFixedP(r.tr.apply(p)))
	}
	a.Stop(closed)
}

// marks draws one mark per vertex. Each mark is drawn on its own so that
// overlapping marks do not cancel under the even-odd rule.
func (r *renderer) marks(i int, ds *giv.DataSet, mark string, c color.NRGBA) {
	half := r.number(i, ds, "mark_size", defaultMarkSize) / 2
	var d drawer
	switch mark {
	case "fcircle", "fsquare":
		d = r.filler
	case "circle", "square":
		r.setStroke(1)
		d = r.dasher
	default:
		r.log.Warn("unknown mark shape", "dataset", i, "marks", mark)
		return
	}
	d.SetColor(c)
	for _, p := range ds.Contour() {
		x, y := r.tr.apply(p)
		switch mark {
		case "fcircle", "circle":
			rasterx.AddCircle(x, y, half, d)
		default:
			rasterx.AddRect(x-half, y-half, x+half, y+half, 0, d)
		}
		d.Draw()
		d.Clear()
	}
}

func (r *renderer) color(i int, ds *giv.DataSet, key string, def color.NRGBA) color.NRGBA {
	v, ok := ds.Attr(key)
	if !ok {
		return def
	}
	c, err := ParseColor(v)
	if err != nil {
		r.log.Warn("invalid color", "dataset", i, "key", key, "value", v, "err", err)
		return def
	}
	return c
}

func (r *renderer) number(i int, ds *giv.DataSet, key string, def float64) float64 {
	v, ok := ds.Attr(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		r.log.Warn("invalid number", "dataset", i, "key", key, "value", v)
		return def
	}
	return f
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WritePNG(f, img)
}
