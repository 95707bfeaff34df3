package giv

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFormat(t *testing.T) {
	ds := NewDataSet(
		[]PathPoint{Move(0, 0), Line(100, 20), Line(30.5, -80), Close()},
		Attribs{"color": "red/.2", "polygon": "", "balloon": "A triangle"},
	)
	want := "$balloon A triangle\n" +
		"$color red/.2\n" +
		"$polygon \n" +
		"m 0 0\n" +
		"100 20\n" +
		"30.5 -80\n" +
		"z\n" +
		"\n"
	assert.Equal(t, want, ds.String())
}

func TestSaveOverridesDoNotMutate(t *testing.T) {
	ds := FromContour(Contour{{1, 2}}, Attribs{"color": "red", "lw": "1"}, false)
	var sb strings.Builder
	require.NoError(t, ds.Save(&sb, Attribs{"color": "green", "marks": "fcircle"}))

	out := sb.String()
	assert.Contains(t, out, "$color green\n")
	assert.Contains(t, out, "$marks fcircle\n")
	assert.Contains(t, out, "$lw 1\n")
	assert.NotContains(t, out, "red")
	assert.Equal(t, Attribs{"color": "red", "lw": "1"}, ds.Attribs())
}

func TestGivWriteToConcatenatesDataSets(t *testing.T) {
	g := New()
	g.Append(
		FromContour(Contour{{0, 0}, {1, 1}}, Attribs{"color": "red"}, true),
		FromContour(Contour{{5, 5}}, nil, false),
	)
	var sb strings.Builder
	n, err := g.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	assert.Equal(t, "$color red\nm 0 0\n1 1\nz\n\nm 5 5\n\n", sb.String())
}

func assertSameGiv(t *testing.T, want, got *Giv) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for i, n := 0, want.Len(); i < n; i++ {
		w, g := want.At(i), got.At(i)
		require.Equal(t, w.Len(), g.Len(), "dataset %d", i)
		for j, n := 0, w.Len(); j < n; j++ {
			wp, gp := w.Point(j), g.Point(j)
			assert.Equal(t, wp.Op, gp.Op, "dataset %d point %d", i, j)
			if wp.Op == ClosePath {
				continue
			}
			assert.InDelta(t, wp.X, gp.X, 1e-9*math.Max(1, math.Abs(wp.X)))
			assert.InDelta(t, wp.Y, gp.Y, 1e-9*math.Max(1, math.Abs(wp.Y)))
		}
		assert.Equal(t, w.Attribs(), g.Attribs(), "dataset %d", i)
	}
}

// Attributes are sticky on parse, so every dataset below sets the same keys.
func TestRoundTrip(t *testing.T) {
	var circle Contour
	for i := 0; i < 16; i++ {
		th := 2 * math.Pi * float64(i) / 16
		circle = append(circle, Point{100 + 50*math.Cos(th), 100 + 50*math.Sin(th)})
	}
	g := New()
	g.Append(
		FromContour(circle, Attribs{"color": "red", "balloon": "", "lw": "1"}, true),
		FromContours([]Contour{{{0, 0}, {1e-7, -3.25}}, {{1e12, 2}, {-0.001, 7}}}, Attribs{"color": "blue", "balloon": "two  parts ", "lw": "1"}, false),
		NewDataSet([]PathPoint{Move(1, 1), Close(), Line(2, 2)}, Attribs{"color": "blue", "balloon": "x", "lw": "3"}),
	)

	var sb strings.Builder
	_, err := g.WriteTo(&sb)
	require.NoError(t, err)

	got, err := ParseString(sb.String(), WithStrict(true))
	require.NoError(t, err)
	assertSameGiv(t, g, got)
}

func TestRoundTripExtremeValues(t *testing.T) {
	vals := []float64{
		5e-324, -5e-324, 1e-310, 2.2250738585072014e-308,
		math.MaxFloat64, -math.MaxFloat64, 1e21, 0.1, 1.0 / 3,
	}
	var c Contour
	for _, v := range vals {
		c = append(c, Point{v, -v})
	}
	g := New()
	g.Append(FromContour(c, nil, false))

	var sb strings.Builder
	_, err := g.WriteTo(&sb)
	require.NoError(t, err)
	got, err := ParseString(sb.String(), WithStrict(true))
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, c, got.At(0).Contour())
}

func TestSaveAndAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.giv")
	g := New()
	g.Append(FromContour(Contour{{0, 0}, {1, 1}}, Attribs{"color": "red"}, false))

	require.NoError(t, g.Save(path))
	require.NoError(t, g.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())

	require.NoError(t, g.SaveAppend(path))
	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("$color red\nm 0 0\n1 1\n\n", 2), string(data))
}

func TestSaveUnwritablePath(t *testing.T) {
	g := New()
	err := g.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "x.giv"))
	assert.ErrorIs(t, err, ErrOpen)
	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "write", oe.Op)
}
