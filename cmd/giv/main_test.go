package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"givio/internal/giv"
)

// resetFlags restores every flag to its default so commands can run twice.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const twoSets = `$color red
$balloon one
m 0 0
10 0
10 10
z

$balloon two
m 20 20
30 30
`

func TestParseSets(t *testing.T) {
	a, err := parseSets([]string{"color=blue", "lw=3", "polygon="})
	require.NoError(t, err)
	assert.Equal(t, giv.Attribs{"color": "blue", "lw": "3", "polygon": ""}, a)

	for _, bad := range []string{"color", "=x", "my key=1", "k=a\nb"} {
		_, err := parseSets([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFmtOverrides(t *testing.T) {
	in := writeFile(t, "a.giv", twoSets)
	out, err := execute(t, "fmt", in, "--set", "color=blue", "--set", "lw=2")
	require.NoError(t, err)

	g, err := giv.ParseString(out)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	for _, ds := range g.DataSets() {
		v, _ := ds.Attr("color")
		assert.Equal(t, "blue", v)
		v, _ = ds.Attr("lw")
		assert.Equal(t, "2", v)
	}
	v, _ := g.At(1).Attr("balloon")
	assert.Equal(t, "two", v)

	src, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, twoSets, string(src))
}

func TestFmtRejectsBadSet(t *testing.T) {
	in := writeFile(t, "a.giv", twoSets)
	_, err := execute(t, "fmt", in, "--set", "nokey")
	assert.ErrorContains(t, err, "invalid --set")
}

func TestFmtStrict(t *testing.T) {
	in := writeFile(t, "a.giv", "m 0 0\nm x 1\n")
	_, err := execute(t, "fmt", in)
	require.NoError(t, err)
	_, err = execute(t, "--strict", "fmt", in)
	assert.Error(t, err)
}

func TestJoin(t *testing.T) {
	in := writeFile(t, "a.giv", twoSets)
	dst := filepath.Join(t.TempDir(), "joined.giv")
	_, err := execute(t, "join", in, "-o", dst)
	require.NoError(t, err)

	g, err := giv.Load(dst)
	require.NoError(t, err)
	require.Equal(t, 1, g.Len())
	assert.Len(t, g.At(0).SubPaths(), 2)
	v, _ := g.At(0).Attr("balloon")
	assert.Equal(t, "two", v)
}

func TestInfo(t *testing.T) {
	in := writeFile(t, "a.giv", twoSets+"\nm 1 bad\n")
	out, err := execute(t, "info", in)
	require.NoError(t, err)
	assert.Contains(t, out, "2 datasets")
	assert.Contains(t, out, "dataset 0: points=4 sub-paths=1 bbox=[0 0 10 10]")
	assert.Contains(t, out, "$balloon two")
	assert.Contains(t, out, "skipped lines: 1")
}

func TestConvert(t *testing.T) {
	csv := writeFile(t, "pts.csv", "lat,lon\n1,2\n3,4\n")
	dir := t.TempDir()
	givPath := filepath.Join(dir, "pts.giv")
	_, err := execute(t, "convert", csv, "-o", givPath)
	require.NoError(t, err)

	g, err := giv.Load(givPath)
	require.NoError(t, err)
	require.Equal(t, 1, g.Len())
	assert.Equal(t, []giv.PathPoint{giv.Move(2, 1), giv.Move(4, 3)}, g.At(0).Points())

	jsonPath := filepath.Join(dir, "pts.geojson")
	_, err = execute(t, "convert", givPath, "-o", jsonPath)
	require.NoError(t, err)
	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"MultiPoint"`)

	_, err = execute(t, "convert", givPath, "-o", filepath.Join(dir, "x.txt"))
	assert.ErrorContains(t, err, "unsupported output")
}

func TestRender(t *testing.T) {
	in := writeFile(t, "a.giv", twoSets)
	dst := filepath.Join(t.TempDir(), "a.png")
	_, err := execute(t, "render", in, "-o", dst, "--width", "64", "--height", "32", "--margin", "2")
	require.NoError(t, err)

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	_, err = execute(t, "render", in, "-o", dst, "--background", "nosuchcolor")
	assert.ErrorContains(t, err, "background")
}

func TestDemo(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "demo", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "green-triangle.giv")

	circ, err := giv.Load(filepath.Join(dir, "out.giv"))
	require.NoError(t, err)
	require.Equal(t, 1, circ.Len())
	assert.Len(t, circ.At(0).Contour(), 16)
	v, _ := circ.At(0).Attr("marks")
	assert.Equal(t, "fcircle", v)

	green, err := giv.Load(filepath.Join(dir, "green-triangle.giv"))
	require.NoError(t, err)
	v, _ = green.At(0).Attr("color")
	assert.Equal(t, "green/.2", v)
	v, _ = green.At(0).Attr("balloon")
	assert.Equal(t, "A triangle", v)
	assert.Equal(t, giv.Contour{{X: 0, Y: 0}, {X: 100, Y: 20}, {X: 30, Y: 80}}, green.At(0).Contour())

	tri, err := giv.Load(filepath.Join(dir, "triangle.giv"))
	require.NoError(t, err)
	v, _ = tri.At(0).Attr("color")
	assert.Equal(t, "red/.2", v)

	ex, err := giv.Load(filepath.Join(dir, "example.giv"))
	require.NoError(t, err)
	assert.Equal(t, 2, ex.Len())
}
