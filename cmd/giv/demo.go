package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"givio/internal/giv"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write sample giv files",
	Long: "Write out.giv (a filled circle), triangle.giv, green-triangle.giv (the triangle " +
		"reloaded and recoloured) and example.giv (two styled datasets) into a directory.",
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringP("dir", "d", ".", "Output directory")

	rootCmd.AddCommand(demoCmd)
}

// circle returns n points on a circle around (cx, cy).
func circle(cx, cy, r float64, n int) giv.Contour {
	c := make(giv.Contour, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c = append(c, giv.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return c
}

func saveOne(path string, ds ...*giv.DataSet) error {
	g := giv.New()
	g.Append(ds...)
	if err := g.Save(path); err != nil {
		return err
	}
	slog.Info("wrote", "path", path, "datasets", g.Len())
	return nil
}

func runDemo(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	out := filepath.Join(dir, "out.giv")
	err := saveOne(out, giv.FromContour(circle(100, 100, 50, 16), giv.Attribs{
		"color":   "red",
		"marks":   "fcircle",
		"polygon": "",
	}, true))
	if err != nil {
		return err
	}

	tri := filepath.Join(dir, "triangle.giv")
	err = saveOne(tri, giv.FromContour(giv.Contour{{X: 0, Y: 0}, {X: 100, Y: 20}, {X: 30, Y: 80}}, giv.Attribs{
		"color":         "red/.2",
		"outline_color": "black",
		"lw":            "5",
		"balloon":       "A triangle",
		"polygon":       "",
	}, true))
	if err != nil {
		return err
	}

	g, err := giv.Load(tri, parseOptions()...)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", tri, err)
	}
	for _, ds := range g.DataSets() {
		ds.SetAttr("color", "green/.2")
	}
	green := filepath.Join(dir, "green-triangle.giv")
	if err := g.Save(green); err != nil {
		return err
	}
	slog.Info("wrote", "path", green, "datasets", g.Len())

	ex := filepath.Join(dir, "example.giv")
	err = saveOne(ex,
		giv.FromContour(giv.Contour{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 200, Y: 50}}, giv.Attribs{
			"color":   "green",
			"lw":      "2",
			"balloon": "I am green",
		}, false),
		giv.FromContour(circle(150, 150, 40, 32), giv.Attribs{
			"color":         "blue/0.3",
			"outline_color": "blue",
			"lw":            "5",
			"polygon":       "",
			"balloon":       "A blue circle",
		}, true),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s, %s, %s, %s\n", out, tri, green, ex)
	return nil
}
