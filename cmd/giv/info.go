package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"givio/internal/geom"
	"givio/internal/giv"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize the datasets of a giv file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func formatBBox(b geom.BBox) string {
	return fmt.Sprintf("[%g %g %g %g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

func runInfo(cmd *cobra.Command, args []string) error {
	var skipped []*giv.LineError
	opts := append(parseOptions(), giv.WithSkipped(&skipped))
	g, err := giv.Load(args[0], opts...)
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	w := cmd.OutOrStdout()
	writeSummary(w, args[0], g)
	if len(skipped) > 0 && !viper.GetBool("strict") {
		fmt.Fprintf(w, "skipped lines: %d\n", len(skipped))
		for _, le := range skipped {
			fmt.Fprintf(w, "  %v\n", le)
		}
	}
	return nil
}

func writeSummary(w io.Writer, name string, g *giv.Giv) {
	fmt.Fprintf(w, "%s: %d datasets", name, g.Len())
	if bb, ok := geom.Extent(g); ok {
		fmt.Fprintf(w, ", bbox %s", formatBBox(bb))
	}
	fmt.Fprintln(w)
	for i, ds := range g.DataSets() {
		fmt.Fprintf(w, "dataset %d: points=%d sub-paths=%d", i, ds.Len(), len(ds.SubPaths()))
		if bb, ok := geom.DataSetExtent(ds); ok {
			fmt.Fprintf(w, " bbox=%s", formatBBox(bb))
		}
		fmt.Fprintln(w)
		a := ds.Attribs()
		for _, k := range a.Keys() {
			fmt.Fprintf(w, "  $%s %s\n", k, a[k])
		}
	}
}
