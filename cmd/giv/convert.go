package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"givio/internal/geom"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> -o <out>",
	Short: "Convert between giv and other formats",
	Long: "Import WKT, GeoJSON, CSV or KML into giv, or export giv to GeoJSON. " +
		"The formats are chosen by file extension.",
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "Output file (.giv, .geojson or .json)")
	_ = convertCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	in := args[0]
	g, err := geom.Import(in, parseOptions()...)
	if err != nil {
		return fmt.Errorf("importing %s: %w", in, err)
	}
	slog.Info("imported", "path", in, "datasets", g.Len())

	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".giv":
		return g.Save(out)
	case ".geojson", ".json":
		return writeOutput(cmd, out, func(w io.Writer) error {
			return geom.EncodeGeoJSON(w, g)
		})
	default:
		return fmt.Errorf("unsupported output type %q", ext)
	}
}
