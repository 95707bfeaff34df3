package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"givio/internal/geom"
	"givio/internal/raster"
)

var renderCmd = &cobra.Command{
	Use:   "render <file> -o <out.png>",
	Short: "Rasterize to PNG",
	Long:  "Draw every dataset with its style attributes (color, outline_color, lw, polygon, marks, hide) into a PNG image.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	def := raster.DefaultOptions()
	renderCmd.Flags().StringP("output", "o", "", "Output PNG file")
	renderCmd.Flags().Int("width", def.Width, "Image width in pixels")
	renderCmd.Flags().Int("height", def.Height, "Image height in pixels")
	renderCmd.Flags().Int("margin", def.Margin, "Margin in pixels")
	renderCmd.Flags().String("background", "white", "Background colour")
	_ = renderCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	margin, _ := cmd.Flags().GetInt("margin")
	bgName, _ := cmd.Flags().GetString("background")

	bg, err := raster.ParseColor(bgName)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	g, err := geom.Import(args[0], parseOptions()...)
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}
	img, err := raster.Render(g, raster.Options{
		Width:      width,
		Height:     height,
		Margin:     margin,
		Background: bg,
		Logger:     slog.Default(),
	})
	if err != nil {
		return err
	}
	if err := raster.SavePNG(out, img); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	slog.Info("rendered", "path", out, "width", width, "height", height)
	return nil
}
