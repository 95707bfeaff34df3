package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"givio/internal/giv"
)

var joinCmd = &cobra.Command{
	Use:   "join <file>",
	Short: "Merge all datasets into one",
	Long: "Concatenate the points of every dataset into a single dataset. Each source " +
		"starts with a move so no segment joins two datasets; attributes merge with later datasets winning.",
	Args: cobra.ExactArgs(1),
	RunE: runJoin,
}

func init() {
	joinCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	rootCmd.AddCommand(joinCmd)
}

func runJoin(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	g, err := load(args[0])
	if err != nil {
		return err
	}
	joined := g.Join()
	slog.Debug("joined", "datasets", g.Len(), "points", joined.Len())
	res := giv.New()
	res.Append(joined)
	return writeOutput(cmd, out, func(w io.Writer) error {
		_, err := res.WriteTo(w)
		return err
	})
}
