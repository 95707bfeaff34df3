package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"givio/internal/giv"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Parse and re-serialize a giv file",
	Long: "Parse a giv file and write it back in canonical form. Each --set key=value " +
		"overrides that attribute in every dataset of the output without touching the input.",
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	fmtCmd.Flags().StringArray("set", nil, "Attribute override key=value, repeatable")

	rootCmd.AddCommand(fmtCmd)
}

// parseSets turns key=value pairs into override attributes.
func parseSets(pairs []string) (giv.Attribs, error) {
	a := giv.Attribs{}
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || strings.ContainsAny(k, " \t\r\n") || strings.ContainsAny(v, "\r\n") {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		a[k] = v
	}
	return a, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	sets, _ := cmd.Flags().GetStringArray("set")

	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}
	g, err := load(args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, out, func(w io.Writer) error {
		for _, ds := range g.DataSets() {
			if err := ds.Save(w, overrides); err != nil {
				return err
			}
		}
		return nil
	})
}
