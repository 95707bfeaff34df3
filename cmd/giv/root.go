package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"givio/internal/giv"
)

var rootCmd = &cobra.Command{
	Use:   "giv [file]",
	Short: "giv path file tool",
	Long: "giv reads, writes, converts, renders and views giv files: line-oriented " +
		"text files holding datasets of 2D paths with free-form attributes.",
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runView,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail on malformed lines instead of skipping them")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
}

func initConfig() {
	viper.SetEnvPrefix("GIV")
	viper.AutomaticEnv()
}

// logLevel maps the verbosity flags onto a slog level.
func logLevel() slog.Level {
	switch {
	case viper.GetBool("debug"):
		return slog.LevelDebug
	case viper.GetBool("verbose"):
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel()})
	slog.SetDefault(slog.New(h))
	return nil
}

// parseOptions returns the parser options selected on the command line.
func parseOptions() []giv.Option {
	return []giv.Option{
		giv.WithStrict(viper.GetBool("strict")),
		giv.WithLogger(slog.Default()),
	}
}

// load reads a giv file with the command line parser options.
func load(path string) (*giv.Giv, error) {
	g, err := giv.Load(path, parseOptions()...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Info("loaded", "path", path, "datasets", g.Len())
	return g, nil
}

// writeOutput runs write against path, or against stdout when path is empty
// or "-".
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		bw := bufio.NewWriter(cmd.OutOrStdout())
		if err := write(bw); err != nil {
			return err
		}
		return bw.Flush()
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
