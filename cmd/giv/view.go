package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"givio/internal/giv"
	"givio/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open the terminal viewer",
	Long:  "Show a giv file, or any file giv can import, in the terminal viewer. Without a file the viewer opens empty.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(_ *cobra.Command, args []string) error {
	opts := []giv.Option{giv.WithStrict(viper.GetBool("strict"))}
	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(args[0], opts...)
	} else {
		m = tui.New(opts...)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
