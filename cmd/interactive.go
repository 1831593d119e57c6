package cmd

import (
	"commutectl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to check departures, preview commute legs and edit settings interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(cmd.Context(), newPlanner(false), tui.RenderOptions{
			Limit:          appCfg.DisplayLimit,
			ShowProvenance: verbose,
		})
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
