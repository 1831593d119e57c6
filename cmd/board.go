package cmd

import (
	"encoding/json"
	"os"

	"commutectl/pkg/tui"

	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the next departures for the active commute leg",
	Long:  "Resolves the active leg from the clock, fetches the ViaggiaTreno board for it and shows the next trains by urgency.",
	RunE:  runBoard,
}

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().String("at", "", "Render the board as if it were this time today (HH:MM)")
	cmd.Flags().Bool("offline", false, "Skip the live query and show the estimated schedule")
	cmd.Flags().IntP("limit", "n", 0, "Number of trains to show (default from config)")
	cmd.Flags().Bool("json", false, "Print the board as JSON")
}

func runBoard(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetString("at")
	offline, _ := cmd.Flags().GetBool("offline")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	now, err := renderInstant(at)
	if err != nil {
		return err
	}

	if limit <= 0 {
		limit = appCfg.DisplayLimit
	}

	planner := newPlanner(offline)

	if asJSON {
		board := planner.Build(cmd.Context(), now)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(board)
	}

	return tui.RunBoardView(cmd.Context(), planner, now, tui.RenderOptions{
		Limit:          limit,
		ShowProvenance: verbose,
	})
}

func init() {
	rootCmd.AddCommand(boardCmd)
	addBoardFlags(boardCmd)
}
