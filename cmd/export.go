package cmd

import (
	"fmt"
	"os"

	"commutectl/pkg/commute"
	"commutectl/pkg/exporter"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the upcoming departures to an ICS file",
	Long:  `Export the departures currently on the board as calendar events without using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		at, _ := cmd.Flags().GetString("at")
		offline, _ := cmd.Flags().GetBool("offline")

		now, err := renderInstant(at)
		if err != nil {
			return err
		}

		planner := newPlanner(offline)
		var board commute.Board

		_ = spinner.New().
			Title(fmt.Sprintf("Exporting departures to %s...", output)).
			Action(func() {
				board = planner.Build(cmd.Context(), now)
			}).
			Run()

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(board, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d departures from %s to %s\n", len(board.Statuses), board.Leg.Origin, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "departures.ics", "Output file path")
	exportCmd.Flags().String("at", "", "Export the board as if it were this time today (HH:MM)")
	exportCmd.Flags().Bool("offline", false, "Skip the live query and export the estimated schedule")
}
