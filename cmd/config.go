package cmd

import (
	"context"
	"fmt"

	"commutectl/pkg/config"
	"commutectl/pkg/transit"
	"commutectl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage commutectl configuration",
	Long:  "View or edit your local configuration settings (stations, switch hours, theme).",
	// --init and the editor must work even when the current file no longer validates
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if needsLoadedConfig(cmd) {
			return setup(cmd, args)
		}
		return setupEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		initFile, _ := cmd.Flags().GetBool("init")
		show, _ := cmd.Flags().GetBool("show")
		findStation, _ := cmd.Flags().GetString("find-station")
		accent, _ := cmd.Flags().GetString("set-accent")

		switch {
		case initFile:
			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.SaveTo(config.Default(), path); err != nil {
				return err
			}
			fmt.Printf("✅ Wrote default configuration to %s\n", path)
			return nil

		case findStation != "":
			fmt.Printf("Searching ViaggiaTreno for station: '%s'...\n", findStation)

			client := transit.NewClient(transit.WithBaseURL(appCfg.Transit.BaseURL), transit.WithLogger(logger))
			stations, err := client.FetchStations(context.Background(), findStation)
			if err != nil {
				return fmt.Errorf("could not lookup station: %w", err)
			}
			if len(stations) == 0 {
				return fmt.Errorf("no matching stations found for '%s'", findStation)
			}
			for _, s := range stations {
				fmt.Printf("  %s  %s\n", s.ID, s.LongName)
			}
			return nil

		case accent != "":
			if err := tui.ValidateHexColor(accent); err != nil {
				return err
			}
			appCfg.AccentColor = accent
			if err := config.Save(appCfg); err != nil {
				return err
			}
			fmt.Printf("✅ Accent color saved as %s\n", accent)
			return nil

		case show:
			fmt.Println(tui.RenderConfig(appCfg))
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

// needsLoadedConfig reports whether the chosen config action reads the current file
func needsLoadedConfig(cmd *cobra.Command) bool {
	if initFile, _ := cmd.Flags().GetBool("init"); initFile {
		return false
	}
	for _, name := range []string{"show", "find-station", "set-accent"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Write the default configuration file")
	configCmd.Flags().Bool("show", false, "Print the current configuration")
	configCmd.Flags().StringP("find-station", "f", "", "Look up ViaggiaTreno station codes by name")
	configCmd.Flags().String("set-accent", "", "Set the accent color (#RRGGBB)")
}
