package cmd

import (
	"fmt"
	"time"

	"commutectl/pkg/commute"
	"commutectl/pkg/tui"

	"github.com/spf13/cobra"
)

var legCmd = &cobra.Command{
	Use:   "leg",
	Short: "Show which commute leg is active at a given hour",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		if all {
			for h := 0; h < 24; h++ {
				leg := commute.ResolveLeg(settings, h)
				fmt.Printf("%02d:00  %-8s  %s → %s (%s)\n", h, leg.Direction, leg.Origin, leg.Destination, leg.StationCode)
			}
			return nil
		}

		hour := time.Now().In(settings.Loc()).Hour()
		if cmd.Flags().Changed("hour") {
			hour, _ = cmd.Flags().GetInt("hour")
			if hour < 0 || hour > 23 {
				return fmt.Errorf("hour must be between 0 and 23, got %d", hour)
			}
		}

		fmt.Println(tui.RenderLeg(commute.ResolveLeg(settings, hour), hour))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(legCmd)
	legCmd.Flags().Int("hour", 0, "Hour of the day to resolve (default: now)")
	legCmd.Flags().Bool("all", false, "Print the leg for every hour of the day")
}
