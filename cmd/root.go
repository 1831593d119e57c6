package cmd

import (
	"fmt"
	"os"
	"time"

	"commutectl/pkg/commute"
	"commutectl/pkg/config"
	"commutectl/pkg/transit"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	logger   = logrus.New()
	appCfg   *config.AppConfig
	settings commute.Settings
)

var rootCmd = &cobra.Command{
	Use:   "commutectl",
	Short: "Next FL1 trains for the Roma Tuscolana commute",
	Long: `commutectl shows the next trains for whichever leg of your commute is active:
Roma Tuscolana towards Muratella in the morning, Fiumicino back towards the city in the evening.
When live data from ViaggiaTreno is unavailable an estimated schedule is shown instead.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runBoard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setup loads the environment, configuration and logger shared by every command
func setup(cmd *cobra.Command, args []string) error {
	if err := setupEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := cfg.Settings()
	if err != nil {
		return err
	}

	appCfg = cfg
	settings = s
	return nil
}

// setupEnv prepares .env values, the logger and the config path without reading the config file
func setupEnv() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	logger.SetOutput(os.Stderr)
	configureLogger(logger, verbose)

	// Make the flag visible to config.Load() callers such as the TUI theme
	if configPath != "" {
		if err := os.Setenv(config.EnvConfigPath, configPath); err != nil {
			return err
		}
	}
	return nil
}

func configureLogger(l *logrus.Logger, verbose bool) {
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
}

// newPlanner wires the transit client into a planner. Offline planners never hit the network.
func newPlanner(offline bool) *commute.Planner {
	var fetcher commute.Fetcher
	if !offline {
		fetcher = transit.NewClient(
			transit.WithBaseURL(appCfg.Transit.BaseURL),
			transit.WithTimeFormat(appCfg.Transit.TimeFormat),
			transit.WithTimeout(time.Duration(appCfg.Transit.TimeoutSeconds)*time.Second),
			transit.WithRetries(appCfg.Transit.Attempts, time.Second),
			transit.WithLogger(logger),
		)
	}
	return commute.NewPlanner(settings, fetcher, commute.NewGenerator(settings, nil), logger)
}

// renderInstant returns now in the configured zone, or the --at wall-clock time today
func renderInstant(at string) (time.Time, error) {
	now := time.Now().In(settings.Loc())
	if at == "" {
		return now, nil
	}
	return commute.ParseClock(at, now)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.commutectl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log fetch details and mark estimated schedules")
	addBoardFlags(rootCmd)
}
