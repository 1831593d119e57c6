package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"commutectl/pkg/server"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the departure board as JSON over HTTP",
	Long:  "Starts an HTTP server exposing /board, /leg and /healthz so widgets and dashboards can render the commute board.",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		offline, _ := cmd.Flags().GetBool("offline")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		enableServeLogging(logger)

		router := server.NewRouter(newPlanner(offline), nil, logger)
		return server.Serve(ctx, router, port, logger)
	},
}

// enableServeLogging makes the startup line and access log visible at the default level
func enableServeLogging(l *logrus.Logger) {
	if !l.IsLevelEnabled(logrus.InfoLevel) {
		l.SetLevel(logrus.InfoLevel)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 4934, "Port to listen on")
	serveCmd.Flags().Bool("offline", false, "Never query ViaggiaTreno, serve estimated schedules only")
}
