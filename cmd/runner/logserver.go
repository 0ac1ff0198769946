package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/diag"
)

var (
	flagLogAddr string
	flagLogJSON bool
)

var logserverCmd = &cobra.Command{
	Use:   "logserver",
	Short: "Collect diagnostics from runs",
	Long: `Start an HTTP server that receives diagnostics from runs and prints
them with one color per level.

Endpoints:
  POST /log     - {"level": "info", "message": "...", "source": "GameScene"}
  GET  /health  - liveness and tail subscriber count
  GET  /ws      - live tail over WebSocket

Examples:
  runner logserver
  runner logserver --addr :9000 --json
  runner play --log-url http://localhost:8000/log`,
	Args: cobra.NoArgs,
	Run:  runLogServer,
}

func init() {
	logserverCmd.Flags().StringVar(&flagLogAddr, "addr", ":8000", "HTTP listen address")
	logserverCmd.Flags().BoolVar(&flagLogJSON, "json", false, "Write entries as JSON lines instead of colored text")
}

func runLogServer(_ *cobra.Command, _ []string) {
	var logger zerolog.Logger
	if flagLogJSON {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := diag.NewServer(logger)
	if err := srv.ListenAndServe(ctx, flagLogAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Log server stopped after %d entries\n", srv.Received())
}
