// runner is an endless side-scrolling runner for the terminal.
//
// Usage:
//
//	runner play              - Start a run right away
//	runner menu              - Start screen with difficulty picker and scores
//	runner scores            - Show recent best runs
//	runner serve             - Start SSH server for remote play
//	runner logserver         - Collect diagnostics from runs over HTTP
//	runner config            - Print the effective game config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.arcade/runner.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-url <url>      - Post diagnostics to a log server
//
// RUNNER_DB, RUNNER_CONFIG and RUNNER_LOG_URL, read from the environment or a
// .env file, replace the defaults of the matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogURL     string
)

// envFlags maps persistent flags to the environment variables that supply
// their defaults.
var envFlags = map[string]string{
	"db":      "RUNNER_DB",
	"config":  "RUNNER_CONFIG",
	"log-url": "RUNNER_LOG_URL",
}

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Endless Runner - jump gaps and dodge obstacles in your terminal",
	Long: `Endless Runner is a side-scrolling runner for the terminal.

Run along a ground with gaps, double-jump over them, dodge obstacles and pick
up collectibles. Speed rises with your score; reach the target score to clear
the level.

Available commands:
  play       - Start a run right away
  menu       - Start screen with difficulty picker and scores
  scores     - Show recent best runs
  serve      - Start SSH server for remote play
  logserver  - Collect diagnostics from runs over HTTP
  config     - Print the effective game config

Examples:
  runner play
  runner play --difficulty hard --seed 42
  runner menu
  runner serve --ssh :2222
  runner logserver --addr :8000
  runner play --log-url http://localhost:8000/log`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		applyEnvDefaults(cmd.Flags())
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		runner.SetConfigPath(flagConfig)
		runner.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// applyEnvDefaults fills flags the user did not set from the environment.
func applyEnvDefaults(flags *pflag.FlagSet) {
	for name, env := range envFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			//nolint:errcheck // String flags accept any value
			f.Value.Set(v)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/runner.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogURL, "log-url", "", "Diagnostic log endpoint (e.g. http://localhost:8000/log)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logserverCmd)
	rootCmd.AddCommand(configCmd)
}
