package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Load the game config the same way a run does (custom path, then
~/.arcade/configs/runner.yaml, then ./configs/runner.yaml, then the built-in
defaults), apply --difficulty and print the result as YAML.

Examples:
  runner config
  runner config --difficulty hard
  runner config --config ./my-runner.yaml > runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPreset(&cfg, preset)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
