package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start screen with difficulty picker and scores",
	Long: `Open the start screen. It shows the high score, lets you pick a
difficulty and opens the scoreboard. After each run you can play again or
return here.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select
  Tab             - Scoreboard
  Q               - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runner.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	env := openTUIEnv()
	defer env.Close()

	if err := tui.RunSession(runner.GameID, env.tuiEnv(), runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		env.Close()
		os.Exit(1)
	}
}
