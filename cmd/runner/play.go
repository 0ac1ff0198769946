package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run right away, without the start screen.

Controls:
  Space/W/Up - Jump (press again in the air for a double jump)
  P          - Pause / resume
  Esc/B      - Back (while paused)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

After the run, the result screen offers Play Again (R) or leaving (Esc).

Difficulty options:
  easy   - Slower start, gentle speed-up
  normal - Config defaults
  hard   - Faster start, steeper speed-up
  fixed  - Speed never changes

Examples:
  runner play
  runner play --difficulty hard
  runner play --seed 42 --fps 30
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	game, err := registry.Create(runner.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	env := openTUIEnv()
	defer env.Close()

	if err := tui.Run(game, env.tuiEnv(), runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		env.Close()
		os.Exit(1)
	}
}
