package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs and overall stats.

Examples:
  runner scores
  runner scores --limit 25
  runner scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(runner.GameID, store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(runner.GameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Endless Runner")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		result := "out"
		if entry.Outcome == core.OutcomeWin {
			result = "clear"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6s  %s\n", i+1, entry.Score, result, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(runner.GameID); err == nil {
		fmt.Printf("Best: %d   Runs: %d   Cleared: %d   Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
}
