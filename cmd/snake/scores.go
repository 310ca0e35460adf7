package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show today's best and the top runs",
	Long: `Display today's high score, the best score of recent days and the
top runs.

Examples:
  snake scores
  snake scores -i
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in an interactive board")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	prefix := cfg.HighScore.KeyPrefix

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(session.GameID, prefix); err != nil {
			store.Close()
			exitf("clearing scores: %v", err)
		}
		fmt.Println("All scores cleared.")
		return

	case flagInteractive:
		if err := tui.RunScoreboard(store, prefix); err != nil {
			store.Close()
			exitf("running scoreboard: %v", err)
		}
		return
	}

	today, err := store.Get(session.DayKey(prefix, time.Now()))
	if err != nil {
		store.Close()
		exitf("retrieving today's best: %v", err)
	}

	fmt.Println("Snake High Scores")
	fmt.Println()
	fmt.Printf("Best today: %d\n", today)

	days, err := tui.ScoreRows(store, prefix, false)
	if err != nil {
		store.Close()
		exitf("retrieving daily bests: %v", err)
	}
	runs, err := tui.ScoreRows(store, prefix, true)
	if err != nil {
		store.Close()
		exitf("retrieving scores: %v", err)
	}

	if len(days) == 0 && len(runs) == 0 {
		fmt.Println()
		fmt.Println("No scores recorded yet.")
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	// Print recent days
	fmt.Println()
	fmt.Printf("  %-10s  %-10s  %s\n", "Day", "Best", "Updated")
	fmt.Printf("  %-10s  %-10s  %s\n", "---", "----", "-------")
	for _, row := range days {
		fmt.Printf("  %-10s  %-10s  %s\n", row[0], row[1], row[2])
	}

	// Print top runs
	if len(runs) > 10 {
		runs = runs[:10]
	}
	fmt.Println()
	fmt.Printf("  %-10s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-10s  %-10s  %s\n", "----", "-----", "----")
	for _, row := range runs {
		fmt.Printf("  %-10s  %-10s  %s\n", row[0], row[1], row[2])
	}

	// Show all-time best and stats
	fmt.Println()
	if best, err := store.HighScore(session.GameID); err == nil {
		fmt.Printf("All-time best: %d\n", best)
	}
	if stats, err := store.GetGameStats(session.GameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %d  Average: %.1f\n", stats.GamesCount, stats.AvgScore)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load stats: %v\n", err)
	}
}
