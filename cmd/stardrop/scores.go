package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stardrop/internal/platform/tui"
	"github.com/vovakirdan/stardrop/internal/scenes/game"
	"github.com/vovakirdan/stardrop/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 scores, across all levels or for one level.

Examples:
  stardrop scores
  stardrop scores --level canyon
  stardrop scores --tui
  stardrop scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score")
}

func runScores(cmd *cobra.Command, _ []string) error {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(game.ID); err != nil {
			return err
		}
		fmt.Println("All scores cleared.")
		return nil
	}

	if flagScoresTUI {
		rt := runtimeConfig()
		_, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
		return err
	}

	// Get top scores
	scores, err := store.TopScores(game.ID, flagLevel, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := "all levels"
	if flagLevel != "" {
		title = flagLevel
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stardrop play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-10s  %s\n", i+1, entry.Score, entry.Level, dateStr)
	}

	if stats, err := store.GetGameStats(game.ID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
