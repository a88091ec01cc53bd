package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stardrop/internal/config"
	"github.com/vovakirdan/stardrop/internal/scenes/game"
	"github.com/vovakirdan/stardrop/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the builtin levels and any found in ~/.stardrop/levels or
./levels. A file there with the same id replaces the builtin level.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	levels, err := config.ListLevels()
	if err != nil {
		return err
	}

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	// Best scores are optional; the list works without a database.
	best := make(map[string]int)
	if store, err := storage.Open(flagDBPath); err == nil {
		if stats, err := store.LevelStats(game.ID); err == nil {
			for id, st := range stats {
				best[id] = st.HighScore
			}
		}
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-9s  %-6s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Platforms", "Best", "Source")
	fmt.Printf("  %-*s  %-*s  %-9s  %-6s  %s\n", maxIDLen, "--", maxNameLen, "----", "---------", "----", "------")

	for _, l := range levels {
		score := "-"
		if b, ok := best[l.ID]; ok {
			score = fmt.Sprintf("%d", b)
		}
		fmt.Printf("  %-*s  %-*s  %-9d  %-6s  %s\n", maxIDLen, l.ID, maxNameLen, l.Name, len(l.Platforms), score, l.Source)
	}

	fmt.Println()
	fmt.Println("Run 'stardrop play --level <id>' to play a level.")
	return nil
}
