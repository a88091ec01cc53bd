package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stardrop/internal/scenes/menu"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the main menu",
	Long: `Show the main menu with the best score so far. Click START or press
Enter/Space to begin a run. Tab opens the scoreboard.

Examples:
  stardrop menu
  stardrop menu --level canyon`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSession(menu.Key)
	},
}
