package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stardrop/internal/platform/tui"
	"github.com/vovakirdan/stardrop/internal/scenes/game"
	"github.com/vovakirdan/stardrop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run right away, skipping the main menu.

Controls:
  Left/Right, A/D  - Run
  Up/W/Space       - Jump (only from the ground)
  P                - Pause
  R                - Restart (after game over)
  B/Esc            - Main menu (after game over)
  Q/Ctrl+C         - Quit

Examples:
  stardrop play
  stardrop play --level canyon
  stardrop play --seed 42 --config ./my-stardrop.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSession(game.Key)
	},
}

// runSession runs a local session starting at the given scene.
func runSession(first string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, level, err := loadGame()
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("session starting", "scene", first, "level", level.ID, "source", level.Source)
	if err := tui.Run(tui.Options{
		Runtime:    runtimeConfig(),
		Config:     cfg,
		Level:      level,
		Store:      store,
		Logger:     logger,
		FirstScene: first,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
