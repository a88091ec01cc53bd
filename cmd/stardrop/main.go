// stardrop is a star-collecting platformer played in the terminal.
//
// Usage:
//
//	stardrop menu            - Start at the main menu
//	stardrop play            - Jump straight into a run
//	stardrop levels          - List available levels
//	stardrop scores          - Show high scores
//	stardrop serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.stardrop/scores.db)
//	--config <path>    - Use a custom game config YAML
//	--level <id>       - Play a specific level
//	--log-file <path>  - Write logs to a file
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stardrop/internal/config"
	"github.com/vovakirdan/stardrop/internal/core"
	"github.com/vovakirdan/stardrop/internal/storage"

	// Import scenes to register them
	_ "github.com/vovakirdan/stardrop/internal/scenes/game"
	_ "github.com/vovakirdan/stardrop/internal/scenes/menu"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLevel    string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stardrop",
	Short: "Stardrop - collect the stars, dodge the bombs",
	Long: `Stardrop is a small platformer for the terminal. Run and jump across
the platforms, collect every star, and keep away from the bombs that
drop each time the sky is cleared.

Available commands:
  menu     - Start at the main menu
  play     - Jump straight into a run
  levels   - Show all available levels
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  stardrop menu
  stardrop play --level canyon
  stardrop scores --level meadow
  stardrop serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level id (default: the config's level)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the logger for a local session. The terminal belongs to
// the game, so logs go to --log-file or nowhere.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "stardrop",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)
	return logger, closeFn, nil
}

// loadGame resolves the game config and the level to play.
func loadGame() (config.Config, config.Level, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, config.Level{}, err
	}

	id := flagLevel
	if id == "" {
		id = cfg.Level
	}
	level, err := config.LoadLevel(id)
	if err != nil {
		return config.Config{}, config.Level{}, err
	}
	return cfg, level, nil
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
