package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is a platform layout.
type Level struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	World     LevelSize       `yaml:"world"`
	Player    LevelPoint      `yaml:"player"`
	Platforms []LevelPlatform `yaml:"platforms"`
	Stars     LevelStars      `yaml:"stars"`
	Bombs     LevelBombs      `yaml:"bombs"`

	// Source is where the level was loaded from: a file path or "builtin".
	Source string `yaml:"-"`
}

// LevelSize is the world size in world units.
type LevelSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// LevelPoint is a world position.
type LevelPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LevelPlatform is one static ground piece, centered at X, Y.
type LevelPlatform struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale,omitempty"`
	Color string  `yaml:"color,omitempty"`
}

// LevelStars overrides the star layout for wide levels. Zero keeps the config value.
type LevelStars struct {
	StartX float64 `yaml:"start_x,omitempty"`
	StepX  float64 `yaml:"step_x,omitempty"`
}

// LevelBombs overrides the bomb spawn band. Zero keeps the config value.
type LevelBombs struct {
	SplitX float64 `yaml:"split_x,omitempty"`
	MaxX   float64 `yaml:"max_x,omitempty"`
}

// Validate checks that the level can be played.
func (l Level) Validate() error {
	var errs []error
	if l.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if l.World.W <= 0 || l.World.H <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", l.World.W, l.World.H))
	}
	if len(l.Platforms) == 0 {
		errs = append(errs, errors.New("no platforms"))
	}
	if l.Player.X < 0 || l.Player.X > l.World.W || l.Player.Y < 0 || l.Player.Y > l.World.H {
		errs = append(errs, fmt.Errorf("player start (%v, %v) outside world", l.Player.X, l.Player.Y))
	}
	for i, p := range l.Platforms {
		if p.Scale < 0 {
			errs = append(errs, fmt.Errorf("platform %d: negative scale", i))
		}
	}
	if l.Bombs.MaxX > 0 && l.Bombs.SplitX >= l.Bombs.MaxX {
		errs = append(errs, fmt.Errorf("bombs.split_x %v must be below max_x %v", l.Bombs.SplitX, l.Bombs.MaxX))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("level %q: %w", l.ID, err)
	}
	return nil
}

// ApplyTo copies the level's star and bomb overrides into cfg.
func (l Level) ApplyTo(cfg *Config) {
	if l.Stars.StartX != 0 {
		cfg.Stars.StartX = l.Stars.StartX
	}
	if l.Stars.StepX != 0 {
		cfg.Stars.StepX = l.Stars.StepX
	}
	if l.Bombs.SplitX != 0 {
		cfg.Bombs.SplitX = l.Bombs.SplitX
	}
	if l.Bombs.MaxX != 0 {
		cfg.Bombs.MaxX = l.Bombs.MaxX
	}
}

// ParseLevel decodes and validates a level file.
func ParseLevel(data []byte) (Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	for i := range l.Platforms {
		if l.Platforms[i].Scale == 0 {
			l.Platforms[i].Scale = 1
		}
	}
	if l.Name == "" {
		l.Name = l.ID
	}
	return l, l.Validate()
}

// levelDirs returns the on-disk level directories in search order.
func levelDirs() []string {
	var dirs []string
	if p := userPath("levels"); p != "" {
		dirs = append(dirs, p)
	}
	return append(dirs, "levels")
}

// LoadLevel finds a level by id.
// Search order: ~/.stardrop/levels/<id>.yaml -> ./levels/<id>.yaml -> embedded.
func LoadLevel(id string) (Level, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return Level{}, fmt.Errorf("config: invalid level id %q", id)
	}
	file := id + ".yaml"

	for _, dir := range levelDirs() {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Level{}, fmt.Errorf("config: failed to read level %s: %w", path, err)
		}
		l, err := ParseLevel(data)
		if err != nil {
			return Level{}, fmt.Errorf("config: %s: %w", path, err)
		}
		l.Source = path
		return l, nil
	}

	data, err := defaultLevels.ReadFile("defaults/levels/" + file)
	if err != nil {
		return Level{}, fmt.Errorf("config: unknown level %q", id)
	}
	l, err := ParseLevel(data)
	if err != nil {
		return Level{}, fmt.Errorf("config: builtin %w", err)
	}
	l.Source = "builtin"
	return l, nil
}

// ListLevels returns every loadable level sorted by id. Files that fail to
// parse are skipped; a level in a user directory shadows the builtin one.
func ListLevels() ([]Level, error) {
	byID := make(map[string]Level)

	entries, err := fs.ReadDir(defaultLevels, "defaults/levels")
	if err != nil {
		return nil, fmt.Errorf("config: reading builtin levels: %w", err)
	}
	for _, e := range entries {
		data, err := defaultLevels.ReadFile("defaults/levels/" + e.Name())
		if err != nil {
			continue
		}
		if l, err := ParseLevel(data); err == nil {
			l.Source = "builtin"
			byID[l.ID] = l
		}
	}

	dirs := levelDirs()
	for i := len(dirs) - 1; i >= 0; i-- {
		matches, _ := filepath.Glob(filepath.Join(dirs[i], "*.yaml"))
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if l, err := ParseLevel(data); err == nil {
				l.Source = path
				byID[l.ID] = l
			}
		}
	}

	levels := make([]Level, 0, len(byID))
	for _, l := range byID {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}
