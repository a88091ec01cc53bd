// Package config provides YAML-based game configuration and level loading.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunables of the game scene.
type Config struct {
	Level   string  `yaml:"level"`
	Physics Physics `yaml:"physics"`
	Player  Player  `yaml:"player"`
	Stars   Stars   `yaml:"stars"`
	Bombs   Bombs   `yaml:"bombs"`
	Input   Input   `yaml:"input"`
}

// Physics defines world-wide physics parameters.
type Physics struct {
	Gravity float64 `yaml:"gravity"` // px/s^2, positive is down
}

// Player defines player movement.
type Player struct {
	Speed        float64 `yaml:"speed"`         // horizontal px/s
	JumpVelocity float64 `yaml:"jump_velocity"` // upward px/s
	Bounce       float64 `yaml:"bounce"`
}

// Stars defines the collectible group.
type Stars struct {
	Repeat    int     `yaml:"repeat"` // children beyond the first
	StartX    float64 `yaml:"start_x"`
	StartY    float64 `yaml:"start_y"`
	StepX     float64 `yaml:"step_x"`
	MinBounce float64 `yaml:"min_bounce"`
	MaxBounce float64 `yaml:"max_bounce"`
	Points    int     `yaml:"points"`
}

// Bombs defines hazard spawning.
type Bombs struct {
	SplitX       float64 `yaml:"split_x"` // players left of this spawn bombs on the right
	MaxX         float64 `yaml:"max_x"`
	SpawnY       float64 `yaml:"spawn_y"`
	MaxVelocityX int     `yaml:"max_velocity_x"`
	VelocityY    float64 `yaml:"velocity_y"`
	Bounce       float64 `yaml:"bounce"`
}

// Input defines terminal input handling.
type Input struct {
	// HoldMS is how long a first key press keeps its direction held. It
	// must outlast the keyboard's initial auto-repeat delay. Terminals
	// report presses and auto-repeat, never releases.
	HoldMS int `yaml:"hold_ms"`
	// RepeatMS is the window after each auto-repeat press. A released key
	// stops within this long.
	RepeatMS int `yaml:"repeat_ms"`
}

// Validate reports configuration values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Physics.Gravity < 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must not be negative, got %v", c.Physics.Gravity))
	}
	if c.Player.Speed <= 0 {
		errs = append(errs, fmt.Errorf("player.speed must be positive, got %v", c.Player.Speed))
	}
	if c.Stars.Repeat < 0 {
		errs = append(errs, fmt.Errorf("stars.repeat must not be negative, got %d", c.Stars.Repeat))
	}
	if c.Stars.MinBounce > c.Stars.MaxBounce {
		errs = append(errs, fmt.Errorf("stars.min_bounce %v exceeds max_bounce %v", c.Stars.MinBounce, c.Stars.MaxBounce))
	}
	if c.Stars.Points <= 0 {
		errs = append(errs, fmt.Errorf("stars.points must be positive, got %d", c.Stars.Points))
	}
	if c.Bombs.SplitX <= 0 || c.Bombs.MaxX <= c.Bombs.SplitX {
		errs = append(errs, fmt.Errorf("bombs need 0 < split_x < max_x, got %v and %v", c.Bombs.SplitX, c.Bombs.MaxX))
	}
	if c.Bombs.MaxVelocityX < 0 {
		errs = append(errs, fmt.Errorf("bombs.max_velocity_x must not be negative, got %d", c.Bombs.MaxVelocityX))
	}
	if c.Input.HoldMS <= 0 {
		errs = append(errs, fmt.Errorf("input.hold_ms must be positive, got %d", c.Input.HoldMS))
	}
	if c.Input.RepeatMS <= 0 {
		errs = append(errs, fmt.Errorf("input.repeat_ms must be positive, got %d", c.Input.RepeatMS))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
