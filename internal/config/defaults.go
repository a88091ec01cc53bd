package config

import "embed"

//go:embed defaults/stardrop.yaml
var defaultYAML []byte

//go:embed defaults/levels/*.yaml
var defaultLevels embed.FS

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Level:   "meadow",
		Physics: Physics{Gravity: 300},
		Player: Player{
			Speed:        160,
			JumpVelocity: 330,
			Bounce:       0.2,
		},
		Stars: Stars{
			Repeat:    11,
			StartX:    12,
			StartY:    0,
			StepX:     70,
			MinBounce: 0.4,
			MaxBounce: 0.8,
			Points:    10,
		},
		Bombs: Bombs{
			SplitX:       400,
			MaxX:         800,
			SpawnY:       16,
			MaxVelocityX: 200,
			VelocityY:    20,
			Bounce:       1,
		},
		Input: Input{HoldMS: 600, RepeatMS: 100},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
