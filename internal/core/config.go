package core

// RuntimeConfig is handed to scenes when they are created.
type RuntimeConfig struct {
	ScreenW  int   // Viewport width in cells
	ScreenH  int   // Viewport height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 ticks.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// DT returns the fixed simulation step in seconds.
func (c RuntimeConfig) DT() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the status the platform reads after each tick.
type GameState struct {
	Score     int
	HighScore int
	GameOver  bool
	Paused    bool
}

// World units per terminal cell. Sprites are authored in cells and their
// physics bodies are sized in world units from these factors.
const (
	PixelsPerCol = 8
	PixelsPerRow = 24
)
