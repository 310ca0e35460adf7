package core

import "time"

// Defaults for a standard game.
const (
	DefaultGridW          = 20
	DefaultGridH          = 20
	DefaultTickPeriod     = 130 * time.Millisecond
	DefaultScoreIncrement = 10
)

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	GridW          int           // Grid width in cells
	GridH          int           // Grid height in cells
	TickPeriod     time.Duration // Time between simulation ticks
	ScoreIncrement int           // Points per food eaten
	Seed           int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		GridW:          DefaultGridW,
		GridH:          DefaultGridH,
		TickPeriod:     DefaultTickPeriod,
		ScoreIncrement: DefaultScoreIncrement,
		Seed:           0, // 0 means use current time in platform layer
	}
}

// Grid returns the grid described by the config.
func (c RuntimeConfig) Grid() Grid {
	return NewGrid(c.GridW, c.GridH)
}
