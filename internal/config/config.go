// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalidGrid is returned when the grid cannot hold the starting snake.
var ErrInvalidGrid = errors.New("config: invalid grid")

// Minimum grid size: the three-cell starting snake must fit left of center.
const (
	MinGridWidth  = 4
	MinGridHeight = 1
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid           GridConfig      `yaml:"grid"`
	TickPeriod     Duration        `yaml:"tick_period"`
	ScoreIncrement int             `yaml:"score_increment"`
	HighScore      HighScoreConfig `yaml:"high_score"`
}

// GridConfig defines the playfield size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// HighScoreConfig defines how daily high scores are keyed.
type HighScoreConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Duration is a time.Duration read from YAML either as a Go duration
// string ("130ms") or as a bare number of milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: line %d: duration must be a scalar", value.Line)
	}
	if ms, err := strconv.Atoi(value.Value); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("config: line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Validate checks that the configuration describes a playable game.
func (c SnakeConfig) Validate() error {
	if c.Grid.Width < MinGridWidth || c.Grid.Height < MinGridHeight {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrInvalidGrid, c.Grid.Width, c.Grid.Height, MinGridWidth, MinGridHeight)
	}
	if c.TickPeriod <= 0 {
		return fmt.Errorf("config: tick_period must be positive, got %s", c.TickPeriod.Std())
	}
	if c.ScoreIncrement <= 0 {
		return fmt.Errorf("config: score_increment must be positive, got %d", c.ScoreIncrement)
	}
	if c.HighScore.KeyPrefix == "" {
		return errors.New("config: high_score.key_prefix must not be empty")
	}
	return nil
}

// Runtime converts the configuration into the game's runtime parameters.
func (c SnakeConfig) Runtime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		GridW:          c.Grid.Width,
		GridH:          c.Grid.Height,
		TickPeriod:     c.TickPeriod.Std(),
		ScoreIncrement: c.ScoreIncrement,
		Seed:           seed,
	}
}
