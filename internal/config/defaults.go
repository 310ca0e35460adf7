package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hardcoded snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:  core.DefaultGridW,
			Height: core.DefaultGridH,
		},
		TickPeriod:     Duration(core.DefaultTickPeriod),
		ScoreIncrement: core.DefaultScoreIncrement,
		HighScore: HighScoreConfig{
			KeyPrefix: session.DefaultKeyPrefix,
		},
	}
}

// DefaultDBPath is the SQLite database used when --db is not given.
const DefaultDBPath = "~/.snake/scores.db"

// DefaultLogFile receives logs while the local TUI owns the terminal.
const DefaultLogFile = "~/.snake/snake.log"
