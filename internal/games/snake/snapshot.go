package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateRunning GameStateType = "running"
	StateOver    GameStateType = "over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Score    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Heading
	FoodX    int
	FoodY    int
	HasFood  bool
	State    GameStateType
	Last     Outcome
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StateRunning
	if g.over {
		state = StateOver
	}

	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		SnakeLen: len(g.body),
		HeadX:    g.body[0].X,
		HeadY:    g.body[0].Y,
		Dir:      g.heading,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		HasFood:  g.hasFood,
		State:    state,
		Last:     g.last,
	}
}

// Frame is the immutable view of the game handed to renderers once per tick.
type Frame struct {
	Grid    core.Grid
	Snake   []core.Cell // Head first
	Food    core.Cell
	HasFood bool
	Score   int
	Over    bool
	Outcome Outcome
}

// Frame returns a copy of the state needed to draw the game.
func (g *Game) Frame() Frame {
	return Frame{
		Grid:    g.grid,
		Snake:   g.Body(),
		Food:    g.food,
		HasFood: g.hasFood,
		Score:   g.score,
		Over:    g.over,
		Outcome: g.last,
	}
}
