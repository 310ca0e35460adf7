// Package snake implements the snake game-state machine: tick-driven
// movement, collision detection, food placement and score bookkeeping.
// It has no knowledge of timers, terminals or storage.
package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Heading represents the snake's movement direction.
type Heading int

const (
	HeadingRight Heading = iota
	HeadingDown
	HeadingLeft
	HeadingUp
)

// Opposite returns the reverse heading.
func (h Heading) Opposite() Heading {
	switch h {
	case HeadingUp:
		return HeadingDown
	case HeadingDown:
		return HeadingUp
	case HeadingLeft:
		return HeadingRight
	default:
		return HeadingLeft
	}
}

// Delta returns the one-cell offset for the heading.
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case HeadingUp:
		return 0, -1
	case HeadingDown:
		return 0, 1
	case HeadingLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

func (h Heading) String() string {
	switch h {
	case HeadingUp:
		return "up"
	case HeadingDown:
		return "down"
	case HeadingLeft:
		return "left"
	case HeadingRight:
		return "right"
	default:
		return "unknown"
	}
}

// Outcome classifies the result of a single tick.
type Outcome int

const (
	OutcomeMoved Outcome = iota
	OutcomeAte
	OutcomeCollidedWall
	OutcomeCollidedSelf
	OutcomeHalted
)

// Collided reports whether the tick ended the game.
func (o Outcome) Collided() bool {
	return o == OutcomeCollidedWall || o == OutcomeCollidedSelf
}

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeCollidedWall:
		return "collided_wall"
	case OutcomeCollidedSelf:
		return "collided_self"
	case OutcomeHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// initialLength is the number of cells of a freshly spawned snake.
const initialLength = 3

// Game is the authoritative snake model. It is not safe for concurrent use;
// callers serialize Tick, SetHeading and Reset.
type Game struct {
	grid      core.Grid
	increment int
	rng       *rand.Rand
	placer    FoodPlacer

	tick    uint64
	body    []core.Cell // Head at index 0
	heading Heading     // Heading used by the last move
	pending Heading     // Heading applied on the next tick
	food    core.Cell
	hasFood bool
	score   int
	over    bool
	last    Outcome
}

// Option configures a Game.
type Option func(*Game)

// WithFoodPlacer replaces the random food placement strategy.
func WithFoodPlacer(p FoodPlacer) Option {
	return func(g *Game) {
		g.placer = p
	}
}

// New creates a game on the configured grid and initializes it.
// Grid dimensions are expected to be validated by the caller.
func New(cfg core.RuntimeConfig, opts ...Option) *Game {
	g := &Game{
		grid:      cfg.Grid(),
		increment: cfg.ScoreIncrement,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
	if g.increment <= 0 {
		g.increment = core.DefaultScoreIncrement
	}
	g.placer = RandomPlacer(g.rng)
	for _, opt := range opts {
		opt(g)
	}
	g.init()
	return g
}

// init places a three-cell snake centered on the grid heading right and
// spawns the first food.
func (g *Game) init() {
	center := g.grid.Center()
	g.body = make([]core.Cell, 0, initialLength)
	for i := range initialLength {
		g.body = append(g.body, center.Add(-i, 0))
	}
	g.heading = HeadingRight
	g.pending = HeadingRight
	g.score = 0
	g.over = false
	g.tick = 0
	g.last = OutcomeMoved
	g.placeFood()
}

// Reset restarts the game on the same grid. Food is reseeded from the
// game's RNG so consecutive games differ.
func (g *Game) Reset() {
	g.init()
}

// SetHeading requests a heading for the next tick. Requests reversing the
// current heading are dropped, as are requests after game over. Only the
// last accepted request before a tick takes effect.
func (g *Game) SetHeading(h Heading) {
	if g.over {
		return
	}
	if h == g.heading.Opposite() {
		return
	}
	g.pending = h
}

// Tick advances the simulation by one cell.
func (g *Game) Tick() Outcome {
	if g.over {
		return OutcomeHalted
	}
	g.tick++

	g.heading = g.pending
	dx, dy := g.heading.Delta()
	head := g.body[0].Add(dx, dy)

	if !g.grid.Contains(head) {
		return g.end(OutcomeCollidedWall)
	}

	// The tail has not moved yet, so entering the cell it is about to
	// vacate still counts as a collision.
	if g.occupied(head) {
		return g.end(OutcomeCollidedSelf)
	}

	g.body = append(g.body, core.Cell{})
	copy(g.body[1:], g.body)
	g.body[0] = head

	if g.hasFood && head == g.food {
		g.score += g.increment
		g.placeFood()
		g.last = OutcomeAte
		return OutcomeAte
	}

	g.body = g.body[:len(g.body)-1]
	g.last = OutcomeMoved
	return OutcomeMoved
}

func (g *Game) end(o Outcome) Outcome {
	g.over = true
	g.last = o
	return o
}

// occupied checks if the snake covers the given cell.
func (g *Game) occupied(c core.Cell) bool {
	for _, seg := range g.body {
		if seg == c {
			return true
		}
	}
	return false
}

// placeFood relocates food to a free cell, or removes it if none is left.
func (g *Game) placeFood() {
	g.food, g.hasFood = g.placer.Place(g.grid, g.occupied)
}

// Grid returns the playfield dimensions.
func (g *Game) Grid() core.Grid {
	return g.grid
}

// Body returns a copy of the snake cells, head first.
func (g *Game) Body() []core.Cell {
	out := make([]core.Cell, len(g.body))
	copy(out, g.body)
	return out
}

// Head returns the head cell.
func (g *Game) Head() core.Cell {
	return g.body[0]
}

// Heading returns the heading of the last move.
func (g *Game) Heading() Heading {
	return g.heading
}

// Food returns the food cell and whether food is present.
func (g *Game) Food() (core.Cell, bool) {
	return g.food, g.hasFood
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d\n", g.tick, g.score)
	fmt.Fprintf(&b, "Snake len: %d, Heading: %s\n", len(g.body), g.heading)
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d) present=%v\n", g.body[0].X, g.body[0].Y, g.food.X, g.food.Y, g.hasFood)
	fmt.Fprintf(&b, "GameOver: %v (%s)\n", g.over, g.last)
	return b.String()
}
