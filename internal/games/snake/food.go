package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// FoodPlacer chooses the cell for a new food item. It returns false when
// no free cell exists.
type FoodPlacer interface {
	Place(grid core.Grid, occupied func(core.Cell) bool) (core.Cell, bool)
}

// PlacerFunc adapts a function to the FoodPlacer interface.
type PlacerFunc func(grid core.Grid, occupied func(core.Cell) bool) (core.Cell, bool)

// Place calls f.
func (f PlacerFunc) Place(grid core.Grid, occupied func(core.Cell) bool) (core.Cell, bool) {
	return f(grid, occupied)
}

// placementAttemptsPerCell bounds rejection sampling before falling back to
// a scan of free cells.
const placementAttemptsPerCell = 4

type randomPlacer struct {
	rng *rand.Rand
}

// RandomPlacer picks uniformly random cells until one is free. Sampling is
// bounded; once the budget is spent it picks among the remaining free cells,
// which only matters when the snake nearly fills the grid.
func RandomPlacer(rng *rand.Rand) FoodPlacer {
	return randomPlacer{rng: rng}
}

func (p randomPlacer) Place(grid core.Grid, occupied func(core.Cell) bool) (core.Cell, bool) {
	area := grid.Area()
	if area <= 0 {
		return core.Cell{}, false
	}

	for range area * placementAttemptsPerCell {
		c := core.Cell{X: p.rng.Intn(grid.W), Y: p.rng.Intn(grid.H)}
		if !occupied(c) {
			return c, true
		}
	}

	var free []core.Cell
	for i := range area {
		if c := grid.Cell(i); !occupied(c) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return core.Cell{}, false
	}
	return free[p.rng.Intn(len(free))], true
}

// FixedPlacer places food at the given cells in order, skipping occupied
// ones, and falls back to the next placer when the list is exhausted.
// Replays and tests use it to script food positions.
func FixedPlacer(next FoodPlacer, cells ...core.Cell) FoodPlacer {
	queue := append([]core.Cell(nil), cells...)
	return PlacerFunc(func(grid core.Grid, occupied func(core.Cell) bool) (core.Cell, bool) {
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if grid.Contains(c) && !occupied(c) {
				return c, true
			}
		}
		if next == nil {
			return core.Cell{}, false
		}
		return next.Place(grid, occupied)
	})
}
