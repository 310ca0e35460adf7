package snake

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// farFood keeps food in the top-left corner, away from the starting path.
func farFood() Option {
	return WithFoodPlacer(FixedPlacer(nil, core.Cell{X: 0, Y: 0}))
}

func TestInitialState(t *testing.T) {
	g := New(testConfig(1))

	want := []core.Cell{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	body := g.Body()
	if len(body) != len(want) {
		t.Fatalf("Expected %d cells, got %d", len(want), len(body))
	}
	for i := range want {
		if body[i] != want[i] {
			t.Errorf("Cell %d = %v, expected %v", i, body[i], want[i])
		}
	}

	if g.Heading() != HeadingRight {
		t.Errorf("Expected initial heading right, got %v", g.Heading())
	}
	if g.Score() != 0 {
		t.Errorf("Expected score 0, got %d", g.Score())
	}
	if g.Over() {
		t.Error("Game should not start in game over state")
	}

	food, ok := g.Food()
	if !ok {
		t.Fatal("Initial food should be placed")
	}
	if g.occupied(food) {
		t.Errorf("Food spawned on snake at %v", food)
	}
}

func TestTickMovesEveryCell(t *testing.T) {
	g := New(testConfig(2), farFood())
	before := g.Body()

	if out := g.Tick(); out != OutcomeMoved {
		t.Fatalf("Expected moved, got %v", out)
	}

	after := g.Body()
	if len(after) != len(before) {
		t.Fatalf("Length changed on a plain move: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i] != before[i].Add(1, 0) {
			t.Errorf("Cell %d = %v, expected %v", i, after[i], before[i].Add(1, 0))
		}
	}
}

func TestEatFood(t *testing.T) {
	cfg := testConfig(3)
	head := cfg.Grid().Center()
	g := New(cfg, WithFoodPlacer(FixedPlacer(RandomPlacer(rand.New(rand.NewSource(3))), head.Add(1, 0))))

	if food, _ := g.Food(); food != head.Add(1, 0) {
		t.Fatalf("Food should be forced in front of the head, got %v", food)
	}

	if out := g.Tick(); out != OutcomeAte {
		t.Fatalf("Expected ate, got %v", out)
	}
	if g.Score() != 10 {
		t.Errorf("Score should be 10 after eating, got %d", g.Score())
	}
	if len(g.Body()) != 4 {
		t.Errorf("Snake should grow to 4, got %d", len(g.Body()))
	}
	if g.Head() != head.Add(1, 0) {
		t.Errorf("Head should be on the former food cell, got %v", g.Head())
	}

	food, ok := g.Food()
	if !ok {
		t.Fatal("Food should be relocated after eating")
	}
	if g.occupied(food) {
		t.Errorf("Relocated food is on the snake at %v", food)
	}
}

func TestScoreIncrementFromConfig(t *testing.T) {
	cfg := testConfig(4)
	cfg.ScoreIncrement = 25
	head := cfg.Grid().Center()
	g := New(cfg, WithFoodPlacer(FixedPlacer(nil, head.Add(1, 0), core.Cell{X: 0, Y: 0})))

	g.Tick()
	if g.Score() != 25 {
		t.Errorf("Score should use configured increment, got %d", g.Score())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := New(testConfig(42), farFood())

	g.SetHeading(HeadingLeft)
	g.Tick()

	if g.Heading() != HeadingRight {
		t.Errorf("Reverse request should be ignored, heading is %v", g.Heading())
	}

	// Rejecting twice in a row changes nothing either
	g.SetHeading(HeadingLeft)
	g.SetHeading(HeadingLeft)
	g.Tick()
	if g.Heading() != HeadingRight {
		t.Errorf("Repeated reverse requests should be ignored, heading is %v", g.Heading())
	}
}

func TestReversalCheckedAgainstMovingHeading(t *testing.T) {
	g := New(testConfig(43), farFood())

	// Up is accepted as pending, Left still reverses the heading the snake
	// is actually moving in and must be dropped.
	g.SetHeading(HeadingUp)
	g.SetHeading(HeadingLeft)
	g.Tick()

	if g.Heading() != HeadingUp {
		t.Errorf("Expected heading up, got %v", g.Heading())
	}
}

func TestLastHeadingRequestWins(t *testing.T) {
	g := New(testConfig(44), farFood())
	start := g.Head()

	g.SetHeading(HeadingUp)
	g.SetHeading(HeadingDown)
	g.Tick()

	if g.Heading() != HeadingDown {
		t.Errorf("Expected heading down, got %v", g.Heading())
	}
	if g.Head() != start.Add(0, 1) {
		t.Errorf("Head should move down to %v, got %v", start.Add(0, 1), g.Head())
	}
}

func TestWallCollision(t *testing.T) {
	g := New(testConfig(5), farFood())

	// Head starts at x=10 on a 20-wide grid: nine moves reach x=19.
	for i := 0; i < 9; i++ {
		if out := g.Tick(); out != OutcomeMoved {
			t.Fatalf("Tick %d: expected moved, got %v", i, out)
		}
	}

	if out := g.Tick(); out != OutcomeCollidedWall {
		t.Fatalf("Expected wall collision, got %v", out)
	}
	if !g.Over() {
		t.Fatal("Game should be over after hitting wall")
	}

	snap := g.Snapshot()
	for i := 0; i < 3; i++ {
		if out := g.Tick(); out != OutcomeHalted {
			t.Errorf("Tick after game over should be halted, got %v", out)
		}
	}
	if g.Snapshot() != snap {
		t.Error("Ticks after game over must not change state")
	}
}

func TestWallCollisionEveryEdge(t *testing.T) {
	tests := []struct {
		name    string
		body    []core.Cell
		heading Heading
	}{
		{"top", []core.Cell{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}, HeadingUp},
		{"bottom", []core.Cell{{X: 5, Y: 19}, {X: 5, Y: 18}, {X: 5, Y: 17}}, HeadingDown},
		{"left", []core.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, HeadingLeft},
		{"right", []core.Cell{{X: 19, Y: 5}, {X: 18, Y: 5}, {X: 17, Y: 5}}, HeadingRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New(testConfig(6), farFood())
			g.body = tc.body
			g.heading = tc.heading
			g.pending = tc.heading

			if out := g.Tick(); out != OutcomeCollidedWall {
				t.Errorf("Expected wall collision, got %v", out)
			}
			if len(g.body) != 3 {
				t.Errorf("Body must not change on collision, got length %d", len(g.body))
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	g := New(testConfig(111), farFood())

	// Curled snake: moving right puts the head on (6, 5).
	g.body = []core.Cell{
		{X: 5, Y: 5},
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.heading = HeadingUp
	g.pending = HeadingUp
	g.SetHeading(HeadingRight)

	if out := g.Tick(); out != OutcomeCollidedSelf {
		t.Fatalf("Expected self collision, got %v", out)
	}
	if !g.Over() {
		t.Error("Game should be over after self collision")
	}
}

func TestEnteringVacatingTailIsCollision(t *testing.T) {
	g := New(testConfig(112), farFood())

	// 2x2 loop: the head's next cell is the current tail.
	g.body = []core.Cell{
		{X: 5, Y: 5},
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
	}
	g.heading = HeadingUp
	g.pending = HeadingRight

	if out := g.Tick(); out != OutcomeCollidedSelf {
		t.Errorf("Moving into the tail cell should collide, got %v", out)
	}
}

func TestSetHeadingIgnoredWhenOver(t *testing.T) {
	g := New(testConfig(7), farFood())
	g.over = true
	g.SetHeading(HeadingUp)

	if g.pending != HeadingRight {
		t.Errorf("SetHeading after game over should be ignored, pending is %v", g.pending)
	}
}

func TestReset(t *testing.T) {
	g := New(testConfig(8))
	initial := g.Body()

	for !g.Over() {
		g.Tick()
	}

	g.Reset()

	if g.Over() {
		t.Error("Reset should clear game over")
	}
	if g.Score() != 0 {
		t.Errorf("Reset should clear score, got %d", g.Score())
	}
	if g.Heading() != HeadingRight {
		t.Errorf("Reset should restore heading right, got %v", g.Heading())
	}
	body := g.Body()
	if len(body) != len(initial) {
		t.Fatalf("Reset body length %d, expected %d", len(body), len(initial))
	}
	for i := range initial {
		if body[i] != initial[i] {
			t.Errorf("Reset cell %d = %v, expected %v", i, body[i], initial[i])
		}
	}
	if _, ok := g.Food(); !ok {
		t.Error("Reset should place food")
	}
}

func TestFoodFillsGrid(t *testing.T) {
	cfg := testConfig(9)
	cfg.GridW = 4
	cfg.GridH = 1
	g := New(cfg)

	food, ok := g.Food()
	if !ok || food != (core.Cell{X: 3, Y: 0}) {
		t.Fatalf("Only free cell is (3, 0), got %v present=%v", food, ok)
	}

	if out := g.Tick(); out != OutcomeAte {
		t.Fatalf("Expected ate, got %v", out)
	}
	if _, ok := g.Food(); ok {
		t.Error("Food should be absent once the snake fills the grid")
	}
	if len(g.Body()) != cfg.Grid().Area() {
		t.Errorf("Snake should fill the grid, got length %d", len(g.Body()))
	}

	if out := g.Tick(); out != OutcomeCollidedWall {
		t.Errorf("Expected wall collision, got %v", out)
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := New(testConfig(12345))
	g2 := New(testConfig(12345))

	for i := 0; i < 100; i++ {
		switch i {
		case 3:
			g1.SetHeading(HeadingDown)
			g2.SetHeading(HeadingDown)
		case 8:
			g1.SetHeading(HeadingLeft)
			g2.SetHeading(HeadingLeft)
		}
		g1.Tick()
		g2.Tick()
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("Snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

// TestInvariantsUnderRandomPlay drives many games with random input and
// checks the body and food invariants after every tick.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	cfg := testConfig(2024)
	cfg.GridW = 8
	cfg.GridH = 6
	g := New(cfg)
	input := rand.New(rand.NewSource(7))
	headings := []Heading{HeadingUp, HeadingDown, HeadingLeft, HeadingRight}

	games := 0
	for i := 0; i < 5000; i++ {
		if g.Over() {
			games++
			g.Reset()
		}
		if input.Intn(3) == 0 {
			g.SetHeading(headings[input.Intn(len(headings))])
		}

		prevLen := len(g.Body())
		prevScore := g.Score()
		out := g.Tick()

		body := g.Body()
		switch out {
		case OutcomeAte:
			if len(body) != prevLen+1 {
				t.Fatalf("tick %d: ate but length %d -> %d", i, prevLen, len(body))
			}
			if g.Score() != prevScore+cfg.ScoreIncrement {
				t.Fatalf("tick %d: ate but score %d -> %d", i, prevScore, g.Score())
			}
		default:
			if len(body) != prevLen {
				t.Fatalf("tick %d: %v changed length %d -> %d", i, out, prevLen, len(body))
			}
			if g.Score() != prevScore {
				t.Fatalf("tick %d: %v changed score", i, out)
			}
		}

		if len(body) > cfg.Grid().Area() {
			t.Fatalf("tick %d: length %d exceeds grid", i, len(body))
		}

		seen := make(map[core.Cell]bool, len(body))
		for _, c := range body {
			if !cfg.Grid().Contains(c) {
				t.Fatalf("tick %d: cell %v outside grid", i, c)
			}
			if seen[c] {
				t.Fatalf("tick %d: duplicate cell %v", i, c)
			}
			seen[c] = true
		}

		if food, ok := g.Food(); ok && seen[food] {
			t.Fatalf("tick %d: food %v on snake", i, food)
		}
	}

	if games == 0 {
		t.Error("Random play should end at least one game")
	}
}

func TestHeadingOpposite(t *testing.T) {
	tests := []struct {
		h, want Heading
	}{
		{HeadingUp, HeadingDown},
		{HeadingDown, HeadingUp},
		{HeadingLeft, HeadingRight},
		{HeadingRight, HeadingLeft},
	}
	for _, tc := range tests {
		if got := tc.h.Opposite(); got != tc.want {
			t.Errorf("%v.Opposite() = %v, expected %v", tc.h, got, tc.want)
		}
		dx, dy := tc.h.Delta()
		odx, ody := tc.want.Delta()
		if dx != -odx || dy != -ody {
			t.Errorf("%v and %v deltas should cancel", tc.h, tc.want)
		}
	}
}

func TestOutcomeCollided(t *testing.T) {
	tests := []struct {
		o    Outcome
		want bool
	}{
		{OutcomeMoved, false},
		{OutcomeAte, false},
		{OutcomeCollidedWall, true},
		{OutcomeCollidedSelf, true},
		{OutcomeHalted, false},
	}
	for _, tc := range tests {
		if got := tc.o.Collided(); got != tc.want {
			t.Errorf("%v.Collided() = %v, expected %v", tc.o, got, tc.want)
		}
	}
}

func TestRandomPlacer(t *testing.T) {
	grid := core.NewGrid(3, 3)
	p := RandomPlacer(rand.New(rand.NewSource(1)))
	free := core.Cell{X: 2, Y: 1}

	c, ok := p.Place(grid, func(c core.Cell) bool { return c != free })
	if !ok || c != free {
		t.Errorf("Place() = %v, %v; expected %v, true", c, ok, free)
	}

	if _, ok := p.Place(grid, func(core.Cell) bool { return true }); ok {
		t.Error("Place() on a full grid should report no cell")
	}
}

func TestFixedPlacerSkipsOccupied(t *testing.T) {
	grid := core.NewGrid(5, 5)
	blocked := core.Cell{X: 1, Y: 1}
	p := FixedPlacer(nil, blocked, core.Cell{X: 9, Y: 9}, core.Cell{X: 2, Y: 2})

	c, ok := p.Place(grid, func(c core.Cell) bool { return c == blocked })
	if !ok || c != (core.Cell{X: 2, Y: 2}) {
		t.Errorf("Place() = %v, %v; expected {2 2}, true", c, ok)
	}
	if _, ok := p.Place(grid, func(core.Cell) bool { return false }); ok {
		t.Error("Exhausted placer without fallback should report no cell")
	}
}

func TestRender(t *testing.T) {
	g := New(testConfig(444), farFood())
	w, h := ScreenSize(g.Grid())
	screen := core.NewScreen(w, h)

	g.Frame().Render(screen, 120)

	content := screen.String()
	if !strings.Contains(content, "Score: 0") {
		t.Error("HUD should contain the score")
	}
	if !strings.Contains(content, "Best today: 120") {
		t.Error("HUD should contain today's best")
	}

	head := g.Head()
	if r := screen.Get(1+head.X*cellWidth, hudHeight+1+head.Y); r != '█' {
		t.Errorf("Head should be drawn at its cell, got %q", r)
	}
	if r := screen.Get(1, hudHeight+1); r != '●' {
		t.Errorf("Food should be drawn at (0, 0), got %q", r)
	}
	if strings.Contains(content, "Game Over") {
		t.Error("Running game should not show the game over overlay")
	}

	for !g.Over() {
		g.Tick()
	}
	g.Frame().Render(screen, 120)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("Finished game should show the game over overlay")
	}
	for _, line := range []string{"| Press R to restart |", "+--------------------+"} {
		if !strings.Contains(screen.String(), line) {
			t.Errorf("Overlay should contain %q:\n%s", line, screen.String())
		}
	}
}
