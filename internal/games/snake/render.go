package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	cellWidth = 2 // Screen columns per grid cell, keeps cells roughly square
	hudHeight = 2 // Status line plus separator
)

// ScreenSize returns the screen buffer size needed to draw the grid.
func ScreenSize(g core.Grid) (w, h int) {
	return g.W*cellWidth + 2, g.H + 2 + hudHeight
}

// Render draws the frame into dst: HUD, border, snake, food and the game
// over overlay. best is today's high score as known by the caller.
func (f Frame) Render(dst *core.Screen, best int) {
	dst.Clear()

	f.renderHUD(dst, best)

	w, h := ScreenSize(f.Grid)
	dst.DrawBox(core.NewRect(0, hudHeight, w, h-hudHeight), core.ColorGray)

	if f.HasFood {
		f.drawCell(dst, f.Food, '●', ' ', core.ColorRed)
	}

	for i := len(f.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			f.drawCell(dst, f.Snake[i], '█', '█', core.ColorBrightGreen)
		} else {
			f.drawCell(dst, f.Snake[i], '▓', '▓', core.ColorGreen)
		}
	}

	if f.Over {
		reason := "You hit the wall"
		if f.Outcome == OutcomeCollidedSelf {
			reason = "You bit yourself"
		}
		renderOverlay(dst, w, h, "Game Over", reason, "Press R to restart")
	}
}

// renderHUD draws the top status bar.
func (f Frame) renderHUD(dst *core.Screen, best int) {
	hud := fmt.Sprintf(" Score: %d  Best today: %d", f.Score, best)
	dst.DrawText(0, 0, hud, core.ColorBrightWhite)

	w, _ := ScreenSize(f.Grid)
	for x := range w {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// drawCell maps a grid cell to its two screen columns inside the border.
func (f Frame) drawCell(dst *core.Screen, c core.Cell, left, right rune, color core.Color) {
	sx := 1 + c.X*cellWidth
	sy := hudHeight + 1 + c.Y
	dst.SetColored(sx, sy, left, color)
	dst.SetColored(sx+1, sy, right, color)
}

// renderOverlay draws a box with the given lines, centered on the board.
func renderOverlay(dst *core.Screen, w, h int, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	box := core.NewRect((w-maxLen-4)/2, 0, maxLen+4, len(lines)+2)
	box.Y = hudHeight + (h-hudHeight-box.H)/2

	dst.DrawRect(box, ' ')
	for x := box.X; x < box.Right(); x++ {
		dst.SetColored(x, box.Y, '-', core.ColorYellow)
		dst.SetColored(x, box.Bottom()-1, '-', core.ColorYellow)
	}
	for y := box.Y; y < box.Bottom(); y++ {
		dst.SetColored(box.X, y, '|', core.ColorYellow)
		dst.SetColored(box.Right()-1, y, '|', core.ColorYellow)
	}
	for _, c := range [][2]int{{box.X, box.Y}, {box.Right() - 1, box.Y}, {box.X, box.Bottom() - 1}, {box.Right() - 1, box.Bottom() - 1}} {
		dst.SetColored(c[0], c[1], '+', core.ColorYellow)
	}

	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l, core.ColorBrightWhite)
	}
}
