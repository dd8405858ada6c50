package entropy

import (
	"fmt"

	platformcore "github.com/vovakirdan/entropy-reduction/internal/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/levels"
)

const (
	cellW      = 4 // Width of each board cell in characters
	cellH      = 2 // Height of each board cell in lines
	sidePanelW = 22
)

// tileGlyphs maps tile types to their board glyph.
var tileGlyphs = map[core.TileType]rune{
	core.TileEmber: '◆',
	core.TileDrop:  '●',
	core.TileLeaf:  '▲',
	core.TileBolt:  '■',
}

// tileColors maps tile types to their display color.
var tileColors = map[core.TileType]platformcore.Color{
	core.TileEmber: platformcore.ColorBrightRed,
	core.TileDrop:  platformcore.ColorBrightBlue,
	core.TileLeaf:  platformcore.ColorBrightGreen,
	core.TileBolt:  platformcore.ColorBrightYellow,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.gridSize*cellW + 1
	boardH := g.gridSize*cellH + 1

	boardX := (g.screenW - boardW - sidePanelW) / 2
	if boardX < 1 {
		boardX = 1
	}
	boardY := 2

	g.renderBoard(dst, boardX, boardY)
	g.renderPanel(dst, boardX+boardW+2, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	dst.DrawTextCentered(g.screenH/2, "Window too small")
	dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
}

// renderBoard draws the grid and tiles.
func (g *Game) renderBoard(dst *platformcore.Screen, boardX, boardY int) {
	title := g.Title()
	dst.DrawText(boardX, 0, title)

	// Grid lines
	for y := 0; y <= g.gridSize; y++ {
		dst.DrawHLine(boardX, boardY+y*cellH, g.gridSize*cellW+1, '·')
	}
	for x := 0; x <= g.gridSize; x++ {
		dst.DrawVLine(boardX+x*cellW, boardY, g.gridSize*cellH+1, '·')
	}

	// Tiles
	for _, t := range g.tiles {
		px := boardX + t.X*cellW + cellW/2
		py := boardY + t.Y*cellH + cellH/2
		dst.SetCell(px, py, tileGlyphs[t.Type], tileColors[t.Type])
	}

	// Hint highlight
	if g.hintA != nil && g.hintB != nil {
		g.markCell(dst, boardX, boardY, *g.hintA, '?', platformcore.ColorBrightCyan)
		g.markCell(dst, boardX, boardY, *g.hintB, '?', platformcore.ColorBrightCyan)
	}

	// Selection
	if g.selected != nil {
		g.outlineCell(dst, boardX, boardY, *g.selected, platformcore.ColorBrightMagenta)
	}

	// Cursor
	g.outlineCell(dst, boardX, boardY, g.cursor, platformcore.ColorBrightWhite)
}

// markCell places a marker rune in the corner of a cell.
func (g *Game) markCell(dst *platformcore.Screen, boardX, boardY int, c core.Coord, r rune, col platformcore.Color) {
	dst.SetCell(boardX+c.X*cellW+1, boardY+c.Y*cellH+1, r, col)
}

// outlineCell draws brackets around a cell.
func (g *Game) outlineCell(dst *platformcore.Screen, boardX, boardY int, c core.Coord, col platformcore.Color) {
	px := boardX + c.X*cellW
	py := boardY + c.Y*cellH + cellH/2
	dst.SetCell(px, py, '[', col)
	dst.SetCell(px+cellW, py, ']', col)
}

// renderPanel draws score, level goal and combo state beside the board.
func (g *Game) renderPanel(dst *platformcore.Screen, x, y int) {
	dst.DrawText(x, y, fmt.Sprintf("Score %d", g.score))

	row := y + 2
	if g.level != nil {
		dst.DrawText(x, row, fmt.Sprintf("Level %d/%d", g.levelIndex+1, len(g.allLevels)))
		dst.DrawText(x, row+1, g.level.Name)
		dst.DrawText(x, row+2, goalLine(g.level.Goal))
		dst.DrawText(x, row+3, fmt.Sprintf("Progress %d%%", levels.GoalProgress(g.level.Goal, g.stats)))
		row += 5
	} else {
		dst.DrawText(x, row, "Free play")
		row += 2
	}

	if combo := g.combo.Count(); combo > 1 {
		dst.DrawTextColor(x, row, fmt.Sprintf("Combo x%d", combo), platformcore.ColorBrightYellow)
	}
	row += 2

	if g.message != "" {
		color := platformcore.ColorBrightCyan
		if g.message == "CRITICAL!" {
			color = platformcore.ColorBrightMagenta
		}
		dst.DrawTextColor(x, row, g.message, color)
	}

	controls := "[←↑↓→] move  [space] select"
	if g.mode == ModeZen {
		controls = "[←↑↓→] move  [space] clear"
	}
	dst.DrawText(1, g.screenH-1, controls+"  [h] hint  [p] pause  [q] quit")
}

// goalLine formats a goal for the side panel.
func goalLine(goal levels.Goal) string {
	switch goal.Type {
	case levels.GoalClearTiles:
		return fmt.Sprintf("Clear %d tiles", goal.Amount)
	case levels.GoalReachScore:
		return fmt.Sprintf("Score %d points", goal.Amount)
	case levels.GoalChainLength:
		return fmt.Sprintf("Chain %d clears", goal.Amount)
	case levels.GoalMaxCombo:
		return fmt.Sprintf("Combo x%d", goal.Amount)
	case levels.GoalClearTimed:
		return fmt.Sprintf("Clear %d in %.0fs", goal.Amount, goal.Seconds)
	case levels.GoalSurvive:
		return fmt.Sprintf("Survive %.0fs", goal.Seconds)
	case levels.GoalEntropyBelow:
		return fmt.Sprintf("Entropy under %.0f%%", goal.Threshold*100)
	default:
		return ""
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.levelCleared:
		stars := ""
		for i := 0; i < 3; i++ {
			if i < g.lastStars {
				stars += "★"
			} else {
				stars += "☆"
			}
		}
		g.drawOverlay(dst, centerX, centerY, "LEVEL CLEAR", stars)
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "ALL LEVELS CLEAR!", fmt.Sprintf("Final score: %d", g.score), "Press R to restart")
	case g.gameOver:
		reason := g.message
		if reason == "" {
			reason = fmt.Sprintf("Score: %d", g.score)
		}
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", reason, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	dst.DrawRect(platformcore.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(platformcore.NewRect(boxX, boxY, boxW, boxH))

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrow keys/WASD: Move | Space: Select | H: Hint | P: Pause | R: Restart | Q: Quit"
}
