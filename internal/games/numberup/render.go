package numberup

import (
	"fmt"
	"math"
	"strconv"

	platformcore "github.com/vovakirdan/numberup/internal/core"
	"github.com/vovakirdan/numberup/internal/games/numberup/core"
)

const (
	cellWidth  = 5 // Including the left border
	cellHeight = 2 // Including the top border
	hudHeight  = 3 // Title, score line, next tile line
)

func boardWidth(n int) int {
	return n*cellWidth + 1
}

func boardHeight(n int) int {
	return n*cellHeight + 1
}

// tileColor picks a color per value; values past the palette share the last color.
func tileColor(v int) platformcore.Color {
	palette := []platformcore.Color{
		platformcore.ColorWhite,
		platformcore.ColorCyan,
		platformcore.ColorGreen,
		platformcore.ColorYellow,
		platformcore.ColorOrange,
		platformcore.ColorRed,
		platformcore.ColorMagenta,
		platformcore.ColorBrightBlue,
		platformcore.ColorBrightYellow,
	}
	if v < 1 {
		return platformcore.ColorDefault
	}
	if v > len(palette) {
		return platformcore.ColorBrightWhite
	}
	return palette[v-1]
}

// layout holds the screen positions of the board.
type layout struct {
	n      int
	boardX int
	boardY int
}

// rowY returns the screen y of a grid row's text line; row N is the hover slot.
func (l layout) rowY(row int) int {
	return l.boardY + 1 + (l.n-1-row)*cellHeight
}

// colX returns the screen x of a column's interior.
func (l layout) colX(col int) int {
	return l.boardX + col*cellWidth + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.size()
	bw := boardWidth(n)
	l := layout{
		n:      n,
		boardX: (g.screenW - bw) / 2,
		boardY: hudHeight + 2, // Cursor marker and hover slot sit above the board
	}

	g.renderHUD(dst, l.boardX, bw)
	g.renderBoard(dst, l)
	g.renderDropZone(dst, l)

	controls := g.Controls()
	dst.DrawTextColored((g.screenW-len(controls))/2, l.boardY+boardHeight(n)+1, controls, platformcore.ColorGray)

	g.renderOverlays(dst, l, bw)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws title, score, best tile and the next tile.
func (g *Game) renderHUD(dst *platformcore.Screen, boardX, bw int) {
	title := "N U M B E R U P"
	dst.DrawTextColored(boardX+(bw-len(title))/2, 0, title, platformcore.ColorBrightCyan)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.engine.Score()))

	best := fmt.Sprintf("Best tile: %d", g.engine.HighestUnlocked())
	dst.DrawText(max(boardX, boardX+bw-len(best)), 1, best)

	next := g.engine.NextTile()
	label := "Next: "
	x := boardX + (bw-len(label)-3)/2
	dst.DrawText(x, 2, label)
	dst.DrawTextColored(x+len(label), 2, "["+strconv.Itoa(next)+"]", tileColor(next))
}

// renderBoard draws the grid lines and the settled tiles.
func (g *Game) renderBoard(dst *platformcore.Screen, l layout) {
	n := l.n
	frame := platformcore.ColorGray
	if g.anim.phase == phaseClear && g.tick%6 < 3 {
		frame = platformcore.ColorBrightYellow
	}

	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			px := l.boardX + x*cellWidth
			py := l.boardY + y*cellHeight
			dst.SetColored(px, py, junction(x, y, n), frame)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', frame)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', frame)
				}
			}
		}
	}

	grid := g.engine.Grid()
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			v := grid.At(col, row)
			if v == core.Empty {
				continue
			}
			color := tileColor(v)
			text := strconv.Itoa(v)
			switch {
			case g.anim.phase == phaseClear:
				text = "*"
				if (g.tick/3+uint64(col+row))%2 == 0 {
					color = platformcore.ColorBrightWhite
				}
			default:
				if _, ok := g.anim.merging(col, row); ok && g.tick%4 < 2 {
					color = platformcore.ColorBrightWhite
					text = "+" + text
				}
			}
			drawTile(dst, l.colX(col), l.rowY(row), text, color)
		}
	}
}

// junction returns the box-drawing rune at grid intersection (x, y).
func junction(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

// drawTile centers text inside a cell interior.
func drawTile(dst *platformcore.Screen, x, y int, text string, color platformcore.Color) {
	pad := max(0, (cellWidth-1-len(text))/2)
	dst.DrawTextColored(x+pad, y, text, color)
}

// renderDropZone draws the column cursor, the hovering next tile, a falling
// tile and the overflow cell.
func (g *Game) renderDropZone(dst *platformcore.Screen, l layout) {
	markerY := l.rowY(l.n) - 1
	dst.DrawTextColored(l.colX(g.cursor)+1, markerY, "▼", platformcore.ColorBrightWhite)

	switch {
	case g.anim.phase == phaseDrop:
		p := g.anim.placement
		row := g.anim.dropRow(l.n)
		y := l.boardY + 1 + int(math.Round((float64(l.n-1)-row)*cellHeight))
		text := strconv.Itoa(p.Value)
		if p.IsOverflow {
			text = "!" + text
		}
		drawTile(dst, l.colX(p.Column), y, text, tileColor(p.Value))

	case g.engine.State() == core.StateAwaitingOverflowResolution:
		if ov := g.engine.PendingOverflow(); ov != nil {
			drawTile(dst, l.colX(ov.Col), l.rowY(l.n), "!"+strconv.Itoa(ov.Value), platformcore.ColorBrightRed)
		}

	case g.engine.State() == core.StateIdle:
		next := g.engine.NextTile()
		color := platformcore.ColorGray
		if g.engine.Grid().LowestEmptyRow(g.cursor) < 0 {
			// Dropping here creates an overflow
			color = platformcore.ColorRed
		}
		drawTile(dst, l.colX(g.cursor), l.rowY(l.n), strconv.Itoa(next), color)
	}
}

// renderOverlays draws pause, help, clear and game over boxes.
func (g *Game) renderOverlays(dst *platformcore.Screen, l layout, bw int) {
	cx := l.boardX + bw/2
	cy := l.boardY + boardHeight(l.n)/2

	switch {
	case g.showHelp:
		g.drawOverlay(dst, cx, cy,
			"HOW TO PLAY",
			"",
			"Drop tiles into columns.",
			fmt.Sprintf("%d+ touching equal tiles merge", g.cfg.Grid.MinMatch),
			"into one tile worth one more.",
			fmt.Sprintf("Merging %ds clears the board: +%d", g.cfg.Special.ClearValue, g.cfg.Special.ClearBonus),
			"A full column spills one tile above it;",
			"it must merge or the game ends.",
			"",
			"Press H to close",
		)
	case g.paused:
		g.drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case g.engine.IsGameOver():
		reason := "No room left"
		if g.engine.GameOverReason() == core.ReasonOverflow {
			reason = "Overflow tile did not merge"
		}
		g.drawOverlay(dst, cx, cy,
			"GAME OVER",
			reason,
			fmt.Sprintf("Score: %d  Best tile: %d", g.engine.Score(), g.engine.HighestUnlocked()),
			"Press R to restart",
		)
	case g.anim.phase == phaseClear:
		g.drawOverlay(dst, cx, cy, "CLEAR!", fmt.Sprintf("+%d", g.anim.bonus))
	}
}

// drawOverlay draws a centered box with the given lines.
func (g *Game) drawOverlay(dst *platformcore.Screen, cx, cy int, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := platformcore.Rect{W: width + 4, H: len(lines) + 2}
	box.X = cx - box.W/2
	box.Y = cy - box.H/2

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBoxColored(box, platformcore.ColorBrightWhite)
	for i, line := range lines {
		dst.DrawText(cx-len(line)/2, box.Y+1+i, line)
	}
}
