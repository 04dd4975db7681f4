package blockfall

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
)

// Visual characters for rendering
const (
	BlockChar = '█'
	FlashChar = '▓'
	EmptyChar = '·'
)

const (
	cellW     = 2  // screen columns per board cell
	panelW    = 20 // side panel width
	panelGap  = 2
	previewW  = 4*cellW + 2
	previewH  = 4
	flashRate = 4 // ticks per flash phase
)

var kindColors = [engine.KindCount]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindO: core.ColorYellow,
	engine.KindT: core.ColorMagenta,
	engine.KindS: core.ColorGreen,
	engine.KindZ: core.ColorRed,
	engine.KindJ: core.ColorBlue,
	engine.KindL: core.ColorOrange,
}

func kindColor(k engine.Kind) core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return kindColors[k]
}

// layout positions the well and side panel on screen.
type layout struct {
	well  core.Rect
	panel core.Rect
	minW  int
	minH  int
}

func computeLayout(boardW, visibleH int) layout {
	wellW := boardW*cellW + 2
	wellH := visibleH + 2
	return layout{
		well:  core.NewRect(0, 0, wellW, wellH),
		panel: core.NewRect(wellW+panelGap, 0, panelW, wellH),
		minW:  wellW + panelGap + panelW,
		minH:  wellH,
	}
}

// center moves the layout to the middle of a screen.
func (l *layout) center(screenW, screenH int) {
	x := core.Max((screenW-l.minW)/2, 0)
	y := core.Max((screenH-l.minH)/2, 0)
	l.well.X, l.well.Y = x, y
	l.panel.X, l.panel.Y = x+l.well.W+panelGap, y
}

// Render draws the current state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.layout.minW, g.layout.minH))
		return
	}

	g.renderWell(dst)
	g.renderPiece(dst)
	g.renderPanel(dst)
	g.renderOverlay(dst)
}

// cellOrigin returns the screen position of board cell (x, y) and whether
// that row is visible.
func (g *Game) cellOrigin(x, y int) (int, int, bool) {
	vy := y - g.board.BufferRows()
	if vy < 0 {
		return 0, 0, false
	}
	inner := g.layout.well.Inner()
	return inner.X + x*cellW, inner.Y + vy, true
}

func drawBlock(dst *core.Screen, sx, sy int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetCell(sx+i, sy, r, c)
	}
}

func (g *Game) renderWell(dst *core.Screen) {
	dst.DrawBox(g.layout.well, core.ColorGray)

	flashing := make(map[int]bool, len(g.flashRows))
	flashOn := g.clearTicks > 0 && (g.clearTicks/flashRate)%2 == 0
	for _, y := range g.flashRows {
		flashing[y] = true
	}

	for y := g.board.BufferRows(); y < g.board.Height(); y++ {
		for x := range g.board.Width() {
			sx, sy, _ := g.cellOrigin(x, y)

			if flashing[y] && flashOn {
				drawBlock(dst, sx, sy, FlashChar, core.ColorBrightWhite)
				continue
			}

			kind, ok := g.board.Cell(x, y).Kind()
			if !ok {
				dst.SetCell(sx+cellW-1, sy, EmptyChar, core.ColorGray)
				continue
			}
			drawBlock(dst, sx, sy, BlockChar, kindColor(kind))
		}
	}
}

func (g *Game) renderPiece(dst *core.Screen) {
	p, ok := g.ctrl.Piece()
	if !ok {
		return
	}
	color := kindColor(p.Kind)
	for _, c := range p.Cells() {
		if sx, sy, visible := g.cellOrigin(c.X, c.Y); visible {
			drawBlock(dst, sx, sy, BlockChar, color)
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen) {
	x, y := g.layout.panel.X, g.layout.panel.Y

	dst.DrawTextColor(x, y, g.Title(), core.ColorBrightWhite)
	y += 2

	box := core.NewRect(x, y, previewW, previewH)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawText(x+2, y, "NEXT")
	next := g.ctrl.Next()
	for _, c := range engine.Shape(next, 0) {
		// Shapes span x -1..2 and y -1..0 around the anchor.
		drawBlock(dst, box.X+1+(c.X+1)*cellW, box.Y+2+c.Y, BlockChar, kindColor(next))
	}
	y += previewH + 1

	st := g.ctrl.Scoring()
	stats := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprintf("%d", st.TotalScore)},
		{"LEVEL", fmt.Sprintf("%d", g.ctrl.Level())},
		{"LINES", fmt.Sprintf("%d", g.ctrl.Lines())},
	}
	for _, s := range stats {
		dst.DrawTextColor(x, y, s.label, core.ColorGray)
		dst.DrawText(x+7, y, s.value)
		y++
	}
	if g.progression.Enabled() {
		dst.DrawTextColor(x, y, fmt.Sprintf("next in %d", g.progression.LinesToNext(g.ctrl.Lines())), core.ColorGray)
	}
	y += 2

	if st.ComboCount > 1 {
		dst.DrawTextColor(x, y, fmt.Sprintf("COMBO x%d", st.ComboCount-1), core.ColorYellow)
	}
	y++
	if st.BackToBackReady {
		dst.DrawTextColor(x, y, "BACK-TO-BACK", core.ColorCyan)
	}
	y += 2

	if g.eventTicks > 0 && g.event != "" {
		for _, line := range wrap(g.event, panelW) {
			dst.DrawTextColor(x, y, line, core.ColorMagenta)
			y++
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.ctrl.GameOver():
		subtitle := fmt.Sprintf("Score: %d  |  R to restart", g.ctrl.Score())
		drawCenteredBox(dst, g.layout.well, "GAME OVER", subtitle)
	case g.paused:
		drawCenteredBox(dst, g.layout.well, "PAUSED", "P to resume")
	}
}

// drawCenteredBox draws a message box centered on area.
func drawCenteredBox(dst *core.Screen, area core.Rect, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := area.X + (area.W-boxW)/2
	boxY := area.Y + (area.H-boxH)/2
	if boxX < 0 {
		boxX = 0
	}

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightWhite)
	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// wrap splits s on spaces into lines no longer than width.
func wrap(s string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
