package chainreaction

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/chain-reaction/internal/core"
	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction/engine"
)

const helpText = "←↑↓→/hjkl move · space place · click place · p pause · b menu · q quit"

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.sim == nil {
		g.renderOverlay(dst, core.ColorBrightRed, "Cannot start game", g.errorText())
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		b := g.layout.Bounds()
		g.renderOverlay(dst, core.ColorYellow, "Window too small",
			fmt.Sprintf("Need %dx%d, resize to continue", b.W, b.H+hudHeight+footerHeight))
		return
	}

	g.renderBoard(dst)
	dst.DrawTextCenteredColor(dst.Height()-1, helpText, core.ColorGray)

	switch {
	case g.sim.IsGameOver():
		w, _ := g.sim.Winner()
		g.renderOverlay(dst, core.PlayerColor(int(w)),
			fmt.Sprintf("PLAYER %d WINS!", int(w)+1),
			"R to restart · B for menu")
	case g.paused:
		g.renderOverlay(dst, core.ColorWhite, "Paused", "Press P to continue")
	}
}

func (g *Game) errorText() string {
	if g.setupErr == nil {
		return ""
	}
	return g.setupErr.Error()
}

// renderHUD draws the title, player cards, dominance bar and status line.
func (g *Game) renderHUD(dst *core.Screen) {
	current := g.sim.CurrentPlayer()
	players := g.sim.Players()

	dst.DrawTextColor(1, 0, "CHAIN REACTION", core.ColorBrightWhite)
	if !g.sim.IsGameOver() {
		label := "TURN"
		if g.sim.Settling() {
			label = "CHAIN"
		}
		turn := fmt.Sprintf("%s %c %v", label, OrbChar, current)
		dst.DrawTextColor(dst.Width()-len([]rune(turn))-1, 0, turn, core.PlayerColor(int(current)))
	}

	g.renderCards(dst, players, 1)
	g.renderDominance(dst, players, 2)

	switch {
	case g.status != "":
		dst.DrawTextColor(1, 3, "✕ "+g.status, core.ColorBrightRed)
	case g.sim.Settling():
		dst.DrawTextColor(1, 3, fmt.Sprintf("Chain reaction... %d pending", g.sim.PendingExplosions()), core.ColorGray)
	case !g.sim.IsGameOver():
		dst.DrawTextColor(1, 3, fmt.Sprintf("%v to move · placement %d", current, g.sim.TurnCount()+1), core.ColorGray)
	}
}

// renderCards draws one card per seat: marker, name, orbs and cells.
// Many seats get a compact card.
func (g *Game) renderCards(dst *core.Screen, players []engine.PlayerStatus, y int) {
	compact := len(players) > 5
	x := 1
	for _, p := range players {
		marker := " "
		switch {
		case p.Eliminated:
			marker = "✕"
		case p.Current:
			marker = "▶"
		}

		var card string
		if compact {
			card = fmt.Sprintf("%s%v %d", marker, p.ID, p.Orbs)
		} else {
			card = fmt.Sprintf("%s%v %c%d ■%d", marker, p.ID, OrbChar, p.Orbs, p.Cells)
		}

		color := core.PlayerColor(int(p.ID))
		if p.Eliminated {
			color = core.ColorDim
		}
		dst.DrawTextColor(x, y, card, color)
		x += len([]rune(card)) + 2
	}
}

// renderDominance draws a bar split in proportion to each seat's orbs.
func (g *Game) renderDominance(dst *core.Screen, players []engine.PlayerStatus, y int) {
	width := dst.Width() - 2
	if width <= 0 {
		return
	}

	total := 0
	for _, p := range players {
		total += p.Orbs
	}
	if total == 0 {
		dst.DrawHLine(1, y, width, '─', core.ColorGray)
		return
	}

	cum := 0
	for _, p := range players {
		start := cum * width / total
		cum += p.Orbs
		end := cum * width / total
		dst.DrawHLine(1+start, y, end-start, BarChar, core.PlayerColor(int(p.ID)))
	}
}

// renderBoard draws the grid lines, the orbs, flashes and the cursor.
func (g *Game) renderBoard(dst *core.Screen) {
	current := g.sim.CurrentPlayer()
	border := core.ColorGray
	if !g.sim.IsGameOver() {
		border = core.PlayerColor(int(current))
	}
	dst.DrawGrid(g.layout, border)

	for _, c := range g.sim.Snapshot() {
		g.renderCell(dst, c)
	}

	if !g.sim.IsGameOver() && !g.sim.Settling() {
		r := g.layout.CellRect(g.cursor.Row, g.cursor.Col)
		y := r.Y + (r.H-1)/2
		dst.SetColor(r.X, y, CursorLeft, core.PlayerColor(int(current)))
		dst.SetColor(r.Right()-1, y, CursorRight, core.PlayerColor(int(current)))
	}
}

func (g *Game) renderCell(dst *core.Screen, c engine.Cell) {
	r := g.layout.CellRect(c.Row(), c.Col())

	f, flashing := g.flashes[c.Coord()]
	if flashing && f.hot {
		dst.DrawRect(r, FlashChar, f.color)
	}
	if c.Empty() {
		return
	}

	color := core.PlayerColor(int(c.Owner()))
	if flashing && !f.hot {
		color = core.ColorBrightWhite
	}

	glyph := OrbChar
	if c.Critical() {
		glyph = CriticalChar
	}
	text := orbText(c.Orbs(), glyph, r.W-2)
	x := r.X + (r.W-len([]rune(text)))/2
	y := r.Y + (r.H-1)/2
	dst.DrawTextColor(x, y, text, color)

	if r.H > 1 && c.Critical() {
		dst.DrawTextColor(r.X+(r.W-1)/2, y+1, "!", core.ColorBrightRed)
	}
}

// orbText renders n orbs as repeated glyphs, or as a count when they do
// not fit in width.
func orbText(n int, glyph rune, width int) string {
	if n <= width {
		return strings.Repeat(string(glyph), n)
	}
	return fmt.Sprintf("%d%c", n, glyph)
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, color core.Color, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect(0, 0, maxLen+6, 5)
	box.X = (dst.Width() - box.W) / 2
	box.Y = (dst.Height() - box.H) / 2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	drawCentered(dst, box, box.Y+1, line1, color)
	drawCentered(dst, box, box.Y+3, line2, core.ColorWhite)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string, color core.Color) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawTextColor(x, y, text, color)
}
