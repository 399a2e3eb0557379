// Package chainreaction adapts the chain reaction engine to the platform's
// Game interface: hot-seat input, cascade pacing and terminal rendering.
package chainreaction

import (
	"time"

	"github.com/vovakirdan/chain-reaction/internal/core"
	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction/engine"
	"github.com/vovakirdan/chain-reaction/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "chainreaction"

// Fallback grid when the platform does not pick one.
const (
	fallbackCols = 10
	fallbackRows = 12
)

// Visual characters for rendering
const (
	OrbChar      = '●'
	CriticalChar = '◉'
	FlashChar    = '░'
	CursorLeft   = '['
	CursorRight  = ']'
	BarChar      = '█'
)

const (
	hudHeight    = 4 // Title, player cards, dominance bar, status
	footerHeight = 1

	// ChromeHeight is the number of screen lines not available to the board.
	ChromeHeight = hudHeight + footerHeight
)

// flash highlights a cell for a number of ticks after an explosion or an
// incoming orb.
type flash struct {
	ticks int
	color core.Color
	hot   bool // Exploded rather than received
}

// Game implements registry.Game for Chain Reaction.
type Game struct {
	cfg core.RuntimeConfig
	sim *engine.Simulation

	players int
	cols    int
	rows    int
	layout  core.GridLayout
	cursor  engine.Coord

	tick           uint64
	explosionTicks int
	flashTicks     int
	stepTimer      int
	flashes        map[engine.Coord]flash

	status   string
	setupErr error
	tooSmall bool
	paused   bool
}

// New creates a new Chain Reaction game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Chain Reaction"
}

// Reset starts a new session. Players and grid size come from cfg; a zero
// grid size picks the largest board up to 10x12 that fits the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.CellW <= 0 {
		cfg.CellW = 5
	}
	if cfg.CellH <= 0 {
		cfg.CellH = 2
	}
	if cfg.Players < 2 {
		cfg.Players = 2
	}
	g.cfg = cfg
	g.players = cfg.Players
	g.tick = 0
	g.stepTimer = 0
	g.paused = false
	g.flashes = make(map[engine.Coord]flash)
	g.explosionTicks = ticksFor(cfg.ExplosionDelay, cfg.TickInterval())
	g.flashTicks = ticksFor(cfg.FlashDuration, cfg.TickInterval())

	g.cols, g.rows = cfg.GridW, cfg.GridH
	if g.cols <= 0 || g.rows <= 0 {
		fitW, fitH := core.FitCells(cfg.ScreenW, cfg.ScreenH-hudHeight-footerHeight, cfg.CellW, cfg.CellH)
		g.cols = min(fitW, fallbackCols)
		g.rows = min(fitH, fallbackRows)
	}

	g.sim, g.setupErr = engine.New(engine.Config{
		Players: g.players,
		Width:   g.cols,
		Height:  g.rows,
	})
	g.cursor = engine.At(g.rows/2, g.cols/2)
	g.status = ""
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// ticksFor converts a duration to a whole number of ticks, at least one.
func ticksFor(d, interval time.Duration) int {
	if d <= 0 || interval <= 0 {
		return 1
	}
	return max(1, int((d+interval-1)/interval))
}

// Resize lays the board out for a new screen size without touching the
// session.
func (g *Game) Resize(screenW, screenH int) {
	g.cfg.ScreenW, g.cfg.ScreenH = screenW, screenH
	g.layout = core.GridLayout{
		Rows:  g.rows,
		Cols:  g.cols,
		CellW: g.cfg.CellW,
		CellH: g.cfg.CellH,
	}
	b := g.layout.Bounds()
	g.tooSmall = b.W > screenW || b.H > screenH-hudHeight-footerHeight
	g.layout.Origin = core.Point{
		X: max(0, (screenW-b.W)/2),
		Y: hudHeight,
	}
}

// Step advances the game by one platform tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if g.sim == nil {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionRestart) && g.sim.IsGameOver() {
		g.Reset(g.cfg)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.sim.IsGameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.fadeFlashes()

	if g.sim.Settling() {
		g.stepTimer++
		if g.stepTimer >= g.explosionTicks {
			g.stepTimer = 0
			g.absorb(g.sim.Tick())
		}
		return core.StepResult{State: g.State()}
	}

	if g.sim.IsGameOver() {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	return core.StepResult{State: g.State()}
}

// processInput moves the cursor and handles placement requests.
func (g *Game) processInput(input core.InputFrame) {
	switch {
	case input.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case input.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case input.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case input.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}

	if input.Click != nil {
		row, col, ok := g.layout.CellAt(input.Click.X, input.Click.Y)
		if !ok {
			return
		}
		g.cursor = engine.At(row, col)
		g.place()
		return
	}

	if input.Has(core.ActionPlace) {
		g.place()
	}
}

func (g *Game) moveCursor(dRow, dCol int) {
	g.cursor.Row = core.Clamp(g.cursor.Row+dRow, 0, g.rows-1)
	g.cursor.Col = core.Clamp(g.cursor.Col+dCol, 0, g.cols-1)
}

// place submits a placement for the current player at the cursor.
func (g *Game) place() {
	p := g.sim.CurrentPlayer()
	res := g.sim.Submit(p, g.cursor.Row, g.cursor.Col)
	if !res.Accepted {
		g.status = res.Reason.String()
		return
	}
	g.status = ""
	g.stepTimer = 0
	g.absorb(res.Events)

	// Without an explosion delay the cascade resolves within the tick.
	if g.cfg.ExplosionDelay <= 0 {
		for g.sim.Settling() {
			g.absorb(g.sim.Tick())
		}
	}
}

// absorb turns engine events into flashes and status text.
func (g *Game) absorb(events []engine.Event) {
	for _, e := range events {
		switch ev := e.(type) {
		case engine.Exploded:
			g.flashes[ev.At] = flash{ticks: g.flashTicks, color: core.PlayerColor(int(ev.Player)), hot: true}
		case engine.OrbMoved:
			if _, ok := g.flashes[ev.To]; !ok {
				g.flashes[ev.To] = flash{ticks: g.flashTicks, color: core.PlayerColor(int(ev.Player))}
			}
		case engine.GameOver:
			g.status = ""
		}
	}
}

func (g *Game) fadeFlashes() {
	for at, f := range g.flashes {
		f.ticks--
		if f.ticks <= 0 {
			delete(g.flashes, at)
			continue
		}
		g.flashes[at] = f
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := core.GameState{Winner: -1, Paused: g.paused}
	if g.sim == nil {
		return state
	}
	state.Placements = g.sim.TurnCount()
	state.Settling = g.sim.Settling()
	state.GameOver = g.sim.IsGameOver()
	if w, ok := g.sim.Winner(); ok {
		state.Winner = int(w)
	}
	return state
}

// Err returns why the session could not be created, if it could not.
func (g *Game) Err() error {
	return g.setupErr
}

// Record returns the finished match. The second result is false while the
// game is still running.
func (g *Game) Record() (core.MatchRecord, bool) {
	if g.sim == nil || !g.sim.IsGameOver() {
		return core.MatchRecord{}, false
	}
	w, _ := g.sim.Winner()
	moves := g.sim.Moves()
	rec := core.MatchRecord{
		GameID:   ID,
		Players:  g.players,
		Width:    g.cols,
		Height:   g.rows,
		Winner:   int(w),
		Moves:    make([]core.Move, len(moves)),
		Duration: time.Duration(g.tick) * g.cfg.TickInterval(),
	}
	for i, m := range moves {
		rec.Moves[i] = core.Move{Player: int(m.Player), Row: m.Row, Col: m.Col}
	}
	return rec, true
}
