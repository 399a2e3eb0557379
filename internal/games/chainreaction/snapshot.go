package chainreaction

import "github.com/vovakirdan/chain-reaction/internal/games/chainreaction/engine"

// StateType names the adapter's visible state.
type StateType string

const (
	StatePlaying    StateType = "playing"
	StateCascade    StateType = "cascade"
	StateGameOver   StateType = "game_over"
	StatePaused     StateType = "paused"
	StateTooSmall   StateType = "paused_small_window"
	StateUnplayable StateType = "unplayable"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	State      StateType
	Cols       int
	Rows       int
	Cursor     engine.Coord
	Current    engine.PlayerID
	Placements int
	Winner     engine.PlayerID
	Cells      []engine.Cell
	Flashes    int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		Cols:    g.cols,
		Rows:    g.rows,
		Cursor:  g.cursor,
		Winner:  engine.NoPlayer,
		Flashes: len(g.flashes),
	}
	if g.sim == nil {
		snap.State = StateUnplayable
		return snap
	}

	snap.Current = g.sim.CurrentPlayer()
	snap.Placements = g.sim.TurnCount()
	snap.Cells = g.sim.Snapshot()
	if w, ok := g.sim.Winner(); ok {
		snap.Winner = w
	}

	switch {
	case g.sim.IsGameOver():
		snap.State = StateGameOver
	case g.tooSmall:
		snap.State = StateTooSmall
	case g.paused:
		snap.State = StatePaused
	case g.sim.Settling():
		snap.State = StateCascade
	default:
		snap.State = StatePlaying
	}
	return snap
}
