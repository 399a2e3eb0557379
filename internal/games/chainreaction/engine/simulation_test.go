package engine_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction/engine"
)

type move = engine.Move

func mv(p, row, col int) move {
	return move{Player: engine.PlayerID(p), Row: row, Col: col}
}

func newSim(t *testing.T, players, width, height int) *engine.Simulation {
	t.Helper()
	sim, err := engine.New(engine.Config{Players: players, Width: width, Height: height})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return sim
}

// play applies moves that must all be accepted and returns the events of
// the last one.
func play(t *testing.T, sim *engine.Simulation, moves ...move) []engine.Event {
	t.Helper()
	var last []engine.Event
	for i, m := range moves {
		res := sim.PlaceOrb(m.Player, m.Row, m.Col)
		if !res.Accepted {
			t.Fatalf("move %d %v at (%d,%d) rejected: %v", i, m.Player, m.Row, m.Col, res.Reason)
		}
		last = res.Events
	}
	return last
}

func assertEvents(t *testing.T, got, expected []engine.Event) {
	t.Helper()
	if !slices.Equal(got, expected) {
		t.Errorf("events mismatch\n got: %v\nwant: %v", got, expected)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  engine.Config
		err  error
	}{
		{"two players 2x2", engine.Config{Players: 2, Width: 2, Height: 2}, nil},
		{"nine players 10x12", engine.Config{Players: 9, Width: 10, Height: 12}, nil},
		{"strip 1x3", engine.Config{Players: 2, Width: 3, Height: 1}, nil},
		{"one player", engine.Config{Players: 1, Width: 5, Height: 5}, engine.ErrTooFewPlayers},
		{"ten players", engine.Config{Players: 10, Width: 12, Height: 12}, engine.ErrTooManyPlayers},
		{"single cell", engine.Config{Players: 2, Width: 1, Height: 1}, engine.ErrGridTooSmall},
		{"zero width", engine.Config{Players: 2, Width: 0, Height: 4}, engine.ErrGridTooSmall},
		{"more players than adjacencies", engine.Config{Players: 2, Width: 2, Height: 1}, engine.ErrGridTooSmall},
		{"five players on 2x2", engine.Config{Players: 5, Width: 2, Height: 2}, engine.ErrGridTooSmall},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.err == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("Validate() = %v, expected %v", err, tc.err)
			}
			if _, err := engine.New(tc.cfg); !errors.Is(err, tc.err) {
				t.Errorf("New() = %v, expected %v", err, tc.err)
			}
		})
	}
}

func TestTwoByTwoScenario(t *testing.T) {
	sim := newSim(t, 2, 2, 2)

	assertEvents(t, play(t, sim, mv(0, 0, 0)), []engine.Event{
		engine.Placed{At: engine.At(0, 0), Player: 0},
		engine.TurnChanged{Player: 1},
	})
	assertEvents(t, play(t, sim, mv(1, 1, 1)), []engine.Event{
		engine.Placed{At: engine.At(1, 1), Player: 1},
		engine.TurnChanged{Player: 0},
	})

	// Second orb in a corner reaches critical mass 2
	assertEvents(t, play(t, sim, mv(0, 0, 0)), []engine.Event{
		engine.Placed{At: engine.At(0, 0), Player: 0},
		engine.Exploded{At: engine.At(0, 0), Player: 0},
		engine.OrbMoved{From: engine.At(0, 0), To: engine.At(0, 1), Player: 0},
		engine.OrbMoved{From: engine.At(0, 0), To: engine.At(1, 0), Player: 0},
		engine.TurnChanged{Player: 1},
	})

	expected := map[engine.Coord]struct {
		orbs  int
		owner engine.PlayerID
	}{
		engine.At(0, 0): {0, engine.NoPlayer},
		engine.At(0, 1): {1, 0},
		engine.At(1, 0): {1, 0},
		engine.At(1, 1): {1, 1},
	}
	for at, want := range expected {
		c, _ := sim.CellAt(at.Row, at.Col)
		if c.Orbs() != want.orbs || c.Owner() != want.owner {
			t.Errorf("cell %v: orbs=%d owner=%v, expected orbs=%d owner=%v",
				at, c.Orbs(), c.Owner(), want.orbs, want.owner)
		}
	}
	if sim.CurrentPlayer() != 1 {
		t.Errorf("expected P2 to move, got %v", sim.CurrentPlayer())
	}
}

// Placing twice in a row without the turn passing is out of turn.
func TestBackToBackPlacementRejected(t *testing.T) {
	sim := newSim(t, 2, 2, 2)
	play(t, sim, mv(0, 0, 0))
	before := sim.Snapshot()
	logged := len(sim.Events())

	res := sim.PlaceOrb(0, 0, 0)
	if res.Accepted {
		t.Fatal("second placement by P1 was accepted")
	}
	if res.Reason != engine.RejectWrongPlayer {
		t.Errorf("reason = %v, want %v", res.Reason, engine.RejectWrongPlayer)
	}
	if len(res.Events) != 0 {
		t.Errorf("rejected placement emitted events: %v", res.Events)
	}
	if n := len(sim.Events()); n != logged {
		t.Errorf("event log grew from %d to %d", logged, n)
	}
	if !slices.Equal(sim.Snapshot(), before) {
		t.Error("rejected placement changed the board")
	}
	if sim.CurrentPlayer() != 1 {
		t.Errorf("expected P2 to move, got %v", sim.CurrentPlayer())
	}
}

func TestGameOverIsLastEvent(t *testing.T) {
	sim := newSim(t, 2, 2, 2)
	play(t, sim, mv(0, 0, 0), mv(1, 1, 1), mv(0, 0, 0))

	// P2's explosion takes both of P1's cells; the cells it hands orbs to
	// overload but the game is already decided.
	events := play(t, sim, mv(1, 1, 1))
	assertEvents(t, events, []engine.Event{
		engine.Placed{At: engine.At(1, 1), Player: 1},
		engine.Exploded{At: engine.At(1, 1), Player: 1},
		engine.OrbMoved{From: engine.At(1, 1), To: engine.At(0, 1), Player: 1},
		engine.OrbMoved{From: engine.At(1, 1), To: engine.At(1, 0), Player: 1},
		engine.GameOver{Winner: 1},
	})

	if !sim.IsGameOver() {
		t.Fatal("expected game over")
	}
	if w, ok := sim.Winner(); !ok || w != 1 {
		t.Errorf("Winner() = %v, %v; expected P2", w, ok)
	}
	if sim.Phase() != engine.PhaseGameOver {
		t.Errorf("expected phase GameOver, got %v", sim.Phase())
	}

	log := sim.Events()
	if _, ok := log[len(log)-1].(engine.GameOver); !ok {
		t.Errorf("last logged event is %v, expected GameOver", log[len(log)-1])
	}
	for _, e := range log {
		if _, ok := e.(engine.GameOver); ok && e != log[len(log)-1] {
			t.Errorf("GameOver logged before the end: %v", log)
		}
	}

	// Orbs are conserved even though pending explosions were dropped
	if sim.TotalOrbs() != sim.TurnCount() {
		t.Errorf("total orbs %d != placements %d", sim.TotalOrbs(), sim.TurnCount())
	}

	res := sim.PlaceOrb(0, 0, 0)
	if res.Accepted || res.Reason != engine.RejectGameOver {
		t.Errorf("placement after game over: %+v", res)
	}
}

func TestStripCascade(t *testing.T) {
	sim := newSim(t, 2, 4, 1)

	// Strip ends hold a single orb, so the first placement explodes
	assertEvents(t, play(t, sim, mv(0, 0, 0)), []engine.Event{
		engine.Placed{At: engine.At(0, 0), Player: 0},
		engine.Exploded{At: engine.At(0, 0), Player: 0},
		engine.OrbMoved{From: engine.At(0, 0), To: engine.At(0, 1), Player: 0},
		engine.TurnChanged{Player: 1},
	})
	play(t, sim, mv(1, 0, 3))

	events := play(t, sim, mv(0, 0, 1))
	assertEvents(t, events, []engine.Event{
		engine.Placed{At: engine.At(0, 1), Player: 0},
		engine.Exploded{At: engine.At(0, 1), Player: 0},
		engine.OrbMoved{From: engine.At(0, 1), To: engine.At(0, 0), Player: 0},
		engine.OrbMoved{From: engine.At(0, 1), To: engine.At(0, 2), Player: 0},
		engine.GameOver{Winner: 0},
	})
	if sim.TotalOrbs() != 3 {
		t.Errorf("expected 3 orbs, got %d", sim.TotalOrbs())
	}
}

func TestTurnSkipsEliminatedPlayer(t *testing.T) {
	sim := newSim(t, 3, 3, 2)

	play(t, sim, mv(0, 0, 0), mv(1, 0, 1), mv(2, 0, 2))

	// P1 takes P2's only cell
	events := play(t, sim, mv(0, 0, 0))
	if got := events[len(events)-1]; got != (engine.TurnChanged{Player: 2}) {
		t.Fatalf("expected turn to skip P2, got %v", got)
	}

	players := sim.Players()
	if !players[1].Eliminated {
		t.Error("P2 should be eliminated")
	}
	if players[0].Eliminated || players[2].Eliminated {
		t.Errorf("only P2 should be eliminated: %+v", players)
	}
	if !players[2].Current {
		t.Errorf("P3 should be current: %+v", players)
	}

	// The eliminated player cannot move
	res := sim.PlaceOrb(1, 1, 0)
	if res.Accepted || res.Reason != engine.RejectWrongPlayer {
		t.Errorf("eliminated player placement: %+v", res)
	}

	// Rotation keeps skipping P2
	assertEvents(t, play(t, sim, mv(2, 1, 2)), []engine.Event{
		engine.Placed{At: engine.At(1, 2), Player: 2},
		engine.TurnChanged{Player: 0},
	})
	assertEvents(t, play(t, sim, mv(0, 1, 1)), []engine.Event{
		engine.Placed{At: engine.At(1, 1), Player: 0},
		engine.TurnChanged{Player: 2},
	})
}

func TestNoSkipBeforeFirstRound(t *testing.T) {
	sim := newSim(t, 3, 4, 1)

	// P1's end cell explodes into the neighbour, leaving P1 with a single
	// cell; P2 has none yet and must still get a turn.
	events := play(t, sim, mv(0, 0, 0))
	if got := events[len(events)-1]; got != (engine.TurnChanged{Player: 1}) {
		t.Fatalf("expected P2 to move, got %v", got)
	}
	if sim.Players()[1].Eliminated {
		t.Error("no player is eliminated before everyone has moved")
	}
}

// Two explosions in the same wave can feed a cell that is already queued.
// It stays queued once, keeps accumulating, and discharges exactly its
// critical mass when its turn comes; the surplus stays on the cell.
func TestQueuedCellAccumulatesOrbs(t *testing.T) {
	sim := newSim(t, 2, 3, 3)
	play(t, sim,
		mv(0, 0, 1), mv(1, 1, 1),
		mv(0, 2, 2), mv(1, 1, 1),
		mv(0, 0, 1), mv(1, 1, 1),
		mv(0, 1, 0), mv(1, 0, 0),
		mv(0, 1, 0),
	)

	events := play(t, sim, mv(1, 0, 0))

	var exploded []engine.Coord
	for _, e := range events {
		if ex, ok := e.(engine.Exploded); ok {
			exploded = append(exploded, ex.At)
		}
	}
	// (1,1) is queued by (0,1), fed again by (1,0), and explodes once,
	// ahead of (0,0) which re-overloaded later in the wave.
	expected := []engine.Coord{
		engine.At(0, 0), engine.At(0, 1), engine.At(1, 0), engine.At(1, 1), engine.At(0, 0),
	}
	if !slices.Equal(exploded, expected) {
		t.Errorf("explosion order = %v, expected %v", exploded, expected)
	}
	if last := events[len(events)-1]; last != (engine.TurnChanged{Player: 0}) {
		t.Errorf("expected TurnChanged to P1, got %v", last)
	}

	// Bound: explosions never exceed the orbs on the board
	if len(exploded) > sim.TotalOrbs() {
		t.Errorf("%d explosions with %d orbs on board", len(exploded), sim.TotalOrbs())
	}

	type cell struct {
		orbs  int
		owner engine.PlayerID
	}
	const none = engine.NoPlayer
	board := [][]cell{
		{{0, none}, {2, 1}, {1, 1}},
		{{2, 1}, {1, 1}, {1, 1}},
		{{1, 1}, {1, 1}, {1, 0}},
	}
	for row := range board {
		for col, want := range board[row] {
			c, _ := sim.CellAt(row, col)
			if c.Orbs() != want.orbs || c.Owner() != want.owner {
				t.Errorf("cell (%d,%d): orbs=%d owner=%v, expected orbs=%d owner=%v",
					row, col, c.Orbs(), c.Owner(), want.orbs, want.owner)
			}
		}
	}
}

func TestRejections(t *testing.T) {
	sim := newSim(t, 2, 3, 3)
	play(t, sim, mv(0, 0, 0))

	tests := []struct {
		name   string
		move   move
		reason engine.RejectReason
	}{
		{"wrong player", mv(0, 1, 1), engine.RejectWrongPlayer},
		{"opponent cell", mv(1, 0, 0), engine.RejectOpponentCell},
		{"row out of bounds", mv(1, 3, 0), engine.RejectOutOfBounds},
		{"negative column", mv(1, 0, -1), engine.RejectOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := sim.Events()
			snap := sim.Snapshot()

			res := sim.PlaceOrb(tc.move.Player, tc.move.Row, tc.move.Col)
			if res.Accepted {
				t.Fatal("expected rejection")
			}
			if res.Reason != tc.reason {
				t.Errorf("reason = %v, expected %v", res.Reason, tc.reason)
			}
			if len(res.Events) != 0 {
				t.Errorf("rejected placement emitted events: %v", res.Events)
			}
			if !slices.Equal(sim.Events(), before) {
				t.Error("rejected placement changed the event log")
			}
			if !slices.Equal(sim.Snapshot(), snap) {
				t.Error("rejected placement changed the board")
			}
		})
	}

	if sim.TurnCount() != 1 {
		t.Errorf("turn count = %d, expected 1", sim.TurnCount())
	}
}

func TestTickPacesCascade(t *testing.T) {
	sim := newSim(t, 2, 2, 2)
	play(t, sim, mv(0, 0, 0), mv(1, 1, 1), mv(0, 0, 0))

	res := sim.Submit(1, 1, 1)
	if !res.Accepted {
		t.Fatalf("Submit rejected: %v", res.Reason)
	}
	assertEvents(t, res.Events, []engine.Event{
		engine.Placed{At: engine.At(1, 1), Player: 1},
	})
	if !sim.Settling() {
		t.Fatal("expected cascade in progress")
	}

	// Placements wait for the cascade
	if r := sim.PlaceOrb(0, 0, 0); r.Accepted || r.Reason != engine.RejectCascadeInProgress {
		t.Errorf("placement during cascade: %+v", r)
	}

	assertEvents(t, sim.Tick(), []engine.Event{
		engine.Exploded{At: engine.At(1, 1), Player: 1},
		engine.OrbMoved{From: engine.At(1, 1), To: engine.At(0, 1), Player: 1},
		engine.OrbMoved{From: engine.At(1, 1), To: engine.At(1, 0), Player: 1},
	})
	if sim.PendingExplosions() != 2 {
		t.Errorf("expected 2 pending explosions, got %d", sim.PendingExplosions())
	}
	if sim.IsGameOver() {
		t.Error("game must not end while the cascade is still pending")
	}

	assertEvents(t, sim.Tick(), []engine.Event{engine.GameOver{Winner: 1}})
	if sim.Settling() {
		t.Error("cascade should be settled")
	}
	if ev := sim.Tick(); ev != nil {
		t.Errorf("Tick after settle returned %v", ev)
	}
}

func TestPlaceOrbMatchesTick(t *testing.T) {
	moves := []move{
		mv(0, 0, 1), mv(1, 1, 1),
		mv(0, 2, 2), mv(1, 1, 1),
		mv(0, 0, 1), mv(1, 1, 1),
		mv(0, 1, 0), mv(1, 0, 0),
		mv(0, 1, 0), mv(1, 0, 0),
	}

	direct := newSim(t, 2, 3, 3)
	play(t, direct, moves...)

	paced := newSim(t, 2, 3, 3)
	for _, m := range moves {
		if res := paced.Submit(m.Player, m.Row, m.Col); !res.Accepted {
			t.Fatalf("Submit rejected: %v", res.Reason)
		}
		for paced.Settling() {
			paced.Tick()
		}
	}

	assertEvents(t, paced.Events(), direct.Events())
	if !slices.Equal(paced.Snapshot(), direct.Snapshot()) {
		t.Error("paced and synchronous boards differ")
	}
}

// lcg picks moves reproducibly without depending on math/rand.
type lcg uint64

func (l *lcg) pick(n int) int {
	*l = *l*6364136223846793005 + 1442695040888963407
	return int((uint64(*l) >> 33) % uint64(n))
}

func legalMoves(sim *engine.Simulation) []engine.Coord {
	p := sim.CurrentPlayer()
	var out []engine.Coord
	for _, c := range sim.Snapshot() {
		if engine.IsLegalTarget(c, p) {
			out = append(out, c.Coord())
		}
	}
	return out
}

func TestFullGames(t *testing.T) {
	tests := []struct {
		name          string
		players       int
		width, height int
		seed          lcg
		winner        engine.PlayerID
		placements    int
	}{
		{"2 players 5x5", 2, 5, 5, 1, 1, 42},
		{"3 players 5x5", 3, 5, 5, 7, 1, 47},
		{"4 players 6x6", 4, 6, 6, 42, 0, 61},
		{"2 players 3x3", 2, 3, 3, 3, 1, 10},
		{"3 players 4x4", 3, 4, 4, 11, 0, 28},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sim := newSim(t, tc.players, tc.width, tc.height)
			rng := tc.seed

			for i := 0; i < 400 && !sim.IsGameOver(); i++ {
				legal := legalMoves(sim)
				at := legal[rng.pick(len(legal))]
				p := sim.CurrentPlayer()
				res := sim.PlaceOrb(p, at.Row, at.Col)
				if !res.Accepted {
					t.Fatalf("legal move %v for %v rejected: %v", at, p, res.Reason)
				}

				// Conservation: one orb per placement
				total := 0
				for _, c := range sim.Snapshot() {
					total += c.Orbs()
				}
				if total != sim.TurnCount() || sim.TotalOrbs() != total {
					t.Fatalf("after %d placements board holds %d orbs (tally %d)",
						sim.TurnCount(), total, sim.TotalOrbs())
				}

				exploded := 0
				for _, e := range res.Events {
					if _, ok := e.(engine.Exploded); ok {
						exploded++
					}
				}
				if exploded > total {
					t.Fatalf("%d explosions with %d orbs on board", exploded, total)
				}

				if !sim.IsGameOver() {
					for _, c := range sim.Snapshot() {
						if c.Overloaded() {
							t.Fatalf("cell %v overloaded after settle", c.Coord())
						}
					}
				}
			}

			if !sim.IsGameOver() {
				t.Fatal("game did not finish")
			}
			if w, _ := sim.Winner(); w != tc.winner {
				t.Errorf("winner = %v, expected %v", w, tc.winner)
			}
			if sim.TurnCount() != tc.placements {
				t.Errorf("placements = %d, expected %d", sim.TurnCount(), tc.placements)
			}

			// Determinism: the same placements on a fresh session replay
			// the same events and board.
			replayed, err := engine.Replay(sim.Config(), sim.Moves())
			if err != nil {
				t.Fatalf("Replay() error: %v", err)
			}
			assertEvents(t, replayed.Events(), sim.Events())
			if !slices.Equal(replayed.Snapshot(), sim.Snapshot()) {
				t.Error("replayed board differs")
			}
		})
	}
}

func TestReplayRejectsIllegalMove(t *testing.T) {
	cfg := engine.Config{Players: 2, Width: 3, Height: 3}
	_, err := engine.Replay(cfg, []move{mv(0, 0, 0), mv(1, 0, 0)})
	if !errors.Is(err, engine.ErrIllegalMove) {
		t.Errorf("Replay() = %v, expected ErrIllegalMove", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newSim(t, 2, 3, 3)
	b := newSim(t, 2, 3, 3)
	play(t, a, mv(0, 1, 1))

	if b.TurnCount() != 0 || b.TotalOrbs() != 0 {
		t.Error("placement leaked into another session")
	}
	if c, _ := b.CellAt(1, 1); !c.Empty() {
		t.Error("cell state shared between sessions")
	}
}
