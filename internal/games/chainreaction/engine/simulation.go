package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// MaxPlayers is the largest number of seats a session supports.
const MaxPlayers = 9

// Bootstrap errors.
var (
	ErrTooFewPlayers  = errors.New("at least 2 players are required")
	ErrTooManyPlayers = fmt.Errorf("at most %d players are supported", MaxPlayers)
	ErrGridTooSmall   = errors.New("grid too small")
	ErrIllegalMove    = errors.New("illegal move")
)

// Config fixes the player count and grid dimensions for a session.
type Config struct {
	Players int
	Width   int
	Height  int
}

// Validate checks that a session can be built from the config.
//
// A grid needs at least two cells, and at least as many adjacencies as
// players: during the first round nobody can be eliminated, so every cascade
// must drain by itself, which holds only while the board carries fewer orbs
// than it has adjacencies.
func (c Config) Validate() error {
	if c.Players < 2 {
		return fmt.Errorf("engine: %d players: %w", c.Players, ErrTooFewPlayers)
	}
	if c.Players > MaxPlayers {
		return fmt.Errorf("engine: %d players: %w", c.Players, ErrTooManyPlayers)
	}
	if c.Width < 1 || c.Height < 1 || c.Width*c.Height < 2 {
		return fmt.Errorf("engine: %dx%d: %w", c.Width, c.Height, ErrGridTooSmall)
	}
	if e := edgeCount(c.Width, c.Height); c.Players > e {
		return fmt.Errorf("engine: %dx%d has %d adjacencies for %d players: %w",
			c.Width, c.Height, e, c.Players, ErrGridTooSmall)
	}
	return nil
}

// RejectReason explains why a placement was not accepted.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectWrongPlayer
	RejectOutOfBounds
	RejectOpponentCell
	RejectCascadeInProgress
	RejectGameOver
)

// String returns a human-readable name for the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectWrongPlayer:
		return "not your turn"
	case RejectOutOfBounds:
		return "out of bounds"
	case RejectOpponentCell:
		return "cell owned by opponent"
	case RejectCascadeInProgress:
		return "cascade in progress"
	case RejectGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Result is the outcome of a placement request.
type Result struct {
	Accepted bool
	Reason   RejectReason
	Events   []Event
}

// Move is an accepted placement.
type Move struct {
	Player PlayerID
	Row    int
	Col    int
}

// PlayerStatus summarises one seat for presentation.
type PlayerStatus struct {
	ID         PlayerID
	Cells      int
	Orbs       int
	Current    bool
	Eliminated bool
}

// Simulation owns one game session: the grid, the cascade and the turn
// manager. All mutation goes through PlaceOrb, Submit and Tick; each call is
// atomic with respect to the read-only queries.
type Simulation struct {
	mu sync.RWMutex

	cfg     Config
	grid    *Grid
	cascade *Cascade
	turns   *TurnManager

	log   []Event
	moves []Move
}

// New creates a session from a validated config.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := NewGrid(cfg.Width, cfg.Height)
	return &Simulation{
		cfg:     cfg,
		grid:    g,
		cascade: newCascade(g),
		turns:   newTurnManager(cfg.Players),
	}, nil
}

// PlaceOrb places an orb for p at (row, col) and resolves the whole cascade
// before returning. Result.Events holds everything the placement caused, in
// order.
func (s *Simulation) PlaceOrb(p PlayerID, row, col int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.submit(p, row, col)
	if !res.Accepted {
		return res
	}
	for s.turns.Phase() == PhaseCascadeInProgress {
		step := s.step()
		s.log = append(s.log, step...)
		res.Events = append(res.Events, step...)
	}
	return res
}

// Submit places an orb for p at (row, col) without resolving the cascade.
// When the placement overloads its cell, the session stays in
// PhaseCascadeInProgress and Tick must be called until Settling reports
// false.
func (s *Simulation) Submit(p PlayerID, row, col int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submit(p, row, col)
}

// Tick resolves one explosion of the pending cascade and returns its
// events. The call that drains the cascade also returns the TurnChanged or
// GameOver settling the turn. Tick returns nil when nothing is pending.
func (s *Simulation) Tick() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.turns.Phase() != PhaseCascadeInProgress {
		return nil
	}
	events := s.step()
	s.log = append(s.log, events...)
	return events
}

func (s *Simulation) submit(p PlayerID, row, col int) Result {
	if reason := s.check(p, row, col); reason != RejectNone {
		return Result{Reason: reason}
	}

	at := At(row, col)
	if s.grid.cell(at).Overloaded() {
		panic(fmt.Sprintf("engine: placement into overloaded cell %v", at))
	}

	s.grid.applyOrb(at, p)
	s.turns.recordPlacement()
	s.moves = append(s.moves, Move{Player: p, Row: row, Col: col})

	events := []Event{Placed{At: at, Player: p}}
	if s.grid.cell(at).Overloaded() {
		s.cascade.Seed(at)
		s.turns.beginCascade()
	} else {
		events = append(events, s.turns.settle(s.grid))
	}

	s.log = append(s.log, events...)
	return Result{Accepted: true, Events: events}
}

func (s *Simulation) check(p PlayerID, row, col int) RejectReason {
	switch s.turns.Phase() {
	case PhaseGameOver:
		return RejectGameOver
	case PhaseAwaitingPlacement:
	default:
		return RejectCascadeInProgress
	}
	if p != s.turns.Current() {
		return RejectWrongPlayer
	}
	if !s.grid.InBounds(row, col) {
		return RejectOutOfBounds
	}
	if !IsLegalTarget(*s.grid.cell(At(row, col)), p) {
		return RejectOpponentCell
	}
	return RejectNone
}

// step advances the cascade by one explosion. Once a single owner remains
// after the first round the game is decided: pending explosions are dropped
// and the turn settles immediately.
func (s *Simulation) step() []Event {
	var events []Event
	if _, won := s.turns.decided(s.grid); won {
		s.cascade.Discard()
	} else {
		events = s.cascade.Step()
	}
	if !s.cascade.Active() {
		events = append(events, s.turns.settle(s.grid))
	}
	return events
}

// Config returns the session's bootstrap config.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Width returns the grid width.
func (s *Simulation) Width() int { return s.cfg.Width }

// Height returns the grid height.
func (s *Simulation) Height() int { return s.cfg.Height }

// CellAt returns a copy of the cell at (row, col).
func (s *Simulation) CellAt(row, col int) (Cell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.CellAt(row, col)
}

// Neighbors returns the orthogonal neighbours of (row, col).
func (s *Simulation) Neighbors(row, col int) []Coord {
	return s.grid.Neighbors(row, col)
}

// CurrentPlayer returns the player whose turn it is.
func (s *Simulation) CurrentPlayer() PlayerID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns.Current()
}

// Phase returns the turn manager's state.
func (s *Simulation) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns.Phase()
}

// Settling reports whether a cascade is waiting for Tick.
func (s *Simulation) Settling() bool {
	return s.Phase() == PhaseCascadeInProgress
}

// IsGameOver reports whether the session has a winner.
func (s *Simulation) IsGameOver() bool {
	return s.Phase() == PhaseGameOver
}

// Winner returns the winning player once the game is over.
func (s *Simulation) Winner() (PlayerID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns.Winner()
}

// TurnCount returns the number of accepted placements.
func (s *Simulation) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns.TurnCount()
}

// TotalOrbs returns the number of orbs on the board.
func (s *Simulation) TotalOrbs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.TotalOrbs()
}

// PendingExplosions returns the number of cells waiting to explode.
func (s *Simulation) PendingExplosions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cascade.Pending()
}

// Players returns one status per seat in seat order.
func (s *Simulation) Players() []PlayerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PlayerStatus, s.cfg.Players)
	for i := range out {
		p := PlayerID(i)
		out[i] = PlayerStatus{
			ID:         p,
			Cells:      s.grid.CellsOwned(p),
			Orbs:       s.grid.OrbsOwned(p),
			Current:    p == s.turns.Current() && s.turns.Phase() != PhaseGameOver,
			Eliminated: s.turns.IsEliminated(p, s.grid),
		}
	}
	return out
}

// Events returns a copy of the full event log.
func (s *Simulation) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.log)
}

// Moves returns a copy of the accepted placements in order.
func (s *Simulation) Moves() []Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.moves)
}

// Snapshot returns a copy of every cell in row-major order.
func (s *Simulation) Snapshot() []Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.grid.cells)
}

// Replay builds a fresh session and applies moves with PlaceOrb. It fails on
// the first move the session rejects.
func Replay(cfg Config, moves []Move) (*Simulation, error) {
	sim, err := New(cfg)
	if err != nil {
		return nil, err
	}
	for i, m := range moves {
		res := sim.PlaceOrb(m.Player, m.Row, m.Col)
		if !res.Accepted {
			return sim, fmt.Errorf("engine: move %d %v at %v: %s: %w",
				i, m.Player, At(m.Row, m.Col), res.Reason, ErrIllegalMove)
		}
	}
	return sim, nil
}
