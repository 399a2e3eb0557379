package engine

// Phase is the turn manager's state.
type Phase int

const (
	PhaseAwaitingPlacement Phase = iota // Waiting for the current player
	PhaseCascadeInProgress              // Explosions pending; placements rejected
	PhaseTurnSettled                    // Cascade drained; deciding win or next turn
	PhaseGameOver                       // Terminal
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPlacement:
		return "AwaitingPlacement"
	case PhaseCascadeInProgress:
		return "CascadeInProgress"
	case PhaseTurnSettled:
		return "TurnSettled"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// TurnManager tracks whose turn it is, counts placements and decides
// elimination and victory once a cascade has settled.
type TurnManager struct {
	numPlayers int
	current    PlayerID
	turnCount  int
	phase      Phase
	winner     PlayerID
}

func newTurnManager(numPlayers int) *TurnManager {
	return &TurnManager{
		numPlayers: numPlayers,
		current:    0,
		phase:      PhaseAwaitingPlacement,
		winner:     NoPlayer,
	}
}

// Current returns the player whose turn it is.
func (t *TurnManager) Current() PlayerID { return t.current }

// TurnCount returns the number of accepted placements.
func (t *TurnManager) TurnCount() int { return t.turnCount }

// Phase returns the current state.
func (t *TurnManager) Phase() Phase { return t.phase }

// Winner returns the winner once the game is over.
func (t *TurnManager) Winner() (PlayerID, bool) {
	return t.winner, t.phase == PhaseGameOver
}

// RoundComplete reports whether every player has placed at least once.
func (t *TurnManager) RoundComplete() bool {
	return t.turnCount >= t.numPlayers
}

// IsEliminated reports whether p is out: the first round is complete and p
// owns no cells.
func (t *TurnManager) IsEliminated(p PlayerID, g *Grid) bool {
	return t.RoundComplete() && g.CellsOwned(p) == 0
}

// decided returns the winner when the first round is complete and exactly
// one player owns cells.
func (t *TurnManager) decided(g *Grid) (PlayerID, bool) {
	if !t.RoundComplete() || g.OwnerCount() != 1 {
		return NoPlayer, false
	}
	return g.Owners()[0], true
}

// accepts reports whether a placement may be made now.
func (t *TurnManager) accepts() bool {
	return t.phase == PhaseAwaitingPlacement
}

// recordPlacement counts an accepted placement.
func (t *TurnManager) recordPlacement() {
	t.turnCount++
}

// beginCascade moves to CascadeInProgress.
func (t *TurnManager) beginCascade() {
	t.phase = PhaseCascadeInProgress
}

// settle finishes the turn: either the game is decided or play passes to
// the next player still in the game. It returns the event describing which.
func (t *TurnManager) settle(g *Grid) Event {
	t.phase = PhaseTurnSettled

	if w, ok := t.decided(g); ok {
		t.winner = w
		t.phase = PhaseGameOver
		return GameOver{Winner: w}
	}

	t.advance(g)
	t.phase = PhaseAwaitingPlacement
	return TurnChanged{Player: t.current}
}

// advance moves current to the next player cyclically, skipping
// eliminated players.
func (t *TurnManager) advance(g *Grid) {
	for range t.numPlayers {
		t.current = (t.current + 1) % PlayerID(t.numPlayers)
		if !t.IsEliminated(t.current, g) {
			return
		}
	}
}
