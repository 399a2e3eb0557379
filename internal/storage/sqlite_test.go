package storage

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/chain-reaction/internal/core"
	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// twoByTwo is a complete 2-player game on a 2x2 board won by seat 1.
func twoByTwo() core.MatchRecord {
	return core.MatchRecord{
		GameID:  "chainreaction",
		Players: 2,
		Width:   2,
		Height:  2,
		Winner:  1,
		Moves: []core.Move{
			{Player: 0, Row: 0, Col: 0},
			{Player: 1, Row: 1, Col: 1},
			{Player: 0, Row: 0, Col: 0},
			{Player: 1, Row: 1, Col: 1},
		},
		Duration: 95 * time.Second,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndLoadMatch(t *testing.T) {
	store := openTestStore(t)
	rec := twoByTwo()

	id, err := store.SaveMatch(rec)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a uuid, got %q", id)
	}

	m, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m.ID != id || m.GameID != rec.GameID {
		t.Errorf("identity mismatch: %+v", m)
	}
	if m.Players != 2 || m.Width != 2 || m.Height != 2 || m.Winner != 1 {
		t.Errorf("setup mismatch: %+v", m)
	}
	if m.Placements != 4 {
		t.Errorf("placements = %d, expected 4", m.Placements)
	}
	if !slices.Equal(m.Moves, rec.Moves) {
		t.Errorf("moves = %v, expected %v", m.Moves, rec.Moves)
	}
	if m.Duration != 95*time.Second {
		t.Errorf("duration = %v", m.Duration)
	}
	if m.CreatedAt.IsZero() {
		t.Error("created_at was not set")
	}

	// A unique prefix resolves too
	byPrefix, err := store.MatchByID(id[:8])
	if err != nil {
		t.Fatalf("MatchByID(prefix) failed: %v", err)
	}
	if byPrefix.ID != id {
		t.Errorf("prefix lookup returned %s", byPrefix.ID)
	}
}

func TestMatchByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"", "does-not-exist"} {
		if _, err := store.MatchByID(id); !errors.Is(err, ErrMatchNotFound) {
			t.Errorf("MatchByID(%q) error = %v, expected ErrMatchNotFound", id, err)
		}
	}
}

func TestMatchByIDWildcardsAreLiteral(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(twoByTwo())
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	for _, prefix := range []string{"%", "_", "__", id[:2] + "%", "_" + id[1:4]} {
		if _, err := store.MatchByID(prefix); !errors.Is(err, ErrMatchNotFound) {
			t.Errorf("MatchByID(%q) error = %v, expected ErrMatchNotFound", prefix, err)
		}
	}

	m, err := store.MatchByID(id[:4])
	if err != nil {
		t.Fatalf("MatchByID(%q) failed: %v", id[:4], err)
	}
	if m.ID != id {
		t.Errorf("MatchByID(%q) = %s, expected %s", id[:4], m.ID, id)
	}
}

func TestStoredMovesReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(twoByTwo())
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	m, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}

	moves := make([]engine.Move, len(m.Moves))
	for i, mv := range m.Moves {
		moves[i] = engine.Move{Player: engine.PlayerID(mv.Player), Row: mv.Row, Col: mv.Col}
	}
	sim, err := engine.Replay(engine.Config{Players: m.Players, Width: m.Width, Height: m.Height}, moves)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	w, ok := sim.Winner()
	if !ok || int(w) != m.Winner {
		t.Errorf("replayed winner = %v (%v), stored %d", w, ok, m.Winner)
	}
}

func TestRecentMatches(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := range 5 {
		rec := twoByTwo()
		rec.Winner = i % 2
		id, err := store.SaveMatch(rec)
		if err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
		ids = append(ids, id)
	}

	recent, err := store.RecentMatches(3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(recent))
	}
	// Newest first
	for i, m := range recent {
		if want := ids[len(ids)-1-i]; m.ID != want {
			t.Errorf("recent[%d] = %s, expected %s", i, m.ID, want)
		}
	}

	all, err := store.RecentMatches(0)
	if err != nil {
		t.Fatalf("RecentMatches(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("default limit returned %d matches, expected 5", len(all))
	}
}

func TestWinsBySeatAndSummary(t *testing.T) {
	store := openTestStore(t)

	winners := []int{0, 2, 0, 1, 0}
	for i, w := range winners {
		rec := twoByTwo()
		rec.Players = 3
		rec.Winner = w
		rec.Moves = rec.Moves[:i%4+1]
		if _, err := store.SaveMatch(rec); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	wins, err := store.WinsBySeat()
	if err != nil {
		t.Fatalf("WinsBySeat() failed: %v", err)
	}
	expected := []SeatWins{{Seat: 0, Wins: 3}, {Seat: 1, Wins: 1}, {Seat: 2, Wins: 1}}
	if !slices.Equal(wins, expected) {
		t.Errorf("WinsBySeat() = %v, expected %v", wins, expected)
	}

	sum, err := store.Summarize()
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	// Placements 1, 2, 3, 4, 1
	if sum.Matches != 5 || sum.MostPlacements != 4 || sum.AvgPlacements != 2.2 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.LastPlayed.IsZero() {
		t.Error("last played was not set")
	}

	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}
	sum, err = store.Summarize()
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if sum.Matches != 0 {
		t.Errorf("expected no matches after clear, got %d", sum.Matches)
	}
}
