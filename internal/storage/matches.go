package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/chain-reaction/internal/core"
)

var (
	// ErrMatchNotFound is returned when no stored match has the requested ID.
	ErrMatchNotFound = errors.New("match not found")
	// ErrAmbiguousID is returned when an ID prefix matches several matches.
	ErrAmbiguousID = errors.New("ambiguous match id")
)

// Match is a finished match as stored in history.
type Match struct {
	ID         string
	GameID     string
	Players    int
	Width      int
	Height     int
	Winner     int
	Placements int
	Moves      []core.Move
	Duration   time.Duration
	CreatedAt  time.Time
}

// Record converts the stored match back into a replayable record.
func (m Match) Record() core.MatchRecord {
	return core.MatchRecord{
		GameID:   m.GameID,
		Players:  m.Players,
		Width:    m.Width,
		Height:   m.Height,
		Winner:   m.Winner,
		Moves:    m.Moves,
		Duration: m.Duration,
	}
}

// SeatWins counts the matches won by one seat.
type SeatWins struct {
	Seat int
	Wins int
}

// Summary contains aggregated statistics over the stored matches.
type Summary struct {
	Matches        int
	AvgPlacements  float64
	MostPlacements int
	LastPlayed     time.Time
}

const matchColumns = `id, game_id, players, width, height, winner, placements, moves, duration_secs, created_at`

// SaveMatch records a finished match and returns its generated ID.
// The placement log is stored as a msgpack blob.
func (s *Store) SaveMatch(rec core.MatchRecord) (string, error) {
	moves, err := msgpack.Marshal(rec.Moves)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode moves: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO matches
		 (id, game_id, players, width, height, winner, placements, moves, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.GameID,
		rec.Players,
		rec.Width,
		rec.Height,
		rec.Winner,
		rec.Placements(),
		moves,
		int64(rec.Duration/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return id, nil
}

// MatchByID retrieves a match by its full ID or by a unique prefix of it.
func (s *Store) MatchByID(id string) (*Match, error) {
	if id == "" {
		return nil, fmt.Errorf("storage: %w: empty id", ErrMatchNotFound)
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE substr(id, 1, length(?)) = ?
		 ORDER BY id = ? DESC
		 LIMIT 2`,
		id, id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("storage: %w: %s", ErrMatchNotFound, id)
	case matches[0].ID == id, len(matches) == 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("storage: %w: %s", ErrAmbiguousID, id)
	}
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// WinsBySeat returns how many matches each seat has won, by seat number.
func (s *Store) WinsBySeat() ([]SeatWins, error) {
	rows, err := s.db.Query(
		`SELECT winner, COUNT(*)
		 FROM matches
		 GROUP BY winner
		 ORDER BY winner`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wins: %w", err)
	}
	defer rows.Close()

	var wins []SeatWins
	for rows.Next() {
		var w SeatWins
		if err := rows.Scan(&w.Seat, &w.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		wins = append(wins, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return wins, nil
}

// Summarize aggregates statistics over all stored matches.
func (s *Store) Summarize() (*Summary, error) {
	sum := &Summary{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(placements), 0), COALESCE(MAX(placements), 0), MAX(created_at)
		 FROM matches`,
	).Scan(&sum.Matches, &sum.AvgPlacements, &sum.MostPlacements, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize matches: %w", err)
	}
	sum.LastPlayed = parseTime(lastPlayed)
	return sum, nil
}

// ClearMatches deletes all stored matches.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

func scanMatches(rows *sql.Rows) ([]Match, error) {
	var matches []Match
	for rows.Next() {
		var (
			m         Match
			moves     []byte
			secs      int64
			createdAt any
		)
		if err := rows.Scan(
			&m.ID,
			&m.GameID,
			&m.Players,
			&m.Width,
			&m.Height,
			&m.Winner,
			&m.Placements,
			&moves,
			&secs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if err := msgpack.Unmarshal(moves, &m.Moves); err != nil {
			return nil, fmt.Errorf("storage: cannot decode moves of %s: %w", m.ID, err)
		}
		m.Duration = time.Duration(secs) * time.Second
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return matches, nil
}
