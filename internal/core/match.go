package core

import "time"

// Move is one accepted placement as stored in match history.
type Move struct {
	Player int `msgpack:"p"`
	Row    int `msgpack:"r"`
	Col    int `msgpack:"c"`
}

// MatchRecord describes a finished match for persistence and replay.
type MatchRecord struct {
	GameID   string
	Players  int
	Width    int
	Height   int
	Winner   int
	Moves    []Move
	Duration time.Duration
}

// Placements returns the number of accepted placements in the match.
func (r MatchRecord) Placements() int {
	return len(r.Moves)
}
