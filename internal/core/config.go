package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to set up the session.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Platform ticks per second (default 30)

	Players int // Seats in the hot-seat session
	GridW   int // Grid columns; 0 lets the game pick from the screen size
	GridH   int // Grid rows

	CellW int // Characters per grid cell horizontally
	CellH int // Lines per grid cell

	ExplosionDelay time.Duration // Pause between two explosions of a cascade
	FlashDuration  time.Duration // How long an exploded cell stays highlighted
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:        80,
		ScreenH:        24,
		TickRate:       30,
		Players:        2,
		CellW:          5,
		CellH:          2,
		ExplosionDelay: 150 * time.Millisecond,
		FlashDuration:  150 * time.Millisecond,
	}
}

// TickInterval returns the wall-clock duration of one platform tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Placements int  // Accepted placements so far
	Winner     int  // Winning seat, -1 while undecided
	Settling   bool // A cascade is being animated
	GameOver   bool // Whether the game has ended
	Paused     bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State GameState
}
