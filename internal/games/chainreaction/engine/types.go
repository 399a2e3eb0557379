// Package engine implements the chain reaction simulation: the cell grid,
// cascade propagation and the turn/elimination/win state machine.
// This package is UI-agnostic and deterministic.
package engine

import "fmt"

// PlayerID identifies a player seat, 0-based.
type PlayerID int

// NoPlayer marks an unowned cell.
const NoPlayer PlayerID = -1

// String returns "P1".."P9" for seats and "-" for NoPlayer.
func (p PlayerID) String() string {
	if p == NoPlayer {
		return "-"
	}
	return fmt.Sprintf("P%d", int(p)+1)
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
