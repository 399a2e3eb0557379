package engine

import "fmt"

// Event is one entry of the simulation's ordered event stream.
// Consumers must handle events in emission order: every OrbMoved of a
// cascade precedes the TurnChanged or GameOver that settles it.
type Event interface {
	fmt.Stringer
	event()
}

// Placed is emitted when a placement is accepted.
type Placed struct {
	At     Coord
	Player PlayerID
}

func (Placed) event() {}

func (e Placed) String() string {
	return fmt.Sprintf("Placed%v by %v", e.At, e.Player)
}

// Exploded is emitted when a cell discharges. Player is the owner at the
// moment of explosion.
type Exploded struct {
	At     Coord
	Player PlayerID
}

func (Exploded) event() {}

func (e Exploded) String() string {
	return fmt.Sprintf("Exploded%v by %v", e.At, e.Player)
}

// OrbMoved is emitted for each orb an explosion hands to a neighbour.
type OrbMoved struct {
	From   Coord
	To     Coord
	Player PlayerID
}

func (OrbMoved) event() {}

func (e OrbMoved) String() string {
	return fmt.Sprintf("OrbMoved%v->%v by %v", e.From, e.To, e.Player)
}

// TurnChanged is emitted when play passes to the next player.
type TurnChanged struct {
	Player PlayerID
}

func (TurnChanged) event() {}

func (e TurnChanged) String() string {
	return fmt.Sprintf("TurnChanged to %v", e.Player)
}

// GameOver is emitted once, as the final event of a session.
type GameOver struct {
	Winner PlayerID
}

func (GameOver) event() {}

func (e GameOver) String() string {
	return fmt.Sprintf("GameOver winner %v", e.Winner)
}
