package engine

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Cascade resolves chain reactions one discharge at a time.
//
// Cells wait in a FIFO queue in the order they first became overloaded. A
// cell is queued at most once while pending; orbs it receives meanwhile
// accumulate and are checked again after it discharges, when any surplus
// at or above critical mass sends it to the back of the queue.
type Cascade struct {
	grid    *Grid
	queue   *queue.Queue[Coord]
	pending mapset.Set[Coord]
	steps   int
}

func newCascade(g *Grid) *Cascade {
	return &Cascade{
		grid:    g,
		queue:   queue.New[Coord](),
		pending: mapset.New[Coord](),
	}
}

// Seed starts a cascade at an overloaded cell.
func (c *Cascade) Seed(at Coord) {
	c.steps = 0
	c.enqueue(at)
}

func (c *Cascade) enqueue(at Coord) {
	if c.pending.Has(at) {
		return
	}
	c.pending.Put(at)
	c.queue.Enqueue(at)
}

// Active reports whether explosions are still pending.
func (c *Cascade) Active() bool {
	return !c.queue.Empty()
}

// Pending returns the number of queued cells.
func (c *Cascade) Pending() int {
	return c.pending.Size()
}

// Steps returns the number of explosions resolved since the last Seed.
func (c *Cascade) Steps() int {
	return c.steps
}

// Step discharges the cell at the front of the queue and distributes its
// orbs to the neighbours under the exploding player's identity. It returns
// the Exploded event followed by one OrbMoved per neighbour.
func (c *Cascade) Step() []Event {
	if c.queue.Empty() {
		return nil
	}
	at := c.queue.Dequeue()
	c.pending.Remove(at)

	neighbors := c.grid.neighbors[c.grid.index(at.Row, at.Col)]
	events := make([]Event, 0, 1+len(neighbors))

	owner := c.grid.cell(at).owner
	events = append(events, Exploded{At: at, Player: owner})
	c.grid.discharge(at)

	for _, n := range neighbors {
		target := c.grid.applyOrb(n, owner)
		events = append(events, OrbMoved{From: at, To: n, Player: owner})
		if target.Overloaded() {
			c.enqueue(n)
		}
	}

	if c.grid.cell(at).Overloaded() {
		c.enqueue(at)
	}

	c.steps++
	return events
}

// Discard drops every pending explosion. Used once the game is decided.
func (c *Cascade) Discard() {
	c.queue = queue.New[Coord]()
	c.pending.Clear()
}
