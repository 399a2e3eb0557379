package engine

import (
	"fmt"
	"slices"
)

// Grid is the fixed-size board. Cells are stored in row-major order:
// index = row*width + col. Neighbour lists are computed once at construction.
//
// The grid keeps per-player cell and orb tallies up to date on every
// mutation, so ownership questions never need a full scan.
type Grid struct {
	width     int
	height    int
	cells     []Cell
	neighbors [][]Coord

	cellsOwned map[PlayerID]int
	orbsOwned  map[PlayerID]int
	totalOrbs  int
}

// NewGrid creates an empty grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:      width,
		height:     height,
		cells:      make([]Cell, width*height),
		neighbors:  make([][]Coord, width*height),
		cellsOwned: make(map[PlayerID]int),
		orbsOwned:  make(map[PlayerID]int),
	}
	for row := range height {
		for col := range width {
			i := g.index(row, col)
			g.cells[i] = newCell(row, col, criticalMassAt(row, col, width, height))
			g.neighbors[i] = g.computeNeighbors(row, col)
		}
	}
	return g
}

// computeNeighbors lists the orthogonal neighbours in row-major order:
// up, left, right, down.
func (g *Grid) computeNeighbors(row, col int) []Coord {
	out := make([]Coord, 0, 4)
	if row > 0 {
		out = append(out, Coord{Row: row - 1, Col: col})
	}
	if col > 0 {
		out = append(out, Coord{Row: row, Col: col - 1})
	}
	if col < g.width-1 {
		out = append(out, Coord{Row: row, Col: col + 1})
	}
	if row < g.height-1 {
		out = append(out, Coord{Row: row + 1, Col: col})
	}
	return out
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// index converts a position to a flat array index.
func (g *Grid) index(row, col int) int {
	return row*g.width + col
}

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// CellAt returns a copy of the cell at (row, col).
// The second result is false when the position is off the grid.
func (g *Grid) CellAt(row, col int) (Cell, bool) {
	if !g.InBounds(row, col) {
		return Cell{}, false
	}
	return g.cells[g.index(row, col)], true
}

func (g *Grid) cell(at Coord) *Cell {
	return &g.cells[g.index(at.Row, at.Col)]
}

// Neighbors returns the 2-4 orthogonal neighbours of (row, col), or nil when
// the position is off the grid.
func (g *Grid) Neighbors(row, col int) []Coord {
	if !g.InBounds(row, col) {
		return nil
	}
	return slices.Clone(g.neighbors[g.index(row, col)])
}

// IsLegalTarget reports whether p may place an orb into c.
func IsLegalTarget(c Cell, p PlayerID) bool {
	return c.owner == NoPlayer || c.owner == p
}

// applyOrb adds one orb owned by p to the cell at the given position and
// returns the updated cell.
func (g *Grid) applyOrb(at Coord, p PlayerID) Cell {
	c := g.cell(at)
	if c.owner != NoPlayer {
		g.untally(c.owner, c.orbs)
	}
	c.applyOrb(p)
	g.cellsOwned[p]++
	g.orbsOwned[p] += c.orbs
	g.totalOrbs++
	return *c
}

// discharge explodes the cell at the given position and returns the player
// that owned it. It panics when the cell is below critical mass: that would
// destroy orbs and means a caller broke the cascade contract.
func (g *Grid) discharge(at Coord) PlayerID {
	c := g.cell(at)
	if c.orbs < c.criticalMass {
		panic(fmt.Sprintf("engine: discharge of %v below critical mass (%d < %d)", at, c.orbs, c.criticalMass))
	}
	owner := c.owner
	g.untally(owner, c.orbs)
	c.discharge()
	if c.orbs > 0 {
		g.cellsOwned[owner]++
		g.orbsOwned[owner] += c.orbs
	}
	g.totalOrbs -= c.criticalMass
	return owner
}

// untally removes one cell holding orbs from p's tallies.
func (g *Grid) untally(p PlayerID, orbs int) {
	g.cellsOwned[p]--
	g.orbsOwned[p] -= orbs
	if g.cellsOwned[p] == 0 {
		delete(g.cellsOwned, p)
		delete(g.orbsOwned, p)
	}
}

// CellsOwned returns how many cells p currently owns.
func (g *Grid) CellsOwned(p PlayerID) int {
	return g.cellsOwned[p]
}

// OrbsOwned returns how many orbs p currently has on the board.
func (g *Grid) OrbsOwned(p PlayerID) int {
	return g.orbsOwned[p]
}

// TotalOrbs returns the number of orbs on the board.
func (g *Grid) TotalOrbs() int {
	return g.totalOrbs
}

// Owners returns the distinct owners of occupied cells in ascending order.
func (g *Grid) Owners() []PlayerID {
	owners := make([]PlayerID, 0, len(g.cellsOwned))
	for p := range g.cellsOwned {
		owners = append(owners, p)
	}
	slices.Sort(owners)
	return owners
}

// OwnerCount returns the number of distinct owners of occupied cells.
func (g *Grid) OwnerCount() int {
	return len(g.cellsOwned)
}

// Overloaded returns every cell at or above critical mass, row-major.
// Between cascades this is empty.
func (g *Grid) Overloaded() []Coord {
	var out []Coord
	for _, c := range g.cells {
		if c.Overloaded() {
			out = append(out, c.Coord())
		}
	}
	return out
}

// Each calls fn with a copy of every cell in row-major order.
func (g *Grid) Each(fn func(c Cell)) {
	for _, c := range g.cells {
		fn(c)
	}
}

// Edges returns the number of orthogonal adjacencies on the grid.
func (g *Grid) Edges() int {
	return edgeCount(g.width, g.height)
}

func edgeCount(width, height int) int {
	return width*(height-1) + height*(width-1)
}
