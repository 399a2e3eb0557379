package engine

// Cell is a single grid square. Its critical mass is fixed when the grid is
// built; orbs and owner change only through the grid.
type Cell struct {
	row          int
	col          int
	orbs         int
	owner        PlayerID
	criticalMass int
}

func newCell(row, col, criticalMass int) Cell {
	return Cell{
		row:          row,
		col:          col,
		owner:        NoPlayer,
		criticalMass: criticalMass,
	}
}

// Row returns the cell's row.
func (c Cell) Row() int { return c.row }

// Col returns the cell's column.
func (c Cell) Col() int { return c.col }

// Coord returns the cell's position.
func (c Cell) Coord() Coord { return Coord{Row: c.row, Col: c.col} }

// Orbs returns the number of resident orbs.
func (c Cell) Orbs() int { return c.orbs }

// Owner returns the owning player, or NoPlayer when the cell is empty.
func (c Cell) Owner() PlayerID { return c.owner }

// CriticalMass returns the orb count at which the cell explodes.
func (c Cell) CriticalMass() int { return c.criticalMass }

// Empty reports whether the cell holds no orbs.
func (c Cell) Empty() bool { return c.orbs == 0 }

// Overloaded reports whether the cell has reached its critical mass.
func (c Cell) Overloaded() bool { return c.orbs >= c.criticalMass }

// Critical reports whether one more orb would make the cell explode.
func (c Cell) Critical() bool { return c.orbs > 0 && c.orbs == c.criticalMass-1 }

// applyOrb adds one orb and hands the cell to p, whoever owned it before.
func (c *Cell) applyOrb(p PlayerID) {
	c.orbs++
	c.owner = p
}

// discharge removes critical mass worth of orbs. Residual orbs stay with the
// current owner. Callers guarantee orbs >= criticalMass.
func (c *Cell) discharge() {
	c.orbs -= c.criticalMass
	if c.orbs == 0 {
		c.owner = NoPlayer
	}
}

// criticalMassAt returns the capacity of the cell at (row, col): the number
// of orthogonal neighbours. That is 2 for corners, 3 for the rest of the
// border and 4 inside. On a single-row or single-column strip it drops to 1
// at the ends and 2 in between, so a discharge always hands out exactly the
// orbs it removes.
func criticalMassAt(row, col, width, height int) int {
	n := 0
	if row > 0 {
		n++
	}
	if row < height-1 {
		n++
	}
	if col > 0 {
		n++
	}
	if col < width-1 {
		n++
	}
	return n
}
