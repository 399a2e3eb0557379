package engine

import (
	"slices"
	"testing"
)

func TestCriticalMass(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		expected [][]int
	}{
		{
			name:   "3x3",
			width:  3,
			height: 3,
			expected: [][]int{
				{2, 3, 2},
				{3, 4, 3},
				{2, 3, 2},
			},
		},
		{
			name:   "5x5",
			width:  5,
			height: 5,
			expected: [][]int{
				{2, 3, 3, 3, 2},
				{3, 4, 4, 4, 3},
				{3, 4, 4, 4, 3},
				{3, 4, 4, 4, 3},
				{2, 3, 3, 3, 2},
			},
		},
		{
			name:   "2x2 all corners",
			width:  2,
			height: 2,
			expected: [][]int{
				{2, 2},
				{2, 2},
			},
		},
		{
			name:     "1x5 horizontal strip",
			width:    5,
			height:   1,
			expected: [][]int{{1, 2, 2, 2, 1}},
		},
		{
			name:     "4x1 vertical strip",
			width:    1,
			height:   4,
			expected: [][]int{{1}, {2}, {2}, {1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(tc.width, tc.height)
			for row := range tc.height {
				for col := range tc.width {
					c, ok := g.CellAt(row, col)
					if !ok {
						t.Fatalf("CellAt(%d,%d) out of bounds", row, col)
					}
					if c.CriticalMass() != tc.expected[row][col] {
						t.Errorf("critical mass at (%d,%d) = %d, expected %d",
							row, col, c.CriticalMass(), tc.expected[row][col])
					}
					// Capacity always equals the neighbour count
					if n := len(g.Neighbors(row, col)); n != c.CriticalMass() {
						t.Errorf("(%d,%d) has %d neighbours but critical mass %d",
							row, col, n, c.CriticalMass())
					}
				}
			}
		})
	}
}

func TestNeighborsOrder(t *testing.T) {
	g := NewGrid(3, 3)

	tests := []struct {
		name     string
		at       Coord
		expected []Coord
	}{
		{"top-left corner", At(0, 0), []Coord{At(0, 1), At(1, 0)}},
		{"top edge", At(0, 1), []Coord{At(0, 0), At(0, 2), At(1, 1)}},
		{"center", At(1, 1), []Coord{At(0, 1), At(1, 0), At(1, 2), At(2, 1)}},
		{"bottom-right corner", At(2, 2), []Coord{At(1, 2), At(2, 1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Neighbors(tc.at.Row, tc.at.Col)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("Neighbors(%v) = %v, expected %v", tc.at, got, tc.expected)
			}
		})
	}

	if got := g.Neighbors(3, 0); got != nil {
		t.Errorf("Neighbors off grid = %v, expected nil", got)
	}
}

func TestNeighborsReturnsCopy(t *testing.T) {
	g := NewGrid(3, 3)
	n := g.Neighbors(1, 1)
	n[0] = At(9, 9)

	if got := g.Neighbors(1, 1); got[0] != At(0, 1) {
		t.Errorf("neighbour cache was mutated through returned slice: %v", got)
	}
}

func TestCellAtOutOfBounds(t *testing.T) {
	g := NewGrid(4, 3)
	for _, at := range []Coord{At(-1, 0), At(0, -1), At(3, 0), At(0, 4)} {
		if _, ok := g.CellAt(at.Row, at.Col); ok {
			t.Errorf("CellAt(%v) should be out of bounds", at)
		}
	}
}

func TestIsLegalTarget(t *testing.T) {
	g := NewGrid(3, 3)
	g.applyOrb(At(0, 0), 1)

	empty, _ := g.CellAt(1, 1)
	owned, _ := g.CellAt(0, 0)

	tests := []struct {
		name     string
		cell     Cell
		player   PlayerID
		expected bool
	}{
		{"empty cell", empty, 0, true},
		{"own cell", owned, 1, true},
		{"opponent cell", owned, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsLegalTarget(tc.cell, tc.player); got != tc.expected {
				t.Errorf("IsLegalTarget() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestApplyOrbTransfersOwnership(t *testing.T) {
	g := NewGrid(3, 3)
	g.applyOrb(At(1, 1), 0)
	g.applyOrb(At(1, 1), 0)
	c := g.applyOrb(At(1, 1), 2)

	if c.Orbs() != 3 {
		t.Errorf("expected 3 orbs, got %d", c.Orbs())
	}
	if c.Owner() != 2 {
		t.Errorf("expected owner P3, got %v", c.Owner())
	}
	if g.CellsOwned(0) != 0 || g.OrbsOwned(0) != 0 {
		t.Errorf("P1 tallies not cleared: cells=%d orbs=%d", g.CellsOwned(0), g.OrbsOwned(0))
	}
	if g.CellsOwned(2) != 1 || g.OrbsOwned(2) != 3 {
		t.Errorf("P3 tallies: cells=%d orbs=%d, expected 1 and 3", g.CellsOwned(2), g.OrbsOwned(2))
	}
	if g.OwnerCount() != 1 {
		t.Errorf("expected 1 owner, got %d", g.OwnerCount())
	}
}

func TestDischarge(t *testing.T) {
	g := NewGrid(3, 3)

	// Corner with surplus keeps the residual orb and its owner
	for range 3 {
		g.applyOrb(At(0, 0), 1)
	}
	if owner := g.discharge(At(0, 0)); owner != 1 {
		t.Errorf("discharge returned %v, expected P2", owner)
	}
	c, _ := g.CellAt(0, 0)
	if c.Orbs() != 1 || c.Owner() != 1 {
		t.Errorf("after surplus discharge: orbs=%d owner=%v", c.Orbs(), c.Owner())
	}

	// Exact discharge clears the owner
	g.applyOrb(At(0, 0), 1)
	g.discharge(At(0, 0))
	c, _ = g.CellAt(0, 0)
	if !c.Empty() || c.Owner() != NoPlayer {
		t.Errorf("after exact discharge: orbs=%d owner=%v", c.Orbs(), c.Owner())
	}
	if g.TotalOrbs() != 0 {
		t.Errorf("expected 0 orbs on board, got %d", g.TotalOrbs())
	}
	if g.OwnerCount() != 0 {
		t.Errorf("expected no owners, got %v", g.Owners())
	}
}

func TestDischargeBelowCriticalMassPanics(t *testing.T) {
	g := NewGrid(3, 3)
	g.applyOrb(At(1, 1), 0)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on discharge below critical mass")
		}
	}()
	g.discharge(At(1, 1))
}

func TestCellCritical(t *testing.T) {
	g := NewGrid(3, 3)
	g.applyOrb(At(0, 1), 0)
	c, _ := g.CellAt(0, 1)
	if c.Critical() {
		t.Error("edge cell with 1 orb should not be critical")
	}
	c = g.applyOrb(At(0, 1), 0)
	if !c.Critical() {
		t.Error("edge cell with 2 orbs should be critical")
	}
	c = g.applyOrb(At(0, 1), 0)
	if c.Critical() || !c.Overloaded() {
		t.Error("edge cell with 3 orbs should be overloaded, not critical")
	}
}

func TestEdges(t *testing.T) {
	tests := []struct {
		width, height int
		expected      int
	}{
		{2, 2, 4},
		{3, 3, 12},
		{3, 2, 7},
		{5, 1, 4},
		{1, 2, 1},
	}
	for _, tc := range tests {
		if got := NewGrid(tc.width, tc.height).Edges(); got != tc.expected {
			t.Errorf("Edges(%dx%d) = %d, expected %d", tc.width, tc.height, got, tc.expected)
		}
	}
}
