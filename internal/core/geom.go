// Package core provides fundamental types and utilities for the game
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Point is a screen position in characters.
type Point struct {
	X, Y int
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// GridLayout places a rows x cols board on the screen. Each cell is CellW
// characters wide and CellH lines tall, separated by one-character borders.
type GridLayout struct {
	Origin Point
	Rows   int
	Cols   int
	CellW  int
	CellH  int
}

// Bounds returns the rectangle covering the board including its borders.
func (l GridLayout) Bounds() Rect {
	return NewRect(l.Origin.X, l.Origin.Y, l.Cols*(l.CellW+1)+1, l.Rows*(l.CellH+1)+1)
}

// CellRect returns the interior of cell (row, col), excluding borders.
func (l GridLayout) CellRect(row, col int) Rect {
	return NewRect(
		l.Origin.X+1+col*(l.CellW+1),
		l.Origin.Y+1+row*(l.CellH+1),
		l.CellW,
		l.CellH,
	)
}

// CellAt maps a screen position to the cell under it. Borders and
// positions off the board report false.
func (l GridLayout) CellAt(x, y int) (row, col int, ok bool) {
	dx := x - l.Origin.X - 1
	dy := y - l.Origin.Y - 1
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	col, cx := dx/(l.CellW+1), dx%(l.CellW+1)
	row, cy := dy/(l.CellH+1), dy%(l.CellH+1)
	if row >= l.Rows || col >= l.Cols || cx == l.CellW || cy == l.CellH {
		return 0, 0, false
	}
	return row, col, true
}

// FitCells returns how many cells of the given size fit in the available
// width and height, borders included.
func FitCells(availW, availH, cellW, cellH int) (cols, rows int) {
	cols = max(0, (availW-1)/(cellW+1))
	rows = max(0, (availH-1)/(cellH+1))
	return cols, rows
}
