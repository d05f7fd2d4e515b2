// Package board implements the signed-code board, its move generator and
// the apply/undo protocol the search relies on.
package board

import "fmt"

// Size is the number of files (and ranks) on the board.
const Size = 8

// Position is a square on the board addressed by file (X) and rank (Y), both 0-7.
// Rank 0 is the Player's back rank, rank 7 the Computer's.
type Position struct {
	X int
	Y int
}

// NewPosition creates a position from file and rank.
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// IsOnMap returns true if the position lies on the 8x8 board.
func (p Position) IsOnMap() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// Offset returns the position shifted by (dx, dy). The result may be off the board.
func (p Position) Offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Mirror returns the position reflected across the centre file.
func (p Position) Mirror() Position {
	return Position{X: Size - 1 - p.X, Y: p.Y}
}

// String returns the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
