package board

import (
	"fmt"
	"strings"
)

// WinScore is the material swing beyond which one side is considered to have
// lost its king. A king outweighs every other piece combined, so only a king
// capture pushes the value past it.
const WinScore = 5000

// Board is the 8x8 grid of piece codes, indexed [x][y], together with the
// running material value. The value always equals the sum of all codes on
// the grid; Apply and Undo keep it in step incrementally.
type Board struct {
	squares [Size][Size]Piece
	value   int
}

// NewBoard creates a board with the starting layout.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// NewEmptyBoard creates a board without any pieces.
func NewEmptyBoard() *Board {
	return &Board{}
}

// Reset restores the starting layout: Player pieces on ranks 0-1,
// Computer pieces on ranks 6-7. The armies mirror each other so the
// material value starts at zero.
func (b *Board) Reset() {
	b.Clear()
	for x := 0; x < Size; x++ {
		b.squares[x][1] = -Pawn
		b.squares[x][6] = Pawn
		b.squares[x][0] = -backRank[x]
		b.squares[x][7] = backRank[x]
	}
}

// Clear removes every piece.
func (b *Board) Clear() {
	*b = Board{}
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Equal reports whether both boards hold the same grid and material value.
func (b *Board) Equal(o *Board) bool {
	return b.squares == o.squares && b.value == o.value
}

// Piece returns the code at pos. pos must be on the board.
func (b *Board) Piece(pos Position) Piece {
	return b.squares[pos.X][pos.Y]
}

// setPiece writes a code without touching the material value.
func (b *Board) setPiece(pos Position, piece Piece) {
	b.squares[pos.X][pos.Y] = piece
}

// Place puts piece on pos for position setup, adjusting the material value
// so the invariant keeps holding.
func (b *Board) Place(pos Position, piece Piece) {
	b.value += int(piece) - int(b.Piece(pos))
	b.setPiece(pos, piece)
}

// TeamOf returns the owner of the piece at pos.
func (b *Board) TeamOf(pos Position) Team {
	return b.Piece(pos).Team()
}

// IsEmpty returns true if no piece stands on pos.
func (b *Board) IsEmpty(pos Position) bool {
	return b.Piece(pos) == Empty
}

// IsEnemy returns true if the piece on pos belongs to the opponent of team.
func (b *Board) IsEnemy(pos Position, team Team) bool {
	return b.TeamOf(pos)+team == 0 && team != Neutral
}

// Value returns the running material value. Positive favours the Computer.
func (b *Board) Value() int {
	return b.value
}

// MaterialSum recomputes the material value from the grid.
func (b *Board) MaterialSum() int {
	sum := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			sum += int(b.squares[x][y])
		}
	}
	return sum
}

// Apply plays m on the board.
//
// m.Removed carries the sign of the captured piece, so subtracting it always
// moves the value away from the side that lost material.
func (b *Board) Apply(m Move) {
	if m.IsPromotion() {
		team := b.TeamOf(m.From)
		b.setPiece(m.To, Queen*Piece(team))
		b.setPiece(m.From, Empty)
		b.value += int(Queen-Pawn) * int(team)
		b.value -= int(m.Removed)
		return
	}

	piece := b.Piece(m.From)
	b.setPiece(m.From, Empty)
	b.setPiece(m.To, piece)
	b.value -= int(m.Removed)
}

// Undo takes back m, which must be the last move applied.
func (b *Board) Undo(m Move) {
	if m.IsPromotion() {
		// The mover's team is read from the queen now standing on To.
		team := b.TeamOf(m.To)
		b.setPiece(m.From, Pawn*Piece(team))
		b.setPiece(m.To, m.Removed)
		b.value -= int(Queen-Pawn) * int(team)
		b.value += int(m.Removed)
		return
	}

	b.setPiece(m.From, b.Piece(m.To))
	b.setPiece(m.To, m.Removed)
	b.value += int(m.Removed)
}

// Probe applies m, runs fn and undoes m before returning fn's result.
// The undo is deferred so it also runs if fn panics.
func (b *Board) Probe(m Move, fn func() int) int {
	b.Apply(m)
	defer b.Undo(m)
	return fn()
}

// Winner returns the team that has captured the opposing king, or Neutral.
func (b *Board) Winner() Team {
	if b.value > WinScore {
		return Computer
	}
	if b.value < -WinScore {
		return Player
	}
	return Neutral
}

// GameOver returns true once a king has been taken.
func (b *Board) GameOver() bool {
	return b.Winner() != Neutral
}

// String returns a visual representation of the board, rank 7 on top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for y := Size - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%d  ", y)
		for x := 0; x < Size; x++ {
			sb.WriteByte(b.squares[x][y].Char())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   0 1 2 3 4 5 6 7\n\n")
	fmt.Fprintf(&sb, "Value: %d\n", b.value)
	return sb.String()
}
