package board

// Team identifies the owner of a piece. The numeric value doubles as the sign
// of that team's piece codes.
type Team int

const (
	Player   Team = -1
	Neutral  Team = 0
	Computer Team = 1
)

// Opponent returns the other team. Neutral has no opponent.
func (t Team) Opponent() Team {
	return -t
}

// String returns the team name.
func (t Team) String() string {
	switch t {
	case Player:
		return "Player"
	case Computer:
		return "Computer"
	default:
		return "Neutral"
	}
}

// Piece is a signed piece code. The magnitude selects the kind and is also
// the piece's material value; the sign selects the team.
type Piece int

// Piece kinds, expressed as their material values.
const (
	Empty  Piece = 0
	Pawn   Piece = 3
	Bishop Piece = 9
	Knight Piece = 10
	Rook   Piece = 15
	Queen  Piece = 27
	King   Piece = 10000
)

// backRank is the piece order along ranks 0 and 7, indexed by file.
var backRank = [Size]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPiece returns the code for a piece of the given kind owned by team.
func NewPiece(kind Piece, team Team) Piece {
	return kind.Kind() * Piece(team)
}

// Kind returns the unsigned piece kind.
func (p Piece) Kind() Piece {
	if p < 0 {
		return -p
	}
	return p
}

// Team returns the owner of the piece, Neutral for an empty square.
func (p Piece) Team() Team {
	switch {
	case p < 0:
		return Player
	case p > 0:
		return Computer
	default:
		return Neutral
	}
}

// Char returns the diagram letter for the piece.
// Uppercase for the Computer, lowercase for the Player, '.' for empty.
func (p Piece) Char() byte {
	var c byte
	switch p.Kind() {
	case Pawn:
		c = 'p'
	case Bishop:
		c = 'b'
	case Knight:
		c = 'n'
	case Rook:
		c = 'r'
	case Queen:
		c = 'q'
	case King:
		c = 'k'
	default:
		return '.'
	}
	if p > 0 {
		c -= 'a' - 'A'
	}
	return c
}

// String returns the piece name prefixed with its team.
func (p Piece) String() string {
	var name string
	switch p.Kind() {
	case Empty:
		return "Empty"
	case Pawn:
		name = "Pawn"
	case Bishop:
		name = "Bishop"
	case Knight:
		name = "Knight"
	case Rook:
		name = "Rook"
	case Queen:
		name = "Queen"
	case King:
		name = "King"
	default:
		name = "Unknown"
	}
	return p.Team().String() + " " + name
}

// PieceFromChar converts a diagram letter to a piece code.
func PieceFromChar(c byte) (Piece, bool) {
	team := Player
	if c >= 'A' && c <= 'Z' {
		team = Computer
		c += 'a' - 'A'
	}
	var kind Piece
	switch c {
	case 'p':
		kind = Pawn
	case 'b':
		kind = Bishop
	case 'n':
		kind = Knight
	case 'r':
		kind = Rook
	case 'q':
		kind = Queen
	case 'k':
		kind = King
	default:
		return Empty, false
	}
	return NewPiece(kind, team), true
}
