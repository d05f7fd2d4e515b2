package board

// Rule tags a move that does not follow the plain "lift and drop" update.
type Rule uint8

const (
	NoRule Rule = iota
	// Promotion replaces the pawn with a queen of the same team.
	Promotion
)

// String returns the rule name.
func (r Rule) String() string {
	if r == Promotion {
		return "PROMOTION"
	}
	return ""
}

// Move describes a piece going From one square To another.
// Removed is the code that occupied To before the move (Empty if none), which
// is what Undo puts back.
type Move struct {
	From    Position
	To      Position
	Removed Piece
	Rule    Rule
}

// NewMove creates a move without a special rule.
func NewMove(from, to Position, removed Piece) Move {
	return Move{From: from, To: to, Removed: removed}
}

// NewPromotion creates a promotion-tagged move.
func NewPromotion(from, to Position, removed Piece) Move {
	return Move{From: from, To: to, Removed: removed, Rule: Promotion}
}

// IsPromotion returns true if the move carries the promotion rule.
func (m Move) IsPromotion() bool {
	return m.Rule == Promotion
}

// IsCapture returns true if the move removes a piece.
func (m Move) IsCapture() bool {
	return m.Removed != Empty
}

// Equal reports whether both moves go between the same squares.
// Removed and Rule are ignored.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// String returns the move as "(x,y)->(x,y)", with a "=Q" suffix for promotions.
func (m Move) String() string {
	s := m.From.String() + "->" + m.To.String()
	if m.IsPromotion() {
		s += "=Q"
	}
	return s
}

// MoveList holds generated moves in generation order.
type MoveList struct {
	moves []Move
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 32)}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return len(ml.moves)
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Find returns the move going from -> to, if present.
func (ml *MoveList) Find(from, to Position) (Move, bool) {
	for _, m := range ml.moves {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves
}
