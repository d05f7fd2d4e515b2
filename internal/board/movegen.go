package board

// Ray directions, in generation order.
var (
	bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookDirections   = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// knightOffsets lists the L-shaped jumps in generation order.
var knightOffsets = [8][2]int{
	{-2, 1}, {-2, -1},
	{-1, 2}, {-1, -2},
	{1, 2}, {1, -2},
	{2, 1}, {2, -1},
}

// MovesFrom returns the pseudo-legal moves of the piece on from.
// An empty square yields an empty list.
func (b *Board) MovesFrom(from Position) *MoveList {
	ml := NewMoveList()
	b.generateFrom(ml, from)
	return ml
}

// AllMoves returns every pseudo-legal move of team, scanning files in the
// outer loop and ranks in the inner loop.
func (b *Board) AllMoves(team Team) *MoveList {
	ml := NewMoveList()
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			from := NewPosition(x, y)
			if b.TeamOf(from) == team {
				b.generateFrom(ml, from)
			}
		}
	}
	return ml
}

// HasMoves returns true if team has at least one pseudo-legal move.
func (b *Board) HasMoves(team Team) bool {
	ml := NewMoveList()
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			from := NewPosition(x, y)
			if b.TeamOf(from) != team {
				continue
			}
			b.generateFrom(ml, from)
			if ml.Len() > 0 {
				return true
			}
		}
	}
	return false
}

// ValidMove looks m up among the moves generated from m.From and returns the
// generated move, which carries the correct Removed code and Rule.
func (b *Board) ValidMove(m Move) (Move, bool) {
	if !m.From.IsOnMap() || !m.To.IsOnMap() {
		return Move{}, false
	}
	return b.MovesFrom(m.From).Find(m.From, m.To)
}

// generateFrom dispatches on the piece kind at from.
func (b *Board) generateFrom(ml *MoveList, from Position) {
	if !from.IsOnMap() {
		return
	}
	piece := b.Piece(from)
	team := piece.Team()

	switch piece.Kind() {
	case Empty:
		return
	case Pawn:
		b.generatePawnMoves(ml, from, team)
	case Bishop:
		b.generateRayMoves(ml, from, team, bishopDirections[:])
	case Knight:
		b.generateKnightMoves(ml, from, team)
	case Rook:
		b.generateRayMoves(ml, from, team, rookDirections[:])
	case Queen:
		b.generateRayMoves(ml, from, team, bishopDirections[:])
		b.generateRayMoves(ml, from, team, rookDirections[:])
	default:
		b.generateKingMoves(ml, from, team)
	}
}

// generatePawnMoves adds the pawn's pushes and captures. Pawns advance
// toward the opponent's back rank, i.e. by -team ranks.
func (b *Board) generatePawnMoves(ml *MoveList, from Position, team Team) {
	dir := -int(team)
	x, y := from.X, from.Y

	to := from.Offset(0, dir)
	if to.IsOnMap() && b.IsEmpty(to) {
		if to.Y%7 == 0 {
			ml.Add(NewPromotion(from, to, Empty))
		} else {
			ml.Add(NewMove(from, to, Empty))
		}

		// Double step from the starting rank.
		if (y+int(team))%7 == 0 {
			double := from.Offset(0, 2*dir)
			if double.IsOnMap() && b.IsEmpty(double) {
				ml.Add(NewMove(from, double, Empty))
			}
		}
	}

	promotes := (y+dir)%7 == 0
	for _, dx := range [2]int{-1, 1} {
		target := NewPosition(x+dx, y+dir)
		if !target.IsOnMap() || !b.IsEnemy(target, team) {
			continue
		}
		if promotes {
			ml.Add(NewPromotion(from, target, b.Piece(target)))
		} else {
			ml.Add(NewMove(from, target, b.Piece(target)))
		}
	}
}

// generateKnightMoves adds jumps onto empty or enemy squares.
func (b *Board) generateKnightMoves(ml *MoveList, from Position, team Team) {
	for _, off := range knightOffsets {
		b.addStep(ml, from, from.Offset(off[0], off[1]), team)
	}
}

// generateKingMoves adds the eight neighbouring squares. Moving into check is allowed.
func (b *Board) generateKingMoves(ml *MoveList, from Position, team Team) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			b.addStep(ml, from, from.Offset(dx, dy), team)
		}
	}
}

// addStep adds from -> to if to is on the board and not held by team.
func (b *Board) addStep(ml *MoveList, from, to Position, team Team) {
	if to.IsOnMap() && b.TeamOf(to) != team {
		ml.Add(NewMove(from, to, b.Piece(to)))
	}
}

// generateRayMoves slides along each direction until the edge or the first
// piece, which is included only when it belongs to the opponent.
func (b *Board) generateRayMoves(ml *MoveList, from Position, team Team, dirs [][2]int) {
	for _, d := range dirs {
		to := from.Offset(d[0], d[1])
		for to.IsOnMap() {
			if !b.IsEmpty(to) {
				if b.IsEnemy(to, team) {
					ml.Add(NewMove(from, to, b.Piece(to)))
				}
				break
			}
			ml.Add(NewMove(from, to, Empty))
			to = to.Offset(d[0], d[1])
		}
	}
}
