package board

import (
	"sort"
	"testing"
)

func destinations(ml *MoveList) []Position {
	out := make([]Position, 0, ml.Len())
	for _, m := range ml.Slice() {
		out = append(out, m.To)
	}
	return out
}

func sortedPositions(ps []Position) []Position {
	out := append([]Position(nil), ps...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

func samePositions(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = sortedPositions(a), sortedPositions(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPawnAdvanceFromStart(t *testing.T) {
	b := NewBoard()
	from := NewPosition(4, 6)
	to := NewPosition(4, 5)

	moves := b.MovesFrom(from)
	m, ok := moves.Find(from, to)
	if !ok {
		t.Fatalf("moves from %v = %v, want to include %v", from, moves.Slice(), to)
	}
	if _, ok := moves.Find(from, NewPosition(4, 4)); !ok {
		t.Errorf("expected double step from the starting rank, got %v", moves.Slice())
	}
	if moves.Len() != 2 {
		t.Errorf("got %d moves from %v, want 2", moves.Len(), from)
	}

	b.Apply(m)
	if got := b.Piece(to); got != Pawn {
		t.Errorf("Piece(%v) = %d, want %d", to, got, Pawn)
	}
	if got := b.Piece(from); got != Empty {
		t.Errorf("Piece(%v) = %d, want empty", from, got)
	}
	if b.Value() != 0 {
		t.Errorf("Value() = %d, want 0 after a quiet move", b.Value())
	}
}

func TestPlayerPawnDoubleStep(t *testing.T) {
	b := NewBoard()
	from := NewPosition(0, 1)
	got := destinations(b.MovesFrom(from))
	want := []Position{NewPosition(0, 2), NewPosition(0, 3)}
	if !samePositions(got, want) {
		t.Errorf("player pawn moves = %v, want %v", got, want)
	}

	// A blocked single step also blocks the double step.
	b.Place(NewPosition(0, 2), Knight)
	if n := b.MovesFrom(from).Len(); n != 0 {
		t.Errorf("blocked pawn has %d moves, want 0", n)
	}

	// A blocked landing square only removes the double step.
	b.Place(NewPosition(0, 2), Empty)
	b.Place(NewPosition(0, 3), -Knight)
	got = destinations(b.MovesFrom(from))
	if !samePositions(got, []Position{NewPosition(0, 2)}) {
		t.Errorf("pawn with blocked landing square moves = %v", got)
	}
}

func TestPawnCaptures(t *testing.T) {
	// Computer pawn on (0,4) with a Player piece on (1,3); edge file has a single diagonal.
	b := MustParseDiagram("8/8/8/P7/1n6/8/8/8")
	got := destinations(b.MovesFrom(NewPosition(0, 4)))
	want := []Position{NewPosition(0, 3), NewPosition(1, 3)}
	if !samePositions(got, want) {
		t.Errorf("pawn moves = %v, want %v", got, want)
	}

	// Friendly pieces on the diagonal are not captured.
	b = MustParseDiagram("8/8/8/1P6/P1P5/8/8/8")
	got = destinations(b.MovesFrom(NewPosition(1, 4)))
	if !samePositions(got, []Position{NewPosition(1, 3)}) {
		t.Errorf("pawn moves with friendly diagonals = %v", got)
	}
}

func TestMovesFromEmptySquare(t *testing.T) {
	b := NewBoard()
	if n := b.MovesFrom(NewPosition(3, 3)).Len(); n != 0 {
		t.Errorf("MovesFrom(empty) returned %d moves", n)
	}
	if n := b.MovesFrom(NewPosition(-1, 9)).Len(); n != 0 {
		t.Errorf("MovesFrom(off map) returned %d moves", n)
	}
}

func TestStartingMoveCounts(t *testing.T) {
	b := NewBoard()
	for _, team := range []Team{Player, Computer} {
		if n := b.AllMoves(team).Len(); n != 20 {
			t.Errorf("AllMoves(%v) = %d moves, want 20", team, n)
		}
		if !b.HasMoves(team) {
			t.Errorf("HasMoves(%v) = false at start", team)
		}
	}
	if n := b.AllMoves(Neutral).Len(); n != 0 {
		t.Errorf("AllMoves(Neutral) = %d moves, want 0", n)
	}
}

func TestAllMovesOrder(t *testing.T) {
	b := NewBoard()
	moves := b.AllMoves(Computer).Slice()

	// Origins ascend by file, then by rank within a file.
	prev := moves[0].From
	for _, m := range moves[1:] {
		if m.From.X < prev.X || (m.From.X == prev.X && m.From.Y < prev.Y) {
			t.Fatalf("move %v generated after origin %v", m, prev)
		}
		prev = m.From
	}

	first := moves[0]
	if first.From != NewPosition(0, 6) || first.To != NewPosition(0, 5) {
		t.Errorf("first move = %v, want (0,6)->(0,5)", first)
	}
}

func TestKnightOrder(t *testing.T) {
	b := NewEmptyBoard()
	from := NewPosition(4, 4)
	b.Place(from, Knight)

	got := destinations(b.MovesFrom(from))
	want := []Position{
		{2, 5}, {2, 3}, {3, 6}, {3, 2}, {5, 6}, {5, 2}, {6, 5}, {6, 3},
	}
	if len(got) != len(want) {
		t.Fatalf("knight moves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("knight move %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestKnightAndKingEdges(t *testing.T) {
	b := NewEmptyBoard()
	b.Place(NewPosition(0, 0), -Knight)
	b.Place(NewPosition(7, 7), King)
	b.Place(NewPosition(6, 6), Pawn)
	b.Place(NewPosition(7, 6), -Pawn)

	if got := destinations(b.MovesFrom(NewPosition(0, 0))); !samePositions(got, []Position{{1, 2}, {2, 1}}) {
		t.Errorf("corner knight moves = %v", got)
	}
	// King in the corner: one friend, one enemy, one empty square.
	if got := destinations(b.MovesFrom(NewPosition(7, 7))); !samePositions(got, []Position{{6, 7}, {7, 6}}) {
		t.Errorf("corner king moves = %v", got)
	}
}

func TestRayMoves(t *testing.T) {
	// Computer rook on (3,3), friendly pawn on (3,5), Player knight on (6,3).
	b := NewEmptyBoard()
	from := NewPosition(3, 3)
	b.Place(from, Rook)
	b.Place(NewPosition(3, 5), Pawn)
	b.Place(NewPosition(6, 3), -Knight)

	moves := b.MovesFrom(from)
	got := destinations(moves)
	want := []Position{
		{3, 4},
		{4, 3}, {5, 3}, {6, 3},
		{3, 2}, {3, 1}, {3, 0},
		{2, 3}, {1, 3}, {0, 3},
	}
	if !samePositions(got, want) {
		t.Errorf("rook moves = %v, want %v", got, want)
	}
	capture, _ := moves.Find(from, NewPosition(6, 3))
	if capture.Removed != -Knight {
		t.Errorf("capture.Removed = %d, want %d", capture.Removed, -Knight)
	}

	b.Place(from, Queen)
	if n := b.MovesFrom(from).Len(); n != len(want)+13 {
		t.Errorf("queen has %d moves, want %d", n, len(want)+13)
	}
	b.Place(from, Bishop)
	if n := b.MovesFrom(from).Len(); n != 13 {
		t.Errorf("bishop has %d moves, want 13", n)
	}
}

func TestGeneratorMirrorSymmetry(t *testing.T) {
	layouts := []string{
		StartDiagram,
		"r3k2r/2p2p2/1n2q3/3B4/2Q1P3/5N2/PP4PP/R3K2R",
		"8/1p4k1/8/3rb3/8/2N5/1K3Q2/8",
	}

	for _, layout := range layouts {
		b := MustParseDiagram(layout)
		mirrored := NewEmptyBoard()
		for x := 0; x < Size; x++ {
			for y := 0; y < Size; y++ {
				p := NewPosition(x, y)
				mirrored.Place(p.Mirror(), b.Piece(p))
			}
		}

		for x := 0; x < Size; x++ {
			for y := 0; y < Size; y++ {
				p := NewPosition(x, y)
				got := destinations(b.MovesFrom(p))
				for i := range got {
					got[i] = got[i].Mirror()
				}
				want := destinations(mirrored.MovesFrom(p.Mirror()))
				if !samePositions(got, want) {
					t.Errorf("%s: moves from %v mirrored = %v, moves from %v = %v",
						layout, p, got, p.Mirror(), want)
				}
			}
		}
	}
}

func TestValidMove(t *testing.T) {
	b := NewBoard()

	m, ok := b.ValidMove(NewMove(NewPosition(6, 7), NewPosition(5, 5), Empty))
	if !ok {
		t.Fatal("expected knight (6,7)->(5,5) to be valid")
	}
	if m.IsCapture() || m.IsPromotion() {
		t.Errorf("unexpected flags on %v", m)
	}

	invalid := []Move{
		NewMove(NewPosition(6, 7), NewPosition(6, 5), Empty),
		NewMove(NewPosition(3, 3), NewPosition(3, 4), Empty),
		NewMove(NewPosition(0, 7), NewPosition(0, 6), Empty),
		NewMove(NewPosition(0, 6), NewPosition(0, 8), Empty),
	}
	for _, m := range invalid {
		if _, ok := b.ValidMove(m); ok {
			t.Errorf("ValidMove(%v) = true, want false", m)
		}
	}
}

func TestMoveEqualIgnoresRemovedAndRule(t *testing.T) {
	a := NewMove(NewPosition(1, 1), NewPosition(1, 2), Empty)
	b := NewPromotion(NewPosition(1, 1), NewPosition(1, 2), Rook)
	if !a.Equal(b) {
		t.Error("moves with the same squares should be equal")
	}
	if a.Equal(NewMove(NewPosition(1, 1), NewPosition(2, 2), Empty)) {
		t.Error("moves with different targets should differ")
	}
}
