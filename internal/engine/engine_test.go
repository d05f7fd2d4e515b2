package engine

import (
	"math/rand"
	"testing"

	"github.com/hailam/chessvariant/internal/board"
)

func newTestEngine(depth int, p float64) *Engine {
	eng := NewEngine()
	eng.Seed(1)
	eng.SetDepth(depth)
	eng.SetSwitchProbability(p)
	return eng
}

func TestSearchCapturesUndefendedQueen(t *testing.T) {
	// Computer knight on (1,4) can take the Player queen on (3,3).
	b := board.MustParseDiagram("7K/8/8/1N6/8/8/8/k7")
	b.Place(board.NewPosition(3, 3), -board.Queen)

	for seed := int64(0); seed < 5; seed++ {
		eng := newTestEngine(1, 0.5)
		eng.Seed(seed)

		move, ok := eng.ChooseMove(b)
		if !ok {
			t.Fatal("expected a move")
		}
		if move.From != board.NewPosition(1, 4) || move.To != board.NewPosition(3, 3) {
			t.Errorf("seed %d: chose %v, want the queen capture (1,4)->(3,3)", seed, move)
		}
		if move.Removed != -board.Queen {
			t.Errorf("move.Removed = %d, want %d", move.Removed, -board.Queen)
		}
	}
}

func TestSearchAvoidsDefendedPawn(t *testing.T) {
	// Computer queen on (3,6); Player pawn on (3,3) is guarded by the rook on (3,0).
	b := board.MustParseDiagram("7K/3Q4/8/8/3p4/8/8/k2r4")

	var info SearchInfo
	eng := newTestEngine(2, 0.5)
	eng.OnInfo = func(si SearchInfo) { info = si }

	move, ok := eng.ChooseMove(b)
	if !ok {
		t.Fatal("expected a move")
	}
	if move.To == board.NewPosition(3, 3) {
		t.Errorf("engine took the defended pawn with %v", move)
	}
	// Quiet moves keep the material as it is; nothing can be won safely.
	if info.Score != b.Value() {
		t.Errorf("best score = %d, want %d", info.Score, b.Value())
	}
	if info.Depth != 2 || !info.Found || info.Nodes == 0 {
		t.Errorf("unexpected search info %+v", info)
	}
	if info.Move != move {
		t.Errorf("info.Move = %v, want %v", info.Move, move)
	}
}

func TestSearchLeavesBoardUnchanged(t *testing.T) {
	for depth := MinDepth; depth <= 3; depth++ {
		b := board.NewBoard()
		before := b.Copy()

		eng := newTestEngine(depth, 0.5)
		if _, ok := eng.ChooseMove(b); !ok {
			t.Fatalf("depth %d: no move from the start", depth)
		}
		if !b.Equal(before) {
			t.Errorf("depth %d: board changed by search:%s", depth, b)
		}
	}
}

func TestSearchNoMoves(t *testing.T) {
	b := board.MustParseDiagram("8/8/8/8/8/8/8/4k3")
	eng := newTestEngine(2, 0.5)
	if m, ok := eng.ChooseMove(b); ok {
		t.Errorf("expected no move, got %v", m)
	}
}

func TestTieBreakProbability(t *testing.T) {
	// Every opening move scores 0 at depth 1.
	tests := []struct {
		p    float64
		from board.Position
		to   board.Position
	}{
		{0, board.NewPosition(0, 6), board.NewPosition(0, 5)},
		{1, board.NewPosition(7, 6), board.NewPosition(7, 4)},
	}

	for _, tc := range tests {
		eng := newTestEngine(1, tc.p)
		move, ok := eng.ChooseMove(board.NewBoard())
		if !ok {
			t.Fatal("expected a move")
		}
		if move.From != tc.from || move.To != tc.to {
			t.Errorf("p=%v: chose %v, want %v->%v", tc.p, move, tc.from, tc.to)
		}
	}
}

func TestTieBreakIsNotUniform(t *testing.T) {
	// With two tied candidates the second replaces the first with probability p.
	b := board.MustParseDiagram("8/8/8/8/8/8/8/k6K")
	moves := b.AllMoves(board.Computer)
	if moves.Len() != 3 {
		t.Fatalf("expected 3 king moves, got %d", moves.Len())
	}

	const p = 0.25
	s := NewSearcher(rand.New(rand.NewSource(3)))
	counts := map[board.Position]int{}
	for i := 0; i < 4000; i++ {
		m, _, _ := s.Search(b, SearchLimits{Depth: 1, SwitchProbability: p})
		counts[m.To]++
	}

	// The last candidate wins whenever its own draw succeeds: p of the time.
	last := moves.Get(2).To
	frac := float64(counts[last]) / 4000
	if frac < 0.2 || frac > 0.3 {
		t.Errorf("last tied move chosen %.3f of the time, want about %.2f (counts %v)", frac, p, counts)
	}
}

func TestEvaluateSingleSidedCutoff(t *testing.T) {
	// The Player queen on (0,6) can take the Computer rook on (0,7).
	b := board.MustParseDiagram("R6K/q7/8/8/8/8/8/k7")
	s := NewSearcher(rand.New(rand.NewSource(1)))
	before := b.Copy()

	// Computer branch: a reply below the bound cuts with bound-1.
	if got := s.evaluate(b, board.Computer, b.Value(), 1); got != b.Value()-1 {
		t.Errorf("Computer branch = %d, want %d", got, b.Value()-1)
	}
	// Without a usable bound the minimum reply is returned.
	want := b.Value() - int(board.Rook)
	if got := s.evaluate(b, board.Computer, MinAlpha, 1); got != want {
		t.Errorf("Computer branch = %d, want min %d", got, want)
	}
	if !b.Equal(before) {
		t.Fatalf("evaluate changed the board:%s", b)
	}

	// The Player branch never cuts, even with a huge bound: the Computer
	// rook's best reply is taking the queen.
	want = b.Value() + int(board.Queen)
	if got := s.evaluate(b, board.Player, WinScore, 1); got != want {
		t.Errorf("Player branch = %d, want max %d", got, want)
	}
}

func TestEvaluateBaseCases(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))

	b := board.NewBoard()
	b.Place(board.NewPosition(0, 0), board.Empty)
	if got := s.evaluate(b, board.Computer, MinAlpha, 0); got != b.Value() {
		t.Errorf("depth 0 = %d, want material %d", got, b.Value())
	}

	won := board.MustParseDiagram("RNBQ1BNR/PPPPPPPP/8/8/8/8/pppppppp/rnbqkbnr")
	if got := s.evaluate(won, board.Player, MinAlpha, 2); got != -WinScore {
		t.Errorf("Player win = %d, want %d", got, -WinScore)
	}
	lost := board.MustParseDiagram("RNBQKBNR/PPPPPPPP/8/8/8/8/pppppppp/rnbq1bnr")
	if got := s.evaluate(lost, board.Computer, MinAlpha, 2); got != WinScore {
		t.Errorf("Computer win = %d, want %d", got, WinScore)
	}
}

func TestSearchMovesWhenEveryMoveLoses(t *testing.T) {
	// Every king move walks into a queen; all candidates score below MinAlpha.
	b := board.MustParseDiagram("7K/5q2/6q1/8/8/8/8/k7")
	eng := newTestEngine(2, 0)

	move, ok := eng.ChooseMove(b)
	if !ok {
		t.Fatal("expected a move even when every move loses")
	}
	if move.From != board.NewPosition(7, 7) {
		t.Errorf("chose %v, want a king move", move)
	}
}

func TestSearchKingCaptureWins(t *testing.T) {
	// The Computer rook can take the Player king directly.
	b := board.MustParseDiagram("7K/8/8/8/8/8/8/k6R")
	eng := newTestEngine(3, 0.5)

	move, ok := eng.ChooseMove(b)
	if !ok {
		t.Fatal("expected a move")
	}
	if move.To != board.NewPosition(0, 0) {
		t.Errorf("chose %v, want the king capture", move)
	}
}

func TestClamps(t *testing.T) {
	eng := NewEngine()

	eng.SetDepth(0)
	if eng.Limits().Depth != MinDepth {
		t.Errorf("depth 0 clamped to %d, want %d", eng.Limits().Depth, MinDepth)
	}
	eng.SetDepth(99)
	if eng.Limits().Depth != MaxDepth {
		t.Errorf("depth 99 clamped to %d, want %d", eng.Limits().Depth, MaxDepth)
	}
	eng.SetDepth(2)
	if eng.Limits().Depth != 2 {
		t.Errorf("depth 2 stored as %d", eng.Limits().Depth)
	}

	eng.SetSwitchProbability(-0.5)
	if eng.Limits().SwitchProbability != 0 {
		t.Errorf("probability -0.5 clamped to %v", eng.Limits().SwitchProbability)
	}
	eng.SetSwitchProbability(3)
	if eng.Limits().SwitchProbability != 1 {
		t.Errorf("probability 3 clamped to %v", eng.Limits().SwitchProbability)
	}

	if got := DefaultLimits(); got.Depth != DefaultDepth || got.SwitchProbability != DefaultSwitchProbability {
		t.Errorf("DefaultLimits() = %+v", got)
	}
}
