package engine

import (
	"math/rand"

	"github.com/hailam/chessvariant/internal/board"
)

// Score constants
const (
	WinScore = board.WinScore
	// MinAlpha sits below every reachable score.
	MinAlpha = -WinScore - 1
)

// Searcher performs the depth-limited material search.
type Searcher struct {
	rng   *rand.Rand
	nodes uint64
}

// NewSearcher creates a searcher drawing tie-breaks from rng.
func NewSearcher(rng *rand.Rand) *Searcher {
	return &Searcher{rng: rng}
}

// Nodes returns the number of positions visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search scores every Computer move and returns the best one with its score.
//
// Candidates are visited in generation order. A strictly better score always
// wins; an equal score wins with probability limits.SwitchProbability, so
// among ties later candidates are favoured or disfavoured depending on that
// probability rather than chosen uniformly.
func (s *Searcher) Search(b *board.Board, limits SearchLimits) (board.Move, int, bool) {
	s.nodes = 0

	var best board.Move
	found := false
	bestScore := MinAlpha

	moves := b.AllMoves(board.Computer).Slice()
	for _, m := range moves {
		s.nodes++
		score := b.Probe(m, func() int {
			return s.evaluate(b, board.Computer, bestScore, limits.Depth-1)
		})

		if score > bestScore || (score == bestScore && s.rng.Float64() < limits.SwitchProbability) {
			bestScore = score
			best = m
			found = true
		}
	}

	// Every candidate can score below MinAlpha when each one loses the king
	// at the horizon. The Computer still has to move.
	if !found && len(moves) > 0 {
		return moves[0], bestScore, true
	}

	return best, bestScore, found
}

// evaluate scores the position reached after team moved, looking depth more
// plies ahead.
//
// Only the Computer's branches are cut: as soon as one Player reply scores
// below bound (the caller's best so far) the branch cannot beat it, and
// bound-1 is returned so the caller's strict comparison rejects it. Player
// branches are always scanned in full.
func (s *Searcher) evaluate(b *board.Board, team board.Team, bound, depth int) int {
	if depth <= 0 {
		return b.Value()
	}
	if b.GameOver() {
		return int(b.Winner()) * WinScore
	}

	opponent := team.Opponent()
	extreme := MinAlpha * int(opponent)

	for _, r := range b.AllMoves(opponent).Slice() {
		s.nodes++
		score := b.Probe(r, func() int {
			return s.evaluate(b, opponent, bound, depth-1)
		})

		if team == board.Computer {
			if score < bound {
				return bound - 1
			}
			extreme = min(extreme, score)
		} else {
			extreme = max(extreme, score)
		}
	}

	return extreme
}
