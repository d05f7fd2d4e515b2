package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/hailam/chessvariant/internal/board"
)

// Search bounds and defaults.
const (
	MinDepth     = 1
	MaxDepth     = 5
	DefaultDepth = 3

	// DefaultSwitchProbability is the chance that an equally scored later
	// candidate replaces the current best one.
	DefaultSwitchProbability = 0.5
)

// SearchInfo describes a finished search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
	Found bool
}

// SearchLimits configures a search.
type SearchLimits struct {
	Depth             int     // Plies to look ahead, including the Computer's own move
	SwitchProbability float64 // Tie-break probability in [0, 1]
}

// DefaultLimits returns the limits a new engine starts with.
func DefaultLimits() SearchLimits {
	return SearchLimits{
		Depth:             DefaultDepth,
		SwitchProbability: DefaultSwitchProbability,
	}
}

// Engine picks the Computer's moves.
// Searches are serialized: a second Search waits for the running one.
type Engine struct {
	searchMu sync.Mutex
	searcher *Searcher

	mu     sync.Mutex
	limits SearchLimits

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with default limits and a time-seeded tie-break source.
func NewEngine() *Engine {
	return &Engine{
		searcher: NewSearcher(rand.New(rand.NewSource(time.Now().UnixNano()))),
		limits:   DefaultLimits(),
	}
}

// Seed reseeds the tie-break source, making searches reproducible.
func (e *Engine) Seed(seed int64) {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()
	e.searcher.rng = rand.New(rand.NewSource(seed))
}

// SetDepth sets the search depth, clamped to [MinDepth, MaxDepth].
func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limits.Depth = ClampDepth(depth)
}

// SetSwitchProbability sets the tie-break probability, clamped to [0, 1].
func (e *Engine) SetSwitchProbability(p float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limits.SwitchProbability = ClampProbability(p)
}

// Limits returns the current search limits.
func (e *Engine) Limits() SearchLimits {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.limits
}

// ChooseMove finds the Computer's move on b using the current limits.
// It returns false if the Computer has no moves.
func (e *Engine) ChooseMove(b *board.Board) (board.Move, bool) {
	return e.Search(b, e.Limits())
}

// Search finds the Computer's move on b with explicit limits.
// b is explored with paired Apply/Undo and is unchanged on return.
func (e *Engine) Search(b *board.Board, limits SearchLimits) (board.Move, bool) {
	limits.Depth = ClampDepth(limits.Depth)
	limits.SwitchProbability = ClampProbability(limits.SwitchProbability)

	e.searchMu.Lock()
	defer e.searchMu.Unlock()

	start := time.Now()
	move, score, found := e.searcher.Search(b, limits)

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Depth: limits.Depth,
			Score: score,
			Nodes: e.searcher.Nodes(),
			Time:  time.Since(start),
			Move:  move,
			Found: found,
		})
	}

	return move, found
}

// ClampDepth limits depth to [MinDepth, MaxDepth].
func ClampDepth(depth int) int {
	if depth < MinDepth {
		return MinDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// ClampProbability limits p to [0, 1].
func ClampProbability(p float64) float64 {
	if p < 0 || p != p {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
