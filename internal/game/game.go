// Package game runs a Player-versus-Computer game: the two-click move
// handshake, turn order, the deferred Computer turn and end detection.
package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/hailam/chessvariant/internal/board"
	"github.com/hailam/chessvariant/internal/engine"
	"github.com/hailam/chessvariant/internal/storage"
)

// waitPollInterval is how often WaitForComputer checks for the Computer's move.
const waitPollInterval = 5 * time.Millisecond

// Status is the state of the game.
type Status int

const (
	StatusPlaying Status = iota
	StatusPlayerWon
	StatusComputerWon
	StatusStalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPlayerWon:
		return "player_won"
	case StatusComputerWon:
		return "computer_won"
	case StatusStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// aiResult carries a finished search back to the game.
type aiResult struct {
	generation uint64
	move       board.Move
	ok         bool
}

// Game owns the live board. All methods are safe for concurrent use.
type Game struct {
	mu sync.Mutex

	board    *board.Board
	history  []board.Move
	status   Status
	started  time.Time
	listener Listener

	// Selection state of the two-click handshake
	selected     board.Position
	hasSelection bool

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// AI Engine
	engine     *engine.Engine
	aiThinking bool
	aiMove     chan aiResult
	generation uint64 // bumped on reset so late results are dropped
}

// New creates a game with the starting layout. listener may be nil, and so
// may store, in which case preferences and results are not persisted.
func New(eng *engine.Engine, listener Listener, store *storage.Storage) *Game {
	if listener == nil {
		listener = NopListener{}
	}

	g := &Game{
		board:    board.NewBoard(),
		listener: listener,
		storage:  store,
		engine:   eng,
		aiMove:   make(chan aiResult, 8),
	}

	g.loadPreferences()

	g.mu.Lock()
	g.reset()
	g.mu.Unlock()

	return g
}

// loadPreferences applies stored preferences to the engine.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		limits := g.engine.Limits()
		g.prefs.SearchDepth = limits.Depth
		g.prefs.SwitchProbability = limits.SwitchProbability
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}

	g.engine.SetDepth(g.prefs.SearchDepth)
	g.engine.SetSwitchProbability(g.prefs.SwitchProbability)
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	limits := g.engine.Limits()
	g.prefs.SearchDepth = limits.Depth
	g.prefs.SwitchProbability = limits.SwitchProbability

	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// Reset starts a new game. A Computer search still running for the old game
// is left to finish and its result is discarded.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

// Setup starts a new game from a copy of b, with the Player to move.
// A layout that is already decided, by a missing king or a Player without
// moves, ends the game at once and is not recorded in the statistics.
func (g *Game) Setup(b *board.Board) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.restart(b)

	status := g.winnerStatus()
	if status == StatusPlaying && !g.board.HasMoves(board.Player) {
		status = StatusStalemate
	}
	if status != StatusPlaying {
		g.end(status)
	}
}

func (g *Game) reset() {
	g.restart(board.NewBoard())
}

func (g *Game) restart(b *board.Board) {
	g.generation++
	g.aiThinking = false
	g.board = b.Copy()
	g.history = nil
	g.hasSelection = false
	g.status = StatusPlaying
	g.started = time.Now()

	g.listener.OnBoardReset()
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			pos := board.NewPosition(x, y)
			g.listener.OnPieceChanged(pos, g.board.Piece(pos))
		}
	}
}

// NotifySquareClicked handles a click on pos. Without a selection a click on
// a Player piece selects it; with a selection the click is the move target
// and the selection is released whether or not the move was valid.
// Clicks are ignored once the game is over or while the Computer is thinking.
func (g *Game) NotifySquareClicked(pos board.Position) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.acceptsInput() || !pos.IsOnMap() {
		return
	}

	if !g.hasSelection {
		if g.board.TeamOf(pos) == board.Player {
			g.selectSquare(pos)
		}
		return
	}

	g.submitTarget(pos)
}

// SubmitPlayerSelection selects the Player piece on pos, replacing any
// previous selection. It returns false if pos cannot be selected.
func (g *Game) SubmitPlayerSelection(pos board.Position) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.acceptsInput() || !pos.IsOnMap() || g.board.TeamOf(pos) != board.Player {
		return false
	}
	g.clearSelection()
	g.selectSquare(pos)
	return true
}

// SubmitPlayerTarget moves the selected piece to pos. It returns true if the
// move was valid and applied. The selection is released either way.
func (g *Game) SubmitPlayerTarget(pos board.Position) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.acceptsInput() || !g.hasSelection || !pos.IsOnMap() {
		return false
	}
	return g.submitTarget(pos)
}

func (g *Game) acceptsInput() bool {
	return g.status == StatusPlaying && !g.aiThinking
}

func (g *Game) selectSquare(pos board.Position) {
	g.selected = pos
	g.hasSelection = true
	g.listener.OnSelectionChanged(pos, true)
}

func (g *Game) clearSelection() {
	if !g.hasSelection {
		return
	}
	g.hasSelection = false
	g.listener.OnSelectionChanged(g.selected, false)
}

func (g *Game) submitTarget(to board.Position) bool {
	from := g.selected
	move, ok := g.board.ValidMove(board.NewMove(from, to, g.board.Piece(to)))
	g.clearSelection()
	if !ok {
		return false
	}

	log.Printf("[MOVE] Player %v", move)
	g.commit(move)

	if g.checkGameEnd() {
		return true
	}
	g.startAIThinking()
	return true
}

// commit applies m to the live board and reports both squares.
func (g *Game) commit(m board.Move) {
	g.board.Apply(m)
	g.history = append(g.history, m)
	g.listener.OnPieceChanged(m.From, g.board.Piece(m.From))
	g.listener.OnPieceChanged(m.To, g.board.Piece(m.To))
}

// winnerStatus maps the board's winner to a status, StatusPlaying if none.
func (g *Game) winnerStatus() Status {
	switch g.board.Winner() {
	case board.Player:
		return StatusPlayerWon
	case board.Computer:
		return StatusComputerWon
	}
	return StatusPlaying
}

// checkGameEnd finishes the game if a king has been captured.
func (g *Game) checkGameEnd() bool {
	status := g.winnerStatus()
	if status == StatusPlaying {
		return false
	}
	g.finish(status)
	return true
}

// end stops the game with status and notifies the listener.
func (g *Game) end(status Status) {
	g.status = status
	g.aiThinking = false
	log.Printf("[GAME] Over: %v after %d moves (value %d)", status, len(g.history), g.board.Value())

	if rl, ok := g.listener.(ResultListener); ok {
		rl.OnGameOver(status)
	}
}

// finish ends the game with status and records the result.
func (g *Game) finish(status Status) {
	g.end(status)

	if g.storage == nil {
		return
	}
	result := storage.GameResult{
		Won:      status == StatusPlayerWon,
		Draw:     status == StatusStalemate,
		Depth:    g.engine.Limits().Depth,
		Duration: time.Since(g.started),
	}
	if err := g.storage.RecordGame(result); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
	}
}

// startAIThinking starts the Computer's search on a snapshot of the board.
// The result is applied by Update, so the live board is never touched by
// the search goroutine.
func (g *Game) startAIThinking() {
	g.aiThinking = true

	snapshot := g.board.Copy()
	limits := g.engine.Limits()
	generation := g.generation
	eng := g.engine

	log.Printf("[AI] Starting search - depth=%d switch=%.2f", limits.Depth, limits.SwitchProbability)

	go func() {
		move, ok := eng.Search(snapshot, limits)
		g.aiMove <- aiResult{generation: generation, move: move, ok: ok}
	}()
}

// Update applies the Computer's move if its search has finished.
// It is the game's tick and returns true if the board changed.
func (g *Game) Update() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		select {
		case res := <-g.aiMove:
			if res.generation != g.generation || !g.aiThinking {
				log.Printf("[AI] Discarding result from an earlier game")
				continue
			}
			g.applyComputerMove(res)
			return true
		default:
			return false
		}
	}
}

func (g *Game) applyComputerMove(res aiResult) {
	g.aiThinking = false

	if !res.ok {
		log.Printf("[AI] No move available")
		g.finish(StatusStalemate)
		return
	}

	log.Printf("[AI] Computer %v", res.move)
	g.commit(res.move)

	if g.checkGameEnd() {
		return
	}
	if !g.board.HasMoves(board.Player) {
		g.finish(StatusStalemate)
	}
}

// WaitForComputer ticks the game until no Computer move is pending or ctx ends.
func (g *Game) WaitForComputer(ctx context.Context) error {
	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	for {
		g.Update()
		if !g.Thinking() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SetSearchDepth sets the search depth used from the next Computer move on.
func (g *Game) SetSearchDepth(depth int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.engine.SetDepth(depth)
	g.savePreferences()
}

// SetSwitchProbability sets the tie-break probability used from the next Computer move on.
func (g *Game) SetSwitchProbability(p float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.engine.SetSwitchProbability(p)
	g.savePreferences()
}

// Limits returns the engine limits the next Computer move will use.
func (g *Game) Limits() engine.SearchLimits {
	return g.engine.Limits()
}

// State is a consistent view of the game taken under one lock.
type State struct {
	Board        *board.Board
	Status       Status
	Thinking     bool
	Selection    board.Position
	HasSelection bool
	History      []board.Move
	Limits       engine.SearchLimits
}

// State returns a copy of the board together with the rest of the game state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		Board:        g.board.Copy(),
		Status:       g.status,
		Thinking:     g.aiThinking,
		Selection:    g.selected,
		HasSelection: g.hasSelection,
		History:      append([]board.Move(nil), g.history...),
		Limits:       g.engine.Limits(),
	}
}

// Piece returns the code on pos, Empty for positions off the board.
func (g *Game) Piece(pos board.Position) board.Piece {
	if !pos.IsOnMap() {
		return board.Empty
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Piece(pos)
}

// MovesFrom returns the pseudo-legal moves of the piece on pos.
func (g *Game) MovesFrom(pos board.Position) []board.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]board.Move(nil), g.board.MovesFrom(pos).Slice()...)
}

// Snapshot returns a copy of the live board.
func (g *Game) Snapshot() *board.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy()
}

// Value returns the material value of the live board.
func (g *Game) Value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Value()
}

// Status returns the state of the game.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// GameOver returns true once the game has ended.
func (g *Game) GameOver() bool {
	return g.Status() != StatusPlaying
}

// Thinking returns true while a Computer move is pending.
func (g *Game) Thinking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.aiThinking
}

// Selection returns the selected square, if any.
func (g *Game) Selection() (board.Position, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selected, g.hasSelection
}

// History returns the moves played so far.
func (g *Game) History() []board.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]board.Move(nil), g.history...)
}

// Stats returns the stored statistics, or empty ones without storage.
func (g *Game) Stats() (*storage.GameStats, error) {
	if g.storage == nil {
		return storage.NewGameStats(), nil
	}
	return g.storage.LoadStats()
}
