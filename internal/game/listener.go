package game

import "github.com/hailam/chessvariant/internal/board"

// Listener receives board changes so a presentation layer can redraw.
// Methods are called with the game locked and must not call back into the Game.
type Listener interface {
	// OnBoardReset is called before the full board is re-sent after a reset.
	OnBoardReset()
	// OnPieceChanged reports the new code of a square.
	OnPieceChanged(pos board.Position, piece board.Piece)
	// OnSelectionChanged reports a square being selected or released.
	OnSelectionChanged(pos board.Position, selected bool)
}

// ResultListener is an optional extension of Listener notified when a game ends.
type ResultListener interface {
	OnGameOver(status Status)
}

// NopListener ignores every notification.
type NopListener struct{}

// OnBoardReset does nothing.
func (NopListener) OnBoardReset() {}

// OnPieceChanged does nothing.
func (NopListener) OnPieceChanged(board.Position, board.Piece) {}

// OnSelectionChanged does nothing.
func (NopListener) OnSelectionChanged(board.Position, bool) {}
