package rules

import "github.com/mitchelldurbincs/ConnectR/internal/game/core"

// LegalMoveCalculator computes legal moves for players
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// GetLegalColumnMask returns one entry per column, true where a drop is
// legal. A won board has no legal columns.
func (lmc *LegalMoveCalculator) GetLegalColumnMask(board *core.Board) []bool {
	mask := make([]bool, board.Cols())
	if board.TerminalTest() != core.Empty {
		return mask
	}
	for _, col := range board.LegalColumns() {
		mask[col] = true
	}
	return mask
}

// ValidateDrop checks a proposed drop without touching the board.
func (lmc *LegalMoveCalculator) ValidateDrop(board *core.Board, player core.Player, column int) error {
	switch {
	case !player.IsValid():
		return core.WrapMoveError(player, column, core.ErrInvalidPlayer)
	case board.TerminalTest() != core.Empty:
		return core.WrapMoveError(player, column, core.ErrGameOver)
	case column < 0 || column >= board.Cols():
		return core.WrapMoveError(player, column, core.ErrInvalidColumn)
	case board.IsColumnFull(column):
		return core.WrapMoveError(player, column, core.ErrColumnFull)
	}
	return nil
}
