package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether the game has ended and who won. A full
// board without a run is a draw and returns core.Empty as the winner.
func (wc *WinConditionChecker) CheckGameOver(board *core.Board) (bool, core.Player) {
	wc.logger.Debug().Msg("Checking game over conditions")

	if winner := board.TerminalTest(); winner != core.Empty {
		wc.logger.Info().Str("winner", winner.String()).Msg("Winner determined")
		return true, winner
	}
	if board.IsFull() {
		wc.logger.Info().Msg("Board is full, game drawn")
		return true, core.Empty
	}

	wc.logger.Debug().
		Int("markers", board.MarkerCount()).
		Int("legal_columns", len(board.LegalColumns())).
		Msg("Game over check complete")
	return false, core.Empty
}
