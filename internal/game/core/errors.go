package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrColumnFull           = errors.New("column is full")
	ErrInvalidColumn        = errors.New("column out of range")
	ErrInvalidPlayer        = errors.New("invalid player")
	ErrNoLegalMoves         = errors.New("no legal moves")
	ErrGameOver             = errors.New("game is over")
)

// WrapMoveError adds the acting player and target column to err.
// The result still matches the wrapped sentinel with errors.Is.
func WrapMoveError(player Player, column int, err error) error {
	if err == nil {
		return nil
	}
	if !player.IsValid() {
		return fmt.Errorf("drop in column %d: %w", column, err)
	}
	return fmt.Errorf("player %s: drop in column %d: %w", player, column, err)
}
