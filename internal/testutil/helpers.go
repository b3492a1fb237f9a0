package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// MustParseBoard parses a board drawn as rows of 'A', 'B' and '.', top row
// first, and fails the test on error.
func MustParseBoard(t testing.TB, r int, rows ...string) *core.Board {
	t.Helper()
	b, err := core.ParseBoard(r, rows...)
	require.NoError(t, err)
	return b
}

// PlayMoves creates an empty board and drops markers into cols, alternating
// from first. The test fails if any drop is rejected.
func PlayMoves(t testing.TB, rows, cols, r int, first core.Player, moves ...int) *core.Board {
	t.Helper()
	b, err := core.NewBoard(rows, cols, r)
	require.NoError(t, err)

	player := first
	for i, col := range moves {
		_, err := b.Drop(col, player)
		require.NoErrorf(t, err, "move %d (column %d)", i, col)
		player = player.Opponent()
	}
	return b
}
