package opening

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// OpeningConfig holds configuration for random opening generation
type OpeningConfig struct {
	Plies int // markers to place before the first real move
}

// DefaultOpeningConfig returns an opening of the given length
func DefaultOpeningConfig(plies int) OpeningConfig {
	return OpeningConfig{Plies: plies}
}

// Generator places random opening moves with a deterministic RNG
type Generator struct {
	config OpeningConfig
	rng    *rand.Rand
}

// NewGenerator creates a new opening generator
func NewGenerator(config OpeningConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Apply drops up to Plies markers on board, alternating from first. No
// opening move completes a run; if every legal column would, or the board
// fills, the opening stops early. The cells filled are returned in order.
func (g *Generator) Apply(board *core.Board, first core.Player) ([]core.Cell, error) {
	if !first.IsValid() {
		return nil, core.ErrInvalidPlayer
	}
	if g.config.Plies < 0 {
		return nil, fmt.Errorf("%w: opening plies must not be negative, got %d", core.ErrInvalidConfiguration, g.config.Plies)
	}

	moves := make([]core.Cell, 0, g.config.Plies)
	player := first
	for len(moves) < g.config.Plies {
		col, ok := g.pickColumn(board, player)
		if !ok {
			break
		}
		row, err := board.Drop(col, player)
		if err != nil {
			return moves, core.WrapMoveError(player, col, err)
		}
		moves = append(moves, core.Cell{Row: row, Col: col})
		player = player.Opponent()
	}
	return moves, nil
}

// pickColumn tries the legal columns in random order and returns the first
// one whose drop does not end the game.
func (g *Generator) pickColumn(board *core.Board, player core.Player) (int, bool) {
	legal := board.LegalColumns()
	for _, i := range g.rng.Perm(len(legal)) {
		probe := board.Copy()
		if _, err := probe.Drop(legal[i], player); err != nil {
			continue
		}
		if probe.TerminalTest() == core.Empty {
			return legal[i], true
		}
	}
	return 0, false
}
