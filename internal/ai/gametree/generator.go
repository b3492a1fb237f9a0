package gametree

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// DefaultDepth is the number of plies materialized below the root.
const DefaultDepth = 6

var ErrTreeBudgetExceeded = errors.New("game tree node budget exceeded")

// Generator materializes the game tree below a board to a fixed ply depth.
// A Generator holds no per-call state and may be shared.
type Generator struct {
	depth    int
	maxNodes int
	logger   zerolog.Logger
}

// NewGenerator creates a generator. maxNodes <= 0 disables the node budget.
func NewGenerator(depth, maxNodes int, logger zerolog.Logger) *Generator {
	if depth < 0 {
		depth = 0
	}
	return &Generator{
		depth:    depth,
		maxNodes: maxNodes,
		logger:   logger.With().Str("component", "GameTreeGenerator").Logger(),
	}
}

// Generate builds the tree rooted at a copy of board, with toMove making
// the first ply. Won positions are never expanded. When the node budget is
// exhausted the partial tree is released and ErrTreeBudgetExceeded is
// returned.
func (g *Generator) Generate(board *core.Board, toMove core.Player) (*Node, error) {
	if !toMove.IsValid() {
		return nil, core.ErrInvalidPlayer
	}
	start := time.Now()
	root := NewNode(board.Copy())
	b := &builder{maxNodes: g.maxNodes, nodes: 1}

	if root.Board.TerminalTest() == core.Empty {
		if err := b.expand(root, toMove, 0, g.depth); err != nil {
			root.Release()
			g.logger.Warn().
				Err(err).
				Int("nodes", b.nodes).
				Int("max_nodes", g.maxNodes).
				Msg("Tree generation aborted")
			return nil, err
		}
	}

	g.logger.Debug().
		Int("nodes", b.nodes).
		Int("depth", g.depth).
		Str("to_move", toMove.String()).
		Dur("elapsed", time.Since(start)).
		Msg("Game tree generated")
	return root, nil
}

type builder struct {
	maxNodes int
	nodes    int
}

func (b *builder) expand(n *Node, toMove core.Player, depth, limit int) error {
	if depth >= limit {
		return nil
	}
	for col := 0; col < n.Board.Cols(); col++ {
		next := n.Board.Copy()
		if _, err := next.Drop(col, toMove); err != nil {
			if errors.Is(err, core.ErrColumnFull) {
				continue
			}
			return core.WrapMoveError(toMove, col, err)
		}
		if b.maxNodes > 0 && b.nodes >= b.maxNodes {
			return fmt.Errorf("%w: limit %d reached at depth %d", ErrTreeBudgetExceeded, b.maxNodes, depth+1)
		}
		b.nodes++

		child := NewNode(next)
		n.Children = append(n.Children, child)
		if next.TerminalTest() != core.Empty {
			continue
		}
		if err := b.expand(child, toMove.Opponent(), depth+1, limit); err != nil {
			return err
		}
	}
	return nil
}
