package minimax

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/ai/gametree"
	"github.com/mitchelldurbincs/ConnectR/internal/ai/heuristic"
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// Window sentinels lie strictly outside [-WinScore, WinScore].
const (
	NegInf heuristic.Score = math.MinInt
	PosInf heuristic.Score = math.MaxInt
)

// LeafEvaluator scores a non-terminal leaf from player A's point of view.
type LeafEvaluator interface {
	Evaluate(b *core.Board) heuristic.Score
}

// Result is the outcome of searching one node: the column of the best
// child (NoMove at leaves) and its backed-up score.
type Result struct {
	Move  int
	Score heuristic.Score
}

// Stats counts the work done by one search.
type Stats struct {
	Nodes   int
	Leaves  int
	Cutoffs int
}

// Engine runs minimax searches with alpha-beta pruning over a generated
// tree. An Engine is not safe for concurrent use because of its Stats.
type Engine struct {
	evaluator LeafEvaluator
	record    bool
	logger    zerolog.Logger
	stats     Stats
}

// NewEngine creates an engine. When record is set every visited node gets
// its Score and ChosenMove filled in.
func NewEngine(evaluator LeafEvaluator, record bool, logger zerolog.Logger) *Engine {
	return &Engine{
		evaluator: evaluator,
		record:    record,
		logger:    logger.With().Str("component", "MinimaxEngine").Logger(),
	}
}

// Stats returns the counters of the most recent decision.
func (e *Engine) Stats() Stats { return e.stats }

// MaxDecision searches root with A to move and records the result there.
func (e *Engine) MaxDecision(root *gametree.Node) Result {
	return e.decide(root, Maximizing)
}

// MinDecision searches root with B to move and records the result there.
func (e *Engine) MinDecision(root *gametree.Node) Result {
	return e.decide(root, Minimizing)
}

// Decide dispatches to MaxDecision or MinDecision for player.
func (e *Engine) Decide(root *gametree.Node, player core.Player) Result {
	return e.decide(root, RoleFor(player))
}

func (e *Engine) decide(root *gametree.Node, role Role) Result {
	e.stats = Stats{}
	res := e.Evaluate(root, role, NegInf, PosInf)
	e.store(root, res)

	e.logger.Debug().
		Str("role", role.String()).
		Int("move", res.Move).
		Int("score", int(res.Score)).
		Int("nodes", e.stats.Nodes).
		Int("leaves", e.stats.Leaves).
		Int("cutoffs", e.stats.Cutoffs).
		Msg("Search completed")
	return res
}

// Evaluate returns the fail-soft alpha-beta value of node for role within
// the window (alpha, beta). Children are visited in column order and the
// first child reaching the best value wins ties.
func (e *Engine) Evaluate(node *gametree.Node, role Role, alpha, beta heuristic.Score) Result {
	e.stats.Nodes++
	if winner := node.Board.TerminalTest(); winner != core.Empty || node.IsLeaf() {
		e.stats.Leaves++
		return Result{Move: core.NoMove, Score: e.leafScore(node.Board, winner)}
	}

	best := Result{Move: core.NoMove}
	if role == Maximizing {
		best.Score = NegInf
		for _, child := range node.Children {
			res := e.Evaluate(child, Minimizing, alpha, beta)
			e.store(child, res)
			if best.Move == core.NoMove || res.Score > best.Score {
				best = Result{Move: child.Move(), Score: res.Score}
			}
			alpha = max(alpha, best.Score)
			if best.Score >= beta {
				e.stats.Cutoffs++
				break
			}
		}
		return best
	}

	best.Score = PosInf
	for _, child := range node.Children {
		res := e.Evaluate(child, Maximizing, alpha, beta)
		e.store(child, res)
		if best.Move == core.NoMove || res.Score < best.Score {
			best = Result{Move: child.Move(), Score: res.Score}
		}
		beta = min(beta, best.Score)
		if best.Score <= alpha {
			e.stats.Cutoffs++
			break
		}
	}
	return best
}

// Minimax is the exhaustive search without pruning. It shares leaf scoring
// and tie-breaking with Evaluate and never records into the tree.
func (e *Engine) Minimax(node *gametree.Node, role Role) Result {
	if winner := node.Board.TerminalTest(); winner != core.Empty || node.IsLeaf() {
		return Result{Move: core.NoMove, Score: e.leafScore(node.Board, winner)}
	}
	best := Result{Move: core.NoMove}
	for _, child := range node.Children {
		res := e.Minimax(child, role.Other())
		better := res.Score > best.Score
		if role == Minimizing {
			better = res.Score < best.Score
		}
		if best.Move == core.NoMove || better {
			best = Result{Move: child.Move(), Score: res.Score}
		}
	}
	return best
}

func (e *Engine) leafScore(b *core.Board, winner core.Player) heuristic.Score {
	switch {
	case winner == core.PlayerA:
		return heuristic.WinScore
	case winner == core.PlayerB:
		return -heuristic.WinScore
	case b.IsFull():
		return 0
	}
	return e.evaluator.Evaluate(b)
}

func (e *Engine) store(n *gametree.Node, res Result) {
	if !e.record {
		return
	}
	n.Score = res.Score
	n.ChosenMove = res.Move
}
