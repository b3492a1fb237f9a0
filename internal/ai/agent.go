package ai

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/ai/gametree"
	"github.com/mitchelldurbincs/ConnectR/internal/ai/heuristic"
	"github.com/mitchelldurbincs/ConnectR/internal/ai/minimax"
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// DefaultMaxNodes caps a single tree well above a full 7-column, 6-ply
// expansion.
const DefaultMaxNodes = 2_000_000

// AgentConfig holds the search parameters of an Agent.
type AgentConfig struct {
	Depth     int
	MaxNodes  int // <= 0 disables the budget
	Heuristic heuristic.Config
	Record    bool // write scores into tree nodes while searching
}

// DefaultAgentConfig returns the stock search configuration.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Depth:     gametree.DefaultDepth,
		MaxNodes:  DefaultMaxNodes,
		Heuristic: heuristic.DefaultConfig(),
		Record:    true,
	}
}

// Decision is the agent's answer for one position.
type Decision struct {
	Column  int
	Score   heuristic.Score
	Nodes   int
	Stats   minimax.Stats
	Elapsed time.Duration
}

// Agent selects moves by generating a fresh game tree from the live board
// and searching it with alpha-beta. Calls are serialized.
type Agent struct {
	mu        sync.Mutex
	config    AgentConfig
	evaluator *heuristic.Evaluator
	engine    *minimax.Engine
	base      zerolog.Logger
	logger    zerolog.Logger
}

// NewAgent validates cfg and builds the evaluator and engine.
func NewAgent(cfg AgentConfig, logger zerolog.Logger) (*Agent, error) {
	if cfg.Depth < 1 {
		return nil, fmt.Errorf("%w: search depth must be at least 1, got %d", core.ErrInvalidConfiguration, cfg.Depth)
	}
	evaluator, err := heuristic.New(cfg.Heuristic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfiguration, err)
	}
	return &Agent{
		config:    cfg,
		evaluator: evaluator,
		engine:    minimax.NewEngine(evaluator, cfg.Record, logger),
		base:      logger,
		logger:    logger.With().Str("component", "Agent").Logger(),
	}, nil
}

// Depth returns the current search depth.
func (a *Agent) Depth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config.Depth
}

// SetDepth changes the search depth used from the next call on.
func (a *Agent) SetDepth(depth int) error {
	if depth < 1 {
		return fmt.Errorf("%w: search depth must be at least 1, got %d", core.ErrInvalidConfiguration, depth)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if depth != a.config.Depth {
		a.logger.Info().Int("old_depth", a.config.Depth).Int("new_depth", depth).Msg("Search depth changed")
	}
	a.config.Depth = depth
	return nil
}

// SelectMove picks a column for player on board. The board is not
// modified. ErrNoLegalMoves means the board is full and the game drawn.
func (a *Agent) SelectMove(board *core.Board, player core.Player) (Decision, error) {
	if !player.IsValid() {
		return Decision{}, core.ErrInvalidPlayer
	}
	if board.TerminalTest() != core.Empty {
		return Decision{}, core.ErrGameOver
	}
	if board.IsFull() {
		return Decision{}, core.ErrNoLegalMoves
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	gen := gametree.NewGenerator(a.config.Depth, a.config.MaxNodes, a.base)
	root, err := gen.Generate(board, player)
	if err != nil {
		return Decision{}, fmt.Errorf("player %s: %w", player, err)
	}
	defer root.Release()

	nodes := root.Size()
	res := a.engine.Decide(root, player)
	if res.Move == core.NoMove {
		return Decision{}, core.ErrNoLegalMoves
	}

	d := Decision{
		Column:  res.Move,
		Score:   res.Score,
		Nodes:   nodes,
		Stats:   a.engine.Stats(),
		Elapsed: time.Since(start),
	}
	a.logger.Info().
		Str("player", player.String()).
		Int("column", d.Column).
		Int("score", int(d.Score)).
		Int("nodes", d.Nodes).
		Int("cutoffs", d.Stats.Cutoffs).
		Dur("elapsed", d.Elapsed).
		Msg("Move selected")
	return d, nil
}
