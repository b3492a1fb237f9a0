package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
	"github.com/mitchelldurbincs/ConnectR/internal/game/events"
	"github.com/mitchelldurbincs/ConnectR/internal/game/opening"
	"github.com/mitchelldurbincs/ConnectR/internal/game/rules"
	"github.com/mitchelldurbincs/ConnectR/internal/game/states"
)

// GameConfig describes one match.
type GameConfig struct {
	GameID    string // generated when empty
	Rows      int
	Cols      int
	RunLength int
	First     core.Player
	Players   map[core.Player]MoveSource

	// OpeningPlies random markers are dropped before the first real move.
	OpeningPlies int
	Rng          *rand.Rand

	Logger   zerolog.Logger
	EventBus *events.EventBus

	// Output receives the rendered board after every move when set.
	Output io.Writer
	Color  bool
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	return &EngineInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameEngine").Logger(),
	}
}

// Initialize validates the configuration, builds the board, places the
// opening and leaves the engine ready for its first Step.
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled during initial phase")
		return nil, ctx.Err()
	default:
	}

	if err := ei.validate(); err != nil {
		return nil, err
	}
	ei.setupDefaults()

	board, err := core.NewBoard(ei.config.Rows, ei.config.Cols, ei.config.RunLength)
	if err != nil {
		return nil, err
	}

	engine := ei.createEngine(board)

	openingCols, err := ei.placeOpening(engine)
	if err != nil {
		return nil, fmt.Errorf("opening placement failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		board.Rows(),
		board.Cols(),
		board.RunLength(),
		ei.config.First,
		openingCols,
	))

	if over, winner := engine.winCondition.CheckGameOver(board); over {
		// only a full board can end the game here
		engine.finish(winner)
	} else if err := engine.stateMachine.TransitionTo(states.PhaseRunning, "setup complete"); err != nil {
		return nil, err
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("rows", board.Rows()).
		Int("cols", board.Cols()).
		Int("run_length", board.RunLength()).
		Str("to_move", engine.toMove.String()).
		Msg("Engine created successfully")
	engine.render()
	return engine, nil
}

func (ei *EngineInitializer) validate() error {
	if !ei.config.First.IsValid() {
		return fmt.Errorf("%w: first player must be A or B", core.ErrInvalidConfiguration)
	}
	for _, p := range []core.Player{core.PlayerA, core.PlayerB} {
		if ei.config.Players[p] == nil {
			return fmt.Errorf("%w: no move source for player %s", core.ErrInvalidConfiguration, p)
		}
	}
	if ei.config.OpeningPlies < 0 {
		return fmt.Errorf("%w: opening plies must not be negative, got %d", core.ErrInvalidConfiguration, ei.config.OpeningPlies)
	}
	return nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.New().String()
	}
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus(ei.config.Logger)
	}
}

func (ei *EngineInitializer) createEngine(board *core.Board) *Engine {
	return &Engine{
		gameID:       ei.config.GameID,
		board:        board,
		toMove:       ei.config.First,
		players:      ei.config.Players,
		start:        time.Now(),
		legalMoves:   rules.NewLegalMoveCalculator(),
		winCondition: rules.NewWinConditionChecker(ei.config.Logger),
		eventBus:     ei.config.EventBus,
		stateMachine: states.NewStateMachine(ei.config.GameID, ei.config.EventBus, ei.config.Logger),
		output:       ei.config.Output,
		color:        ei.config.Color,
		logger:       ei.logger.With().Str("game_id", ei.config.GameID).Logger(),
	}
}

// placeOpening drops the random opening markers and publishes them as moves.
func (ei *EngineInitializer) placeOpening(engine *Engine) ([]int, error) {
	if ei.config.OpeningPlies == 0 {
		return nil, nil
	}
	if err := engine.stateMachine.TransitionTo(states.PhaseOpening, "random opening requested"); err != nil {
		return nil, err
	}

	gen := opening.NewGenerator(opening.DefaultOpeningConfig(ei.config.OpeningPlies), ei.config.Rng)
	cells, err := gen.Apply(engine.board, ei.config.First)
	if err != nil {
		return nil, err
	}

	cols := make([]int, len(cells))
	for i, cell := range cells {
		cols[i] = cell.Col
		engine.ply++
		engine.eventBus.Publish(events.NewMoveAppliedEvent(
			engine.gameID, engine.toMove, cell.Col, cell.Row, engine.ply, events.SourceOpening,
		))
		engine.toMove = engine.toMove.Opponent()
	}
	ei.logger.Debug().Ints("columns", cols).Msg("Opening placed")
	return cols, nil
}
