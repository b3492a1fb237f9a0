package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
	"github.com/mitchelldurbincs/ConnectR/internal/game/events"
	"github.com/mitchelldurbincs/ConnectR/internal/game/rules"
	"github.com/mitchelldurbincs/ConnectR/internal/game/states"
)

// MaxConsecutiveRejections is how many illegal choices in a row a player
// may make before the match is aborted.
const MaxConsecutiveRejections = 3

var (
	ErrTooManyRejections = errors.New("too many rejected moves")
	ErrNotRunning        = errors.New("match is not running")
)

// Engine runs one match on a live board, alternating between the two move
// sources until a run is completed or the board fills.
type Engine struct {
	gameID  string
	board   *core.Board
	toMove  core.Player
	players map[core.Player]MoveSource

	ply        int
	rejections int
	winner     core.Player
	start      time.Time

	legalMoves   *rules.LegalMoveCalculator
	winCondition *rules.WinConditionChecker
	eventBus     *events.EventBus
	stateMachine *states.StateMachine

	output io.Writer
	color  bool
	logger zerolog.Logger
}

// NewEngine creates an engine ready to play its first move.
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

func (e *Engine) GameID() string             { return e.gameID }
func (e *Engine) ToMove() core.Player        { return e.toMove }
func (e *Engine) Ply() int                   { return e.ply }
func (e *Engine) IsGameOver() bool           { return e.Phase().IsTerminal() }
func (e *Engine) Phase() states.GamePhase    { return e.stateMachine.CurrentPhase() }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// Winner returns the winning player, or core.Empty for a draw or an
// unfinished game.
func (e *Engine) Winner() core.Player { return e.winner }

// Board returns a copy of the live board.
func (e *Engine) Board() *core.Board { return e.board.Copy() }

// Step asks the player to move for a column and applies it. A rejected
// column is reported and the same player moves again on the next Step.
// Moves are only taken while the match is in PhaseRunning.
func (e *Engine) Step(ctx context.Context) error {
	phase := e.Phase()
	if phase.IsTerminal() {
		return core.ErrGameOver
	}
	if !phase.CanReceiveMoves() {
		return fmt.Errorf("%w: no moves accepted in phase %s", ErrNotRunning, phase)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	player := e.toMove
	source := e.players[player]
	choice, err := source.ChooseMove(e.board.Copy(), player)
	if err != nil {
		if errors.Is(err, core.ErrNoLegalMoves) {
			e.finish(core.Empty)
			return nil
		}
		e.abort(fmt.Sprintf("player %s could not choose a move", player))
		return fmt.Errorf("player %s: %w", player, err)
	}

	if choice.Search != nil {
		e.eventBus.Publish(events.NewSearchCompletedEvent(
			e.gameID, player, choice.Column, int(choice.Search.Score),
			choice.Search.Nodes, choice.Search.Stats.Cutoffs, choice.Search.Elapsed,
		))
	}

	if err := e.legalMoves.ValidateDrop(e.board, player, choice.Column); err != nil {
		return e.reject(player, choice.Column, err)
	}

	row, err := e.board.Drop(choice.Column, player)
	if err != nil {
		return e.reject(player, choice.Column, core.WrapMoveError(player, choice.Column, err))
	}
	e.rejections = 0
	e.ply++

	e.eventBus.Publish(events.NewMoveAppliedEvent(e.gameID, player, choice.Column, row, e.ply, source.Source()))
	e.logger.Debug().
		Str("player", player.String()).
		Int("column", choice.Column).
		Int("row", row).
		Int("ply", e.ply).
		Msg("Move applied")

	if over, winner := e.winCondition.CheckGameOver(e.board); over {
		e.finish(winner)
	} else {
		e.toMove = player.Opponent()
	}
	e.render()
	return nil
}

// Run plays until the game ends and returns the winner (core.Empty for a
// draw). The context is checked between moves only.
func (e *Engine) Run(ctx context.Context) (core.Player, error) {
	for !e.IsGameOver() {
		if err := e.Step(ctx); err != nil {
			return core.Empty, err
		}
	}
	return e.winner, nil
}

func (e *Engine) reject(player core.Player, column int, err error) error {
	e.rejections++
	e.eventBus.Publish(events.NewMoveRejectedEvent(e.gameID, player, column, err.Error()))
	e.logger.Warn().
		Err(err).
		Str("player", player.String()).
		Int("column", column).
		Int("rejections", e.rejections).
		Msg("Invalid move, retrying turn")

	if e.rejections >= MaxConsecutiveRejections {
		e.abort(fmt.Sprintf("player %s made %d invalid moves", player, e.rejections))
		return fmt.Errorf("%w: %w", ErrTooManyRejections, err)
	}
	return nil
}

func (e *Engine) finish(winner core.Player) {
	e.winner = winner

	reason := "board full"
	if winner != core.Empty {
		reason = fmt.Sprintf("player %s completed a run", winner)
	}
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, reason); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to Ended state")
	}

	duration := time.Since(e.start)
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, e.ply, duration))
	e.logger.Info().
		Str("winner", winner.String()).
		Int("plies", e.ply).
		Dur("duration", duration).
		Msg("Game over")
}

func (e *Engine) abort(reason string) {
	if err := e.stateMachine.TransitionTo(states.PhaseError, reason); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to Error state")
	}
}

func (e *Engine) render() {
	if e.output == nil {
		return
	}
	fmt.Fprint(e.output, RenderBoard(e.board, e.color))
	if !e.IsGameOver() {
		return
	}
	if e.winner != core.Empty {
		fmt.Fprintf(e.output, "Winner: %s\n", e.winner)
	} else {
		fmt.Fprintln(e.output, "Draw")
	}
}
