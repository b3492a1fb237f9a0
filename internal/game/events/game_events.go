package events

import (
	"time"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeMoveApplied     = "move.applied"
	TypeMoveRejected    = "move.rejected"
	TypeSearchCompleted = "search.completed"
	TypePhaseChanged    = "phase.changed"
)

// Move sources reported in MoveAppliedEvent.
const (
	SourceOpening = "opening"
	SourceAI      = "ai"
	SourceHuman   = "human"
)

// GameStartedEvent is published once the board is set up, after any
// opening moves have been placed.
type GameStartedEvent struct {
	BaseEvent
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	RunLength int         `json:"run_length"`
	First     core.Player `json:"first"`
	Opening   []int       `json:"opening,omitempty"`
}

func NewGameStartedEvent(gameID string, rows, cols, runLength int, first core.Player, opening []int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Rows:      rows,
		Cols:      cols,
		RunLength: runLength,
		First:     first,
		Opening:   opening,
	}
}

// GameEndedEvent is published when a run is completed or the board fills.
// Winner is core.Empty for a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner   core.Player   `json:"winner"`
	Plies    int           `json:"plies"`
	Duration time.Duration `json:"duration"`
}

func NewGameEndedEvent(gameID string, winner core.Player, plies int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Plies:     plies,
		Duration:  duration,
	}
}

// MoveAppliedEvent is published after a marker lands on the live board.
type MoveAppliedEvent struct {
	BaseEvent
	Player core.Player `json:"player"`
	Column int         `json:"column"`
	Row    int         `json:"row"`
	Ply    int         `json:"ply"`
	Source string      `json:"source"`
}

func NewMoveAppliedEvent(gameID string, player core.Player, column, row, ply int, source string) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent: newBase(TypeMoveApplied, gameID),
		Player:    player,
		Column:    column,
		Row:       row,
		Ply:       ply,
		Source:    source,
	}
}

// MoveRejectedEvent is published when a chosen column cannot be played.
type MoveRejectedEvent struct {
	BaseEvent
	Player core.Player `json:"player"`
	Column int         `json:"column"`
	Reason string      `json:"reason"`
}

func NewMoveRejectedEvent(gameID string, player core.Player, column int, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Player:    player,
		Column:    column,
		Reason:    reason,
	}
}

// SearchCompletedEvent reports the work behind one AI decision.
type SearchCompletedEvent struct {
	BaseEvent
	Player  core.Player   `json:"player"`
	Column  int           `json:"column"`
	Score   int           `json:"score"`
	Nodes   int           `json:"nodes"`
	Cutoffs int           `json:"cutoffs"`
	Elapsed time.Duration `json:"elapsed"`
}

func NewSearchCompletedEvent(gameID string, player core.Player, column, score, nodes, cutoffs int, elapsed time.Duration) *SearchCompletedEvent {
	return &SearchCompletedEvent{
		BaseEvent: newBase(TypeSearchCompleted, gameID),
		Player:    player,
		Column:    column,
		Score:     score,
		Nodes:     nodes,
		Cutoffs:   cutoffs,
		Elapsed:   elapsed,
	}
}

// PhaseChangedEvent is published on every match phase transition.
type PhaseChangedEvent struct {
	BaseEvent
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

func NewPhaseChangedEvent(gameID, from, to, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: newBase(TypePhaseChanged, gameID),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}
