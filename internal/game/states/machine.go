package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/game/events"
)

var ErrInvalidTransition = errors.New("invalid phase transition")

// Transition represents a state transition in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine tracks the phase of one match
type StateMachine struct {
	mu           sync.RWMutex
	gameID       string
	currentPhase GamePhase
	history      []Transition
	publisher    events.Publisher
	logger       zerolog.Logger
}

// NewStateMachine creates a state machine in PhaseSetup. publisher may be nil.
func NewStateMachine(gameID string, publisher events.Publisher, logger zerolog.Logger) *StateMachine {
	return &StateMachine{
		gameID:       gameID,
		currentPhase: PhaseSetup,
		history:      make([]Transition, 0, 4),
		publisher:    publisher,
		logger:       logger.With().Str("component", "StateMachine").Str("game_id", gameID).Logger(),
	}
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase
}

// TransitionTo moves the match to targetPhase if the transition is allowed
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()
	from := sm.currentPhase
	if !from.CanTransitionTo(targetPhase) {
		sm.mu.Unlock()
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, targetPhase)
	}
	sm.currentPhase = targetPhase
	sm.history = append(sm.history, Transition{
		From:      from,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})
	sm.mu.Unlock()

	// publish outside the lock so handlers may query the machine
	if sm.publisher != nil {
		sm.publisher.Publish(events.NewPhaseChangedEvent(sm.gameID, from.String(), targetPhase.String(), reason))
	}
	sm.logger.Debug().
		Str("from_phase", from.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")
	return nil
}

// History returns a copy of the transition history
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}
