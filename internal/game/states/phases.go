package states

import "fmt"

// GamePhase represents the current phase of a match
type GamePhase int

const (
	// PhaseSetup - board and players being prepared
	PhaseSetup GamePhase = iota

	// PhaseOpening - random opening markers being placed
	PhaseOpening

	// PhaseRunning - players choosing moves
	PhaseRunning

	// PhaseEnded - a run was completed or the board filled
	PhaseEnded

	// PhaseError - the match was aborted
	PhaseError
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseOpening:
		return "Opening"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if no further transitions are possible
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveMoves returns true if players may move in this phase
func (p GamePhase) CanReceiveMoves() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseSetup:
		return []GamePhase{PhaseOpening, PhaseRunning, PhaseError}
	case PhaseOpening:
		return []GamePhase{PhaseRunning, PhaseEnded, PhaseError}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseError}
	default:
		return nil
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
