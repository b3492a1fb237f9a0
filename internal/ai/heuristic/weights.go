package heuristic

import (
	"errors"
	"fmt"
)

var ErrInvalidWeights = errors.New("invalid heuristic weights")

// Weights maps window contents to scores, from the mover's point of view.
type Weights struct {
	Win           int // r own markers
	BlockedThreat int // one own marker stopping r-1 opponent markers
	NearWin       int // r-1 own markers and one empty cell
	Two           int // r-2 own markers (at least two) and the rest empty
}

// DefaultWeights returns the stock window table.
func DefaultWeights() Weights {
	return Weights{
		Win:           10,
		BlockedThreat: 5,
		NearWin:       4,
		Two:           3,
	}
}

// Validate checks the ordering wins > near-wins > weak threats > neutral,
// and that a full evaluation stays below WinScore.
func (w Weights) Validate() error {
	if w.Win <= max(w.BlockedThreat, w.NearWin) {
		return fmt.Errorf("%w: win (%d) must exceed near-win scores (%d, %d)", ErrInvalidWeights, w.Win, w.NearWin, w.BlockedThreat)
	}
	if min(w.BlockedThreat, w.NearWin) <= w.Two {
		return fmt.Errorf("%w: near-win scores (%d, %d) must exceed two (%d)", ErrInvalidWeights, w.NearWin, w.BlockedThreat, w.Two)
	}
	if w.Two <= 0 {
		return fmt.Errorf("%w: two (%d) must be positive", ErrInvalidWeights, w.Two)
	}
	// four line families, one window each
	if 4*w.Win >= int(WinScore) {
		return fmt.Errorf("%w: win (%d) reaches the saturated score", ErrInvalidWeights, w.Win)
	}
	return nil
}

// Window scores one window of r cells holding own mover markers, opp
// opponent markers and empty free cells. Every scored window holds the
// mover's last marker, so a window without one scores 0.
func (w Weights) Window(own, opp, empty, r int) int {
	switch {
	case own == r:
		return w.Win
	case own >= 1 && own == r-1 && empty == 1:
		return w.NearWin
	case own == 1 && opp >= 1 && opp == r-1:
		return w.BlockedThreat
	case own >= 2 && own == r-2 && empty == 2:
		return w.Two
	default:
		return 0
	}
}
