package heuristic

import (
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// Score is a position value from player A's point of view.
type Score int

// WinScore is the saturated value of a completed run. Every windowed
// evaluation stays strictly inside (-WinScore, WinScore).
const WinScore Score = 1 << 20

// Config controls which lines are scored and how windows are weighted.
type Config struct {
	// Diagonals adds the two diagonal families to the horizontal and
	// vertical lines through the last move.
	Diagonals bool
	Weights   Weights
}

// DefaultConfig returns the evaluator configuration used by the agent.
func DefaultConfig() Config {
	return Config{
		// Earlier versions scored horizontal and vertical lines only.
		// Diagonals false keeps that behaviour.
		Diagonals: true,
		Weights:   DefaultWeights(),
	}
}

// Evaluator scores boards at search leaves by looking at the windows of r
// cells around the cell filled by the board's last move.
type Evaluator struct {
	config Config
}

// New creates an evaluator after validating the weight table.
func New(config Config) (*Evaluator, error) {
	if err := config.Weights.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{config: config}, nil
}

// Config returns the evaluator configuration.
func (e *Evaluator) Config() Config { return e.config }

// Evaluate returns the windowed score of b. Boards without a last move
// score 0. Terminal boards are the caller's concern.
func (e *Evaluator) Evaluate(b *core.Board) Score {
	col := b.LastMove()
	if col == core.NoMove {
		return 0
	}
	row := b.LandingRow(col)
	if row < 0 {
		return 0
	}
	landing := core.Cell{Row: row, Col: col}
	mover := b.At(row, col)

	total := 0
	for _, d := range core.Directions {
		if d.IsDiagonal() && !e.config.Diagonals {
			continue
		}
		total += e.scoreLine(b, landing, d, mover)
	}
	if mover == core.PlayerB {
		total = -total
	}
	return Score(total)
}

// LineScores returns the per-direction contribution for the last move, from
// the mover's point of view. Unscored directions are absent.
func (e *Evaluator) LineScores(b *core.Board) map[core.Direction]int {
	scores := make(map[core.Direction]int)
	col := b.LastMove()
	if col == core.NoMove {
		return scores
	}
	row := b.LandingRow(col)
	if row < 0 {
		return scores
	}
	landing := core.Cell{Row: row, Col: col}
	for _, d := range core.Directions {
		if d.IsDiagonal() && !e.config.Diagonals {
			continue
		}
		scores[d] = e.scoreLine(b, landing, d, b.At(row, col))
	}
	return scores
}

// scoreLine returns the best window along direction d that contains the
// landing cell. Lines shorter than r contribute nothing.
func (e *Evaluator) scoreLine(b *core.Board, landing core.Cell, d core.Direction, mover core.Player) int {
	r := b.RunLength()
	best, found := 0, false
	for offset := -(r - 1); offset <= 0; offset++ {
		start := landing.Step(d, offset)
		if !b.InBounds(start) || !b.InBounds(start.Step(d, r-1)) {
			continue
		}
		own, opp, empty := countWindow(b, start, d, mover)
		s := e.config.Weights.Window(own, opp, empty, r)
		if !found || s > best {
			best, found = s, true
		}
	}
	return best
}

func countWindow(b *core.Board, start core.Cell, d core.Direction, mover core.Player) (own, opp, empty int) {
	for i := 0; i < b.RunLength(); i++ {
		c := start.Step(d, i)
		switch b.At(c.Row, c.Col) {
		case core.Empty:
			empty++
		case mover:
			own++
		default:
			opp++
		}
	}
	return own, opp, empty
}
