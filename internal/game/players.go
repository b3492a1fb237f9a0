package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/ConnectR/internal/ai"
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
	"github.com/mitchelldurbincs/ConnectR/internal/game/events"
)

var ErrInputClosed = errors.New("input closed")

// Choice is a column picked by a move source. Search is set when the
// column came from the search agent.
type Choice struct {
	Column int
	Search *ai.Decision
}

// MoveSource picks columns for one player. The board handed to ChooseMove
// is a copy of the live board.
type MoveSource interface {
	ChooseMove(board *core.Board, player core.Player) (Choice, error)
	// Source names the kind of player in move events.
	Source() string
}

// AIPlayer chooses moves with the search agent.
type AIPlayer struct {
	agent *ai.Agent
}

func NewAIPlayer(agent *ai.Agent) *AIPlayer {
	return &AIPlayer{agent: agent}
}

func (p *AIPlayer) ChooseMove(board *core.Board, player core.Player) (Choice, error) {
	d, err := p.agent.SelectMove(board, player)
	if err != nil {
		return Choice{}, err
	}
	return Choice{Column: d.Column, Search: &d}, nil
}

func (p *AIPlayer) Source() string { return events.SourceAI }

// HumanPlayer reads columns from a text stream, one per line. Malformed
// input and full columns are answered with a new prompt.
type HumanPlayer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewHumanPlayer(in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{in: bufio.NewReader(in), out: out}
}

func (p *HumanPlayer) ChooseMove(board *core.Board, player core.Player) (Choice, error) {
	if len(board.LegalColumns()) == 0 {
		return Choice{}, core.ErrNoLegalMoves
	}
	for {
		fmt.Fprintf(p.out, "Player %s, choose a column (0-%d): ", player, board.Cols()-1)
		line, readErr := p.in.ReadString('\n')
		if readErr != nil && strings.TrimSpace(line) == "" {
			if errors.Is(readErr, io.EOF) {
				return Choice{}, ErrInputClosed
			}
			return Choice{}, readErr
		}

		col, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil || col < 0 || col >= board.Cols():
			fmt.Fprintf(p.out, "Invalid column %q\n", strings.TrimSpace(line))
		case board.IsColumnFull(col):
			fmt.Fprintf(p.out, "Column %d is full\n", col)
		default:
			return Choice{Column: col}, nil
		}
		if readErr != nil {
			return Choice{}, ErrInputClosed
		}
	}
}

func (p *HumanPlayer) Source() string { return events.SourceHuman }
