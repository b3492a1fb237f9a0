package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// ANSI escape codes for board rendering
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	Underline  = "\033[4m"
)

var playerColors = map[core.Player]string{
	core.PlayerA: ColorRed,
	core.PlayerB: ColorBlue,
}

// RenderBoard draws the board with a column header and row numbers:
//
//	 | 0 1 2
//	0| . . .
//	1| A B .
//
// With color set, the header is underlined and markers are colored.
func RenderBoard(board *core.Board, color bool) string {
	var sb strings.Builder
	sb.Grow((board.Cols()*2 + 6) * (board.Rows() + 1) * 4)

	if color {
		sb.WriteString(Underline)
	}
	sb.WriteString(" |")
	for col := 0; col < board.Cols(); col++ {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(col))
	}
	if color {
		sb.WriteString(ColorReset)
	}
	sb.WriteByte('\n')

	for row := 0; row < board.Rows(); row++ {
		sb.WriteString(strconv.Itoa(row))
		sb.WriteByte('|')
		for col := 0; col < board.Cols(); col++ {
			sb.WriteByte(' ')
			writeCell(&sb, board.At(row, col), color)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeCell(sb *strings.Builder, p core.Player, color bool) {
	c, ok := playerColors[p]
	if !color || !ok {
		sb.WriteString(p.String())
		return
	}
	sb.WriteString(c)
	sb.WriteString(p.String())
	sb.WriteString(ColorReset)
}
