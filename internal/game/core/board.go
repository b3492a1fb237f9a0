package core

import (
	"fmt"
	"strings"
)

// NoMove is the lastMove of a board that was not produced by a drop.
const NoMove = -1

// Board is a rows x cols grid of owner tags stored row-major, row 0 on top.
// Gravity is kept by Drop; cells are never written any other way.
type Board struct {
	rows, cols int
	r          int
	cells      []Player // length = rows*cols
	lastMove   int
}

// NewBoard creates an empty board. r is the run length needed to win.
func NewBoard(rows, cols, r int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidConfiguration, rows, cols)
	}
	if r < 1 || r > min(rows, cols) {
		return nil, fmt.Errorf("%w: run length %d outside [1, %d]", ErrInvalidConfiguration, r, min(rows, cols))
	}
	return &Board{
		rows:     rows,
		cols:     cols,
		r:        r,
		cells:    make([]Player, rows*cols),
		lastMove: NoMove,
	}, nil
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Cols() int      { return b.cols }
func (b *Board) RunLength() int { return b.r }
func (b *Board) LastMove() int  { return b.lastMove }

func (b *Board) Idx(row, col int) int { return row*b.cols + col }

// InBounds checks if the cell is on the board
func (b *Board) InBounds(c Cell) bool {
	return c.IsValid(b.rows, b.cols)
}

// At returns the owner of (row, col). Out-of-range cells read as Empty.
func (b *Board) At(row, col int) Player {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Empty
	}
	return b.cells[b.Idx(row, col)]
}

// Drop places player's marker in the lowest empty cell of column and
// returns the landing row. A full column leaves the board untouched.
func (b *Board) Drop(column int, player Player) (int, error) {
	if !player.IsValid() {
		return -1, ErrInvalidPlayer
	}
	if column < 0 || column >= b.cols {
		return -1, ErrInvalidColumn
	}
	for row := b.rows - 1; row >= 0; row-- {
		idx := b.Idx(row, column)
		if b.cells[idx] == Empty {
			b.cells[idx] = player
			b.lastMove = column
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// IsColumnFull reports whether the top cell of column is occupied.
func (b *Board) IsColumnFull(column int) bool {
	return b.cells[b.Idx(0, column)] != Empty
}

// IsFull reports whether no column accepts another marker.
func (b *Board) IsFull() bool {
	for c := 0; c < b.cols; c++ {
		if !b.IsColumnFull(c) {
			return false
		}
	}
	return true
}

// LegalColumns returns the columns that still accept a marker, ascending.
func (b *Board) LegalColumns() []int {
	cols := make([]int, 0, b.cols)
	for c := 0; c < b.cols; c++ {
		if !b.IsColumnFull(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// LandingRow returns the row of the topmost marker in column, or -1 if the
// column is empty or out of range.
func (b *Board) LandingRow(column int) int {
	if column < 0 || column >= b.cols {
		return -1
	}
	for row := 0; row < b.rows; row++ {
		if b.cells[b.Idx(row, column)] != Empty {
			return row
		}
	}
	return -1
}

// TerminalTest scans rows, columns and both diagonals for r consecutive
// cells with the same owner and returns that owner, or Empty.
func (b *Board) TerminalTest() Player {
	for _, d := range Directions {
		if winner := b.scanFamily(d); winner != Empty {
			return winner
		}
	}
	return Empty
}

// scanFamily walks every line of direction d from its first in-bounds cell.
func (b *Board) scanFamily(d Direction) Player {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			start := Cell{Row: row, Col: col}
			if b.InBounds(start.Step(d, -1)) {
				continue // not the beginning of a line
			}
			if winner := b.scanLine(start, d); winner != Empty {
				return winner
			}
		}
	}
	return Empty
}

func (b *Board) scanLine(start Cell, d Direction) Player {
	run := 0
	prev := Empty
	for c := start; b.InBounds(c); c = c.Step(d, 1) {
		owner := b.cells[c.ToIndex(b.cols)]
		switch {
		case owner == Empty:
			run = 0
		case owner == prev:
			run++
		default:
			run = 1
		}
		prev = owner
		if run == b.r {
			return owner
		}
	}
	return Empty
}

// Copy returns an independent clone. The clone's lastMove is reset.
func (b *Board) Copy() *Board {
	cells := make([]Player, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:     b.rows,
		cols:     b.cols,
		r:        b.r,
		cells:    cells,
		lastMove: NoMove,
	}
}

// Equals reports whether both boards have the same shape and cells.
func (b *Board) Equals(other *Board) bool {
	if other == nil || b.rows != other.rows || b.cols != other.cols || b.r != other.r {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// MarkerCount returns the number of occupied cells.
func (b *Board) MarkerCount() int {
	n := 0
	for _, p := range b.cells {
		if p != Empty {
			n++
		}
	}
	return n
}

// String renders the board as plain text, one row per line, top row first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.At(row, col).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
