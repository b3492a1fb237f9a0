package core

import "fmt"

// Cell addresses one position on the board. Row 0 is the top row.
type Cell struct {
	Row, Col int
}

// IsValid checks if the cell is within the given bounds
func (c Cell) IsValid(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// ToIndex converts the cell to a board array index using row-major ordering
func (c Cell) ToIndex(cols int) int {
	return c.Row*cols + c.Col
}

// Step returns the cell n steps away along d.
func (c Cell) Step(d Direction, n int) Cell {
	v := DirectionVectors[d]
	return Cell{Row: c.Row + v.Row*n, Col: c.Col + v.Col*n}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction names one of the four line families a run can lie on.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
	// ForwardDiagonal runs top-left to bottom-right ("\").
	ForwardDiagonal
	// BackwardDiagonal runs bottom-left to top-right ("/").
	BackwardDiagonal
)

// Directions lists every line family in scan order.
var Directions = []Direction{Horizontal, Vertical, ForwardDiagonal, BackwardDiagonal}

// DirectionVectors holds the unit step of each line family, indexed by
// Direction.
var DirectionVectors = [...]Cell{
	Horizontal:       {Row: 0, Col: 1},
	Vertical:         {Row: 1, Col: 0},
	ForwardDiagonal:  {Row: 1, Col: 1},
	BackwardDiagonal: {Row: -1, Col: 1},
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case ForwardDiagonal:
		return "forward_diagonal"
	case BackwardDiagonal:
		return "backward_diagonal"
	default:
		return "unknown"
	}
}

// IsDiagonal reports whether d is one of the two diagonal families.
func (d Direction) IsDiagonal() bool {
	return d == ForwardDiagonal || d == BackwardDiagonal
}
