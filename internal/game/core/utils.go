package core

import (
	"fmt"
	"strings"
)

// ParseBoard builds a board from text rows, top row first. Cells are
// written as A, B or '.', optionally separated by spaces. The position must
// respect gravity.
func ParseBoard(r int, lines ...string) (*Board, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows given", ErrInvalidConfiguration)
	}
	grid := make([][]Player, len(lines))
	for i, line := range lines {
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if i > 0 && len(row) != len(grid[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfiguration, i, len(row), len(grid[0]))
		}
		grid[i] = row
	}

	b, err := NewBoard(len(grid), len(grid[0]), r)
	if err != nil {
		return nil, err
	}
	for col := 0; col < b.cols; col++ {
		for row := b.rows - 1; row >= 0; row-- {
			p := grid[row][col]
			if p == Empty {
				// everything above must be empty as well
				for above := row - 1; above >= 0; above-- {
					if grid[above][col] != Empty {
						return nil, fmt.Errorf("%w: floating marker at %s", ErrInvalidConfiguration, Cell{Row: above, Col: col})
					}
				}
				break
			}
			if _, err := b.Drop(col, p); err != nil {
				return nil, err
			}
		}
	}
	b.lastMove = NoMove
	return b, nil
}

func parseRow(line string) ([]Player, error) {
	line = strings.TrimSpace(line)
	var tokens []string
	if strings.Contains(line, " ") {
		tokens = strings.Fields(line)
	} else {
		tokens = strings.Split(line, "")
	}
	row := make([]Player, 0, len(tokens))
	for _, tok := range tokens {
		switch tok {
		case ".", "_", "0":
			row = append(row, Empty)
		default:
			p, err := ParsePlayer(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: unknown cell %q", ErrInvalidConfiguration, tok)
			}
			row = append(row, p)
		}
	}
	if len(row) == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrInvalidConfiguration)
	}
	return row, nil
}
