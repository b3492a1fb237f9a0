package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, rows, cols, r int) *Board {
	t.Helper()
	b, err := NewBoard(rows, cols, r)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		r          int
		wantErr    bool
	}{
		{"standard board", 6, 7, 4, false},
		{"rectangular board", 3, 10, 3, false},
		{"minimum board", 1, 1, 1, false},
		{"r equals min dimension", 4, 9, 4, false},
		{"zero rows", 0, 7, 4, true},
		{"negative cols", 6, -1, 4, true},
		{"zero run length", 6, 7, 0, true},
		{"run length too long", 6, 7, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoard(tt.rows, tt.cols, tt.r)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, b.Rows())
			assert.Equal(t, tt.cols, b.Cols())
			assert.Equal(t, tt.r, b.RunLength())
			assert.Equal(t, NoMove, b.LastMove())
			assert.Len(t, b.cells, tt.rows*tt.cols)
			assert.Equal(t, 0, b.MarkerCount())
		})
	}
}

func TestBoard_Drop(t *testing.T) {
	b := mustBoard(t, 3, 4, 3)

	row, err := b.Drop(2, PlayerA)
	require.NoError(t, err)
	assert.Equal(t, 2, row, "first marker lands on the bottom row")
	assert.Equal(t, PlayerA, b.At(2, 2))
	assert.Equal(t, 2, b.LastMove())

	row, err = b.Drop(2, PlayerB)
	require.NoError(t, err)
	assert.Equal(t, 1, row, "second marker stacks on the first")
	assert.Equal(t, PlayerB, b.At(1, 2))
	assert.Equal(t, 1, b.LandingRow(2))

	t.Run("invalid column", func(t *testing.T) {
		_, err := b.Drop(4, PlayerA)
		assert.ErrorIs(t, err, ErrInvalidColumn)
		_, err = b.Drop(-1, PlayerA)
		assert.ErrorIs(t, err, ErrInvalidColumn)
	})

	t.Run("empty player", func(t *testing.T) {
		_, err := b.Drop(0, Empty)
		assert.ErrorIs(t, err, ErrInvalidPlayer)
	})
}

func TestBoard_DropFullColumnIsRejectedWithoutMutation(t *testing.T) {
	b := mustBoard(t, 3, 3, 3)
	for _, p := range []Player{PlayerA, PlayerB, PlayerA} {
		_, err := b.Drop(1, p)
		require.NoError(t, err)
	}
	_, err := b.Drop(0, PlayerB)
	require.NoError(t, err)
	before := b.Copy()
	lastMove := b.LastMove()

	for i := 0; i < 3; i++ {
		row, err := b.Drop(1, PlayerB)
		assert.ErrorIs(t, err, ErrColumnFull)
		assert.Equal(t, -1, row)
		assert.True(t, b.Equals(before), "rejected drop must not change the board")
		assert.Equal(t, lastMove, b.LastMove(), "rejected drop must not touch lastMove")
	}
	assert.True(t, b.IsColumnFull(1))
	assert.False(t, b.IsColumnFull(0))
}

func TestBoard_GravityInvariant(t *testing.T) {
	b := mustBoard(t, 6, 7, 4)
	moves := []int{3, 3, 4, 2, 3, 6, 6, 0, 3, 3, 3}
	p := PlayerA
	for _, col := range moves {
		_, err := b.Drop(col, p)
		if err != nil {
			require.ErrorIs(t, err, ErrColumnFull)
		}
		p = p.Opponent()
	}

	for col := 0; col < b.Cols(); col++ {
		for row := 0; row < b.Rows()-1; row++ {
			if b.At(row, col) != Empty {
				assert.NotEqual(t, Empty, b.At(row+1, col), "cell below %s is empty", Cell{Row: row, Col: col})
			}
		}
	}
}

func TestBoard_LegalColumnsAndIsFull(t *testing.T) {
	b := mustBoard(t, 2, 3, 2)
	assert.Equal(t, []int{0, 1, 2}, b.LegalColumns())
	assert.False(t, b.IsFull())

	for _, col := range []int{0, 0, 2} {
		_, err := b.Drop(col, PlayerA)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2}, b.LegalColumns())

	for _, col := range []int{1, 1, 2} {
		_, err := b.Drop(col, PlayerB)
		require.NoError(t, err)
	}
	assert.Empty(t, b.LegalColumns())
	assert.True(t, b.IsFull())
}

func TestBoard_TerminalTest(t *testing.T) {
	tests := []struct {
		name  string
		r     int
		rows  []string
		wants Player
	}{
		{
			name: "empty board",
			r:    4,
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				".......",
			},
			wants: Empty,
		},
		{
			name: "bottom row run",
			r:    4,
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"AAAA...",
			},
			wants: PlayerA,
		},
		{
			name: "horizontal run away from the edge",
			r:    4,
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				"..BBBB.",
				".AABAA.",
			},
			wants: PlayerB,
		},
		{
			name: "vertical run",
			r:    4,
			rows: []string{
				".......",
				".......",
				"......B",
				"......B",
				"A.....B",
				"A.A...B",
			},
			wants: PlayerB,
		},
		{
			name: "forward diagonal",
			r:    4,
			rows: []string{
				".......",
				".......",
				"A......",
				"BA.....",
				"BBA....",
				"BBBA...",
			},
			wants: PlayerA,
		},
		{
			name: "backward diagonal",
			r:    4,
			rows: []string{
				".......",
				".......",
				"......B",
				".....BA",
				"....BAA",
				"...BAAA",
			},
			wants: PlayerB,
		},
		{
			name: "diagonal not starting on an edge",
			r:    3,
			rows: []string{
				".....",
				"...A.",
				"..AB.",
				".ABB.",
				"BBAA.",
			},
			wants: PlayerA,
		},
		{
			name: "interrupted runs do not count",
			r:    4,
			rows: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"AAABAAA",
			},
			wants: Empty,
		},
		{
			name: "owner change resets the counter",
			r:    3,
			rows: []string{
				"....",
				"B...",
				"A...",
				"A...",
				"BAB.",
			},
			wants: Empty,
		},
		{
			name:  "single cell run length one",
			r:     1,
			rows:  []string{"..", "B."},
			wants: PlayerB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBoard(tt.r, tt.rows...)
			require.NoError(t, err)
			assert.Equal(t, tt.wants, b.TerminalTest())
		})
	}
}

func TestBoard_TerminalTestEveryLineFamily(t *testing.T) {
	// Each family on a 6x7 board, r=4, placed at every legal offset.
	for _, d := range Directions {
		t.Run(d.String(), func(t *testing.T) {
			b := mustBoard(t, 6, 7, 4)
			v := DirectionVectors[d]
			found := 0
			for row := 0; row < b.Rows(); row++ {
				for col := 0; col < b.Cols(); col++ {
					start := Cell{Row: row, Col: col}
					end := Cell{Row: row + v.Row*3, Col: col + v.Col*3}
					if !b.InBounds(end) {
						continue
					}
					probe := b.Copy()
					for i := 0; i < 4; i++ {
						c := start.Step(d, i)
						probe.cells[c.ToIndex(b.Cols())] = PlayerB
					}
					assert.Equal(t, PlayerB, probe.TerminalTest(), "run from %s", start)
					found++
				}
			}
			assert.Positive(t, found)
		})
	}
}

func TestBoard_WinDetectedExactlyOnFourthMarker(t *testing.T) {
	b := mustBoard(t, 6, 7, 4)
	// A stacks column 3, B answers in columns 2, 1, 1.
	plies := []struct {
		col    int
		player Player
	}{
		{3, PlayerA}, {2, PlayerB},
		{3, PlayerA}, {1, PlayerB},
		{3, PlayerA}, {1, PlayerB},
		{3, PlayerA},
	}

	for i, ply := range plies {
		_, err := b.Drop(ply.col, ply.player)
		require.NoError(t, err)
		if i < len(plies)-1 {
			assert.Equal(t, Empty, b.TerminalTest(), "no winner expected after ply %d", i+1)
		}
	}
	assert.Equal(t, PlayerA, b.TerminalTest())
	assert.Equal(t, 2, b.LandingRow(3))
}

func TestBoard_CopyIsIndependent(t *testing.T) {
	b := mustBoard(t, 4, 4, 3)
	_, err := b.Drop(1, PlayerA)
	require.NoError(t, err)

	clone := b.Copy()
	require.True(t, clone.Equals(b))
	assert.Equal(t, NoMove, clone.LastMove(), "copies start without a last move")
	assert.Equal(t, 1, b.LastMove())
	assert.Len(t, clone.cells, 16)

	_, err = clone.Drop(1, PlayerB)
	require.NoError(t, err)
	_, err = clone.Drop(3, PlayerB)
	require.NoError(t, err)

	assert.False(t, clone.Equals(b))
	assert.Equal(t, Empty, b.At(2, 1), "original must not see the copy's drop")
	assert.Equal(t, Empty, b.At(3, 3))
	assert.Equal(t, 1, b.MarkerCount())
}

func TestBoard_Equals(t *testing.T) {
	a := mustBoard(t, 3, 3, 3)
	b := mustBoard(t, 3, 3, 3)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(nil))
	assert.False(t, a.Equals(mustBoard(t, 3, 3, 2)), "different run length")
	assert.False(t, a.Equals(mustBoard(t, 3, 4, 3)), "different shape")

	_, err := a.Drop(0, PlayerA)
	require.NoError(t, err)
	assert.False(t, a.Equals(b))
	_, err = b.Drop(0, PlayerA)
	require.NoError(t, err)
	assert.True(t, a.Equals(b))
}

func TestBoard_String(t *testing.T) {
	b, err := ParseBoard(2, "...", ".B.", "AAB")
	require.NoError(t, err)
	assert.Equal(t, ". . .\n. B .\nA A B\n", b.String())
	assert.Equal(t, Empty, b.At(-1, 0))
	assert.Equal(t, Empty, b.At(0, 3))
}
