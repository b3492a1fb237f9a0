package minimax

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ConnectR/internal/ai/gametree"
	"github.com/mitchelldurbincs/ConnectR/internal/ai/heuristic"
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// tableEvaluator scores leaves by board identity.
type tableEvaluator map[*core.Board]heuristic.Score

func (t tableEvaluator) Evaluate(b *core.Board) heuristic.Score { return t[b] }

func generate(t *testing.T, b *core.Board, toMove core.Player, depth int) *gametree.Node {
	t.Helper()
	root, err := gametree.NewGenerator(depth, 0, zerolog.Nop()).Generate(b, toMove)
	require.NoError(t, err)
	return root
}

// threeByThree builds a two-ply tree whose leaves score values[i][j] for
// the i-th child's j-th child.
func threeByThree(t *testing.T, values [3][3]heuristic.Score) (*gametree.Node, tableEvaluator) {
	t.Helper()
	b, err := core.NewBoard(3, 3, 3)
	require.NoError(t, err)
	root := generate(t, b, core.PlayerA, 2)
	table := tableEvaluator{}
	for i, child := range root.Children {
		for j, leaf := range child.Children {
			table[leaf.Board] = values[i][j]
		}
	}
	return root, table
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	eval, err := heuristic.New(heuristic.DefaultConfig())
	require.NoError(t, err)
	return NewEngine(eval, true, zerolog.Nop())
}

func TestEngine_TextbookTree(t *testing.T) {
	root, table := threeByThree(t, [3][3]heuristic.Score{
		{3, 12, 8},
		{2, 4, 6},
		{14, 5, 2},
	})
	for _, child := range root.Children {
		for _, leaf := range child.Children {
			leaf.Score = 99
		}
	}
	e := NewEngine(table, true, zerolog.Nop())

	res := e.MaxDecision(root)
	assert.Equal(t, Result{Move: 0, Score: 3}, res)
	assert.Equal(t, 0, root.ChosenMove)
	assert.Equal(t, heuristic.Score(3), root.Score)

	// the second min node is cut off after its first leaf
	pruned := root.Children[1]
	assert.Equal(t, heuristic.Score(2), pruned.Children[0].Score)
	assert.Equal(t, heuristic.Score(99), pruned.Children[1].Score)
	assert.Equal(t, heuristic.Score(99), pruned.Children[2].Score)

	stats := e.Stats()
	assert.Equal(t, 11, stats.Nodes)
	assert.Equal(t, 7, stats.Leaves)
	assert.Equal(t, 2, stats.Cutoffs)

	assert.Equal(t, res, e.Minimax(root, Maximizing))
}

func TestEngine_TiesGoToEarliestColumn(t *testing.T) {
	tests := []struct {
		name   string
		values [3][3]heuristic.Score
		role   Role
		want   Result
	}{
		{"all equal max", [3][3]heuristic.Score{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, Maximizing, Result{Move: 0, Score: 0}},
		{"all equal min", [3][3]heuristic.Score{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, Minimizing, Result{Move: 0, Score: 0}},
		{"later tie for max", [3][3]heuristic.Score{{5, 6, 5}, {7, 9, 8}, {7, 7, 7}}, Maximizing, Result{Move: 1, Score: 7}},
		{"later tie for min", [3][3]heuristic.Score{{5, 6, 5}, {-1, 4, 3}, {-1, 2, 6}}, Minimizing, Result{Move: 1, Score: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, table := threeByThree(t, tt.values)
			e := NewEngine(table, true, zerolog.Nop())
			assert.Equal(t, tt.want, e.decide(root, tt.role))
			assert.Equal(t, tt.want, e.Minimax(root, tt.role))
		})
	}
}

func TestEngine_WinsSaturate(t *testing.T) {
	board, err := core.ParseBoard(4,
		".......",
		".......",
		".......",
		".......",
		"BB.....",
		"AAA....",
	)
	require.NoError(t, err)
	e := newEngine(t)

	t.Run("A takes the win", func(t *testing.T) {
		root := generate(t, board, core.PlayerA, 1)
		res := e.MaxDecision(root)
		assert.Equal(t, Result{Move: 3, Score: heuristic.WinScore}, res)
	})

	t.Run("B blocks the win", func(t *testing.T) {
		root := generate(t, board, core.PlayerB, 2)
		res := e.MinDecision(root)
		assert.Equal(t, 3, res.Move)
		assert.Less(t, res.Score, heuristic.WinScore)
		assert.Equal(t, heuristic.WinScore, root.Child(0).Score)
	})

	t.Run("won root", func(t *testing.T) {
		won, err := core.ParseBoard(4,
			".......",
			".......",
			".......",
			".......",
			"BBB....",
			"AAAA...",
		)
		require.NoError(t, err)
		res := e.MinDecision(gametree.NewNode(won))
		assert.Equal(t, Result{Move: core.NoMove, Score: heuristic.WinScore}, res)
	})
}

func TestEngine_FullBoardIsADraw(t *testing.T) {
	full, err := core.ParseBoard(3,
		"ABA",
		"ABA",
		"BAB",
	)
	require.NoError(t, err)
	require.Equal(t, core.Empty, full.TerminalTest())

	e := NewEngine(tableEvaluator{full: 99}, true, zerolog.Nop())
	res := e.MaxDecision(gametree.NewNode(full))
	assert.Equal(t, Result{Move: core.NoMove, Score: 0}, res)
}

func TestEngine_RecordingCanBeDisabled(t *testing.T) {
	root, table := threeByThree(t, [3][3]heuristic.Score{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	e := NewEngine(table, false, zerolog.Nop())

	res := e.MaxDecision(root)
	assert.Equal(t, Result{Move: 2, Score: 7}, res)
	assert.Equal(t, core.NoMove, root.ChosenMove)
	assert.Equal(t, heuristic.Score(0), root.Score)
}

// Alpha-beta must agree with the exhaustive search on every position small
// enough to brute-force.
func TestEngine_AlphaBetaMatchesMinimax(t *testing.T) {
	shapes := []struct {
		rows, cols, r, depth int
	}{
		{4, 4, 3, 4},
		{4, 5, 3, 4},
		{5, 4, 4, 5},
		{3, 3, 2, 4},
	}
	rng := rand.New(rand.NewSource(42))
	e := newEngine(t)
	cutoffs := 0

	for _, shape := range shapes {
		for trial := 0; trial < 25; trial++ {
			board, err := core.NewBoard(shape.rows, shape.cols, shape.r)
			require.NoError(t, err)

			toMove := core.PlayerA
			for plies := rng.Intn(shape.rows * shape.cols / 2); plies > 0; plies-- {
				if board.TerminalTest() != core.Empty || board.IsFull() {
					break
				}
				legal := board.LegalColumns()
				_, err := board.Drop(legal[rng.Intn(len(legal))], toMove)
				require.NoError(t, err)
				toMove = toMove.Opponent()
			}

			root := generate(t, board, toMove, shape.depth)
			role := RoleFor(toMove)

			pruned := e.decide(root, role)
			cutoffs += e.Stats().Cutoffs
			full := e.Minimax(root, role)

			assert.Equal(t, full, pruned, "board %dx%d r=%d\n%s", shape.rows, shape.cols, shape.r, board)
			if !root.IsLeaf() {
				assert.NotNil(t, root.Child(pruned.Move))
			}
		}
	}
	assert.Positive(t, cutoffs)
}

func TestEngine_DecideUsesPlayerRole(t *testing.T) {
	root, table := threeByThree(t, [3][3]heuristic.Score{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	e := NewEngine(table, true, zerolog.Nop())

	assert.Equal(t, Result{Move: 2, Score: 7}, e.Decide(root, core.PlayerA))
	assert.Equal(t, Result{Move: 0, Score: 3}, e.Decide(root, core.PlayerB))
}
