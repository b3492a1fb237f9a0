package ai

import (
	"fmt"
	"testing"

	"github.com/mitchelldurbincs/ConnectR/internal/ai/gametree"
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
	"github.com/mitchelldurbincs/ConnectR/internal/testutil"
)

func BenchmarkSelectMove(b *testing.B) {
	testCases := []struct {
		name  string
		rows  int
		cols  int
		r     int
		depth int
		moves []int
	}{
		{"Standard_6x7_Depth4_Empty", 6, 7, 4, 4, nil},
		{"Standard_6x7_Depth6_Empty", 6, 7, 4, 6, nil},
		{"Standard_6x7_Depth6_Midgame", 6, 7, 4, 6, []int{3, 3, 2, 4, 4, 2}},
		{"Small_4x4_Depth6", 4, 4, 3, 6, nil},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			cfg := DefaultAgentConfig()
			cfg.Depth = tc.depth
			agent, err := NewAgent(cfg, testutil.NopLogger())
			if err != nil {
				b.Fatal(err)
			}
			board := testutil.PlayMoves(b, tc.rows, tc.cols, tc.r, core.PlayerA, tc.moves...)

			var nodes int
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d, err := agent.SelectMove(board, core.PlayerA)
				if err != nil {
					b.Fatal(err)
				}
				nodes = d.Nodes
			}

			b.ReportMetric(float64(nodes), "tree_nodes")
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	for depth := 2; depth <= gametree.DefaultDepth; depth += 2 {
		b.Run(fmt.Sprintf("Depth%d", depth), func(b *testing.B) {
			gen := gametree.NewGenerator(depth, 0, testutil.NopLogger())
			board := testutil.PlayMoves(b, 6, 7, 4, core.PlayerA)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				root, err := gen.Generate(board, core.PlayerA)
				if err != nil {
					b.Fatal(err)
				}
				root.Release()
			}
		})
	}
}
