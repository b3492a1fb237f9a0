package gametree

import (
	"github.com/mitchelldurbincs/ConnectR/internal/ai/heuristic"
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// Node owns one board and the children reachable from it by a single drop.
// Children are ordered by the column that produced them.
type Node struct {
	Board    *core.Board
	Children []*Node

	// Score and ChosenMove are only meaningful once a search has recorded
	// its result into the node.
	Score      heuristic.Score
	ChosenMove int
}

// NewNode wraps board in an unsearched node. The node takes ownership of
// the board.
func NewNode(board *core.Board) *Node {
	return &Node{
		Board:      board,
		ChosenMove: core.NoMove,
	}
}

// Move returns the column whose drop produced this node.
func (n *Node) Move() int {
	return n.Board.LastMove()
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the child produced by column, or nil.
func (n *Node) Child(column int) *Node {
	for _, c := range n.Children {
		if c.Move() == column {
			return c
		}
	}
	return nil
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Depth returns the length of the longest path from n down to a leaf.
func (n *Node) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Release detaches every descendant of n.
func (n *Node) Release() {
	for _, c := range n.Children {
		c.Release()
	}
	n.Children = nil
}
