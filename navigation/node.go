package navigation

import "github.com/lixenwraith/tilepath/core"

// noParent marks the root of the search tree
const noParent = -1

// Neighbor offsets in expansion order: right, left, up, down
var neighborOffsets = [4]core.Cell{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
}

// searchNode is one candidate cell in the per-call arena
// parent is an arena index, noParent for the start node
type searchNode struct {
	pos    core.Cell
	target core.Cell
	parent int
	step   int // Cost of the edge from this node to any child

	g, h, f int
}

// newNode computes the cost breakdown once; nodes are never mutated afterwards
// arena is only read when parent != noParent
func newNode(arena []searchNode, pos, target core.Cell, parent, step int) searchNode {
	n := searchNode{
		pos:    pos,
		target: target,
		parent: parent,
		step:   step,
	}
	if parent != noParent {
		p := arena[parent]
		n.g = p.g + p.step
	}
	n.h = pos.Manhattan(target)
	n.f = n.g + n.h
	return n
}
