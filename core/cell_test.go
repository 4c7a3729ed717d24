package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellNear_InvertsWorld(t *testing.T) {
	anchors := []Vec2{{X: 0.5, Y: 0.5}, {X: 0, Y: 0}, {X: -10, Y: 0.25}, {X: 3.75, Y: -2.5}}
	cells := []Cell{{X: 0, Y: 0}, {X: 7, Y: -3}, {X: -12, Y: 40}}

	for _, a := range anchors {
		for _, c := range cells {
			assert.Equal(t, c, CellNear(c.World(a), a), "cell %v anchor %v", c, a)
		}
	}
}

func TestCellNear_CentreAnchorFloors(t *testing.T) {
	centre := Vec2{X: 0.5, Y: 0.5}
	for _, p := range []Vec2{{X: 3.2, Y: 0.9}, {X: -0.1, Y: 5}, {X: 4, Y: -7.99}} {
		assert.Equal(t, CellAt(p), CellNear(p, centre), "%v", p)
	}
}

func TestCell_Manhattan(t *testing.T) {
	assert.Equal(t, 7, Cell{X: -2, Y: 3}.Manhattan(Cell{X: 1, Y: -1}))
	assert.Zero(t, Cell{X: 5, Y: 5}.Manhattan(Cell{X: 5, Y: 5}))
}
