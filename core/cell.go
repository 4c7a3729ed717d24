package core

import "math"

// Cell addresses one unit square of the grid
type Cell struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Add returns the cell offset by d
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Manhattan returns |dx| + |dy| between c and o
func (c Cell) Manhattan(o Cell) int {
	dx := o.X - c.X
	dy := o.Y - c.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// World converts the cell to its world-space position using the tile anchor
func (c Cell) World(anchor Vec2) Vec2 {
	return Vec2{X: float64(c.X) + anchor.X, Y: float64(c.Y) + anchor.Y}
}

// Vec2 is a world-space position
type Vec2 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// CellAt floors a world-space position to the cell containing it
func CellAt(p Vec2) Cell {
	return Cell{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// CellNear returns the cell whose anchored world position lies nearest p; the inverse of World
// With the centre anchor (0.5, 0.5) this is CellAt
func CellNear(p, anchor Vec2) Cell {
	return CellAt(Vec2{X: p.X - anchor.X + 0.5, Y: p.Y - anchor.Y + 0.5})
}
