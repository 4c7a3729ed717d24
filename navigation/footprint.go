package navigation

import "github.com/lixenwraith/tilepath/core"

// Footprint answers passability for an agent covering a W×H block of cells
// The searched cell is the header; HeaderOffX/Y is the offset from the block's top-left to the header
// (e.g., 2,1 for a 5×3 body centred on its header)
type Footprint struct {
	Base                   ObstacleQuery
	W, H                   int
	HeaderOffX, HeaderOffY int
}

// NewFootprint wraps base for the given body dimensions
func NewFootprint(base ObstacleQuery, w, h, headerOffX, headerOffY int) *Footprint {
	return &Footprint{
		Base:       base,
		W:          max(1, w),
		H:          max(1, h),
		HeaderOffX: headerOffX,
		HeaderOffY: headerOffY,
	}
}

// IsImpassable returns true if any cell under the body would be impassable with its header at c
func (p *Footprint) IsImpassable(c core.Cell) bool {
	topLeftX := c.X - p.HeaderOffX
	topLeftY := c.Y - p.HeaderOffY

	for dy := 0; dy < p.H; dy++ {
		for dx := 0; dx < p.W; dx++ {
			if p.Base.IsImpassable(core.Cell{X: topLeftX + dx, Y: topLeftY + dy}) {
				return true
			}
		}
	}
	return false
}
