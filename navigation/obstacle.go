package navigation

import "github.com/lixenwraith/tilepath/core"

// ObstacleQuery reports whether a cell blocks movement
// Implementations must answer consistently for the duration of one FindPath call; results are not cached
type ObstacleQuery interface {
	IsImpassable(c core.Cell) bool
}

// WallChecker is a function that returns true if cell blocks navigation
type WallChecker func(x, y int) bool

// IsImpassable implements ObstacleQuery
func (w WallChecker) IsImpassable(c core.Cell) bool {
	return w(c.X, c.Y)
}

// OpenGrid is an ObstacleQuery with no blocked cells
var OpenGrid ObstacleQuery = WallChecker(func(int, int) bool { return false })
