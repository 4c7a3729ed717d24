package parameter

// Navigation - Grid Search
const (
	// NavMaxExpansions caps frontier selections per path request
	NavMaxExpansions = 300

	// NavStepCost is the uniform cost of one orthogonal move
	NavStepCost = 1

	// NavAnchorX, NavAnchorY translate a cell to the world position of its centre
	NavAnchorX = 0.5
	NavAnchorY = 0.5
)

// Navigation - Follower
const (
	// NavFollowMinTicks is minimum ticks between path requests while the target drifts
	NavFollowMinTicks = 3

	// NavFollowDirtyDistance triggers an immediate request if target moves this far (cells)
	NavFollowDirtyDistance = 5
)
