package navigation

import (
	"github.com/lixenwraith/tilepath/core"
)

// Follower drives an agent along engine paths from per-tick world positions
// Each request is a fresh FindPath call; only the resulting waypoints are kept between ticks
type Follower struct {
	finder *Pathfinder
	query  ObstacleQuery

	Last Result // Most recent request result
	next int    // Index into Last.Cells of the waypoint being approached

	// Request throttling
	LastTarget       core.Cell // Target cell of the most recent request
	TicksSinceUpdate int       // Ticks since last request
	MinTicks         int       // Minimum ticks between requests for small target moves
	DirtyDistance    int       // Target must move this many cells to trigger an immediate request

	// PendingUpdate latches true on any target change, cleared after a request
	PendingUpdate bool
	requested     bool
}

// NewFollower creates a follower that requests immediately on its first update
func NewFollower(finder *Pathfinder, query ObstacleQuery, minTicks, dirtyDist int) *Follower {
	return &Follower{
		finder:           finder,
		query:            query,
		TicksSinceUpdate: minTicks,
		MinTicks:         minTicks,
		DirtyDistance:    dirtyDist,
		PendingUpdate:    true,
	}
}

// Update maps agent and target positions to the cells whose anchored positions are nearest
// (a floor for the centre anchor) and requests a new path when needed
// Returns true if a request was made this tick
func (f *Follower) Update(agent, target core.Vec2) bool {
	f.TicksSinceUpdate++

	anchor := f.finder.Config().Anchor
	targetCell := core.CellNear(target, anchor)
	if f.requested && targetCell != f.LastTarget {
		f.PendingUpdate = true
		if targetCell.Manhattan(f.LastTarget) >= f.DirtyDistance {
			f.TicksSinceUpdate = f.MinTicks
		}
	}

	if !f.PendingUpdate || f.TicksSinceUpdate < f.MinTicks {
		return false
	}

	f.Last = f.finder.FindPath(core.CellNear(agent, anchor), targetCell, f.query)
	f.next = 0
	f.LastTarget = targetCell
	f.TicksSinceUpdate = 0
	f.PendingUpdate = false
	f.requested = true
	return true
}

// MarkDirty forces a request on the next eligible tick, e.g. after the obstacle layout changed
func (f *Follower) MarkDirty() {
	f.PendingUpdate = true
}

// Next returns the waypoint to head for, skipping waypoints the agent already stands on
// Returns false when there is no path or it has been consumed
func (f *Follower) Next(agent core.Vec2) (core.Vec2, bool) {
	cell := core.CellNear(agent, f.finder.Config().Anchor)
	for f.next < len(f.Last.Cells) && f.Last.Cells[f.next] == cell {
		f.next++
	}
	if f.next >= len(f.Last.Cells) {
		return core.Vec2{}, false
	}
	return f.Last.Path[f.next], true
}

// Remaining returns the number of unconsumed waypoints
func (f *Follower) Remaining() int {
	return len(f.Last.Cells) - f.next
}
