// Package tilemap stores impassable cells of a 2D grid and answers passability queries
package tilemap

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/lixenwraith/tilepath/core"
)

// ErrParse is wrapped by every Parse failure
var ErrParse = errors.New("tilemap parse")

// Tilemap is a sparse set of blocked cells, optionally clipped to [0,Width)×[0,Height)
// Cells outside the bounds of a bounded map are impassable
type Tilemap struct {
	mu      sync.RWMutex
	blocked map[core.Cell]struct{}
	width   int
	height  int
	bounded bool
}

// New creates an unbounded, fully open map
func New() *Tilemap {
	return &Tilemap{blocked: make(map[core.Cell]struct{})}
}

// NewBounded creates an open map of the given dimensions
func NewBounded(width, height int) *Tilemap {
	return &Tilemap{
		blocked: make(map[core.Cell]struct{}),
		width:   max(0, width),
		height:  max(0, height),
		bounded: true,
	}
}

// Bounds returns map dimensions; ok is false for unbounded maps
func (m *Tilemap) Bounds() (width, height int, ok bool) {
	return m.width, m.height, m.bounded
}

// InBounds reports whether c lies inside the map; always true for unbounded maps
func (m *Tilemap) InBounds(c core.Cell) bool {
	if !m.bounded {
		return true
	}
	return c.X >= 0 && c.Y >= 0 && c.X < m.width && c.Y < m.height
}

// IsImpassable reports whether c holds a wall or lies outside a bounded map
func (m *Tilemap) IsImpassable(c core.Cell) bool {
	if !m.InBounds(c) {
		return true
	}
	m.mu.RLock()
	_, ok := m.blocked[c]
	m.mu.RUnlock()
	return ok
}

// Set marks c impassable
func (m *Tilemap) Set(c core.Cell) {
	m.SetBlocked(c, true)
}

// Clear marks c passable
func (m *Tilemap) Clear(c core.Cell) {
	m.SetBlocked(c, false)
}

// SetBlocked updates c; out of bounds cells are ignored
func (m *Tilemap) SetBlocked(c core.Cell, blocked bool) {
	if !m.InBounds(c) {
		return
	}
	m.mu.Lock()
	if blocked {
		m.blocked[c] = struct{}{}
	} else {
		delete(m.blocked, c)
	}
	m.mu.Unlock()
}

// Apply clears then blocks cells under a single write lock, so readers see either none or all of the batch
// A cell listed in both ends up blocked. Returns the number of in-bounds cells touched
func (m *Tilemap) Apply(block, clear []core.Cell) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range clear {
		if m.InBounds(c) {
			delete(m.blocked, c)
			n++
		}
	}
	for _, c := range block {
		if m.InBounds(c) {
			m.blocked[c] = struct{}{}
			n++
		}
	}
	return n
}

// View answers passability for the duration of a Read callback without further locking
type View struct {
	m *Tilemap
}

// IsImpassable reports whether c holds a wall or lies outside a bounded map
func (v View) IsImpassable(c core.Cell) bool {
	if !v.m.InBounds(c) {
		return true
	}
	_, ok := v.m.blocked[c]
	return ok
}

// Read runs fn with the read lock held; edits wait until fn returns
// fn must not edit the map or retain v
func (m *Tilemap) Read(fn func(v View)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(View{m: m})
}

// Blocked returns all wall cells ordered by row then column
func (m *Tilemap) Blocked() []core.Cell {
	m.mu.RLock()
	cells := make([]core.Cell, 0, len(m.blocked))
	for c := range m.blocked {
		cells = append(cells, c)
	}
	m.mu.RUnlock()

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// Layout is a parsed map with its optional start/target markers
type Layout struct {
	Map       *Tilemap
	Start     core.Cell
	Target    core.Cell
	HasStart  bool
	HasTarget bool
}

// Parse builds a bounded map from ASCII rows, row index as Y
//
//	# or X  wall
//	. or ' ' open
//	S       open, start marker
//	T       open, target marker
//
// Leading and trailing blank lines are dropped; short rows are padded open
func Parse(text string) (*Layout, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}

	layout := &Layout{Map: NewBounded(width, len(lines))}
	for y, line := range lines {
		for x, r := range []rune(line) {
			c := core.Cell{X: x, Y: y}
			switch r {
			case '#', 'X':
				layout.Map.Set(c)
			case '.', ' ':
			case 'S':
				if layout.HasStart {
					return nil, errors.Wrapf(ErrParse, "line %d col %d: duplicate start marker", y+1, x+1)
				}
				layout.Start, layout.HasStart = c, true
			case 'T':
				if layout.HasTarget {
					return nil, errors.Wrapf(ErrParse, "line %d col %d: duplicate target marker", y+1, x+1)
				}
				layout.Target, layout.HasTarget = c, true
			default:
				return nil, errors.Wrapf(ErrParse, "line %d col %d: unexpected %q", y+1, x+1, r)
			}
		}
	}
	return layout, nil
}

// String renders a bounded map as ASCII rows; unbounded maps render their blocked bounding box
func (m *Tilemap) String() string {
	minX, minY, maxX, maxY := 0, 0, m.width-1, m.height-1
	if !m.bounded {
		blocked := m.Blocked()
		if len(blocked) == 0 {
			return ""
		}
		minX, minY, maxX, maxY = blocked[0].X, blocked[0].Y, blocked[0].X, blocked[0].Y
		for _, c := range blocked {
			minX, maxX = min(minX, c.X), max(maxX, c.X)
			minY, maxY = min(minY, c.Y), max(maxY, c.Y)
		}
	}

	var sb strings.Builder
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if m.IsImpassable(core.Cell{X: x, Y: y}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y < maxY {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
