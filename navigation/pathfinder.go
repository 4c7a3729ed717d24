package navigation

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/parameter"
)

// ErrInvalidConfig is returned by NewPathfinder for unusable settings
var ErrInvalidConfig = errors.New("invalid search config")

// Config holds per-engine search settings
type Config struct {
	MaxExpansions int       // Hard cap on frontier selections per request
	StepCost      int       // Uniform cost of one orthogonal move
	Anchor        core.Vec2 // Cell to world translation applied to returned waypoints
}

// DefaultConfig returns the stock search settings
func DefaultConfig() Config {
	return Config{
		MaxExpansions: parameter.NavMaxExpansions,
		StepCost:      parameter.NavStepCost,
		Anchor:        core.Vec2{X: parameter.NavAnchorX, Y: parameter.NavAnchorY},
	}
}

// Validate reports the first unusable setting wrapped in ErrInvalidConfig
func (c Config) Validate() error {
	if c.MaxExpansions <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max expansions must be positive, got %d", c.MaxExpansions)
	}
	if c.StepCost <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "step cost must be positive, got %d", c.StepCost)
	}
	return nil
}

// Outcome classifies how a request ended
type Outcome int

const (
	OutcomeTrivial   Outcome = iota // Start equals target, nothing expanded
	OutcomeFound                    // Target reached
	OutcomeExhausted                // Budget spent or frontier drained
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTrivial:
		return "trivial"
	case OutcomeFound:
		return "found"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// VisitedCell is the cheapest node recorded for a cell when the search ended
type VisitedCell struct {
	G, H, F int
	Blocked bool // Cell was impassable and never expanded
}

// Result contains the outcome of a search
// Path and Cells run start→target, start excluded; both are empty unless Outcome is OutcomeFound
type Result struct {
	Path       []core.Vec2
	Cells      []core.Cell
	Visited    map[core.Cell]VisitedCell
	Expansions int
	Outcome    Outcome
}

// Found reports whether the target was reached
func (r Result) Found() bool {
	return r.Outcome == OutcomeFound
}

// Pathfinder runs bounded best-first searches on a 4-connected grid
// It holds no per-request state and may be shared between goroutines
type Pathfinder struct {
	cfg Config
}

// NewPathfinder validates cfg and returns an engine
func NewPathfinder(cfg Config) (*Pathfinder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pathfinder{cfg: cfg}, nil
}

// Config returns the engine settings
func (p *Pathfinder) Config() Config {
	return p.cfg
}

// FindPath searches from start toward target
//
// The cheapest frontier node (ties: first inserted) is taken each iteration. The target check
// precedes the passability check, so an impassable target is still reachable. Impassable nodes are
// recorded as visited but never expanded. Improvements to an already visited cell replace its
// entry without re-queueing descendants. The start cell itself is not checked.
func (p *Pathfinder) FindPath(start, target core.Cell, query ObstacleQuery) Result {
	if start == target {
		return Result{Outcome: OutcomeTrivial}
	}

	s := newSearch(p.cfg, target)
	s.seed(start)

	for s.expansions < p.cfg.MaxExpansions {
		idx, ok := s.open.pop()
		if !ok {
			break
		}
		s.expansions++

		pos := s.nodes[idx].pos
		if pos == target {
			return s.result(OutcomeFound, idx)
		}

		if query.IsImpassable(pos) {
			s.seen.admit(s.nodes, idx, true)
			continue
		}
		if _, ok := s.seen[pos]; !ok {
			s.expand(idx)
		}
		s.seen.admit(s.nodes, idx, false)
	}

	return s.result(OutcomeExhausted, noParent)
}

// search is the state of a single FindPath call
type search struct {
	cfg        Config
	target     core.Cell
	nodes      []searchNode
	open       frontier
	seen       visited
	expansions int
}

// searchCapHint bounds preallocation; buffers grow with the work actually done
const searchCapHint = 256

func newSearch(cfg Config, target core.Cell) *search {
	expansions := min(cfg.MaxExpansions, searchCapHint)
	return &search{
		cfg:    cfg,
		target: target,
		nodes:  make([]searchNode, 0, 4*expansions+1),
		open:   newFrontier(4*expansions + 1),
		seen:   make(visited, expansions+1),
	}
}

// seed admits the start node and queues its neighbors; the start is never tested against the target
func (s *search) seed(start core.Cell) {
	s.nodes = append(s.nodes, newNode(s.nodes, start, s.target, noParent, s.cfg.StepCost))
	s.seen.admit(s.nodes, 0, false)
	s.expand(0)
}

func (s *search) expand(idx int) {
	pos := s.nodes[idx].pos
	for _, d := range neighborOffsets {
		n := newNode(s.nodes, pos.Add(d), s.target, idx, s.cfg.StepCost)
		s.nodes = append(s.nodes, n)
		s.open.push(len(s.nodes)-1, n.f)
	}
}

func (s *search) result(outcome Outcome, found int) Result {
	r := Result{
		Visited:    make(map[core.Cell]VisitedCell, len(s.seen)),
		Expansions: s.expansions,
		Outcome:    outcome,
	}
	for pos, e := range s.seen {
		n := s.nodes[e.idx]
		r.Visited[pos] = VisitedCell{G: n.g, H: n.h, F: n.f, Blocked: e.blocked}
	}
	if found != noParent {
		r.Cells = s.reconstruct(found)
		r.Path = make([]core.Vec2, len(r.Cells))
		for i, c := range r.Cells {
			r.Path[i] = c.World(s.cfg.Anchor)
		}
	}
	return r
}

// reconstruct walks parent links to the root; the root contributes nothing
func (s *search) reconstruct(idx int) []core.Cell {
	var cells []core.Cell
	for n := s.nodes[idx]; n.parent != noParent; n = s.nodes[n.parent] {
		cells = append(cells, n.pos)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
