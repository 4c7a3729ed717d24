package service

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/parameter"
	"github.com/lixenwraith/tilepath/tilemap"
)

// ErrBudgetTooLarge is returned when a per-request budget exceeds the service cap
var ErrBudgetTooLarge = errors.New("max_expansions above service limit")

// ErrCoordRange is returned for start or target cells beyond parameter.ServerCoordLimit
var ErrCoordRange = errors.New("coordinate out of range")

// PathService answers path queries against a shared, editable tilemap
type PathService struct {
	finder  *navigation.Pathfinder
	grid    *tilemap.Tilemap
	metrics *Metrics

	// budgetCap bounds per-request budget overrides
	budgetCap int
}

// NewPathService wraps finder and grid; per-request budgets may go up to budgetCap
// budgetCap below the finder's own budget is raised to it
func NewPathService(finder *navigation.Pathfinder, grid *tilemap.Tilemap, metrics *Metrics, budgetCap int) *PathService {
	return &PathService{
		finder:    finder,
		grid:      grid,
		metrics:   metrics,
		budgetCap: max(budgetCap, finder.Config().MaxExpansions),
	}
}

func (s *PathService) Grid() *tilemap.Tilemap {
	return s.grid
}

// Find runs one search from start to target
// maxExpansions > 0 overrides the configured budget for this request only
func (s *PathService) Find(start, target core.Cell, maxExpansions int) (navigation.Result, error) {
	for _, c := range [2]core.Cell{start, target} {
		if !inRange(c) {
			s.metrics.rejected.WithLabelValues("range").Inc()
			return navigation.Result{}, errors.Wrapf(ErrCoordRange, "%v beyond ±%d", c, parameter.ServerCoordLimit)
		}
	}

	finder := s.finder
	if maxExpansions > 0 && maxExpansions != finder.Config().MaxExpansions {
		if maxExpansions > s.budgetCap {
			s.metrics.rejected.WithLabelValues("budget").Inc()
			return navigation.Result{}, errors.Wrapf(ErrBudgetTooLarge, "%d > %d", maxExpansions, s.budgetCap)
		}
		cfg := finder.Config()
		cfg.MaxExpansions = maxExpansions
		var err error
		if finder, err = navigation.NewPathfinder(cfg); err != nil {
			s.metrics.rejected.WithLabelValues("config").Inc()
			return navigation.Result{}, err
		}
	}

	var res navigation.Result
	began := time.Now()
	s.grid.Read(func(v tilemap.View) {
		res = finder.FindPath(start, target, v)
	})
	s.metrics.duration.Observe(time.Since(began).Seconds())

	s.metrics.queries.WithLabelValues(res.Outcome.String()).Inc()
	s.metrics.expansions.Observe(float64(res.Expansions))
	if res.Found() {
		s.metrics.pathLength.Observe(float64(len(res.Path)))
	} else if res.Outcome == navigation.OutcomeExhausted {
		log.Printf("[path] %v -> %v: no path after %d expansions", start, target, res.Expansions)
	}
	return res, nil
}

func inRange(c core.Cell) bool {
	return c.X >= -parameter.ServerCoordLimit && c.X <= parameter.ServerCoordLimit &&
		c.Y >= -parameter.ServerCoordLimit && c.Y <= parameter.ServerCoordLimit
}

// SetCells updates passability of cells and returns how many were inside the map
func (s *PathService) SetCells(cells []core.Cell, blocked bool) int {
	if blocked {
		return s.Edit(cells, nil)
	}
	return s.Edit(nil, cells)
}

// Edit applies one batch of wall changes atomically with respect to running searches
func (s *PathService) Edit(block, clear []core.Cell) int {
	n := s.grid.Apply(block, clear)
	s.metrics.mapEdits.Add(float64(n))
	return n
}
