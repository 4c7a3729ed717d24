package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/tilemap"
)

type Config struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, single route) to 1.0 (no dead ends, many loops)
	Braiding float64

	Start *core.Cell // Optional (nil = top-left room)
	End   *core.Cell // Optional (nil = bottom-right room)
	Seed  int64      // Optional (0 = Random)
}

type Result struct {
	Map        *tilemap.Tilemap
	Start, End core.Cell
	Solution   []core.Cell // BFS shortest route, start and end included; nil if disconnected
}

var (
	steps = [4]core.Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	jumps = [4]core.Cell{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}
)

// carver holds the wall grid while a maze is dug out
type carver struct {
	wall       [][]bool
	rows, cols int
	rng        *rand.Rand
}

// Generate digs a maze with a recursive backtracker, then braids dead ends into loops
// Dimensions are rounded down to odd numbers so rooms sit on odd coordinates inside a wall border
func Generate(cfg Config) Result {
	rows, cols := oddAtLeast3(cfg.Height), oddAtLeast3(cfg.Width)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c := &carver{rows: rows, cols: cols, rng: rand.New(rand.NewSource(seed))}
	c.wall = make([][]bool, rows)
	for y := range c.wall {
		c.wall[y] = make([]bool, cols)
		for x := range c.wall[y] {
			c.wall[y][x] = true
		}
	}

	start := c.clamp(cfg.Start, core.Cell{X: 1, Y: 1})
	end := c.clamp(cfg.End, core.Cell{X: cols - 2, Y: rows - 2})

	c.backtrack(start)
	if cfg.Braiding > 0 {
		c.braid(cfg.Braiding)
	}
	c.open(start)
	c.open(end)

	m := tilemap.NewBounded(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if c.wall[y][x] {
				m.Set(core.Cell{X: x, Y: y})
			}
		}
	}

	return Result{
		Map:      m,
		Start:    start,
		End:      end,
		Solution: Solve(m, start, end),
	}
}

func (c *carver) inside(p core.Cell) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.cols && p.Y < c.rows
}

func (c *carver) isWall(p core.Cell) bool {
	return !c.inside(p) || c.wall[p.Y][p.X]
}

// backtrack carves a uniform spanning tree over the odd-coordinate rooms
func (c *carver) backtrack(from core.Cell) {
	if from.X <= 0 || from.Y <= 0 || from.X >= c.cols-1 || from.Y >= c.rows-1 {
		from = core.Cell{X: 1, Y: 1}
	}
	c.wall[from.Y][from.X] = false
	stack := []core.Cell{from}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var options []core.Cell
		for _, j := range jumps {
			n := cur.Add(j)
			if n.X > 0 && n.Y > 0 && n.X < c.cols-1 && n.Y < c.rows-1 && c.wall[n.Y][n.X] {
				options = append(options, j)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		j := options[c.rng.Intn(len(options))]
		gap := core.Cell{X: cur.X + j.X/2, Y: cur.Y + j.Y/2}
		next := cur.Add(j)
		c.wall[gap.Y][gap.X] = false
		c.wall[next.Y][next.X] = false
		stack = append(stack, next)
	}
}

// braid knocks through one wall of each dead-end room with the given probability
// Walls whose removal would open a 2×2 plaza or leave a free-standing pillar are kept
func (c *carver) braid(probability float64) {
	for y := 1; y < c.rows-1; y += 2 {
		for x := 1; x < c.cols-1; x += 2 {
			room := core.Cell{X: x, Y: y}
			if c.isWall(room) || c.exits(room) != 1 || c.rng.Float64() >= probability {
				continue
			}

			var candidates []core.Cell
			for _, j := range jumps {
				n := room.Add(j)
				gap := core.Cell{X: x + j.X/2, Y: y + j.Y/2}
				if c.inside(n) && !c.isWall(n) && c.isWall(gap) && c.safeToOpen(gap) {
					candidates = append(candidates, gap)
				}
			}
			if len(candidates) > 0 {
				g := candidates[c.rng.Intn(len(candidates))]
				c.wall[g.Y][g.X] = false
			}
		}
	}
}

func (c *carver) exits(p core.Cell) int {
	n := 0
	for _, s := range steps {
		if !c.isWall(p.Add(s)) {
			n++
		}
	}
	return n
}

// safeToOpen rejects openings that create a 2×2 open square or isolate a neighbouring wall
func (c *carver) safeToOpen(p core.Cell) bool {
	open := func(dx, dy int) bool { return !c.isWall(core.Cell{X: p.X + dx, Y: p.Y + dy}) }

	quads := [4][3][2]int{
		{{-1, -1}, {0, -1}, {-1, 0}},
		{{0, -1}, {1, -1}, {1, 0}},
		{{-1, 0}, {-1, 1}, {0, 1}},
		{{1, 0}, {0, 1}, {1, 1}},
	}
	for _, q := range quads {
		if open(q[0][0], q[0][1]) && open(q[1][0], q[1][1]) && open(q[2][0], q[2][1]) {
			return false
		}
	}

	for _, s := range steps {
		n := p.Add(s)
		if !c.inside(n) || !c.wall[n.Y][n.X] {
			continue
		}
		links := 0
		for _, s2 := range steps {
			nn := n.Add(s2)
			if nn != p && c.inside(nn) && c.wall[nn.Y][nn.X] {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

// open makes p walkable and, if that leaves it sealed in, digs toward the first interior neighbour
func (c *carver) open(p core.Cell) {
	if !c.inside(p) {
		return
	}
	c.wall[p.Y][p.X] = false
	if c.exits(p) > 0 {
		return
	}
	for _, s := range steps {
		n := p.Add(s)
		if n.X > 0 && n.Y > 0 && n.X < c.cols-1 && n.Y < c.rows-1 {
			c.wall[n.Y][n.X] = false
			return
		}
	}
}

func (c *carver) clamp(p *core.Cell, def core.Cell) core.Cell {
	if p == nil {
		return def
	}
	return core.Cell{X: min(max(p.X, 0), c.cols-1), Y: min(max(p.Y, 0), c.rows-1)}
}

func oddAtLeast3(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// Solve returns a BFS shortest route over q from start to end inclusive, nil if none exists
// q must enclose a finite region around start (e.g. a bounded tilemap)
func Solve(q interface{ IsImpassable(core.Cell) bool }, start, end core.Cell) []core.Cell {
	if q.IsImpassable(start) || q.IsImpassable(end) {
		return nil
	}

	cameFrom := map[core.Cell]core.Cell{start: start}
	queue := []core.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			var path []core.Cell
			for ; cur != start; cur = cameFrom[cur] {
				path = append(path, cur)
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, s := range steps {
			n := cur.Add(s)
			if _, seen := cameFrom[n]; seen || q.IsImpassable(n) {
				continue
			}
			cameFrom[n] = cur
			queue = append(queue, n)
		}
	}
	return nil
}
