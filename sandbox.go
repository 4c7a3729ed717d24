package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilepath/audio"
	"github.com/lixenwraith/tilepath/config"
	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/maze"
	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/parameter"
	"github.com/lixenwraith/tilepath/render"
)

// initialTargetSteps places the first target this far along the maze solution
const initialTargetSteps = 40

var (
	agentStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Sandbox is an agent chasing a movable target through a generated maze
type Sandbox struct {
	screen tcell.Screen
	cfg    config.Config
	finder *navigation.Pathfinder
	player *audio.Player
	debug  *render.PathDebugRenderer
	vp     render.Viewport

	maze     maze.Result
	follower *navigation.Follower
	seed     int64

	agent  core.Cell
	target core.Cell

	// requestFrom is the agent cell of the latest request, the origin of follower.Last
	requestFrom core.Cell

	showDebug bool
	arrived   bool
	gaveUp    bool
	tick      int
}

func NewSandbox(screen tcell.Screen, cfg config.Config, player *audio.Player) (*Sandbox, error) {
	finder, err := navigation.NewPathfinder(cfg.Navigation())
	if err != nil {
		return nil, err
	}

	s := &Sandbox{
		screen:    screen,
		cfg:       cfg,
		finder:    finder,
		player:    player,
		debug:     render.NewPathDebugRenderer(),
		vp:        render.Viewport{OriginY: -parameter.TopMargin},
		seed:      cfg.Sandbox.Seed,
		showDebug: true,
	}
	s.regenerate()
	return s, nil
}

// regenerate builds a new maze; a fixed seed yields a fixed sequence of mazes
func (s *Sandbox) regenerate() {
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.maze = maze.Generate(maze.Config{
		Width:    s.cfg.Sandbox.Width,
		Height:   s.cfg.Sandbox.Height,
		Braiding: s.cfg.Sandbox.Braiding,
		Seed:     s.seed,
	})
	s.seed++

	s.agent = s.maze.Start
	s.target = s.maze.End
	if n := len(s.maze.Solution); n > initialTargetSteps {
		s.target = s.maze.Solution[initialTargetSteps]
	}
	s.requestFrom = s.agent
	s.follower = navigation.NewFollower(s.finder, s.maze.Map, s.cfg.Sandbox.MinTicks, s.cfg.Sandbox.DirtyDistance)
	s.arrived, s.gaveUp = false, false
	s.tick = 0
}

// world returns the anchored world position of c
func (s *Sandbox) world(c core.Cell) core.Vec2 {
	return c.World(s.cfg.Search.Anchor)
}

// cellOf inverts world
func (s *Sandbox) cellOf(wp core.Vec2) core.Cell {
	return core.CellNear(wp, s.cfg.Search.Anchor)
}

// Step advances the simulation one tick
func (s *Sandbox) Step() {
	s.tick++

	from := s.agent
	if s.follower.Update(s.world(s.agent), s.world(s.target)) {
		s.requestFrom = from
		exhausted := s.follower.Last.Outcome == navigation.OutcomeExhausted
		if exhausted && !s.gaveUp {
			s.player.PlayOutcome(navigation.OutcomeExhausted)
		}
		s.gaveUp = exhausted
	}

	if s.tick%parameter.SandboxAgentStride == 0 {
		if wp, ok := s.follower.Next(s.world(s.agent)); ok {
			next := s.cellOf(wp)
			if s.agent.Manhattan(next) == 1 && !s.maze.Map.IsImpassable(next) {
				s.agent = next
			}
		}
	}

	arrived := s.agent == s.target
	if arrived && !s.arrived {
		s.player.PlayOutcome(navigation.OutcomeFound)
	}
	s.arrived = arrived
}

// HandleEvent applies input; returns false to quit
func (s *Sandbox) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return false

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.moveTarget(core.Cell{Y: -1})
		case tcell.KeyDown:
			s.moveTarget(core.Cell{Y: 1})
		case tcell.KeyLeft:
			s.moveTarget(core.Cell{X: -1})
		case tcell.KeyRight:
			s.moveTarget(core.Cell{X: 1})
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'd':
				s.showDebug = !s.showDebug
			case 'r':
				s.regenerate()
			case 'e':
				s.target = s.maze.End
			case 'b':
				s.toggleWall()
			}
		}
	}
	return true
}

func (s *Sandbox) moveTarget(d core.Cell) {
	if next := s.target.Add(d); s.maze.Map.InBounds(next) {
		s.target = next
	}
}

// toggleWall flips the cell under the target marker
func (s *Sandbox) toggleWall() {
	if s.target == s.agent {
		return
	}
	s.maze.Map.SetBlocked(s.target, !s.maze.Map.IsImpassable(s.target))
	s.follower.MarkDirty()
}

func (s *Sandbox) Draw() {
	s.screen.Clear()

	render.DrawWalls(s.screen, s.vp, s.maze.Map, render.WallStyle)
	if s.showDebug {
		s.debug.Render(s.screen, s.vp, s.follower.Last, s.requestFrom)
	}
	if x, y, ok := s.vp.MapToScreen(s.screen, s.target); ok {
		s.screen.SetContent(x, y, '◎', nil, targetStyle)
	}
	if x, y, ok := s.vp.MapToScreen(s.screen, s.agent); ok {
		s.screen.SetContent(x, y, '@', nil, agentStyle)
	}

	w, h := s.screen.Size()
	last := s.follower.Last
	audioState := "muted"
	if s.player.Enabled() {
		audioState = "♫"
	}
	status := fmt.Sprintf(" %-9s expansions %-5d waypoints %-4d budget %d  seed %d  %s",
		last.Outcome, last.Expansions, s.follower.Remaining(), s.cfg.Search.MaxExpansions, s.seed-1, audioState)
	drawLine(s.screen, 0, w, status, statusStyle)
	drawLine(s.screen, h-parameter.BottomMargin, w, " arrows move target  e end  b wall  d debug  r new maze  esc quit", helpStyle)

	s.screen.Show()
}

func drawLine(screen tcell.Screen, y, width int, text string, style tcell.Style) {
	runes := []rune(text)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		screen.SetContent(x, y, r, nil, style)
	}
}

// Run drives the sandbox until the user quits
func (s *Sandbox) Run() {
	ticker := time.NewTicker(s.cfg.TickInterval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			eventChan <- ev
			if ev == nil {
				return
			}
		}
	}()

	s.Draw()
	for {
		select {
		case ev := <-eventChan:
			if !s.HandleEvent(ev) {
				return
			}
			s.Draw()

		case <-ticker.C:
			s.Step()
			s.Draw()
		}
	}
}
