package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilepath/audio"
	"github.com/lixenwraith/tilepath/config"
	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/navigation"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)

	cfg := config.Default()
	cfg.Search.MaxExpansions = 20000
	cfg.Sandbox.Seed = 7
	cfg.Sandbox.Mute = true

	s, err := NewSandbox(screen, cfg, audio.NewPlayer())
	require.NoError(t, err)
	return s
}

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSandbox_AgentReachesTarget(t *testing.T) {
	s := newTestSandbox(t)
	require.NotEqual(t, s.agent, s.target)

	for i := 0; i < 4000 && !s.arrived; i++ {
		s.Step()
		require.False(t, s.maze.Map.IsImpassable(s.agent), "agent entered a wall at %v", s.agent)
	}

	assert.True(t, s.arrived)
	assert.Equal(t, s.target, s.agent)
	assert.Equal(t, navigation.OutcomeFound, s.follower.Last.Outcome)
}

func TestSandbox_Keys(t *testing.T) {
	s := newTestSandbox(t)
	start := s.target

	assert.True(t, s.HandleEvent(key(tcell.KeyRight)))
	assert.True(t, s.HandleEvent(key(tcell.KeyDown)))
	assert.Equal(t, start.Add(core.Cell{X: 1, Y: 1}), s.target)

	assert.True(t, s.HandleEvent(runeKey('d')))
	assert.False(t, s.showDebug)

	assert.True(t, s.HandleEvent(runeKey('e')))
	assert.Equal(t, s.maze.End, s.target)

	first := s.maze.Map.String()
	assert.True(t, s.HandleEvent(runeKey('r')))
	assert.NotEqual(t, first, s.maze.Map.String(), "regenerate advances the seed")

	assert.False(t, s.HandleEvent(key(tcell.KeyEscape)))
	assert.False(t, s.HandleEvent(runeKey('q')))
	assert.False(t, s.HandleEvent(nil))
}

func TestSandbox_ToggleWallMarksDirty(t *testing.T) {
	s := newTestSandbox(t)
	s.Step()
	require.False(t, s.follower.PendingUpdate)

	cell := s.target
	wasWall := s.maze.Map.IsImpassable(cell)
	s.HandleEvent(runeKey('b'))

	assert.NotEqual(t, wasWall, s.maze.Map.IsImpassable(cell))
	assert.True(t, s.follower.PendingUpdate)
}

func TestSandbox_TargetStaysInBounds(t *testing.T) {
	s := newTestSandbox(t)
	for i := 0; i < 200; i++ {
		s.HandleEvent(key(tcell.KeyLeft))
		s.HandleEvent(key(tcell.KeyUp))
	}
	assert.Equal(t, core.Cell{X: 0, Y: 0}, s.target)
}

func TestSandbox_DrawPlacesAgentBelowStatus(t *testing.T) {
	s := newTestSandbox(t)
	s.Draw()

	r, _, _, _ := s.screen.GetContent(s.agent.X, s.agent.Y+1)
	assert.Equal(t, '@', r)
	r, _, _, _ = s.screen.GetContent(s.target.X, s.target.Y+1)
	assert.Equal(t, '◎', r)
}

func TestSandbox_OffCentreAnchor(t *testing.T) {
	s := newTestSandbox(t)
	s.cfg.Search.Anchor = core.Vec2{X: -10, Y: 0.25}
	finder, err := navigation.NewPathfinder(s.cfg.Navigation())
	require.NoError(t, err)
	s.finder = finder
	s.regenerate()

	for i := 0; i < 4000 && !s.arrived; i++ {
		s.Step()
	}
	assert.True(t, s.arrived)
	assert.Equal(t, s.target, s.agent)
}
