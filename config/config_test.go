package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/navigation"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilepath.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_MatchesNavigationDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, navigation.DefaultConfig(), cfg.Navigation())
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
[search]
max_expansions = 1200
anchor = { x = 0.0, y = 1.0 }

[server]
addr = "127.0.0.1:9000"
map_file = "maps/arena.txt"

[sandbox]
seed = 42
mute = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.Search.MaxExpansions)
	assert.Equal(t, 1, cfg.Search.StepCost, "omitted keys keep defaults")
	assert.Equal(t, core.Vec2{X: 0, Y: 1}, cfg.Search.Anchor)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "maps/arena.txt", cfg.Server.MapFile)
	assert.Equal(t, int64(42), cfg.Sandbox.Seed)
	assert.True(t, cfg.Sandbox.Mute)
	assert.Equal(t, Default().Sandbox.Width, cfg.Sandbox.Width)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[search\nmax_expansions = 1"},
		{"unknown key", "[search]\nbudget = 10"},
		{"zero budget", "[search]\nmax_expansions = 0"},
		{"cap below budget", "[search]\nmax_expansions = 500\n[server]\nbudget_cap = 100"},
		{"braiding range", "[sandbox]\nbraiding = 1.5"},
		{"tick", "[sandbox]\ntick_ms = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_InvalidSearchWrapsSentinel(t *testing.T) {
	_, err := Load(writeFile(t, "[search]\nstep_cost = -1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, navigation.ErrInvalidConfig))
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOptional(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOptional(writeFile(t, "[search]\nmax_expansions = -3"))
	assert.Error(t, err)
}

func TestWrite_RoundTripsThroughLoad(t *testing.T) {
	want := Default()
	want.Search.MaxExpansions = 777
	want.Sandbox.Seed = 9

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want))

	got, err := Load(writeFile(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
