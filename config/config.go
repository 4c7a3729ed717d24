// Package config loads runtime settings from TOML files
package config

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/parameter"
)

// Config is the root of a settings file; omitted keys keep Default values
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Server  ServerConfig  `toml:"server"`
	Sandbox SandboxConfig `toml:"sandbox"`
}

// SearchConfig mirrors navigation.Config
type SearchConfig struct {
	MaxExpansions int       `toml:"max_expansions"`
	StepCost      int       `toml:"step_cost"`
	Anchor        core.Vec2 `toml:"anchor"`
}

// ServerConfig drives cmd/tilepathd
type ServerConfig struct {
	Addr string `toml:"addr"`

	// MapFile is an ASCII layout loaded at startup; empty serves an unbounded open grid
	MapFile string `toml:"map_file"`

	// BudgetCap bounds per-request max_expansions overrides
	BudgetCap int `toml:"budget_cap"`

	ShutdownSeconds int `toml:"shutdown_seconds"`
}

// SandboxConfig drives the interactive sandbox
type SandboxConfig struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Braiding float64 `toml:"braiding"`
	Seed     int64   `toml:"seed"` // 0 = random

	TickMillis    int  `toml:"tick_ms"`
	MinTicks      int  `toml:"follow_min_ticks"`
	DirtyDistance int  `toml:"follow_dirty_distance"`
	Mute          bool `toml:"mute"`
}

// Default returns built-in settings
func Default() Config {
	nav := navigation.DefaultConfig()
	return Config{
		Search: SearchConfig{
			MaxExpansions: nav.MaxExpansions,
			StepCost:      nav.StepCost,
			Anchor:        nav.Anchor,
		},
		Server: ServerConfig{
			Addr:            parameter.ServerAddr,
			BudgetCap:       parameter.ServerBudgetCap,
			ShutdownSeconds: parameter.ServerShutdownSeconds,
		},
		Sandbox: SandboxConfig{
			Width:         parameter.SandboxWidth,
			Height:        parameter.SandboxHeight,
			Braiding:      parameter.SandboxBraiding,
			TickMillis:    parameter.SandboxTickMillis,
			MinTicks:      parameter.NavFollowMinTicks,
			DirtyDistance: parameter.NavFollowDirtyDistance,
		},
	}
}

// Load reads path over Default and validates the result
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// LoadOptional loads path if it exists, otherwise returns Default
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Write encodes cfg as TOML
func Write(w io.Writer, cfg Config) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(cfg), "encode config")
}

// Navigation converts the search section
func (c Config) Navigation() navigation.Config {
	return navigation.Config{
		MaxExpansions: c.Search.MaxExpansions,
		StepCost:      c.Search.StepCost,
		Anchor:        c.Search.Anchor,
	}
}

// ShutdownTimeout returns the server drain window
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownSeconds) * time.Second
}

// TickInterval returns the sandbox frame period
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Sandbox.TickMillis) * time.Millisecond
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Navigation().Validate(); err != nil {
		return err
	}
	if c.Server.BudgetCap < c.Search.MaxExpansions {
		return errors.Errorf("server.budget_cap %d below search.max_expansions %d", c.Server.BudgetCap, c.Search.MaxExpansions)
	}
	if c.Server.ShutdownSeconds < 0 {
		return errors.Errorf("server.shutdown_seconds must not be negative")
	}
	if c.Sandbox.TickMillis <= 0 {
		return errors.Errorf("sandbox.tick_ms must be positive")
	}
	if c.Sandbox.Braiding < 0 || c.Sandbox.Braiding > 1 {
		return errors.Errorf("sandbox.braiding %v outside [0,1]", c.Sandbox.Braiding)
	}
	if c.Sandbox.MinTicks < 0 || c.Sandbox.DirtyDistance < 0 {
		return errors.Errorf("sandbox follow settings must not be negative")
	}
	return nil
}
