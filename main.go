// Command tilepath is an interactive terminal sandbox for the grid pathfinder
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilepath/audio"
	"github.com/lixenwraith/tilepath/config"
)

func main() {
	configPath := flag.String("config", "tilepath.toml", "settings file (optional)")
	seed := flag.Int64("seed", 0, "maze seed, 0 = config value or random")
	mute := flag.Bool("mute", false, "disable audio cues")
	budget := flag.Int("budget", 0, "override search.max_expansions")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *seed != 0 {
		cfg.Sandbox.Seed = *seed
	}
	if *mute {
		cfg.Sandbox.Mute = true
	}
	if *budget > 0 {
		cfg.Search.MaxExpansions = *budget
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\nCRASH DETECTED: %v\r\nStack Trace:\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	player := audio.NewPlayer()
	if !cfg.Sandbox.Mute {
		if err := player.Start(); err != nil {
			// Non-fatal, sandbox runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	sandbox, err := NewSandbox(screen, cfg, player)
	if err != nil {
		screen.Fini()
		log.Fatalf("sandbox: %v", err)
	}

	sandbox.Run()

	player.Stop()
	screen.Fini()
}
