// Command tilepathd serves path queries over HTTP
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/tilepath/config"
	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/service"
	"github.com/lixenwraith/tilepath/tilemap"
)

func main() {
	configPath := flag.String("config", "", "settings file")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	mapPath := flag.String("map", "", "ASCII layout file, overrides server.map_file")
	dump := flag.Bool("dump-config", false, "print effective settings and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("[tilepathd] %v", err)
		}
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *mapPath != "" {
		cfg.Server.MapFile = *mapPath
	}

	if *dump {
		if err := config.Write(os.Stdout, cfg); err != nil {
			log.Fatalf("[tilepathd] %v", err)
		}
		return
	}

	grid, err := loadGrid(cfg.Server.MapFile)
	if err != nil {
		log.Fatalf("[tilepathd] %v", err)
	}
	finder, err := navigation.NewPathfinder(cfg.Navigation())
	if err != nil {
		log.Fatalf("[tilepathd] %v", err)
	}

	paths := service.NewPathService(finder, grid, service.NewMetrics(nil), cfg.Server.BudgetCap)
	server := service.NewHTTPServer(cfg.Server.Addr, service.SetupRoutes(paths, nil), cfg.ShutdownTimeout())

	hub := service.NewHub()
	if err := hub.Register(server); err != nil {
		log.Fatalf("[tilepathd] %v", err)
	}
	log.Printf("[tilepathd] budget %d, step cost %d, map %q", cfg.Search.MaxExpansions, cfg.Search.StepCost, cfg.Server.MapFile)
	if err := hub.StartAll(); err != nil {
		log.Fatalf("[tilepathd] %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	hub.StopAll()
}

// loadGrid parses the layout at path; empty path serves an unbounded open grid
func loadGrid(path string) (*tilemap.Tilemap, error) {
	if path == "" {
		return tilemap.New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	layout, err := tilemap.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return layout.Map, nil
}
