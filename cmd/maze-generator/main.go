package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/maze"
	"github.com/lixenwraith/tilepath/navigation"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== MAZE PATH PREVIEW ===")

		w := getInt(reader, "Width [Odd prefered] (default 35): ", 35)
		h := getInt(reader, "Height [Odd prefered] (default 19): ", 19)
		braid := getFloat(reader, "Braiding Factor [0.0 - 1.0] (default 0.2): ", 0.2)
		budget := getInt(reader, "Search Budget (default 300): ", 300)

		res := maze.Generate(maze.Config{Width: w, Height: h, Braiding: braid})

		cfg := navigation.DefaultConfig()
		cfg.MaxExpansions = budget
		finder, err := navigation.NewPathfinder(cfg)
		if err != nil {
			fmt.Printf("Invalid budget: %v\n", err)
			continue
		}

		startT := time.Now()
		found := finder.FindPath(res.Start, res.End, res.Map)
		dur := time.Since(startT)

		fmt.Printf("Search %s in %v: %d expansions\n", found.Outcome, dur, found.Expansions)
		if res.Solution != nil {
			fmt.Printf("Shortest: %d steps, found: %d steps\n", len(res.Solution)-1, len(found.Cells))
		} else {
			fmt.Println("Status: Unsolvable (Isolated Start/End)")
		}

		draw(res, found)

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, err := reader.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

func draw(res maze.Result, found navigation.Result) {
	onPath := make(map[core.Cell]bool, len(found.Cells))
	for _, c := range found.Cells {
		onPath[c] = true
	}

	width, height, _ := res.Map.Bounds()
	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := core.Cell{X: x, Y: y}
			_, visited := found.Visited[c]

			switch {
			case c == res.Start:
				sb.WriteRune('S')
			case c == res.End:
				sb.WriteRune('E')
			case res.Map.IsImpassable(c):
				sb.WriteRune('█')
			case onPath[c]:
				sb.WriteRune('•')
			case visited:
				sb.WriteRune('·')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return min(max(v, 0.0), 1.0)
}
