package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilepath/core"
	"github.com/lixenwraith/tilepath/navigation"
)

// Viewport maps grid cells to screen cells; Origin is the grid cell drawn at screen (0,0)
// Grid Y grows downward on screen
type Viewport struct {
	OriginX, OriginY int
}

// MapToScreen returns the screen position of c and whether it falls inside the screen
func (v Viewport) MapToScreen(screen tcell.Screen, c core.Cell) (x, y int, visible bool) {
	w, h := screen.Size()
	x, y = c.X-v.OriginX, c.Y-v.OriginY
	return x, y, x >= 0 && y >= 0 && x < w && y < h
}

// Step directions as a bitmask of the neighbours a path glyph connects to
const (
	linkN = 1 << iota
	linkE
	linkS
	linkW
)

var pathGlyphs = map[int]rune{
	linkE | linkW: '─',
	linkN | linkS: '│',
	linkE | linkS: '┌',
	linkW | linkS: '┐',
	linkE | linkN: '└',
	linkW | linkN: '┘',
	linkE:         '─',
	linkW:         '─',
	linkN:         '│',
	linkS:         '│',
}

// PathDebugRenderer draws a search result: a marker per visited cell and connected segments along the path
// Purely observational; it never feeds back into the search
type PathDebugRenderer struct {
	VisitedStyle tcell.Style
	BlockedStyle tcell.Style
	PathStyle    tcell.Style
	TargetStyle  tcell.Style

	VisitedGlyph rune
	BlockedGlyph rune
	TargetGlyph  rune
}

func NewPathDebugRenderer() *PathDebugRenderer {
	return &PathDebugRenderer{
		VisitedStyle: tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 110, 160)),
		BlockedStyle: tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 60, 60)),
		PathStyle:    tcell.StyleDefault.Foreground(tcell.NewRGBColor(80, 255, 255)).Bold(true),
		TargetStyle:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		VisitedGlyph: '·',
		BlockedGlyph: '×',
		TargetGlyph:  '●',
	}
}

// Render overlays res onto screen; start is the cell the path was requested from
func (r *PathDebugRenderer) Render(screen tcell.Screen, vp Viewport, res navigation.Result, start core.Cell) {
	for c, v := range res.Visited {
		x, y, ok := vp.MapToScreen(screen, c)
		if !ok {
			continue
		}
		if v.Blocked {
			screen.SetContent(x, y, r.BlockedGlyph, nil, r.BlockedStyle)
		} else {
			screen.SetContent(x, y, r.VisitedGlyph, nil, r.VisitedStyle)
		}
	}

	cells := res.Cells
	for i, c := range cells {
		x, y, ok := vp.MapToScreen(screen, c)
		if !ok {
			continue
		}
		if i == len(cells)-1 {
			screen.SetContent(x, y, r.TargetGlyph, nil, r.TargetStyle)
			continue
		}

		prev := start
		if i > 0 {
			prev = cells[i-1]
		}
		glyph, ok := pathGlyphs[link(c, prev)|link(c, cells[i+1])]
		if !ok {
			glyph = '+'
		}
		screen.SetContent(x, y, glyph, nil, r.PathStyle)
	}
}

// link returns the direction bit from c toward an orthogonal neighbour n, 0 otherwise
func link(c, n core.Cell) int {
	switch {
	case n.X == c.X && n.Y == c.Y-1:
		return linkN
	case n.X == c.X+1 && n.Y == c.Y:
		return linkE
	case n.X == c.X && n.Y == c.Y+1:
		return linkS
	case n.X == c.X-1 && n.Y == c.Y:
		return linkW
	}
	return 0
}
