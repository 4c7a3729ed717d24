package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilepath/core"
)

// WallStyle is the default wall cell style
var WallStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 90))

// bounded is implemented by maps with finite extent, e.g. a bounded tilemap
type bounded interface {
	Bounds() (width, height int, ok bool)
}

// DrawWalls paints every visible impassable cell of q
// Maps reporting bounds are painted only inside them; beyond is left untouched
func DrawWalls(screen tcell.Screen, vp Viewport, q interface{ IsImpassable(core.Cell) bool }, style tcell.Style) {
	w, h := screen.Size()
	minX, minY, maxX, maxY := vp.OriginX, vp.OriginY, vp.OriginX+w, vp.OriginY+h
	if b, ok := q.(bounded); ok {
		if bw, bh, ok := b.Bounds(); ok {
			minX, minY = max(minX, 0), max(minY, 0)
			maxX, maxY = min(maxX, bw), min(maxY, bh)
		}
	}

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			c := core.Cell{X: x, Y: y}
			if q.IsImpassable(c) {
				screen.SetContent(x-vp.OriginX, y-vp.OriginY, '█', nil, style)
			}
		}
	}
}
