package pesto

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is the drawing target the script-facing graphics API renders
// to. Coordinates are in virtual-surface space. The Game binds an
// ebiten-backed canvas; tests substitute a recorder.
type Canvas interface {
	// Circle draws a filled circle centered at (x, y).
	Circle(x, y, radius float64)
	// Rectangle draws a filled axis-aligned rectangle with its top-left
	// corner at (x, y).
	Rectangle(x, y, w, h float64)
	// Line draws a one-pixel line from (x1, y1) to (x2, y2).
	Line(x1, y1, x2, y2 float64)
	// Print draws debug text with its top-left corner at (x, y).
	Print(text string, x, y float64)
}

// imageCanvas renders primitives onto an ebiten.Image in solid white,
// without antialiasing (pixel-art friendly, matching the nearest-filter
// composite).
type imageCanvas struct {
	dst *ebiten.Image
}

func newImageCanvas(dst *ebiten.Image) *imageCanvas {
	return &imageCanvas{dst: dst}
}

func (c *imageCanvas) Circle(x, y, radius float64) {
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(radius), colorWhite, false)
}

func (c *imageCanvas) Rectangle(x, y, w, h float64) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), colorWhite, false)
}

func (c *imageCanvas) Line(x1, y1, x2, y2 float64) {
	vector.StrokeLine(c.dst, float32(x1), float32(y1), float32(x2), float32(y2), 1, colorWhite, false)
}

func (c *imageCanvas) Print(text string, x, y float64) {
	ebitenutil.DebugPrintAt(c.dst, text, int(x), int(y))
}
