package pesto

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawFrameStats prints FPS/TPS in the window's top-left corner, outside
// the letterboxed surface so it never pollutes script output. Enabled by
// the debug flag in pesto.yml.
func drawFrameStats(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS()))
}
