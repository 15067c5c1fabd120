package pesto

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/basicfont"
)

// Error overlay layout, in virtual coordinates. The title sits near the
// top-left; message lines start beneath it, one fixed-height row per
// line of the error text, split on line breaks with no wrapping.
const (
	errorMarginX    = 10.0
	errorTitleY     = 10.0
	errorTitleScale = 6.0
	errorBodyY      = 100.0
	errorLineScale  = 2.5
	errorLineHeight = 50.0

	errorFadeDuration = 0.25 // seconds
)

// overlayFace renders the error overlay text. The fixed-size bitmap face
// is scaled per draw, which keeps the overlay crisp under the
// nearest-filter composite.
var overlayFace = text.NewGoXFace(basicfont.Face7x13)

// frameClock measures wall-clock time between frames.
type frameClock struct {
	last time.Time
}

// Tick returns the seconds elapsed since the previous call, or 0 on the
// first call.
func (c *frameClock) Tick() float64 {
	now := time.Now()
	var dt float64
	if !c.last.IsZero() {
		dt = now.Sub(c.last).Seconds()
	}
	c.last = now
	return dt
}

// Game implements ebiten.Game for the host: it measures frame time,
// drives the runtime, and composites the fixed-resolution surface onto
// the window letterboxed. It renders every frame regardless of run
// state, selecting normal drawing or the error overlay.
type Game struct {
	runtime *Runtime
	cfg     Config

	surface *Surface
	canvas  *imageCanvas

	transform Transform
	pointer   Vec2

	clock frameClock

	// Error overlay fade-in. Created the frame the error state is first
	// observed; nil once finished.
	fade      *gween.Tween
	fadeAlpha float64
	inError   bool
}

// NewGame creates the host game over a booted (or failed) runtime. The
// virtual surface is created once and bound as the bridge's canvas for
// the process lifetime.
func NewGame(runtime *Runtime, cfg Config) *Game {
	surface := NewSurface(VirtualWidth, VirtualHeight)
	g := &Game{
		runtime: runtime,
		cfg:     cfg,
		surface: surface,
		canvas:  newImageCanvas(surface.Image()),
	}
	runtime.Bridge().SetCanvas(g.canvas)
	return g
}

// Pointer returns the pointer position mapped into virtual-surface
// coordinates, recomputed every frame. Not yet exposed to scripts; kept
// for the future input API.
func (g *Game) Pointer() Vec2 {
	return g.pointer
}

// Transform returns the letterbox transform computed for the current
// frame.
func (g *Game) Transform() Transform {
	return g.transform
}

// Update ticks at ebiten's tick rate, which is unrelated to the display
// refresh rate. All per-frame work, including the frame-time
// measurement, happens in Draw: Draw is the frame cadence the scripts
// observe, so elapsed time must be measured there or simulated time
// drifts from wall clock whenever the refresh rate differs from the
// tick rate.
func (g *Game) Update() error {
	return nil
}

// Draw renders one frame: measure elapsed wall-clock time, recompute the
// letterbox transform, map the pointer into virtual coordinates, run the
// state-appropriate pass on the virtual surface, then composite the
// surface onto the window scaled and centered.
func (g *Game) Draw(screen *ebiten.Image) {
	dt := g.clock.Tick()

	if g.runtime.State().IsError() {
		if !g.inError {
			g.inError = true
			g.fade = gween.New(0, 1, errorFadeDuration, ease.OutQuad)
		}
		if g.fade != nil {
			alpha, done := g.fade.Update(float32(dt))
			g.fadeAlpha = float64(alpha)
			if done {
				g.fade = nil
				g.fadeAlpha = 1
			}
		}
	}

	bounds := screen.Bounds()
	g.transform = Letterbox(float64(bounds.Dx()), float64(bounds.Dy()),
		float64(g.surface.Width()), float64(g.surface.Height()))

	mx, my := ebiten.CursorPosition()
	px, py := g.transform.ToVirtual(float64(mx), float64(my))
	g.pointer = Vec2{X: px, Y: py}

	if g.runtime.State().IsError() {
		g.drawErrorOverlay()
	} else {
		g.surface.Fill(colorBlack)
		g.runtime.Advance(dt)
	}

	// Composite. The window clear color doubles as the letterbox-bar
	// state indicator.
	if g.runtime.State().IsError() {
		screen.Fill(colorSkyBlue)
	} else {
		screen.Fill(colorLime)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.transform.Scale, g.transform.Scale)
	op.GeoM.Translate(g.transform.OffsetX, g.transform.OffsetY)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.surface.Image(), op)

	if g.cfg.Debug {
		drawFrameStats(screen)
	}
}

// Layout sizes the offscreen to the real window so the letterbox math
// sees true window dimensions. Degenerate sizes are clamped; the
// transform clamps its scale as well.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 {
		outsideWidth = 1
	}
	if outsideHeight < 1 {
		outsideHeight = 1
	}
	return outsideWidth, outsideHeight
}

// drawErrorOverlay fills the surface with the error background, draws
// the fixed-size title, then each line of the message beneath it.
func (g *Game) drawErrorOverlay() {
	g.surface.Fill(colorSkyBlue)
	alpha := float32(g.fadeAlpha)

	title := &text.DrawOptions{}
	title.GeoM.Scale(errorTitleScale, errorTitleScale)
	title.GeoM.Translate(errorMarginX, errorTitleY)
	title.ColorScale.ScaleWithColor(colorWhite)
	title.ColorScale.ScaleAlpha(alpha)
	text.Draw(g.surface.Image(), "ERROR", overlayFace, title)

	for i, line := range strings.Split(g.runtime.State().Message(), "\n") {
		op := &text.DrawOptions{}
		op.GeoM.Scale(errorLineScale, errorLineScale)
		op.GeoM.Translate(errorMarginX, errorBodyY+float64(i)*errorLineHeight)
		op.ColorScale.ScaleWithColor(colorWhite)
		op.ColorScale.ScaleAlpha(alpha)
		text.Draw(g.surface.Image(), line, overlayFace, op)
	}
}
