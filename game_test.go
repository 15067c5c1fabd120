package pesto

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	lua "github.com/yuin/gopher-lua"
)

func TestFrameClockFirstTickIsZero(t *testing.T) {
	var c frameClock
	if dt := c.Tick(); dt != 0 {
		t.Errorf("first Tick = %v, want 0", dt)
	}
}

func TestFrameClockMeasuresElapsedTime(t *testing.T) {
	var c frameClock
	c.Tick()
	time.Sleep(25 * time.Millisecond)
	dt := c.Tick()
	if dt < 0.02 || dt > 2 {
		t.Errorf("Tick = %v, want roughly the slept 25ms", dt)
	}
}

// newTestGame boots a runtime over the given entry script and wraps it
// in a Game drawing to an offscreen window-sized screen.
func newTestGame(t *testing.T, entry string, windowW, windowH int) (*Game, *Runtime, *ebiten.Image) {
	t.Helper()
	scripts := t.TempDir()
	writeScript(t, scripts, "main.lua", entry)
	rt, _ := newTestRuntime(t, scripts, cleanSummary)
	rt.Boot()
	return NewGame(rt, DefaultConfig()), rt, ebiten.NewImage(windowW, windowH)
}

// luaNumber reads a numeric field off the pesto root table.
func luaNumber(b *Bridge, key string) float64 {
	return float64(lua.LVAsNumber(b.state.GetField(b.root, key)))
}

func TestDrawAdvancesScriptsByWallClockTime(t *testing.T) {
	g, rt, screen := newTestGame(t,
		"pesto.update = function(dt) pesto.elapsed = (pesto.elapsed or 0) + dt end\n",
		1280, 720)
	if got := rt.State().Kind(); got != StateRunning {
		t.Fatalf("after boot: state = %v (%q)", got, rt.State().Message())
	}

	// The first frame has no previous frame to measure against.
	g.Draw(screen)
	if got := luaNumber(rt.Bridge(), "elapsed"); got != 0 {
		t.Fatalf("elapsed after first frame = %v, want 0", got)
	}

	time.Sleep(25 * time.Millisecond)
	g.Draw(screen)
	got := luaNumber(rt.Bridge(), "elapsed")
	if got < 0.02 || got > 2 {
		t.Errorf("elapsed = %v, want roughly the 25ms between the two draws", got)
	}
}

func TestDrawComputesLetterboxTransform(t *testing.T) {
	g, _, screen := newTestGame(t, "pesto.update = function(dt) end\n", 1920, 720)

	g.Draw(screen)

	tr := g.Transform()
	if tr.Scale != 1 {
		t.Errorf("Scale = %v, want 1", tr.Scale)
	}
	if tr.OffsetX != 320 || tr.OffsetY != 0 {
		t.Errorf("Offset = (%v, %v), want (320, 0)", tr.OffsetX, tr.OffsetY)
	}
	// Headless, the cursor reads (0, 0): left of the surface by one bar.
	if p := g.Pointer(); p.X != -320 || p.Y != 0 {
		t.Errorf("Pointer = %+v, want {-320 0}", p)
	}
}

func TestDrawFadesInErrorOverlay(t *testing.T) {
	scripts := t.TempDir()
	rt, _ := newTestRuntime(t, scripts, cleanSummary)
	rt.Boot() // fails: no main.lua
	if !rt.State().IsError() {
		t.Fatalf("state = %v, want error", rt.State().Kind())
	}

	g := NewGame(rt, DefaultConfig())
	screen := ebiten.NewImage(1280, 720)

	g.Draw(screen)
	if !g.inError {
		t.Error("first error frame did not arm the fade")
	}
	if g.fadeAlpha != 0 {
		t.Errorf("fadeAlpha after first frame = %v, want 0", g.fadeAlpha)
	}

	time.Sleep(300 * time.Millisecond) // past errorFadeDuration
	g.Draw(screen)
	if g.fadeAlpha != 1 {
		t.Errorf("fadeAlpha = %v, want 1 once the fade completes", g.fadeAlpha)
	}
	if g.fade != nil {
		t.Error("completed fade should be released")
	}
}

func TestLayoutClampsDegenerateWindow(t *testing.T) {
	g, _, _ := newTestGame(t, "pesto.update = function(dt) end\n", 1280, 720)

	if w, h := g.Layout(0, -5); w != 1 || h != 1 {
		t.Errorf("Layout(0, -5) = (%d, %d), want (1, 1)", w, h)
	}
	if w, h := g.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("Layout(800, 600) = (%d, %d), want passthrough", w, h)
	}
}
