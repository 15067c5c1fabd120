package pesto

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	cleanSummary = "echo 'Total: 0 warnings / 0 errors in 1 file'\n"
	dirtySummary = "echo 'Total: 2 warnings / 1 error in 1 file'\nexit 1\n"
)

// newTestRuntime builds a runtime over real bridge + fake tools. The
// analyzer and formatter scripts each touch a marker file so tests can
// assert whether the stage ran.
func newTestRuntime(t *testing.T, scripts string, analyzerScript string) (*Runtime, string) {
	t.Helper()
	tools := t.TempDir()
	markers := t.TempDir()

	analyzer := fakeTool(t, tools, "analyzer",
		"touch "+filepath.Join(markers, "analyzed")+"\n"+analyzerScript)
	formatter := fakeTool(t, tools, "formatter",
		"touch "+filepath.Join(markers, "formatted")+"\n")

	bridge := newTestBridge(t, scripts)
	v := &Validator{Analyzer: analyzer, Formatter: formatter, Globals: []string{GlobalName}}
	return NewRuntime(scripts, bridge, v, nil), markers
}

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func ranStage(markers, stage string) bool {
	_, err := os.Stat(filepath.Join(markers, stage))
	return err == nil
}

func TestBootMissingEntryScript(t *testing.T) {
	scripts := t.TempDir()
	rt, markers := newTestRuntime(t, scripts, cleanSummary)

	rt.Boot()

	if got := rt.State().Message(); got != "main.lua not found." {
		t.Errorf("Message = %q, want %q", got, "main.lua not found.")
	}
	if ranStage(markers, "analyzed") {
		t.Error("analyzer must not run when the entry script is missing")
	}
	if ranStage(markers, "formatted") {
		t.Error("formatter must not run when the entry script is missing")
	}
}

func TestBootDirtyDiagnostics(t *testing.T) {
	scripts := t.TempDir()
	// If this were evaluated the state message would mention "boom", not
	// the analyzer summary.
	writeScript(t, scripts, "main.lua", "error(\"boom\")\n")
	rt, markers := newTestRuntime(t, scripts, dirtySummary)

	rt.Boot()

	state := rt.State()
	if !state.IsError() {
		t.Fatalf("state = %v, want error", state.Kind())
	}
	if !strings.Contains(state.Message(), "2 warnings / 1 error") {
		t.Errorf("Message = %q, want full analyzer output", state.Message())
	}
	if strings.Contains(state.Message(), "boom") {
		t.Error("entry script must not be evaluated when diagnostics are nonzero")
	}
	if ranStage(markers, "formatted") {
		t.Error("formatter must not run when diagnostics are nonzero")
	}
}

func TestBootCleanRunsFormatterThenEntry(t *testing.T) {
	scripts := t.TempDir()
	writeScript(t, scripts, "main.lua", "pesto.update = function(dt) end\n")
	rt, markers := newTestRuntime(t, scripts, cleanSummary)

	rt.Boot()

	if got := rt.State().Kind(); got != StateRunning {
		t.Fatalf("state = %v (%q), want running", got, rt.State().Message())
	}
	if !ranStage(markers, "analyzed") {
		t.Error("analyzer did not run")
	}
	if !ranStage(markers, "formatted") {
		t.Error("formatter did not run")
	}
}

func TestBootEntryScriptLoadFailure(t *testing.T) {
	scripts := t.TempDir()
	writeScript(t, scripts, "main.lua", "error(\"broken startup\")\n")
	rt, _ := newTestRuntime(t, scripts, cleanSummary)

	rt.Boot()

	state := rt.State()
	if !state.IsError() || !strings.Contains(state.Message(), "broken startup") {
		t.Errorf("state = %v %q, want error carrying interpreter text", state.Kind(), state.Message())
	}
}

func TestHappyPathStaysRunning(t *testing.T) {
	scripts := t.TempDir()
	writeScript(t, scripts, "main.lua",
		"function update(dt) pesto.graphics.circle(10, 10, 5) end\n")
	rt, _ := newTestRuntime(t, scripts, cleanSummary)
	rec := &recorderCanvas{}
	rt.Bridge().SetCanvas(rec)

	rt.Boot()

	stepper := NewStepper(rt, 1.0/60)
	stepper.Step(10)

	for i, kind := range stepper.States() {
		if kind != StateRunning {
			t.Fatalf("frame %d: state = %v, want running", i+1, kind)
		}
	}
	if len(rec.calls) != 10 {
		t.Errorf("drew %d circles, want 10", len(rec.calls))
	}
}

func TestMissingUpdateFailsOnFirstFrame(t *testing.T) {
	scripts := t.TempDir()
	writeScript(t, scripts, "main.lua", "-- defines nothing\n")
	rt, _ := newTestRuntime(t, scripts, cleanSummary)

	rt.Boot()
	if got := rt.State().Kind(); got != StateRunning {
		t.Fatalf("after boot: state = %v, want running", got)
	}

	rt.Advance(1.0 / 60)
	if got := rt.State().Message(); got != "Update function not found." {
		t.Errorf("Message = %q, want %q", got, "Update function not found.")
	}
}

func TestUpdateErrorOnFifthFrame(t *testing.T) {
	scripts := t.TempDir()
	writeScript(t, scripts, "main.lua", `
local frames = 0
pesto.update = function(dt)
    frames = frames + 1
    if frames == 5 then error("fifth frame failure") end
end
`)
	rt, _ := newTestRuntime(t, scripts, cleanSummary)
	rt.Boot()

	stepper := NewStepper(rt, 1.0/60)
	stepper.Step(6)

	states := stepper.States()
	for i := 0; i < 4; i++ {
		if states[i] != StateRunning {
			t.Errorf("frame %d: state = %v, want running", i+1, states[i])
		}
	}
	if states[4] != StateError {
		t.Errorf("frame 5: state = %v, want error", states[4])
	}
	if states[5] != StateError {
		t.Errorf("frame 6: state = %v, want error to persist", states[5])
	}
	if msg := rt.State().Message(); !strings.Contains(msg, "fifth frame failure") {
		t.Errorf("Message = %q, want interpreter error text", msg)
	}
	if !stepper.Done() {
		t.Error("stepper should report done once errored")
	}
}

func TestAdvanceIsInertAfterError(t *testing.T) {
	scripts := t.TempDir()
	rt, _ := newTestRuntime(t, scripts, cleanSummary)

	rt.Boot() // fails: no main.lua
	msg := rt.State().Message()

	rt.Advance(1.0 / 60)
	if got := rt.State().Message(); got != msg {
		t.Errorf("Message changed after Advance: %q -> %q", msg, got)
	}
}
