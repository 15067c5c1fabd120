package pesto

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Messages rendered by the error overlay for the two failure modes that
// the host detects itself (everything else carries the analyzer's or
// interpreter's own text).
const (
	msgEntryNotFound  = EntryScript + " not found."
	msgUpdateNotFound = "Update function not found."
)

// Runtime sequences the host through its run states: entry-script
// discovery, validation, entry-script execution, and the per-frame
// update call. Every user-facing failure converges into the terminal
// error state rather than crashing the process; the renderer keeps
// presenting at full frame rate and shows the message instead.
type Runtime struct {
	dir       string
	bridge    *Bridge
	validator *Validator
	machine   *Machine
	logger    *log.Logger
}

// NewRuntime wires a runtime over an assembled bridge and validator for
// the given script directory. A nil logger disables logging.
func NewRuntime(dir string, bridge *Bridge, validator *Validator, logger *log.Logger) *Runtime {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runtime{
		dir:       dir,
		bridge:    bridge,
		validator: validator,
		machine:   NewMachine(),
		logger:    logger,
	}
}

// State returns the current run state. The renderer reads it every
// frame to choose between the normal pass and the error overlay.
func (r *Runtime) State() RunState {
	return r.machine.State()
}

// Bridge returns the API bridge so the renderer can bind its canvas.
func (r *Runtime) Bridge() *Bridge {
	return r.bridge
}

// Boot runs the startup gate in order: entry-script discovery, static
// analysis, the formatting pass, then entry-script evaluation. The
// ordering puts the cheap, deterministic failures before any interpreter
// work. Boot never returns an error; failures become the terminal error
// state.
func (r *Runtime) Boot() {
	entry := filepath.Join(r.dir, EntryScript)
	if _, err := os.Stat(entry); err != nil {
		r.fail(msgEntryNotFound)
		return
	}

	r.machine.To(Validating())
	r.logger.Info("validating scripts", "dir", r.dir)

	diags, err := r.validator.Check(r.dir)
	if err != nil {
		r.fail(err.Error())
		return
	}
	if !diags.Clean() {
		r.logger.Warn("static analysis failed", "warnings", diags.Warnings, "errors", diags.Errors)
		r.fail(diags.Output)
		return
	}

	if err := r.validator.FormatAll(r.dir); err != nil {
		// Formatting is cosmetic; a traversal error is logged, not fatal.
		r.logger.Warn("format pass incomplete", "err", err)
	}

	r.machine.To(Executing())
	r.logger.Info("executing entry script", "file", EntryScript)

	if err := r.bridge.RunEntry(entry); err != nil {
		r.fail(err.Error())
		return
	}
	r.machine.To(Running())
}

// Advance performs one frame of script work. While running it invokes
// the script-defined update callback with the elapsed seconds since the
// previous frame; in any other state it does nothing. Scripts get
// exactly one chance to fail: the first error freezes the host into the
// diagnostic overlay for good.
func (r *Runtime) Advance(dt float64) {
	if r.machine.State().Kind() != StateRunning {
		return
	}
	if err := r.bridge.CallUpdate(dt); err != nil {
		if errors.Is(err, ErrMissingUpdate) {
			r.fail(msgUpdateNotFound)
			return
		}
		r.fail(err.Error())
	}
}

func (r *Runtime) fail(message string) {
	if r.machine.Fail(message) {
		r.logger.Error("entering error state", "message", message)
	}
}
