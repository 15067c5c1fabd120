package pesto

// StateKind identifies which run state the host is in.
type StateKind uint8

// The run states, ordered. Transitions only ever move to a higher kind,
// which makes StateError a terminal sink: there is no recovery path for
// the remainder of the process lifetime.
const (
	StateUninitialized StateKind = iota
	StateValidating
	StateExecuting
	StateRunning
	StateError
)

// String returns the kind's name for logs and tests.
func (k StateKind) String() string {
	switch k {
	case StateUninitialized:
		return "uninitialized"
	case StateValidating:
		return "validating"
	case StateExecuting:
		return "executing"
	case StateRunning:
		return "running"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// RunState is a tagged variant: exactly one kind is active, and a message
// is only carried by StateError. The fields are unexported so a "running
// state with an error message" cannot be constructed.
type RunState struct {
	kind    StateKind
	message string
}

// Uninitialized returns the initial state.
func Uninitialized() RunState { return RunState{kind: StateUninitialized} }

// Validating returns the state during static analysis and formatting.
func Validating() RunState { return RunState{kind: StateValidating} }

// Executing returns the state during entry-script evaluation.
func Executing() RunState { return RunState{kind: StateExecuting} }

// Running returns the steady per-frame update state.
func Running() RunState { return RunState{kind: StateRunning} }

// Errored returns the terminal error state carrying a human-readable
// message for the on-surface overlay.
func Errored(message string) RunState {
	return RunState{kind: StateError, message: message}
}

// Kind returns the active state kind.
func (s RunState) Kind() StateKind { return s.kind }

// IsError reports whether the state is the terminal error state.
func (s RunState) IsError() bool { return s.kind == StateError }

// Message returns the error message, or "" for any non-error state.
func (s RunState) Message() string { return s.message }

// Machine owns the host's run state and enforces the transition rules:
// kinds only advance, and once the error state is entered every further
// transition is refused.
type Machine struct {
	state RunState
}

// NewMachine returns a machine in the uninitialized state.
func NewMachine() *Machine {
	return &Machine{state: Uninitialized()}
}

// State returns the current run state.
func (m *Machine) State() RunState { return m.state }

// To advances to next and reports whether the transition was applied.
// Transitions that would move backwards, stand still, or leave the error
// state are refused.
func (m *Machine) To(next RunState) bool {
	if m.state.IsError() || next.kind <= m.state.kind {
		return false
	}
	m.state = next
	return true
}

// Fail enters the terminal error state with the given message. The first
// failure wins; later calls are ignored.
func (m *Machine) Fail(message string) bool {
	return m.To(Errored(message))
}
