package pesto

// Stepper drives a runtime through a fixed number of frames with a
// constant frame time, recording the run state after each frame. Used by
// automated tests to assert state sequences without a window or GPU.
type Stepper struct {
	runtime *Runtime
	dt      float64
	states  []StateKind
}

// NewStepper creates a stepper that advances the runtime by dt seconds
// per frame.
func NewStepper(runtime *Runtime, dt float64) *Stepper {
	return &Stepper{runtime: runtime, dt: dt}
}

// Step advances n frames, recording the state observed after each.
func (s *Stepper) Step(n int) {
	for i := 0; i < n; i++ {
		s.runtime.Advance(s.dt)
		s.states = append(s.states, s.runtime.State().Kind())
	}
}

// States returns the per-frame state record.
func (s *Stepper) States() []StateKind {
	return s.states
}

// Done reports whether the runtime has frozen into the terminal error
// state; once true, further steps cannot change anything but the record.
func (s *Stepper) Done() bool {
	return s.runtime.State().IsError()
}
