package sequencer

// State is the execution state of a Sequencer.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCancelled
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// canTransition reports whether the state machine allows from -> to.
func canTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateRunning || to == StateCancelled
	case StateRunning:
		return to == StateIdle || to == StateCancelled
	default:
		return false
	}
}
