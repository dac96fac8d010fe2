package lifecycle

// State represents the lifecycle phase of a Manager.
type State int

const (
	StateUninitialized State = iota
	StateRegistering
	StateSorting
	StateRunning
	StateFinalizing
	StateFinalized
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateRegistering:
		return "Registering"
	case StateSorting:
		return "Sorting"
	case StateRunning:
		return "Running"
	case StateFinalizing:
		return "Finalizing"
	case StateFinalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}
