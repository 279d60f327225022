package fetch

// Phase is the position of a unit of work in its state machine
type Phase int

const (
	// PhaseLoading is the initial phase; only the seed is available
	PhaseLoading Phase = iota
	// PhaseLoaded means every constituent succeeded
	PhaseLoaded
	// PhaseError means at least one constituent failed or produced nothing
	PhaseError
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the combined state published by a Coordinator.
// Result is only meaningful in PhaseLoaded.
type State[S, R any] struct {
	Phase  Phase
	Seed   S
	Result R
}

// Loading returns the initial state for seed
func Loading[S, R any](seed S) State[S, R] {
	return State[S, R]{Phase: PhaseLoading, Seed: seed}
}

// Loaded returns a successful terminal state
func Loaded[S, R any](seed S, result R) State[S, R] {
	return State[S, R]{Phase: PhaseLoaded, Seed: seed, Result: result}
}

// Failed returns the error terminal state
func Failed[S, R any](seed S) State[S, R] {
	return State[S, R]{Phase: PhaseError, Seed: seed}
}

// IsTerminal reports whether the state ends a fetch cycle
func (s State[S, R]) IsTerminal() bool {
	return s.Phase == PhaseLoaded || s.Phase == PhaseError
}
