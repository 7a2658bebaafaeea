package orchestrator

// State tracks the progress of one orchestration run. Transitions are
// linear: Idle -> ContextBuilt -> Routed -> Generating -> Completed, with
// Generating skipped when no persona is selected. Completed is terminal;
// the pipeline is never retried as a whole.
type State int

const (
	// StateIdle means the run has been created but not started.
	StateIdle State = iota
	// StateContextBuilt means the conversation context has been assembled.
	StateContextBuilt
	// StateRouted means persona selection has completed.
	StateRouted
	// StateGenerating means generation calls are in flight.
	StateGenerating
	// StateCompleted is the terminal state; no further events are emitted.
	StateCompleted
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateContextBuilt:
		return "context_built"
	case StateRouted:
		return "routed"
	case StateGenerating:
		return "generating"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
