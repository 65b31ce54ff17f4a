package domain

// Phase is the display phase of the widget
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// UiState is the single display slot. Snapshot is set only when Loaded,
// Error only when Failed.
type UiState struct {
	Phase    Phase            `json:"phase"`
	Snapshot *WeatherSnapshot `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Idle is the state before any lookup has started.
func Idle() UiState {
	return UiState{Phase: PhaseIdle}
}

// Loading is entered as soon as a lookup is issued.
func Loading() UiState {
	return UiState{Phase: PhaseLoading}
}

// Resolve maps the result of a lookup to the state that replaces the slot.
// A failure never carries a snapshot, so stale data is cleared.
func Resolve(snapshot WeatherSnapshot, err error, messages Messages) UiState {
	if err != nil {
		return UiState{Phase: PhaseFailed, Error: messages.For(err)}
	}
	s := snapshot
	return UiState{Phase: PhaseLoaded, Snapshot: &s}
}
