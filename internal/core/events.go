package core

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventNone        EventKind = iota
	EventSceneLoaded           // A level became active
	EventLanded                // The rocket touched a finish pad
	EventCrashed               // The rocket hit something hazardous
	EventRunEnded              // A run is over; Score holds its final value
	EventSkipped               // The level was skipped with a debug key
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSceneLoaded:
		return "scene_loaded"
	case EventLanded:
		return "landed"
	case EventCrashed:
		return "crashed"
	case EventRunEnded:
		return "run_ended"
	case EventSkipped:
		return "skipped"
	default:
		return "none"
	}
}

// Event is emitted by a game through StepResult so the platform can persist it.
type Event struct {
	Kind    EventKind
	LevelID string
	Score   int
	Ticks   int    // Ticks spent in the level when the event fired
	RunID   string // Identifies the run the event belongs to
}
