package rocket

// State is the rocket's lifecycle stage.
type State int

const (
	// StateAlive accepts input and reacts to collisions.
	StateAlive State = iota
	// StateDying waits for the restart after a crash.
	StateDying
	// StateAscending waits for the next scene after a landing.
	StateAscending
)

func (s State) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateDying:
		return "dying"
	case StateAscending:
		return "ascending"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateDying || s == StateAscending
}

// CanTransition reports whether moving from s to next is allowed.
// Only an alive rocket can crash or land.
func (s State) CanTransition(next State) bool {
	if s != StateAlive {
		return false
	}
	return next == StateDying || next == StateAscending
}
