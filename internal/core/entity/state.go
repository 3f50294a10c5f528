package entity

// State is the lifecycle state shared by catalogs and pricing records.
// Values mirror the legacy POS database and must not be renumbered.
type State int

const (
	StateActive   State = 1
	StateInactive State = 9
)

// IsActive returns true when the entity participates in business operations.
func (s State) IsActive() bool {
	return s == StateActive
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	return s == StateActive || s == StateInactive
}

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	default:
		return "unknown"
	}
}
