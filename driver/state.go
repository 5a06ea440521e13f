package driver

// State is the point of a session in the advance/start cycle.
type State int

const (
	Idle State = iota
	AwaitingAdvance
	Stopped
	AwaitingStart
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case AwaitingAdvance:
		return "AwaitingAdvance"
	case Stopped:
		return "Stopped"
	case AwaitingStart:
		return "AwaitingStart"
	case Playing:
		return "Playing"
	default:
		return "State(?)"
	}
}
