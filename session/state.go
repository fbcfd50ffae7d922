package session

// State is the lifecycle state of a Session.
type State int

const (
	// Closed is both the initial and the terminal state.
	Closed State = iota
	Open
	InTransaction
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case InTransaction:
		return "in transaction"
	default:
		return "unknown"
	}
}
