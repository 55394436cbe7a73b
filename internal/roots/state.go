package roots

import "fmt"

// State is a phase of the precision-escalating isolation loop.
type State int

const (
	// StateIsolating runs the root finder on the deflated polynomial.
	StateIsolating State = iota
	// StateCheckAccuracy checks the deflated enclosures against the target.
	StateCheckAccuracy
	// StateLifting maps deflated roots back to roots of the input.
	StateLifting
	// StateValidating certifies the lifted enclosures.
	StateValidating
	// StateDone means the enclosures are certified.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIsolating:
		return "Isolating"
	case StateCheckAccuracy:
		return "CheckAccuracy"
	case StateLifting:
		return "Lifting"
	case StateValidating:
		return "Validating"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether the loop stops in s.
func (s State) IsTerminal() bool {
	return s == StateDone
}

// canTransition reports whether the loop may move from one state to another.
// Every failure returns to Isolating at a doubled precision.
func canTransition(from, to State) bool {
	switch from {
	case StateIsolating:
		return to == StateIsolating || to == StateCheckAccuracy
	case StateCheckAccuracy:
		return to == StateIsolating || to == StateLifting
	case StateLifting:
		return to == StateValidating
	case StateValidating:
		return to == StateIsolating || to == StateDone
	default:
		return false
	}
}
