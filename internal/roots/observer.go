package roots

import (
	"sync"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Round Events
// ─────────────────────────────────────────────────────────────────────────────

// Outcome classifies how a precision round ended.
type Outcome string

const (
	// OutcomeIncomplete means the finder isolated fewer roots than the degree.
	OutcomeIncomplete Outcome = "incomplete"
	// OutcomeInaccurate means the deflated enclosures are wider than the target.
	OutcomeInaccurate Outcome = "inaccurate"
	// OutcomeLiftInaccurate means the lifted enclosures are wider than the target.
	OutcomeLiftInaccurate Outcome = "lift_inaccurate"
	// OutcomeRealCheckFailed means the real-root consistency check failed.
	OutcomeRealCheckFailed Outcome = "real_check_failed"
	// OutcomeCertified means the round produced the final enclosures.
	OutcomeCertified Outcome = "certified"
)

// RoundEvent is an immutable snapshot of one precision round.
type RoundEvent struct {
	// Round counts rounds from 1.
	Round int
	// Precision is the working precision of the round, in bits.
	Precision uint
	// Isolated is the number of deflated roots the finder isolated.
	Isolated int
	// Degree is the degree of the deflated polynomial.
	Degree int
	// Outcome tells why the round ended.
	Outcome Outcome
	// Elapsed is the wall time spent in the round.
	Elapsed time.Duration
}

// ─────────────────────────────────────────────────────────────────────────────
// Observer Pattern
// ─────────────────────────────────────────────────────────────────────────────

// RoundObserver receives a RoundEvent at the end of every precision round.
type RoundObserver interface {
	OnRound(event RoundEvent)
}

// RoundSubject fans round events out to registered observers, in
// registration order. It is safe for concurrent use.
type RoundSubject struct {
	observers []RoundObserver
	mu        sync.RWMutex
}

// NewRoundSubject creates an empty subject.
func NewRoundSubject() *RoundSubject {
	return &RoundSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *RoundSubject) Register(observer RoundObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer. Unknown observers are ignored.
func (s *RoundSubject) Unregister(observer RoundObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers event to every observer synchronously.
func (s *RoundSubject) Notify(event RoundEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.OnRound(event)
	}
}

// ObserverCount returns the number of registered observers.
func (s *RoundSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}
