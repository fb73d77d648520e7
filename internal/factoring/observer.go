package factoring

import (
	"math/big"
	"sync"
)

// AttemptObserver receives notifications at the boundaries of period-finding
// attempts. Implementations decouple progress handling (UI, logging,
// metrics) from the controller; the core never prints on its own.
type AttemptObserver interface {
	// AttemptStarted is called before an attempt begins.
	//
	// Parameters:
	//   - n: The number being factored.
	//   - attempt: The 1-based attempt number.
	//   - maxAttempts: The configured attempt budget.
	AttemptStarted(n *big.Int, attempt, maxAttempts int)

	// AttemptFinished is called after an attempt ends.
	//
	// Parameters:
	//   - n: The number being factored.
	//   - attempt: The 1-based attempt number.
	//   - succeeded: Whether the attempt produced verified factors.
	AttemptFinished(n *big.Int, attempt int, succeeded bool)
}

// AttemptSubject manages observer registration and notification for attempt
// events. It is safe for concurrent use.
type AttemptSubject struct {
	mu        sync.RWMutex
	observers []AttemptObserver
}

// NewAttemptSubject creates an empty subject ready to accept observers.
func NewAttemptSubject() *AttemptSubject {
	return &AttemptSubject{observers: make([]AttemptObserver, 0)}
}

// Register adds an observer. Observers are notified in registration order.
// A nil observer is a no-op.
func (s *AttemptSubject) Register(observer AttemptObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer. If the observer is not found, this call is
// a no-op.
func (s *AttemptSubject) Unregister(observer AttemptObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// NotifyStarted sends an attempt-start event to all registered observers.
func (s *AttemptSubject) NotifyStarted(n *big.Int, attempt, maxAttempts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, observer := range s.observers {
		observer.AttemptStarted(n, attempt, maxAttempts)
	}
}

// NotifyFinished sends an attempt-end event to all registered observers.
func (s *AttemptSubject) NotifyFinished(n *big.Int, attempt int, succeeded bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, observer := range s.observers {
		observer.AttemptFinished(n, attempt, succeeded)
	}
}

// ObserverCount returns the number of registered observers. This is
// primarily useful for testing and diagnostics.
func (s *AttemptSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}
