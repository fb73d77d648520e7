package factoring

import (
	"math/big"
	"testing"
)

func TestAttemptSubjectRegisterAndNotify(t *testing.T) {
	subject := NewAttemptSubject()
	first := &recordingObserver{}
	second := &recordingObserver{}

	subject.Register(first)
	subject.Register(second)
	if subject.ObserverCount() != 2 {
		t.Fatalf("expected 2 observers, got %d", subject.ObserverCount())
	}

	n := big.NewInt(15)
	subject.NotifyStarted(n, 1, 10)
	subject.NotifyStarted(n, 2, 10)
	subject.NotifyFinished(n, 2, true)

	for i, obs := range []*recordingObserver{first, second} {
		if obs.started != 2 || obs.finished != 1 {
			t.Errorf("observer %d saw started=%d finished=%d, want 2/1", i, obs.started, obs.finished)
		}
	}
}

func TestAttemptSubjectUnregister(t *testing.T) {
	subject := NewAttemptSubject()
	kept := &recordingObserver{}
	removed := &recordingObserver{}

	subject.Register(kept)
	subject.Register(removed)
	subject.Unregister(removed)

	subject.NotifyStarted(big.NewInt(15), 1, 10)

	if removed.started != 0 {
		t.Error("unregistered observer must not receive notifications")
	}
	if kept.started != 1 {
		t.Error("remaining observer must still receive notifications")
	}
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer, got %d", subject.ObserverCount())
	}

	// Unregistering twice is a no-op.
	subject.Unregister(removed)
	if subject.ObserverCount() != 1 {
		t.Error("double unregister must not change the observer set")
	}
}

func TestAttemptSubjectNilObserver(t *testing.T) {
	subject := NewAttemptSubject()
	subject.Register(nil)
	subject.Unregister(nil)
	if subject.ObserverCount() != 0 {
		t.Errorf("nil observers must be ignored, got count %d", subject.ObserverCount())
	}
}
