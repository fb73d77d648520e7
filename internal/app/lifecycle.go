package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// Lifecycle owns the cancellation resources of a single run: the run timeout
// and the SIGINT/SIGTERM listener.
type Lifecycle struct {
	cancelTimeout context.CancelFunc
	stopSignals   context.CancelFunc
}

// SetupLifecycle derives the run context from ctx. The returned context is
// canceled when the timeout expires or when the process receives SIGINT or
// SIGTERM, whichever comes first. Callers defer Cleanup on the returned
// Lifecycle.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *Lifecycle) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, &Lifecycle{cancelTimeout: cancelTimeout, stopSignals: stopSignals}
}

// Cleanup stops the signal listener and releases the timeout timer. It is
// safe to call more than once.
func (l *Lifecycle) Cleanup() {
	if l.stopSignals != nil {
		l.stopSignals()
	}
	if l.cancelTimeout != nil {
		l.cancelTimeout()
	}
}
