package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSetupLifecycle(t *testing.T) {
	t.Run("CarriesDeadline", func(t *testing.T) {
		ctx, lc := SetupLifecycle(context.Background(), 10*time.Millisecond)
		defer lc.Cleanup()

		if _, ok := ctx.Deadline(); !ok {
			t.Fatal("run context must carry a deadline")
		}

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("run context did not expire")
		}
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded, got %v", ctx.Err())
		}
	})

	t.Run("CleanupCancels", func(t *testing.T) {
		ctx, lc := SetupLifecycle(context.Background(), time.Minute)

		if ctx.Err() != nil {
			t.Fatalf("fresh run context already done: %v", ctx.Err())
		}

		lc.Cleanup()
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("Cleanup must cancel the context, got %v", ctx.Err())
		}

		// Cleanup is safe to call twice.
		lc.Cleanup()
	})
}

func TestLifecycleNilSafe(t *testing.T) {
	(&Lifecycle{}).Cleanup()
}
