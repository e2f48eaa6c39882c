package pipeline

import (
	"context"
	"time"
)

// RetryPolicy controls the per-step retry envelope. Backoff and Sleep are
// injectable so the loop can be unit-tested without waiting.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy sleeps 2^attempt seconds between attempts.
func DefaultRetryPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Backoff:     ExponentialBackoff,
		Sleep:       sleepContext,
	}
}

// ExponentialBackoff returns 2^attempt seconds. The attempt counter
// starts at 1, so the first wait is 2s, then 4s, 8s and so on.
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// sleepContext blocks for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
