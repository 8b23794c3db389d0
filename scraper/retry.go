// Package scraper implements the resilience pipeline every source request passes through.
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// maxBackoffShift caps the exponent so the doubling cannot overflow.
const maxBackoffShift = 20

// Policy configures the retry loop of one call.
type Policy struct {
	// MaxRetries is the number of re-attempts after the first failure.
	// Zero means exactly one attempt.
	MaxRetries int

	// BaseDelay seeds the exponential backoff and bounds its jitter.
	BaseDelay time.Duration
}

// Delay returns the backoff to sleep after the given zero-based attempt
// failed: BaseDelay doubled per attempt, plus jitter in [0, BaseDelay).
func (p Policy) Delay(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	if attempt > maxBackoffShift {
		attempt = maxBackoffShift
	}

	backoff := p.BaseDelay << uint(attempt)
	return backoff + time.Duration(rand.Int63n(int64(p.BaseDelay)))
}

// Retry runs op until it succeeds, is classified non-retryable, or the
// retry budget runs out. Non-retryable failures propagate immediately
// without consuming the budget; an exhausted budget propagates the last
// error tagged with ErrRetriesExhausted. Backoff sleeps end early when ctx
// is cancelled.
func Retry[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		value, err := op()
		if err == nil {
			return value, nil
		}

		if !Retryable(err) {
			return zero, err
		}

		if attempt >= p.MaxRetries {
			return zero, fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
		}

		if err := sleep(ctx, p.Delay(attempt)); err != nil {
			return zero, err
		}
	}
}

// sleep suspends for d, returning early with ctx's error if the caller
// gives up first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
