// Package scraper implements the resilience pipeline every source request passes through.
package scraper

import (
	"context"
	"errors"
	"time"
)

// WithTimeout races op against d. On expiry the caller stops waiting and
// receives a *TimeoutError. The operation itself is not guaranteed to stop:
// it gets a child context carrying the deadline so transports can cancel
// in-flight I/O best-effort.
func WithTimeout[T any](ctx context.Context, source string, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T

	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		value, err := op(tctx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) && ctx.Err() == nil {
			// The transport observed the attempt deadline before we did.
			return zero, &TimeoutError{Source: source, Elapsed: time.Since(start), Err: out.err}
		}
		return out.value, out.err

	case <-tctx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, &TimeoutError{Source: source, Elapsed: time.Since(start), Err: tctx.Err()}
	}
}
