// Package scraper implements the resilience pipeline every source request passes through.
package scraper

import (
	"context"
	"time"
)

// Invoker composes the pipeline every source operation runs through: the
// retry loop outermost, a fresh rate-limit slot per attempt, and the
// per-attempt timeout innermost. The ordering is deliberate: an upstream
// that is throttling must not receive retries faster than its quota, and
// each individual attempt, not the whole retry sequence, is bounded by the
// timeout. Time spent waiting on the limiter does not count against the
// attempt's budget.
type Invoker struct {
	source  string
	limiter *RateLimiter
	policy  Policy
	timeout time.Duration
}

// NewInvoker builds the pipeline for one source instance. The limiter is
// owned by the returned Invoker and never shared.
func NewInvoker(source string, opts Options) *Invoker {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	return &Invoker{
		source:  source,
		limiter: NewRateLimiter(opts.RateLimit),
		policy:  Policy{MaxRetries: opts.MaxRetries, BaseDelay: opts.BaseDelay},
		timeout: opts.Timeout,
	}
}

// Source returns the name of the source this pipeline serves.
func (inv *Invoker) Source() string {
	return inv.source
}

// Invoke runs op through inv's pipeline. Every attempt, including retries,
// re-acquires a rate-limit slot before its timeout starts ticking.
func Invoke[T any](ctx context.Context, inv *Invoker, op func(context.Context) (T, error)) (T, error) {
	return Retry(ctx, inv.policy, func() (T, error) {
		if err := inv.limiter.Acquire(ctx); err != nil {
			var zero T
			return zero, err
		}
		return WithTimeout(ctx, inv.source, inv.timeout, op)
	})
}
