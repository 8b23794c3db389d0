// Package scraper implements the resilience pipeline every source request passes through.
package scraper

import (
	"context"
	"sync"
	"time"
)

// RateLimiter bounds how many operations may start within a trailing time
// window, using sliding-window counting over the timestamps of granted
// acquisitions. It never rejects, it only delays.
type RateLimiter struct {
	mu     sync.Mutex
	quota  Quota
	stamps []time.Time

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewRateLimiter returns a limiter granting at most quota.MaxRequests
// acquisitions per trailing quota.Per window. The limiter's state belongs
// to its owner alone; constructing two limiters yields independent quotas.
func NewRateLimiter(quota Quota) *RateLimiter {
	if quota.MaxRequests < 1 {
		quota.MaxRequests = 1
	}
	if quota.Per <= 0 {
		quota.Per = time.Second
	}

	return &RateLimiter{
		quota: quota,
		now:   time.Now,
	}
}

// Quota returns the limiter's configured quota.
func (l *RateLimiter) Quota() Quota {
	return l.quota
}

// Acquire suspends the caller until the trailing window has room, then
// records the acquisition and returns. Waiters wake when the oldest
// recorded acquisition ages out and re-check the window before claiming a
// slot, so contending callers cannot both take the same opening. The only
// error it returns is ctx's, when the caller gives up waiting.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := l.now()
		l.evict(now)

		if len(l.stamps) < l.quota.MaxRequests {
			l.stamps = append(l.stamps, now)
			l.mu.Unlock()
			return nil
		}

		wait := l.stamps[0].Add(l.quota.Per).Sub(now)
		l.mu.Unlock()

		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// evict drops acquisitions that aged out of the trailing window.
// Callers must hold mu.
func (l *RateLimiter) evict(now time.Time) {
	cutoff := now.Add(-l.quota.Per)

	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}
