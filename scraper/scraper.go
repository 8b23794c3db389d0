// Package scraper implements the resilience pipeline every source request
// passes through: a per-source sliding-window rate limiter, a bounded retry
// loop with exponential backoff and jitter, and a per-attempt timeout guard.
//
// The pipeline is stateless between calls. The only state it owns is the
// rate limiter's acquisition window, scoped to a single source instance and
// never shared across instances.
package scraper

import (
	"fmt"
	"time"

	"github.com/mangasan-cli/mangasan/key"
	"github.com/spf13/viper"
)

// Compiled-in fallbacks used when no configuration is loaded.
const (
	defaultTimeout   = 10 * time.Second
	defaultRetries   = 3
	defaultBaseDelay = time.Second
)

// Quota is a sliding-window rate limit: at most MaxRequests acquisitions
// within any trailing Per interval.
type Quota struct {
	MaxRequests int
	Per         time.Duration
}

// IsZero reports whether the quota was left unset.
func (q Quota) IsZero() bool {
	return q.MaxRequests == 0 && q.Per == 0
}

// Or returns q, or fallback if q was left unset.
func (q Quota) Or(fallback Quota) Quota {
	if q.IsZero() {
		return fallback
	}
	return q
}

func (q Quota) String() string {
	return fmt.Sprintf("%d per %s", q.MaxRequests, q.Per)
}

// Options configures the resilience pipeline of a single source instance.
// Supplied once at construction and immutable afterwards: two instances of
// the same source type never share limiter state.
type Options struct {
	// Timeout bounds a single attempt, not the whole retry sequence.
	Timeout time.Duration

	// MaxRetries is the number of re-attempts after the first failure.
	// Zero means exactly one attempt.
	MaxRetries int

	// BaseDelay seeds the exponential backoff between attempts.
	BaseDelay time.Duration

	// RateLimit caps how many requests may start per trailing window.
	// The zero value lets each source fall back to its own default quota.
	RateLimit Quota

	// Headers are merged over the source's default request headers.
	Headers map[string]string
}

// DefaultOptions returns the request budgets from the global configuration,
// falling back to the compiled-in defaults when none is loaded.
func DefaultOptions() Options {
	opts := Options{
		Timeout:    defaultTimeout,
		MaxRetries: defaultRetries,
		BaseDelay:  defaultBaseDelay,
		Headers:    make(map[string]string),
	}

	if viper.IsSet(key.ScraperTimeout) {
		opts.Timeout = time.Duration(viper.GetInt(key.ScraperTimeout)) * time.Millisecond
	}
	if viper.IsSet(key.ScraperRetries) {
		opts.MaxRetries = viper.GetInt(key.ScraperRetries)
	}
	if viper.IsSet(key.ScraperRetryDelay) {
		opts.BaseDelay = time.Duration(viper.GetInt(key.ScraperRetryDelay)) * time.Millisecond
	}

	return opts
}
