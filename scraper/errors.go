// Package scraper implements the resilience pipeline every source request passes through.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind sub-classifies a source failure for retry decisions.
type Kind int

const (
	// KindTransient marks failures worth retrying: network hiccups, 5xx responses.
	KindTransient Kind = iota + 1

	// KindNotFound marks lookups of identifiers the source does not know.
	// Retrying will not help.
	KindNotFound

	// KindMalformed marks responses that no longer match the expected shape,
	// signalling an upstream format change. Retrying will not help.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindNotFound:
		return "not found"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// Error is the classified failure of a single source operation.
type Error struct {
	Source string
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transient classifies err as worth retrying.
func Transient(source string, err error) *Error {
	return &Error{Source: source, Kind: KindTransient, Err: err}
}

// NotFound classifies err as an unknown-identifier lookup.
func NotFound(source string, err error) *Error {
	return &Error{Source: source, Kind: KindNotFound, Err: err}
}

// Malformed classifies err as an upstream response shape change.
func Malformed(source string, err error) *Error {
	return &Error{Source: source, Kind: KindMalformed, Err: err}
}

// IsKind reports whether err carries the given classification, however
// deeply it is wrapped.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// RateLimitError reports a server-side throttle. RetryAfter carries the
// server's hint when it gave one, zero otherwise.
type RateLimitError struct {
	Source     string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	msg := fmt.Sprintf("%s: rate limited", e.Source)
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a single attempt that exceeded its time budget.
type TimeoutError struct {
	Source  string
	Elapsed time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Source, e.Elapsed.Round(time.Millisecond))
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// ErrRetriesExhausted tags the final error of an operation that failed
// every allowed attempt. The underlying classification stays reachable
// through errors.As.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Retryable reports whether re-attempting the failed operation has a
// reasonable chance of succeeding. Rate limits and timeouts are transient
// by nature; classified errors answer by kind; a caller's cancellation
// never retries. Unclassified errors retry, biasing toward availability.
//
// The typed checks run before the bare context ones: an attempt timeout
// wraps the child deadline error, and only an UNwrapped context error
// means the caller itself gave up.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var rateLimit *RateLimitError
	if errors.As(err, &rateLimit) {
		return true
	}

	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		return true
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind == KindTransient
	}

	return true
}
