package scraper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/exp/slices"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInvoker(t *testing.T) {
	Convey("Invoker", t, func() {
		ctx := context.Background()

		// Generous enough to never delay the tests that are not about
		// rate limiting.
		openQuota := Quota{MaxRequests: 1000, Per: time.Millisecond}

		Convey("Construction applies defaults and keeps the source name", func() {
			inv := NewInvoker("comick", Options{MaxRetries: -3})

			So(inv.Source(), ShouldEqual, "comick")
			So(inv.timeout, ShouldEqual, defaultTimeout)
			So(inv.policy.MaxRetries, ShouldEqual, 0)
		})

		Convey("Concurrent calls are batched by the rate limit and all succeed", func() {
			const calls = 5
			const window = 300 * time.Millisecond

			inv := NewInvoker("stub", Options{
				Timeout:   time.Second,
				RateLimit: Quota{MaxRequests: 2, Per: window},
			})

			var (
				mu    sync.Mutex
				times []time.Time
				errs  []error
				total int
				wg    sync.WaitGroup
			)

			for i := 0; i < calls; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					value, err := Invoke(ctx, inv, func(context.Context) (int, error) {
						mu.Lock()
						times = append(times, time.Now())
						mu.Unlock()
						return 1, nil
					})
					mu.Lock()
					errs = append(errs, err)
					total += value
					mu.Unlock()
				}()
			}
			wg.Wait()

			for _, err := range errs {
				So(err, ShouldBeNil)
			}
			So(total, ShouldEqual, calls)
			So(times, ShouldHaveLength, calls)

			slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })
			for i := 2; i < len(times); i++ {
				So(times[i].Sub(times[i-2]), ShouldBeGreaterThanOrEqualTo, window-slack)
			}
		})

		Convey("Each retry re-acquires a rate-limit slot", func() {
			const window = 200 * time.Millisecond

			inv := NewInvoker("stub", Options{
				Timeout:    time.Second,
				MaxRetries: 2,
				BaseDelay:  time.Millisecond,
				RateLimit:  Quota{MaxRequests: 1, Per: window},
			})

			var starts []time.Time
			value, err := Invoke(ctx, inv, func(context.Context) (int, error) {
				starts = append(starts, time.Now())
				if len(starts) < 3 {
					return 0, Transient("stub", errors.New("boom"))
				}
				return 9, nil
			})

			So(err, ShouldBeNil)
			So(value, ShouldEqual, 9)
			So(starts, ShouldHaveLength, 3)

			// With a near-zero backoff the spacing can only come from the
			// limiter window, so each attempt must have claimed its own slot.
			for i := 1; i < len(starts); i++ {
				So(starts[i].Sub(starts[i-1]), ShouldBeGreaterThanOrEqualTo, window-slack)
			}
		})

		Convey("Non-retryable failures propagate without a second attempt", func() {
			inv := NewInvoker("stub", Options{
				Timeout:    time.Second,
				MaxRetries: 5,
				RateLimit:  openQuota,
			})

			attempts := 0
			_, err := Invoke(ctx, inv, func(context.Context) (int, error) {
				attempts++
				return 0, Malformed("stub", errors.New("shape changed"))
			})

			So(attempts, ShouldEqual, 1)
			So(IsKind(err, KindMalformed), ShouldBeTrue)
			So(errors.Is(err, ErrRetriesExhausted), ShouldBeFalse)
		})

		Convey("The timeout bounds each attempt, not the whole sequence", func() {
			const budget = 120 * time.Millisecond

			inv := NewInvoker("stub", Options{
				Timeout:    budget,
				MaxRetries: 2,
				BaseDelay:  20 * time.Millisecond,
				RateLimit:  openQuota,
			})

			attempts := 0
			start := time.Now()
			value, err := Invoke(ctx, inv, func(context.Context) (int, error) {
				attempts++
				time.Sleep(70 * time.Millisecond)
				if attempts < 3 {
					return 0, Transient("stub", errors.New("boom"))
				}
				return 3, nil
			})

			So(err, ShouldBeNil)
			So(value, ShouldEqual, 3)
			So(attempts, ShouldEqual, 3)

			// Three 70ms attempts plus backoff overrun a single budget.
			So(time.Since(start), ShouldBeGreaterThan, budget)
		})

		Convey("Persistent timeouts exhaust the retry budget", func() {
			inv := NewInvoker("sluggish", Options{
				Timeout:    30 * time.Millisecond,
				MaxRetries: 1,
				BaseDelay:  time.Millisecond,
				RateLimit:  openQuota,
			})

			var attempts atomic.Int32
			_, err := Invoke(ctx, inv, func(opCtx context.Context) (int, error) {
				attempts.Add(1)
				<-opCtx.Done()
				return 0, opCtx.Err()
			})

			So(attempts.Load(), ShouldEqual, 2)
			So(errors.Is(err, ErrRetriesExhausted), ShouldBeTrue)

			var timeout *TimeoutError
			So(errors.As(err, &timeout), ShouldBeTrue)
			So(timeout.Source, ShouldEqual, "sluggish")
		})

		Convey("Waiting on the limiter does not consume the attempt budget", func() {
			const window = 150 * time.Millisecond

			inv := NewInvoker("stub", Options{
				Timeout:   window / 2,
				RateLimit: Quota{MaxRequests: 1, Per: window},
			})

			// Fill the window so the second call waits longer than its
			// attempt budget before the operation can even start.
			_, err := Invoke(ctx, inv, func(context.Context) (int, error) { return 1, nil })
			So(err, ShouldBeNil)

			value, err := Invoke(ctx, inv, func(context.Context) (int, error) { return 2, nil })
			So(err, ShouldBeNil)
			So(value, ShouldEqual, 2)
		})

		Convey("Cancellation while rate-limited is the caller's error", func() {
			inv := NewInvoker("stub", Options{
				Timeout:   time.Second,
				RateLimit: Quota{MaxRequests: 1, Per: time.Hour},
			})

			_, err := Invoke(ctx, inv, func(context.Context) (int, error) { return 1, nil })
			So(err, ShouldBeNil)

			waitCtx, cancel := context.WithTimeout(ctx, 40*time.Millisecond)
			defer cancel()

			attempts := 0
			_, err = Invoke(waitCtx, inv, func(context.Context) (int, error) {
				attempts++
				return 0, nil
			})

			So(attempts, ShouldEqual, 0)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}
