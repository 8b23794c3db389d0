package scraper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/exp/slices"

	. "github.com/smartystreets/goconvey/convey"
)

// timing tolerance for assertions that compare wall-clock gaps.
const slack = 30 * time.Millisecond

func TestRateLimiter(t *testing.T) {
	Convey("RateLimiter", t, func() {
		ctx := context.Background()

		Convey("Grants immediately while the window has room", func() {
			l := NewRateLimiter(Quota{MaxRequests: 3, Per: time.Second})

			start := time.Now()
			for i := 0; i < 3; i++ {
				So(l.Acquire(ctx), ShouldBeNil)
			}
			So(time.Since(start), ShouldBeLessThan, 100*time.Millisecond)
		})

		Convey("Evicts acquisitions that aged out of the window", func() {
			clock := time.Now()
			l := NewRateLimiter(Quota{MaxRequests: 2, Per: time.Second})
			l.now = func() time.Time { return clock }

			So(l.Acquire(ctx), ShouldBeNil)
			So(l.Acquire(ctx), ShouldBeNil)
			So(l.stamps, ShouldHaveLength, 2)

			clock = clock.Add(time.Second)
			So(l.Acquire(ctx), ShouldBeNil)
			So(l.stamps, ShouldHaveLength, 1)
		})

		Convey("Admits at most N acquisitions per trailing window", func() {
			const n = 2
			const window = 200 * time.Millisecond

			l := NewRateLimiter(Quota{MaxRequests: n, Per: window})

			var times []time.Time
			for i := 0; i < 6; i++ {
				So(l.Acquire(ctx), ShouldBeNil)
				times = append(times, time.Now())
			}

			// Acquisition k must start at least one full window after
			// acquisition k-n.
			for i := n; i < len(times); i++ {
				So(times[i].Sub(times[i-n]), ShouldBeGreaterThanOrEqualTo, window-slack)
			}
		})

		Convey("Concurrent callers cannot oversubscribe a freed slot", func() {
			const n = 2
			const window = 300 * time.Millisecond
			const calls = 5

			l := NewRateLimiter(Quota{MaxRequests: n, Per: window})

			var (
				mu    sync.Mutex
				times []time.Time
				errs  []error
				wg    sync.WaitGroup
			)

			start := time.Now()
			for i := 0; i < calls; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := l.Acquire(ctx)
					mu.Lock()
					errs = append(errs, err)
					times = append(times, time.Now())
					mu.Unlock()
				}()
			}
			wg.Wait()

			for _, err := range errs {
				So(err, ShouldBeNil)
			}
			So(times, ShouldHaveLength, calls)

			slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })
			for i := n; i < len(times); i++ {
				So(times[i].Sub(times[i-n]), ShouldBeGreaterThanOrEqualTo, window-slack)
			}

			// 5 calls against 2 slots need at least two full windows.
			So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 2*window-slack)
		})

		Convey("Acquire returns the context's error when the caller gives up", func() {
			l := NewRateLimiter(Quota{MaxRequests: 1, Per: time.Hour})
			So(l.Acquire(ctx), ShouldBeNil)

			waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			err := l.Acquire(waitCtx)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})

		Convey("Independent limiters do not share state", func() {
			a := NewRateLimiter(Quota{MaxRequests: 1, Per: time.Hour})
			b := NewRateLimiter(Quota{MaxRequests: 1, Per: time.Hour})

			So(a.Acquire(ctx), ShouldBeNil)

			start := time.Now()
			So(b.Acquire(ctx), ShouldBeNil)
			So(time.Since(start), ShouldBeLessThan, 100*time.Millisecond)
		})

		Convey("Normalizes a nonsensical quota instead of rejecting", func() {
			l := NewRateLimiter(Quota{})
			So(l.Quota().MaxRequests, ShouldEqual, 1)
			So(l.Quota().Per, ShouldEqual, time.Second)
		})
	})
}
