package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRetry(t *testing.T) {
	Convey("Retry", t, func() {
		ctx := context.Background()

		Convey("Returns the first success without extra attempts", func() {
			attempts := 0
			value, err := Retry(ctx, Policy{MaxRetries: 3}, func() (string, error) {
				attempts++
				return "Chainsaw Man", nil
			})

			So(err, ShouldBeNil)
			So(value, ShouldEqual, "Chainsaw Man")
			So(attempts, ShouldEqual, 1)
		})

		Convey("A persistent transient failure is attempted MaxRetries+1 times", func() {
			attempts := 0
			_, err := Retry(ctx, Policy{MaxRetries: 2}, func() (string, error) {
				attempts++
				return "", Transient("stub", errors.New("boom"))
			})

			So(attempts, ShouldEqual, 3)
			So(errors.Is(err, ErrRetriesExhausted), ShouldBeTrue)
			So(IsKind(err, KindTransient), ShouldBeTrue)
		})

		Convey("Zero retries means exactly one attempt", func() {
			attempts := 0
			_, err := Retry(ctx, Policy{}, func() (int, error) {
				attempts++
				return 0, Transient("stub", errors.New("boom"))
			})

			So(attempts, ShouldEqual, 1)
			So(errors.Is(err, ErrRetriesExhausted), ShouldBeTrue)
		})

		Convey("Recovers when a later attempt succeeds", func() {
			attempts := 0
			value, err := Retry(ctx, Policy{MaxRetries: 3}, func() (int, error) {
				attempts++
				if attempts < 3 {
					return 0, Transient("stub", errors.New("boom"))
				}
				return 42, nil
			})

			So(err, ShouldBeNil)
			So(value, ShouldEqual, 42)
			So(attempts, ShouldEqual, 3)
		})

		Convey("Non-retryable failures short-circuit after a single attempt", func() {
			attempts := 0
			_, err := Retry(ctx, Policy{MaxRetries: 5}, func() (int, error) {
				attempts++
				return 0, NotFound("stub", errors.New("missing"))
			})

			So(attempts, ShouldEqual, 1)
			So(errors.Is(err, ErrRetriesExhausted), ShouldBeFalse)
			So(IsKind(err, KindNotFound), ShouldBeTrue)
		})

		Convey("The exhausted error keeps the last failure reachable", func() {
			cause := &RateLimitError{Source: "stub", RetryAfter: 2 * time.Second}
			_, err := Retry(ctx, Policy{MaxRetries: 1}, func() (int, error) {
				return 0, cause
			})

			So(errors.Is(err, ErrRetriesExhausted), ShouldBeTrue)

			var rateLimit *RateLimitError
			So(errors.As(err, &rateLimit), ShouldBeTrue)
			So(rateLimit.RetryAfter, ShouldEqual, 2*time.Second)
		})

		Convey("Backoff sleeps end early when the caller gives up", func() {
			waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			attempts := 0
			start := time.Now()
			_, err := Retry(waitCtx, Policy{MaxRetries: 3, BaseDelay: time.Hour}, func() (int, error) {
				attempts++
				return 0, Transient("stub", errors.New("boom"))
			})

			So(attempts, ShouldEqual, 1)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, time.Second)
		})
	})
}

func TestPolicyDelay(t *testing.T) {
	Convey("Policy.Delay", t, func() {
		Convey("Doubles per attempt with jitter below one base delay", func() {
			p := Policy{BaseDelay: 100 * time.Millisecond}

			for attempt := 0; attempt < 5; attempt++ {
				floor := p.BaseDelay << uint(attempt)
				for i := 0; i < 20; i++ {
					d := p.Delay(attempt)
					So(d, ShouldBeGreaterThanOrEqualTo, floor)
					So(d, ShouldBeLessThan, floor+p.BaseDelay)
				}
			}
		})

		Convey("No base delay means no backoff", func() {
			So(Policy{}.Delay(3), ShouldEqual, time.Duration(0))
			So(Policy{BaseDelay: -time.Second}.Delay(0), ShouldEqual, time.Duration(0))
		})

		Convey("Huge attempt counts cannot overflow the doubling", func() {
			p := Policy{BaseDelay: time.Millisecond}

			d := p.Delay(100000)
			So(d, ShouldBeGreaterThan, time.Duration(0))
			So(d, ShouldBeLessThanOrEqualTo, time.Millisecond<<maxBackoffShift+time.Millisecond)
		})
	})
}
