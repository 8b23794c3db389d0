package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFetch(t *testing.T) {
	Convey("Fetch", t, func() {
		ctx := context.Background()

		serve := func(status int, header http.Header, body string) *httptest.Server {
			return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, values := range header {
					for _, v := range values {
						w.Header().Add(k, v)
					}
				}
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
			}))
		}

		Convey("A 2xx response returns the body", func() {
			server := serve(http.StatusOK, nil, `{"title":"Chainsaw Man"}`)
			defer server.Close()

			body, err := Fetch(ctx, "stub", server.URL, nil)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, `{"title":"Chainsaw Man"}`)
		})

		Convey("Extra headers reach the upstream", func() {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Referer")
			}))
			defer server.Close()

			_, err := Fetch(ctx, "stub", server.URL, map[string]string{"Referer": "https://example.com"})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "https://example.com")
		})

		Convey("404 and 410 classify as not found", func() {
			for _, status := range []int{http.StatusNotFound, http.StatusGone} {
				server := serve(status, nil, "")

				_, err := Fetch(ctx, "stub", server.URL, nil)
				So(IsKind(err, KindNotFound), ShouldBeTrue)

				server.Close()
			}
		})

		Convey("429 surfaces a rate limit with the server's hint", func() {
			server := serve(http.StatusTooManyRequests, http.Header{"Retry-After": {"2"}}, "")
			defer server.Close()

			_, err := Fetch(ctx, "stub", server.URL, nil)

			var rateLimit *RateLimitError
			So(errors.As(err, &rateLimit), ShouldBeTrue)
			So(rateLimit.Source, ShouldEqual, "stub")
			So(rateLimit.RetryAfter, ShouldEqual, 2*time.Second)
		})

		Convey("429 without a usable hint leaves it zero", func() {
			server := serve(http.StatusTooManyRequests, http.Header{"Retry-After": {"Wed, 21 Oct 2026 07:28:00 GMT"}}, "")
			defer server.Close()

			_, err := Fetch(ctx, "stub", server.URL, nil)

			var rateLimit *RateLimitError
			So(errors.As(err, &rateLimit), ShouldBeTrue)
			So(rateLimit.RetryAfter, ShouldEqual, time.Duration(0))
		})

		Convey("408 and 5xx classify as transient", func() {
			for _, status := range []int{
				http.StatusRequestTimeout,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
			} {
				server := serve(status, nil, "")

				_, err := Fetch(ctx, "stub", server.URL, nil)
				So(IsKind(err, KindTransient), ShouldBeTrue)

				server.Close()
			}
		})

		Convey("Other statuses classify as malformed", func() {
			server := serve(http.StatusTeapot, nil, "")
			defer server.Close()

			_, err := Fetch(ctx, "stub", server.URL, nil)
			So(IsKind(err, KindMalformed), ShouldBeTrue)
		})

		Convey("A dead upstream classifies as transient", func() {
			server := serve(http.StatusOK, nil, "")
			server.Close()

			_, err := Fetch(ctx, "stub", server.URL, nil)
			So(IsKind(err, KindTransient), ShouldBeTrue)
		})

		Convey("Caller cancellation passes through unclassified", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
			}))
			defer server.Close()

			waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
			defer cancel()

			_, err := Fetch(waitCtx, "stub", server.URL, nil)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)

			var classified *Error
			So(errors.As(err, &classified), ShouldBeFalse)
		})
	})
}
