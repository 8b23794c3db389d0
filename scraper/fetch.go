// Package scraper implements the resilience pipeline every source request passes through.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mangasan-cli/mangasan/constant"
	"github.com/mangasan-cli/mangasan/network"
)

// Fetch executes a GET against url through the shared HTTP client and
// classifies the response into the error taxonomy: 404 and 410 are
// not-found, 429 is a rate limit carrying the server's retry-after hint,
// 408 and every 5xx are transient, and any other non-2xx status is
// malformed. Context cancellation passes through unclassified so the
// timeout guard and retry loop can tell it apart from upstream failures.
func Fetch(ctx context.Context, source, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Malformed(source, err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, Transient(source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transient(source, err)
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return body, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{
			Source:     source,
			RetryAfter: retryAfterHint(resp.Header),
			Err:        fmt.Errorf("status %s", resp.Status),
		}

	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, NotFound(source, fmt.Errorf("status %s", resp.Status))

	case resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode >= http.StatusInternalServerError:
		return nil, Transient(source, fmt.Errorf("status %s", resp.Status))

	default:
		return nil, Malformed(source, fmt.Errorf("unexpected status %s", resp.Status))
	}
}

// retryAfterHint parses the delay-seconds form of the Retry-After header.
func retryAfterHint(h http.Header) time.Duration {
	raw := h.Get("Retry-After")
	if raw == "" {
		return 0
	}

	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
