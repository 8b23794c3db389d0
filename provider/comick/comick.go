// Package comick implements the built-in source for the ComicK aggregator.
// It speaks ComicK's JSON API directly; the only HTML it touches is the
// reader page, which is where the page image URLs live.
package comick

import (
	"time"

	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	Name = "ComicK"
	ID   = "comick"

	baseURL = "https://comick.live"
	cdnURL  = "https://cdn1.comicknew.pictures"
)

// defaultQuota is ComicK's request budget. Its API tolerates bursts well.
var defaultQuota = scraper.Quota{MaxRequests: 10, Per: time.Second}

// Comick is a source backed by the ComicK JSON API.
type Comick struct {
	invoker *scraper.Invoker
	headers map[string]string
}

// New builds a ComicK source with its own resilience pipeline.
func New(opts scraper.Options) *Comick {
	opts.RateLimit = opts.RateLimit.Or(defaultQuota)

	return &Comick{
		invoker: scraper.NewInvoker(ID, opts),
		headers: lo.Assign(defaultHeaders(), opts.Headers),
	}
}

// Name returns the provider name.
func (c *Comick) Name() string {
	return Name
}

// ID returns the provider ID.
func (c *Comick) ID() string {
	return ID
}

// defaultHeaders mimic a Chrome tab talking to the ComicK frontend.
// The API rejects requests that look too obviously like a bot.
func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":         "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
		"Accept":             "*/*",
		"Accept-Language":    "en-US,en;q=0.9",
		"Sec-Ch-Ua":          `"Not=A?Brand";v="24", "Chromium";v="140"`,
		"Sec-Ch-Ua-Mobile":   "?0",
		"Sec-Ch-Ua-Platform": `"Linux"`,
		"Sec-Fetch-Site":     "same-origin",
		"Sec-Fetch-Mode":     "cors",
		"Sec-Fetch-Dest":     "empty",
	}
}

// pageHeaders swaps the fetch-mode headers for document navigation ones;
// the reader page rejects cors-shaped requests.
func pageHeaders(base map[string]string) map[string]string {
	return lo.Assign(base, map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Dest":            "document",
		"Upgrade-Insecure-Requests": "1",
	})
}

// statusFromCode translates ComicK's numeric publication codes.
func statusFromCode(code int) source.Status {
	switch code {
	case 2:
		return source.StatusCompleted
	case 3:
		return source.StatusCancelled
	case 4:
		return source.StatusHiatus
	default:
		return source.StatusOngoing
	}
}

// searchStatusFromCode is the reduced mapping carried by search listings.
func searchStatusFromCode(code int) mo.Option[source.Status] {
	switch code {
	case 1:
		return mo.Some(source.StatusOngoing)
	case 2:
		return mo.Some(source.StatusCompleted)
	default:
		return mo.None[source.Status]()
	}
}
