// Package mangapill implements the built-in source for the Mangapill
// reader site. Mangapill has no JSON API; every operation parses the
// server-rendered HTML with goquery.
package mangapill

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/samber/lo"
)

const (
	Name = "Mangapill"
	ID   = "mangapill"

	baseURL = "https://mangapill.com"
)

// defaultQuota is Mangapill's request budget. It is a small site;
// hammering it gets the client blocked.
var defaultQuota = scraper.Quota{MaxRequests: 5, Per: time.Second}

// Mangapill is a source backed by the Mangapill HTML catalog.
type Mangapill struct {
	invoker *scraper.Invoker
	headers map[string]string
}

// New builds a Mangapill source with its own resilience pipeline.
func New(opts scraper.Options) *Mangapill {
	opts.RateLimit = opts.RateLimit.Or(defaultQuota)

	return &Mangapill{
		invoker: scraper.NewInvoker(ID, opts),
		headers: lo.Assign(defaultHeaders(), opts.Headers),
	}
}

// Name returns the provider name.
func (m *Mangapill) Name() string {
	return Name
}

// ID returns the provider ID.
func (m *Mangapill) ID() string {
	return ID
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         baseURL + "/",
	}
}

// fetchDocument retrieves a page and parses it into a DOM.
func (m *Mangapill) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := scraper.Fetch(ctx, ID, url, m.headers)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, scraper.Malformed(ID, err)
	}

	return doc, nil
}
