package mangapill

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/mo"
)

func (m *Mangapill) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&type=manga&status=", baseURL, url.QueryEscape(query))

	return scraper.Invoke(ctx, m.invoker, func(ctx context.Context) ([]*source.SearchResult, error) {
		doc, err := m.fetchDocument(ctx, endpoint)
		if err != nil {
			return nil, err
		}

		return m.mapSearchPage(doc), nil
	})
}

// mapSearchPage walks the results grid. Each card holds a cover anchor to
// /manga/{id}/{slug}, a title line and a small type/year/status meta row.
// Cards without a manga link or a title are skipped.
func (m *Mangapill) mapSearchPage(doc *goquery.Document) []*source.SearchResult {
	var results []*source.SearchResult

	doc.Find("div.my-3.grid > div").Each(func(_ int, card *goquery.Selection) {
		href, _ := card.Find("a").First().Attr("href")
		id := strings.TrimPrefix(href, "/manga/")
		title := strings.TrimSpace(card.Find("div.leading-tight").First().Text())
		if id == "" || id == href || title == "" {
			return
		}

		result := &source.SearchResult{
			ID:     id,
			Title:  html.UnescapeString(title),
			Source: m,
		}

		if cover, ok := card.Find("img").First().Attr("data-src"); ok && cover != "" {
			result.Cover = mo.Some(cover)
		}

		// The meta row mixes type, year and publication state in look-alike
		// cells, so every cell is tried against the known state labels.
		card.Find("div.text-xs div").EachWithBreak(func(_ int, meta *goquery.Selection) bool {
			if status := source.ParseSearchStatus(meta.Text()); status.IsPresent() {
				result.Status = status
				return false
			}
			return true
		})

		results = append(results, result)
	})

	return results
}
