package comick

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/mo"
)

// comickEntry is a single series row in search and listing payloads.
type comickEntry struct {
	ID          int     `json:"id"`
	HID         string  `json:"hid"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Thumbnail   string  `json:"default_thumbnail"`
	Status      int     `json:"status"`
	LastChapter float64 `json:"last_chapter"`
}

type searchResponse struct {
	CurrentPage int           `json:"current_page"`
	Data        []comickEntry `json:"data"`
	LastPage    int           `json:"last_page"`
}

func (c *Comick) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/api/search?q=%s&page=1", baseURL, url.QueryEscape(query))

	return scraper.Invoke(ctx, c.invoker, func(ctx context.Context) ([]*source.SearchResult, error) {
		body, err := scraper.Fetch(ctx, ID, endpoint, c.headers)
		if err != nil {
			return nil, err
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, scraper.Malformed(ID, err)
		}

		return c.mapEntries(resp.Data), nil
	})
}

// mapEntries converts API rows to canonical search results, skipping rows
// without a usable identifier.
func (c *Comick) mapEntries(entries []comickEntry) []*source.SearchResult {
	var results []*source.SearchResult
	for _, entry := range entries {
		if entry.Slug == "" || entry.Title == "" {
			continue
		}

		result := &source.SearchResult{
			ID:     entry.Slug,
			Title:  entry.Title,
			Status: searchStatusFromCode(entry.Status),
			Source: c,
		}
		if entry.Thumbnail != "" {
			result.Cover = mo.Some(entry.Thumbnail)
		}
		if entry.LastChapter > 0 {
			result.LatestChapter = mo.Some(entry.LastChapter)
		}

		results = append(results, result)
	}
	return results
}
