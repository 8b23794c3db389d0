package mangapill

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/mo"
)

func (m *Mangapill) GetManga(ctx context.Context, id string) (*source.Manga, error) {
	endpoint := fmt.Sprintf("%s/manga/%s", baseURL, id)

	return scraper.Invoke(ctx, m.invoker, func(ctx context.Context) (*source.Manga, error) {
		doc, err := m.fetchDocument(ctx, endpoint)
		if err != nil {
			return nil, err
		}

		return m.mapDetail(doc, id)
	})
}

// mapDetail converts a manga detail page into the canonical record. The page
// carries the native title right under the heading, the synopsis in a
// secondary paragraph and a label/value info grid for year and status.
func (m *Mangapill) mapDetail(doc *goquery.Document, id string) (*source.Manga, error) {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		return nil, scraper.Malformed(ID, fmt.Errorf("detail page for %q has no title", id))
	}

	manga := &source.Manga{
		ID:     id,
		Title:  html.UnescapeString(title),
		Status: source.StatusOngoing,
		Source: m,
	}

	if alt := strings.TrimSpace(doc.Find("div.text-sm.text--secondary").First().Text()); alt != "" {
		manga.AltTitles = []string{html.UnescapeString(alt)}
	}

	if desc := strings.TrimSpace(doc.Find("p.text-sm.text--secondary").First().Text()); desc != "" {
		manga.Description = mo.Some(html.UnescapeString(desc))
	}

	if cover, ok := doc.Find("div.text-transparent img").First().Attr("data-src"); ok && cover != "" {
		manga.Cover = mo.Some(cover)
	}

	doc.Find("div.grid h5").Each(func(_ int, label *goquery.Selection) {
		value := strings.TrimSpace(label.Parent().Find("div").First().Text())
		if value == "" {
			return
		}

		switch strings.ToLower(strings.TrimSpace(label.Text())) {
		case "status":
			manga.Status = source.ParseStatus(value)
		case "year":
			if year, err := strconv.Atoi(value); err == nil && year > 0 {
				manga.Year = mo.Some(year)
			}
		}
	})

	doc.Find(`a[href*="genre="]`).Each(func(_ int, genre *goquery.Selection) {
		if name := strings.TrimSpace(genre.Text()); name != "" {
			manga.Genres = append(manga.Genres, name)
		}
	})

	// The detail page lists every chapter, so the count is exact.
	if n := doc.Find(chapterSelector).Length(); n > 0 {
		manga.TotalChapters = mo.Some(n)
	}

	return manga, nil
}
