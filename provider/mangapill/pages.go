package mangapill

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/mangasan-cli/mangasan/scraper"
)

func (m *Mangapill) GetChapterImages(ctx context.Context, chapterID string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/chapters/%s", baseURL, chapterID)

	return scraper.Invoke(ctx, m.invoker, func(ctx context.Context) ([]string, error) {
		doc, err := m.fetchDocument(ctx, endpoint)
		if err != nil {
			return nil, err
		}

		pages := extractPages(doc)
		if len(pages) == 0 {
			return nil, scraper.Malformed(ID, fmt.Errorf("no page images on chapter %q", chapterID))
		}

		return pages, nil
	})
}

// extractPages collects the lazy-loaded reader images in document order.
// Each page is a picture element whose img carries the real URL in data-src.
func extractPages(doc *goquery.Document) []string {
	var pages []string

	doc.Find("picture img").Each(func(_ int, img *goquery.Selection) {
		url, ok := img.Attr("data-src")
		if !ok || url == "" {
			url, _ = img.Attr("src")
		}
		if url != "" {
			pages = append(pages, url)
		}
	})

	return pages
}
