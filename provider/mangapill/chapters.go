package mangapill

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/lo"
)

// chapterSelector matches the anchors of the filterable chapter listing on a
// manga detail page.
const chapterSelector = "div[data-filter-list] a"

func (m *Mangapill) GetChapters(ctx context.Context, mangaID string) ([]*source.Chapter, error) {
	endpoint := fmt.Sprintf("%s/manga/%s", baseURL, mangaID)

	return scraper.Invoke(ctx, m.invoker, func(ctx context.Context) ([]*source.Chapter, error) {
		doc, err := m.fetchDocument(ctx, endpoint)
		if err != nil {
			return nil, err
		}

		return m.mapChapterList(doc, mangaID), nil
	})
}

// mapChapterList walks the chapter anchors of a detail page. The site lists
// newest first; the canonical order is ascending, so the walk is reversed.
func (m *Mangapill) mapChapterList(doc *goquery.Document, mangaID string) []*source.Chapter {
	var chapters []*source.Chapter

	doc.Find(chapterSelector).Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		id := strings.TrimPrefix(href, "/chapters/")
		if id == "" || id == href {
			return
		}

		chapters = append(chapters, &source.Chapter{
			ID:      id,
			MangaID: mangaID,
			Number:  numberFromLabel(strings.TrimSpace(anchor.Text()), href),
			URL:     baseURL + href,
		})
	})

	return lo.Reverse(chapters)
}

var chapterNumberPattern = regexp.MustCompile(`(?i)chapter[\s-]*(\d+(?:\.\d+)?)`)

// numberFromLabel digs the chapter number out of the anchor text, falling
// back to the href slug. Unnumbered specials become chapter 0.
func numberFromLabel(label, href string) float64 {
	for _, candidate := range []string{label, href} {
		match := chapterNumberPattern.FindStringSubmatch(candidate)
		if match == nil {
			continue
		}

		if parsed, err := strconv.ParseFloat(match[1], 64); err == nil && parsed >= 0 {
			return parsed
		}
	}

	return 0
}
