package comick

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/mo"
)

// comickChapter is a single chapter row in the chapter-list payload.
type comickChapter struct {
	ID        int    `json:"id"`
	HID       string `json:"hid"`
	Chap      string `json:"chap"`
	Title     string `json:"title"`
	Lang      string `json:"lang"`
	CreatedAt string `json:"created_at"`
}

type chapterListResponse struct {
	Data []comickChapter `json:"data"`
}

// chapterPageLimit bounds list pagination. Nothing legitimate has more.
const chapterPageLimit = 100

func (c *Comick) GetChapters(ctx context.Context, mangaID string) ([]*source.Chapter, error) {
	var chapters []*source.Chapter

	// Each page goes through the pipeline as its own request, so pagination
	// respects the rate limit like everything else.
	for page := 0; page <= chapterPageLimit; page++ {
		endpoint := fmt.Sprintf("%s/api/comics/%s/chapter-list", baseURL, mangaID)
		if page > 0 {
			endpoint = fmt.Sprintf("%s?page=%d", endpoint, page)
		}

		batch, err := scraper.Invoke(ctx, c.invoker, func(ctx context.Context) ([]comickChapter, error) {
			body, err := scraper.Fetch(ctx, ID, endpoint, c.headers)
			if err != nil {
				return nil, err
			}

			var resp chapterListResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, scraper.Malformed(ID, err)
			}

			return resp.Data, nil
		})
		if err != nil {
			// The list endpoint 404s past the last page.
			if page > 0 && scraper.IsKind(err, scraper.KindNotFound) {
				break
			}
			return nil, err
		}

		if len(batch) == 0 {
			break
		}

		// Upstream order is kept verbatim, duplicate numbers included;
		// only translations other than English are dropped.
		for _, ch := range batch {
			if ch.Lang != "en" {
				continue
			}
			chapters = append(chapters, mapChapter(c, mangaID, ch))
		}
	}

	return chapters, nil
}

func mapChapter(c *Comick, mangaID string, ch comickChapter) *source.Chapter {
	pagePath := fmt.Sprintf("%s/%s-chapter-%s-en", mangaID, ch.HID, ch.Chap)

	chapter := &source.Chapter{
		ID:      pagePath,
		MangaID: mangaID,
		Number:  numberFromChap(ch.Chap),
		URL:     fmt.Sprintf("%s/comic/%s", baseURL, pagePath),
	}

	if ch.Title != "" {
		chapter.Title = mo.Some(ch.Title)
	}
	if ts, err := time.Parse(time.RFC3339, ch.CreatedAt); err == nil {
		chapter.ReleasedAt = mo.Some(ts.UTC())
	}

	return chapter
}

// numberFromChap parses ComicK's chapter label, a bare decimal in a string.
func numberFromChap(chap string) float64 {
	parsed, err := strconv.ParseFloat(chap, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
