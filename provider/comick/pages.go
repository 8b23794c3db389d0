package comick

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mangasan-cli/mangasan/scraper"
)

// pageImagePattern matches CDN image URLs of the form
// {cdn}/{slug}/0_{chap}/en/{hash}/{index}.webp as they appear in the
// reader page's bootstrap JSON.
var pageImagePattern = regexp.MustCompile(`https://cdn1\.comicknew\.pictures/[A-Za-z0-9._~/-]+/\d+\.(?:webp|png|jpe?g)`)

func (c *Comick) GetChapterImages(ctx context.Context, chapterID string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/comic/%s", baseURL, chapterID)

	return scraper.Invoke(ctx, c.invoker, func(ctx context.Context) ([]string, error) {
		body, err := scraper.Fetch(ctx, ID, endpoint, pageHeaders(c.headers))
		if err != nil {
			return nil, err
		}

		pages := extractPageImages(body)
		if len(pages) == 0 {
			return nil, scraper.Malformed(ID, fmt.Errorf("no page images found in chapter %s", chapterID))
		}

		return pages, nil
	})
}

// extractPageImages pulls the CDN image URLs out of the reader page. The
// reader inlines them into its bootstrap JSON with escaped slashes and
// repeats each URL between the preload list and the gallery; first
// occurrence order is the reading order.
func extractPageImages(body []byte) []string {
	normalized := strings.ReplaceAll(string(body), `\/`, "/")

	seen := make(map[string]struct{})
	var pages []string
	for _, match := range pageImagePattern.FindAllString(normalized, -1) {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		pages = append(pages, match)
	}

	return pages
}
