package comick

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type comickTitle struct {
	Title string `json:"title"`
}

type comickAuthor struct {
	Name string `json:"name"`
}

type comickGenre struct {
	Genre struct {
		Name string `json:"name"`
	} `json:"md_genres"`
}

// comickComic is the full series record under /api/comics/{slug}.
type comickComic struct {
	ID           int            `json:"id"`
	HID          string         `json:"hid"`
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	Desc         string         `json:"desc"`
	Status       int            `json:"status"`
	Year         int            `json:"year"`
	Thumbnail    string         `json:"default_thumbnail"`
	ChapterCount int            `json:"chapter_count"`
	MDTitles     []comickTitle  `json:"md_titles"`
	MDGenres     []comickGenre  `json:"md_comic_md_genres"`
	Authors      []comickAuthor `json:"authors"`
}

type comicResponse struct {
	Comic comickComic `json:"comic"`
}

func (c *Comick) GetManga(ctx context.Context, id string) (*source.Manga, error) {
	endpoint := fmt.Sprintf("%s/api/comics/%s", baseURL, id)

	return scraper.Invoke(ctx, c.invoker, func(ctx context.Context) (*source.Manga, error) {
		body, err := scraper.Fetch(ctx, ID, endpoint, c.headers)
		if err != nil {
			return nil, err
		}

		var resp comicResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, scraper.Malformed(ID, err)
		}

		return c.mapComic(resp.Comic)
	})
}

// mapComic converts the full API record to the canonical model.
func (c *Comick) mapComic(comic comickComic) (*source.Manga, error) {
	if comic.Slug == "" || comic.Title == "" {
		return nil, scraper.Malformed(ID, fmt.Errorf("comic record is missing slug or title"))
	}

	manga := &source.Manga{
		ID:     comic.Slug,
		Title:  comic.Title,
		Status: statusFromCode(comic.Status),
		Source: c,
		AltTitles: lo.FilterMap(comic.MDTitles, func(t comickTitle, _ int) (string, bool) {
			return t.Title, t.Title != ""
		}),
		Genres: lo.FilterMap(comic.MDGenres, func(g comickGenre, _ int) (string, bool) {
			return g.Genre.Name, g.Genre.Name != ""
		}),
		Authors: lo.FilterMap(comic.Authors, func(a comickAuthor, _ int) (string, bool) {
			return a.Name, a.Name != ""
		}),
	}

	if comic.Desc != "" {
		manga.Description = mo.Some(comic.Desc)
	}
	if comic.Thumbnail != "" {
		manga.Cover = mo.Some(comic.Thumbnail)
	}
	if comic.Year > 0 {
		manga.Year = mo.Some(comic.Year)
	}
	if comic.ChapterCount > 0 {
		manga.TotalChapters = mo.Some(comic.ChapterCount)
	}

	return manga, nil
}
