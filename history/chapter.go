package history

import (
	"fmt"

	"github.com/mangasan-cli/mangasan/source"
)

// SavedChapter represents a single reading entry preserved in the user's history.
type SavedChapter struct {
	SourceID           string  `json:"source_id"`
	MangaTitle         string  `json:"manga_title"`
	MangaID            string  `json:"manga_id"`
	MangaChaptersTotal int     `json:"manga_chapters_total"`
	Title              string  `json:"title"`
	Number             float64 `json:"number"`
	URL                string  `json:"url"`
	ID                 string  `json:"id"`
	Index              int     `json:"index"`
}

func (s *SavedChapter) encode() string {
	return fmt.Sprintf("%s (%s)", s.MangaTitle, s.SourceID)
}

func (s *SavedChapter) String() string {
	return fmt.Sprintf("%s : Chapter %s", s.MangaTitle, source.FormatChapterNumber(s.Number))
}

func newSavedChapter(manga *source.Manga, chapter *source.Chapter, index int) *SavedChapter {
	return &SavedChapter{
		SourceID:           manga.Source.ID(),
		MangaTitle:         manga.Title,
		MangaID:            manga.ID,
		MangaChaptersTotal: len(manga.Chapters),
		Title:              chapter.Title.OrElse(""),
		Number:             chapter.Number,
		URL:                chapter.URL,
		ID:                 chapter.ID,
		Index:              index,
	}
}
