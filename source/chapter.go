// Package source defines the domain models and interfaces for manga discovery and retrieval.
package source

import (
	"strconv"
	"time"

	"github.com/samber/mo"
)

// Chapter represents a single released chapter of a manga.
type Chapter struct {
	// Source-scoped identifier. Opaque outside the provider that produced it.
	ID string `json:"id"`
	// Identifier of the manga this chapter belongs to.
	MangaID string `json:"mangaId"`
	// Chapter number. Fractional numbers (e.g. 5.5) are common for extras
	// and omakes; zero is a valid number for prologues.
	Number float64 `json:"number"`
	// Chapter title, when the provider reports one.
	Title mo.Option[string] `json:"title"`
	// Release timestamp.
	ReleasedAt mo.Option[time.Time] `json:"releasedAt"`
	// Direct URL to the chapter page.
	URL string `json:"url"`

	// Pages associated with this chapter, as ordered image URLs.
	// Populated only when necessary.
	Pages []string `json:"pages,omitempty"`
}

// String returns the canonical display label of the chapter.
func (c *Chapter) String() string {
	label := "Chapter " + FormatChapterNumber(c.Number)
	if title, ok := c.Title.Get(); ok && title != "" {
		label += ": " + title
	}
	return label
}

// FormatChapterNumber renders a chapter number without a trailing fraction
// when it is whole, e.g. 12 instead of 12.0, but 5.5 stays 5.5.
func FormatChapterNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
