// Package source defines the domain models and interfaces for manga discovery and retrieval.
package source

import "context"

// Source defines the required capabilities for a manga provider scraping engine.
//
// Implementations hold no scraped state between calls: every operation reflects
// the upstream catalog at the moment it is made. Identifiers are opaque and only
// meaningful to the source that produced them.
type Source interface {
	// Name returns the human-readable name of the scraping provider.
	Name() string

	// ID returns the unique identifier of the source.
	ID() string

	// Search executes a query against the provider to discover matching manga entries.
	// A query with no matches yields an empty list, not an error.
	Search(ctx context.Context, query string) ([]*SearchResult, error)

	// GetManga retrieves the complete record for a single manga entry.
	GetManga(ctx context.Context, id string) (*Manga, error)

	// GetChapters retrieves the full chapter list for a specific manga entry.
	GetChapters(ctx context.Context, mangaID string) ([]*Chapter, error)

	// GetChapterImages retrieves the ordered page image URLs for a specific chapter.
	GetChapterImages(ctx context.Context, chapterID string) ([]string, error)
}
