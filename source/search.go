// Package source defines the domain models and interfaces for manga discovery and retrieval.
package source

import "github.com/samber/mo"

// SearchResult is a lightweight summary of a manga entry as returned by a
// provider search. The complete record is fetched separately with GetManga.
type SearchResult struct {
	// Source-scoped identifier. Opaque outside the provider that produced it.
	ID string `json:"id"`
	// Primary display title.
	Title string `json:"title"`
	// Cover image URL.
	Cover mo.Option[string] `json:"cover"`
	// Number of the most recently released chapter.
	LatestChapter mo.Option[float64] `json:"latestChapter"`
	// Publication state. Search listings only distinguish ongoing from
	// completed; any other upstream label is absent here.
	Status mo.Option[Status] `json:"status"`

	Source Source `json:"-"`
}

// String returns the canonical string representation of the search result.
func (r *SearchResult) String() string {
	return r.Title
}
