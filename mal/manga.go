// Package mal provides a client for the MyAnimeList REST API.
package mal

import "fmt"

// Manga represents a manga entry from the MyAnimeList REST API.
type Manga struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	MainPicture struct {
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"main_picture"`
	AlternativeTitles struct {
		Synonyms []string `json:"synonyms"`
		En       string   `json:"en"`
		Ja       string   `json:"ja"`
	} `json:"alternative_titles"`
	Synopsis    string  `json:"synopsis"`
	Status      string  `json:"status"`
	Genres      []Genre `json:"genres"`
	NumChapters int     `json:"num_chapters"`
	NumVolumes  int     `json:"num_volumes"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Mean        float64 `json:"mean"`
	MediaType   string  `json:"media_type"`
}

// Genre is a single genre label attached to a manga entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// URL returns the public MyAnimeList page for the manga.
func (m *Manga) URL() string {
	return fmt.Sprintf("https://myanimelist.net/manga/%d", m.ID)
}

// SearchResult encapsulates a paginated response from the MyAnimeList search endpoint.
type SearchResult struct {
	Data []struct {
		Node Manga `json:"node"`
	} `json:"data"`
}
