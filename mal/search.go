// Package mal provides a client for the MyAnimeList REST API.
package mal

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// mangaFields lists the record fields requested from the API. Without an
// explicit list MyAnimeList returns id, title and the picture only.
const mangaFields = "alternative_titles,synopsis,status,genres,num_chapters,num_volumes,start_date,end_date,mean,media_type"

// SearchManga executes a search for manga titles on the MyAnimeList service.
func SearchManga(query string) ([]Manga, error) {
	u, _ := url.Parse(apiEndpoint + "/manga")
	q := u.Query()
	q.Set("q", query)
	q.Set("limit", "5")
	q.Set("fields", mangaFields)
	u.RawQuery = q.Encode()

	resp, err := authenticatedRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("mal search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("mal search error: status %d", resp.StatusCode)
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("mal search decode: %w", err)
	}

	mangas := make([]Manga, 0, len(result.Data))
	for _, node := range result.Data {
		mangas = append(mangas, node.Node)
	}
	return mangas, nil
}

// GetByID retrieves a single manga record by its MyAnimeList identifier.
func GetByID(id int) (*Manga, error) {
	if manga, ok := idCacher.Get(id).Get(); ok {
		return manga, nil
	}

	u, _ := url.Parse(apiEndpoint + "/manga/" + strconv.Itoa(id))
	q := u.Query()
	q.Set("fields", mangaFields)
	u.RawQuery = q.Encode()

	resp, err := authenticatedRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("mal get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("mal get error: status %d", resp.StatusCode)
	}

	var manga Manga
	if err := json.NewDecoder(resp.Body).Decode(&manga); err != nil {
		return nil, fmt.Errorf("mal get decode: %w", err)
	}

	_ = idCacher.Set(manga.ID, &manga)
	return &manga, nil
}
