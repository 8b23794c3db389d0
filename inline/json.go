// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/mangasan-cli/mangasan/anilist"
	"github.com/mangasan-cli/mangasan/source"
)

type Manga struct {
	// Source is the name of the provider.
	Source string `json:"source"`
	// Manga is the record from the source.
	Manga *source.Manga `json:"manga"`
	// Anilist is the matched Anilist entry (optional).
	Anilist *anilist.Manga `json:"anilist,omitempty"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Manga `json:"result"`
}

func asJson(mangas []*source.Manga, query string, includeAnilist bool) ([]byte, error) {
	var result = make([]*Manga, len(mangas))
	for i, m := range mangas {
		var al *anilist.Manga
		if includeAnilist {
			al = m.Anilist.OrElse(nil)
		}

		result[i] = &Manga{
			Source:  m.Source.Name(),
			Manga:   m,
			Anilist: al,
		}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: result,
	})
}
