// Package source defines the domain models and interfaces for manga discovery and retrieval.
package source

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/mangasan-cli/mangasan/anilist"
	"github.com/mangasan-cli/mangasan/key"
	"github.com/mangasan-cli/mangasan/log"
	"github.com/mangasan-cli/mangasan/mal"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Manga is the complete record of a single entry as exposed by a provider.
// Every field is mapped from the upstream payload; optional fields stay absent
// rather than taking a made-up default.
type Manga struct {
	// Source-scoped identifier. Opaque outside the provider that produced it.
	ID string `json:"id"`
	// Primary display title.
	Title string `json:"title"`
	// Alternative titles and synonyms.
	AltTitles []string `json:"altTitles"`
	// Long-form synopsis.
	Description mo.Option[string] `json:"description"`
	// Cover image URL.
	Cover mo.Option[string] `json:"cover"`
	// Publication state.
	Status Status `json:"status"`
	// Genre labels as reported upstream.
	Genres []string `json:"genres"`
	// Credited authors.
	Authors []string `json:"authors"`
	// Year of first publication.
	Year mo.Option[int] `json:"year"`
	// Total chapter count, when the provider reports one.
	TotalChapters mo.Option[int] `json:"totalChapters"`

	Source Source `json:"-"`

	// Chapters associated with this manga.
	// Populated only when necessary.
	Chapters []*Chapter `json:"chapters,omitempty"`

	// Anilist integration
	Anilist  mo.Option[*anilist.Manga] `json:"anilist"`
	Metadata Metadata                  `json:"metadata"`

	populated bool
}

type Metadata struct {
	Genres      []string `json:"genres"`
	Summary     string   `json:"summary"`
	Staff       Staff    `json:"staff"`
	Cover       Cover    `json:"cover"`
	BannerImage string   `json:"bannerImage"`
	Tags        []string `json:"tags"`
	Characters  []string `json:"characters"`
	Status      string   `json:"status"`
	StartDate   Date     `json:"startDate"`
	EndDate     Date     `json:"endDate"`
	Synonyms    []string `json:"synonyms"`
	Chapters    int      `json:"chapters"`
	Volumes     int      `json:"volumes"`
	URLs        []string `json:"urls"`
	Score       int      `json:"score"`
	Title       string   `json:"title"` // Preferred title (English/Romaji)
}

type Staff struct {
	Story       []string `json:"story"`
	Art         []string `json:"art"`
	Translation []string `json:"translation"`
	Lettering   []string `json:"lettering"`
}

type Cover struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
	Medium     string `json:"medium"`
	Color      string `json:"color"`
}

func (m *Manga) String() string {
	return m.Title
}

// GetCover returns the best available cover image URL. The provider's own
// cover wins; Anilist metadata fills in when the provider reported none.
func (m *Manga) GetCover() (string, error) {
	if cover, ok := m.Cover.Get(); ok && cover != "" {
		return cover, nil
	}
	if m.Metadata.Cover.ExtraLarge != "" {
		return m.Metadata.Cover.ExtraLarge, nil
	}
	if m.Metadata.Cover.Large != "" {
		return m.Metadata.Cover.Large, nil
	}
	if m.Metadata.Cover.Medium != "" {
		return m.Metadata.Cover.Medium, nil
	}
	return "", fmt.Errorf("no cover found")
}

// BindWithAnilist synchronizes the local manga entity with Anilist service metadata.
func (m *Manga) BindWithAnilist() error {
	if m.Anilist.IsPresent() {
		return nil
	}

	log.Infof("binding %s with anilist", m.Title)
	al, err := anilist.FindClosest(m.Title)
	if err != nil {
		log.Error(err)
		return err
	}

	m.Anilist = mo.Some(al)
	return nil
}

// PopulateMetadata retrieves and assigns extended metadata fields for the manga entity.
// Anilist is the primary metadata provider; MyAnimeList covers the titles it misses.
// The canonical fields mapped from the provider are left untouched.
func (m *Manga) PopulateMetadata(progress func(string)) error {
	if m.populated {
		return nil
	}
	m.populated = true

	progress("Fetching metadata from anilist")
	log.Infof("Populating metadata for %s", m.Title)

	if err := m.BindWithAnilist(); err == nil {
		if al, ok := m.Anilist.Get(); ok && al != nil {
			m.copyAnilistMetadata(al)
			return nil
		}
	}

	progress("Fetching metadata from myanimelist")
	malManga, err := mal.FindClosest(m.Title)
	if err != nil {
		progress("Failed to fetch metadata")
		return fmt.Errorf("manga '%s' not found on Anilist or MyAnimeList", m.Title)
	}

	m.copyMalMetadata(malManga)
	return nil
}

func (m *Manga) copyAnilistMetadata(al *anilist.Manga) {
	m.Metadata.Title = al.Name()
	m.Metadata.Genres = al.Genres

	// Clean summary (remove HTML tags)
	summary := strings.ReplaceAll(al.Description, "<br>", "\n")
	re := regexp.MustCompile("<.*?>")
	m.Metadata.Summary = re.ReplaceAllString(summary, "")

	m.Metadata.Characters = make([]string, len(al.Characters.Nodes))
	for i, n := range al.Characters.Nodes {
		m.Metadata.Characters[i] = n.Name.Full
	}

	for _, tag := range al.Tags {
		if tag.Rank >= viper.GetInt(key.MetadataTagRelevanceThreshold) {
			m.Metadata.Tags = append(m.Metadata.Tags, tag.Name)
		}
	}

	m.Metadata.Cover.ExtraLarge = al.CoverImage.ExtraLarge
	m.Metadata.Cover.Large = al.CoverImage.Large
	m.Metadata.Cover.Medium = al.CoverImage.Medium
	m.Metadata.Cover.Color = al.CoverImage.Color
	m.Metadata.BannerImage = al.BannerImage

	m.Metadata.StartDate = Date(al.StartDate)
	m.Metadata.EndDate = Date(al.EndDate)
	m.Metadata.Status = strings.ReplaceAll(al.Status, "_", " ")
	m.Metadata.Synonyms = al.Synonyms
	m.Metadata.Chapters = al.Chapters
	m.Metadata.Volumes = al.Volumes
	m.Metadata.Score = al.AverageScore

	for _, staff := range al.Staff.Edges {
		role := strings.ToLower(staff.Role)
		name := staff.Node.Name.Full
		if strings.Contains(role, "story") {
			m.Metadata.Staff.Story = append(m.Metadata.Staff.Story, name)
		}
		if strings.Contains(role, "art") {
			m.Metadata.Staff.Art = append(m.Metadata.Staff.Art, name)
		}
		if strings.Contains(role, "translator") {
			m.Metadata.Staff.Translation = append(m.Metadata.Staff.Translation, name)
		}
		if strings.Contains(role, "lettering") {
			m.Metadata.Staff.Lettering = append(m.Metadata.Staff.Lettering, name)
		}
	}

	urls := []string{al.SiteURL}
	for _, e := range al.External {
		urls = append(urls, e.URL)
	}
	urls = append(urls, fmt.Sprintf("https://myanimelist.net/manga/%d", al.IDMal))
	m.Metadata.URLs = lo.Filter(urls, func(u string, _ int) bool { return u != "" })
}

func (m *Manga) copyMalMetadata(mm *mal.Manga) {
	m.Metadata.Title = mm.Title
	m.Metadata.Genres = lo.Map(mm.Genres, func(g mal.Genre, _ int) string {
		return g.Name
	})
	m.Metadata.Summary = strings.TrimSpace(mm.Synopsis)

	m.Metadata.Cover.Large = mm.MainPicture.Large
	m.Metadata.Cover.Medium = mm.MainPicture.Medium

	m.Metadata.StartDate = parseMalDate(mm.StartDate)
	m.Metadata.EndDate = parseMalDate(mm.EndDate)
	m.Metadata.Status = strings.ReplaceAll(mm.Status, "_", " ")

	synonyms := mm.AlternativeTitles.Synonyms
	for _, alt := range []string{mm.AlternativeTitles.En, mm.AlternativeTitles.Ja} {
		if alt != "" && alt != mm.Title {
			synonyms = append(synonyms, alt)
		}
	}
	m.Metadata.Synonyms = synonyms

	m.Metadata.Chapters = mm.NumChapters
	m.Metadata.Volumes = mm.NumVolumes
	// MAL scores run 0 to 10, the metadata scale is 0 to 100.
	m.Metadata.Score = int(math.Round(mm.Mean * 10))
	m.Metadata.URLs = []string{mm.URL()}
}

// parseMalDate handles the three layouts the API emits: full date, year-month
// and bare year.
func parseMalDate(s string) (d Date) {
	for i, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		d.Year = t.Year()
		if i < 2 {
			d.Month = int(t.Month())
		}
		if i < 1 {
			d.Day = t.Day()
		}
		return d
	}

	return d
}
