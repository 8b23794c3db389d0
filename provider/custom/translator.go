// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

// Helper to get string from table with default
func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// Helper to get string list from table (comma-separated or table)
func getStringList(table *lua.LTable, key string) []string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return lo.Map(strings.Split(val.String(), ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
	}
	if val.Type() == lua.LTTable {
		var list []string
		val.(*lua.LTable).ForEach(func(_, v lua.LValue) {
			if v.Type() == lua.LTString {
				list = append(list, v.String())
			}
		})
		return list
	}
	return nil
}

// Helper to get a number from table. Numeric strings are accepted too,
// scripts are sloppy about that.
func getNumber(table *lua.LTable, key string) mo.Option[float64] {
	val := table.RawGetString(key)
	switch val.Type() {
	case lua.LTNumber:
		return mo.Some(float64(val.(lua.LNumber)))
	case lua.LTString:
		if parsed, err := strconv.ParseFloat(val.String(), 64); err == nil {
			return mo.Some(parsed)
		}
	}
	return mo.None[float64]()
}

// Helper to get an optional string from table; empty means absent.
func getOptString(table *lua.LTable, key string) mo.Option[string] {
	if s := getString(table, key); s != "" {
		return mo.Some(s)
	}
	return mo.None[string]()
}

func searchResultFromTable(table *lua.LTable) (*source.SearchResult, error) {
	id := getString(table, "id")
	title := getString(table, "title")

	if id == "" || title == "" {
		return nil, fmt.Errorf("search result must have id and title")
	}

	return &source.SearchResult{
		ID:            id,
		Title:         title,
		Cover:         getOptString(table, "cover"),
		LatestChapter: getNumber(table, "latest_chapter"),
		Status:        source.ParseSearchStatus(getString(table, "status")),
	}, nil
}

func mangaFromTable(table *lua.LTable) (*source.Manga, error) {
	id := getString(table, "id")
	title := getString(table, "title")

	if id == "" || title == "" {
		return nil, fmt.Errorf("manga must have id and title")
	}

	manga := &source.Manga{
		ID:          id,
		Title:       title,
		AltTitles:   getStringList(table, "alt_titles"),
		Description: getOptString(table, "description"),
		Cover:       getOptString(table, "cover"),
		Status:      source.ParseStatus(getString(table, "status")),
		Genres:      getStringList(table, "genres"),
		Authors:     getStringList(table, "authors"),
	}

	if year, ok := getNumber(table, "year").Get(); ok {
		manga.Year = mo.Some(int(year))
	}
	if total, ok := getNumber(table, "total_chapters").Get(); ok {
		manga.TotalChapters = mo.Some(int(total))
	}

	return manga, nil
}

func chapterFromTable(table *lua.LTable, mangaID string) (*source.Chapter, error) {
	id := getString(table, "id")
	url := getString(table, "url")

	if id == "" || url == "" {
		return nil, fmt.Errorf("chapter must have id and url")
	}

	chapter := &source.Chapter{
		ID:      id,
		MangaID: mangaID,
		URL:     url,
		Title:   getOptString(table, "title"),
	}

	if number, ok := getNumber(table, "number").Get(); ok && number >= 0 {
		chapter.Number = number
	} else if title, ok := chapter.Title.Get(); ok {
		// Scripts that omit the number usually bake it into the title,
		// e.g. "Chapter 25.5 - The Beach".
		chapter.Number = numberFromLabel(title)
	}

	if released, ok := getNumber(table, "released_at").Get(); ok {
		chapter.ReleasedAt = mo.Some(time.Unix(int64(released), 0).UTC())
	}

	return chapter, nil
}

var numberPattern = regexp.MustCompile(`(\d+(\.\d+)?)`)

// numberFromLabel extracts the first numeric token of a chapter label.
// Returns zero when the label carries no number at all.
func numberFromLabel(label string) float64 {
	match := numberPattern.FindString(label)
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}
