// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mangasan-cli/mangasan/source"
	"github.com/mangasan-cli/mangasan/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	MangaPicker    func([]*source.SearchResult) *source.SearchResult
	ChaptersFilter func([]*source.Chapter) ([]*source.Chapter, error)
)

type Options struct {
	Out                 io.Writer
	Sources             []source.Source
	IncludeAnilistManga bool
	Json                bool
	Query               string
	MangaPicker         mo.Option[MangaPicker]
	ChaptersFilter      mo.Option[ChaptersFilter]
	Pages               bool
}

func ParseMangaPicker(kind, value string) (MangaPicker, error) {
	switch kind {
	case "first":
		return func(results []*source.SearchResult) *source.SearchResult {
			if len(results) == 0 {
				return nil
			}
			return results[0]
		}, nil
	case "last":
		return func(results []*source.SearchResult) *source.SearchResult {
			if len(results) == 0 {
				return nil
			}
			return results[len(results)-1]
		}, nil
	case "exact":
		return func(results []*source.SearchResult) *source.SearchResult {
			for _, r := range results {
				if r.Title == value {
					return r
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(results []*source.SearchResult) *source.SearchResult {
			if len(results) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(results)-1))
			return results[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseChaptersFilter parses a string description of a chapter filter.
// Format: "first", "last", "all", a range "1-5", a substring "@text@" or a
// single index "5". Ranges and indexes address positions in the chapter
// list, not chapter numbers, since numbers are neither unique nor contiguous.
func ParseChaptersFilter(description string) (ChaptersFilter, error) {
	if description == "first" {
		return func(chapters []*source.Chapter) ([]*source.Chapter, error) {
			if len(chapters) == 0 {
				return chapters, nil
			}
			return chapters[:1], nil
		}, nil
	}
	if description == "last" {
		return func(chapters []*source.Chapter) ([]*source.Chapter, error) {
			if len(chapters) == 0 {
				return chapters, nil
			}
			return chapters[len(chapters)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(chapters []*source.Chapter) ([]*source.Chapter, error) {
			return chapters, nil
		}, nil
	}

	// Range: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(chapters []*source.Chapter) ([]*source.Chapter, error) {
					start := util.Min(from, uint64(len(chapters)))
					end := util.Min(to+1, uint64(len(chapters)))
					if start > end {
						return []*source.Chapter{}, nil
					}
					return chapters[start:end], nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if len(description) >= 2 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(chapters []*source.Chapter) ([]*source.Chapter, error) {
			return lo.Filter(chapters, func(c *source.Chapter, _ int) bool {
				return strings.Contains(strings.ToLower(c.String()), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(chapters []*source.Chapter) ([]*source.Chapter, error) {
			if uint64(len(chapters)) <= idx {
				return []*source.Chapter{}, nil
			}
			return []*source.Chapter{chapters[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid chapter filter: %s", description)
}
