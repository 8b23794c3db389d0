// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"context"

	"github.com/mangasan-cli/mangasan/constant"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	return scraper.Invoke(ctx, s.invoker, func(context.Context) ([]*source.SearchResult, error) {
		val, err := s.call(constant.SearchMangaFn, lua.LTTable, lua.LString(query))
		if err != nil {
			return nil, err
		}

		table := val.(*lua.LTable)
		var results []*source.SearchResult

		var errs []error
		table.ForEach(func(k, v lua.LValue) {
			if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
				return // Skip invalid entries
			}

			result, err := searchResultFromTable(v.(*lua.LTable))
			if err != nil {
				errs = append(errs, err)
				return
			}

			result.Source = s
			results = append(results, result)
		})

		if len(results) == 0 && len(errs) > 0 {
			return nil, scraper.Malformed(s.ID(), errs[0])
		}

		return results, nil
	})
}
