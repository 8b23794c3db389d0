// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"context"
	"fmt"

	"github.com/mangasan-cli/mangasan/constant"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) GetManga(ctx context.Context, id string) (*source.Manga, error) {
	return scraper.Invoke(ctx, s.invoker, func(context.Context) (*source.Manga, error) {
		// The contract hands back a table of zero or one manga;
		// an empty table means the id matched nothing.
		val, err := s.call(constant.MangaByIDFn, lua.LTTable, lua.LString(id))
		if err != nil {
			return nil, err
		}

		table := val.(*lua.LTable)

		var manga *source.Manga
		var parseErr error
		table.ForEach(func(k, v lua.LValue) {
			if manga != nil || parseErr != nil {
				return
			}
			if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
				return
			}

			manga, parseErr = mangaFromTable(v.(*lua.LTable))
		})

		if parseErr != nil {
			return nil, scraper.Malformed(s.ID(), parseErr)
		}

		if manga == nil {
			return nil, scraper.NotFound(s.ID(), fmt.Errorf("manga %q not found", id))
		}

		manga.Source = s
		return manga, nil
	})
}
