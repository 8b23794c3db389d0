// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"context"

	"github.com/mangasan-cli/mangasan/constant"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) GetChapters(ctx context.Context, mangaID string) ([]*source.Chapter, error) {
	return scraper.Invoke(ctx, s.invoker, func(context.Context) ([]*source.Chapter, error) {
		val, err := s.call(constant.MangaChaptersFn, lua.LTTable, lua.LString(mangaID))
		if err != nil {
			return nil, err
		}

		table := val.(*lua.LTable)
		var chapters []*source.Chapter
		var errs []error

		// Chapters come back in the script's order, duplicates included.
		// Ordering and dedup judgements belong to the caller.
		table.ForEach(func(k, v lua.LValue) {
			if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
				return
			}

			chapter, err := chapterFromTable(v.(*lua.LTable), mangaID)
			if err != nil {
				errs = append(errs, err)
				return
			}

			chapters = append(chapters, chapter)
		})

		if len(chapters) == 0 && len(errs) > 0 {
			return nil, scraper.Malformed(s.ID(), errs[0])
		}

		return chapters, nil
	})
}
