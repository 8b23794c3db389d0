// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"context"

	"github.com/mangasan-cli/mangasan/constant"
	"github.com/mangasan-cli/mangasan/scraper"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) GetChapterImages(ctx context.Context, chapterID string) ([]string, error) {
	return scraper.Invoke(ctx, s.invoker, func(context.Context) ([]string, error) {
		val, err := s.call(constant.ChapterPagesFn, lua.LTTable, lua.LString(chapterID))
		if err != nil {
			return nil, err
		}

		table := val.(*lua.LTable)
		var pages []string

		// Page order is the reading order; keep it exactly as the script returned it.
		table.ForEach(func(k, v lua.LValue) {
			if k.Type() != lua.LTNumber || v.Type() != lua.LTString {
				return
			}

			pages = append(pages, v.String())
		})

		return pages, nil
	})
}
