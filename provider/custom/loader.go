// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"fmt"

	"github.com/mangasan-cli/mangasan/constant"
	"github.com/mangasan-cli/mangasan/internal/luacache"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/mangasan-cli/mangasan/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName generates a canonical provider identifier for a given Lua script basename.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadSource initializes a new source.Source instance by executing and validating a Lua scraper script.
func LoadSource(path string) (source.Source, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state) // Injected from tls.go

	// Load and compile the Lua script (using cache if available).
	err := luacache.PreCompileAndLoad(state, path)
	if err != nil {
		return nil, err
	}

	name := util.FileStem(path)

	// Validation
	required := []string{
		constant.SearchMangaFn,
		constant.MangaByIDFn,
		constant.MangaChaptersFn,
		constant.ChapterPagesFn,
	}

	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaSource(name, state)
}
