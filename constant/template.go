// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Scraper Function Identifiers - these constants define the required global function signatures for Lua scraper modules.
const (
	SearchMangaFn   = "SearchManga"
	MangaByIDFn     = "MangaByID"
	MangaChaptersFn = "MangaChapters"
	ChapterPagesFn  = "ChapterPages"
)

// SourceTemplate is a Go text/template for scaffolding new Lua scraper files.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias result  { id: string, title: string, cover: string|nil, latest_chapter: number|nil, status: string|nil }
---@alias manga   { id: string, title: string, alt_titles: string[]|nil, description: string|nil, cover: string|nil, status: string|nil, genres: string[]|nil, authors: string[]|nil, year: number|nil, total_chapters: number|nil }
---@alias chapter { id: string, number: number, url: string, title: string|nil, released_at: number|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Searches the catalog with the given query.
-- @param query string Query to search for
-- @return result[] Table of search results
function {{ .SearchMangaFn }}(query)
	return {}
end


--- Gets a single manga by its id.
-- @param mangaID string ID of the manga
-- @return manga[] Table holding zero or one manga
function {{ .MangaByIDFn }}(mangaID)
	return {}
end


--- Gets the list of all manga chapters.
-- @param mangaID string ID of the manga
-- @return chapter[] Table of chapters
function {{ .MangaChaptersFn }}(mangaID)
	return {}
end


--- Gets the page image URLs of a chapter.
-- @param chapterID string ID of the chapter
-- @return string[] Table of image URLs
function {{ .ChapterPagesFn }}(chapterID)
	return {}
end

--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
