package custom

import (
	"context"
	"errors"
	"testing"

	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

const testScript = `
function SearchManga(query)
	if query == "zzz-no-such-manga-zzz" then
		return {}
	end
	return {
		{ id = "1", title = "Solo Camping", cover = "https://x/c.jpg", latest_chapter = 12.5, status = "ongoing" },
		{ id = "2", title = "Solo Hiking", status = "hiatus" },
	}
end

function MangaByID(mangaID)
	if mangaID ~= "1" then
		return {}
	end
	return {
		{
			id = "1",
			title = "Solo Camping",
			description = "Tents.",
			status = "finished",
			genres = { "Slice of Life" },
			authors = "A, B",
			year = 2019,
			total_chapters = 40,
		},
	}
end

function MangaChapters(mangaID)
	return {
		{ id = "c1", number = 1, url = "https://x/1", title = "First" },
		{ id = "c2", number = 5.5, url = "https://x/5.5", released_at = 1700000000 },
	}
end

function ChapterPages(chapterID)
	return { "https://x/p/1.webp", "https://x/p/2.webp" }
end
`

func newTestSource() (*luaSource, func()) {
	state := lua.NewState()
	if err := state.DoString(testScript); err != nil {
		panic(err)
	}

	s, err := newLuaSource("testscript", state)
	if err != nil {
		panic(err)
	}

	return s, state.Close
}

func TestLuaSource(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded Lua source", t, func() {
		s, closeState := newTestSource()
		defer closeState()

		Convey("Its identity comes from the script basename", func() {
			So(s.Name(), ShouldEqual, "testscript")
			So(s.ID(), ShouldEqual, "testscript custom")
		})

		Convey("Search maps every well-formed entry", func() {
			results, err := s.Search(ctx, "solo")
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)

			So(results[0].ID, ShouldEqual, "1")
			So(results[0].Title, ShouldEqual, "Solo Camping")
			So(results[0].Cover.MustGet(), ShouldEqual, "https://x/c.jpg")
			So(results[0].LatestChapter.MustGet(), ShouldEqual, 12.5)
			So(results[0].Status.MustGet(), ShouldEqual, source.StatusOngoing)
			So(results[0].Source.Name(), ShouldEqual, s.Name())

			// hiatus is outside the search status set
			So(results[1].Status.IsAbsent(), ShouldBeTrue)
		})

		Convey("Search with no matches yields an empty list, not an error", func() {
			results, err := s.Search(ctx, "zzz-no-such-manga-zzz")
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})

		Convey("GetManga maps the complete record", func() {
			manga, err := s.GetManga(ctx, "1")
			So(err, ShouldBeNil)
			So(manga.Title, ShouldEqual, "Solo Camping")
			So(manga.Description.MustGet(), ShouldEqual, "Tents.")
			So(manga.Status, ShouldEqual, source.StatusCompleted)
			So(manga.Genres, ShouldResemble, []string{"Slice of Life"})
			So(manga.Authors, ShouldResemble, []string{"A", "B"})
			So(manga.Year.MustGet(), ShouldEqual, 2019)
			So(manga.TotalChapters.MustGet(), ShouldEqual, 40)
			So(manga.Source.ID(), ShouldEqual, s.ID())
		})

		Convey("GetManga reports a missing id as not-found", func() {
			_, err := s.GetManga(ctx, "does-not-exist")
			So(err, ShouldNotBeNil)

			var scrapeErr *scraper.Error
			So(errors.As(err, &scrapeErr), ShouldBeTrue)
			So(scrapeErr.Kind, ShouldEqual, scraper.KindNotFound)
		})

		Convey("GetChapters preserves the script's order", func() {
			chapters, err := s.GetChapters(ctx, "1")
			So(err, ShouldBeNil)
			So(chapters, ShouldHaveLength, 2)
			So(chapters[0].Number, ShouldEqual, 1)
			So(chapters[1].Number, ShouldEqual, 5.5)
			So(chapters[0].MangaID, ShouldEqual, "1")
			So(chapters[1].ReleasedAt.IsPresent(), ShouldBeTrue)
		})

		Convey("GetChapterImages returns pages in reading order", func() {
			pages, err := s.GetChapterImages(ctx, "c1")
			So(err, ShouldBeNil)
			So(pages, ShouldResemble, []string{"https://x/p/1.webp", "https://x/p/2.webp"})
		})
	})
}
