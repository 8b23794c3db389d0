package custom

import (
	"testing"
	"time"

	"github.com/mangasan-cli/mangasan/source"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func TestSearchResultFromTable(t *testing.T) {
	Convey("searchResultFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract a result from a valid Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("solo-camping"))
			tbl.RawSetString("title", lua.LString("Solo Camping"))
			tbl.RawSetString("cover", lua.LString("https://example.com/cover.jpg"))
			tbl.RawSetString("latest_chapter", lua.LNumber(12.5))
			tbl.RawSetString("status", lua.LString("ongoing"))

			result, err := searchResultFromTable(tbl)
			So(err, ShouldBeNil)
			So(result.ID, ShouldEqual, "solo-camping")
			So(result.Title, ShouldEqual, "Solo Camping")
			So(result.Cover.MustGet(), ShouldEqual, "https://example.com/cover.jpg")
			So(result.LatestChapter.MustGet(), ShouldEqual, 12.5)
			So(result.Status.MustGet(), ShouldEqual, source.StatusOngoing)
		})

		Convey("Should leave unknown fields absent", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))
			tbl.RawSetString("title", lua.LString("X"))

			result, err := searchResultFromTable(tbl)
			So(err, ShouldBeNil)
			So(result.Cover.IsAbsent(), ShouldBeTrue)
			So(result.LatestChapter.IsAbsent(), ShouldBeTrue)
			So(result.Status.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should drop status labels outside the search set", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))
			tbl.RawSetString("title", lua.LString("X"))
			tbl.RawSetString("status", lua.LString("hiatus"))

			result, err := searchResultFromTable(tbl)
			So(err, ShouldBeNil)
			So(result.Status.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should fail when required field 'title' is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))

			_, err := searchResultFromTable(tbl)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMangaFromTable(t *testing.T) {
	Convey("mangaFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract manga from a valid Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("berserk"))
			tbl.RawSetString("title", lua.LString("Berserk"))
			tbl.RawSetString("description", lua.LString("Guts."))
			tbl.RawSetString("status", lua.LString("on_hiatus"))
			tbl.RawSetString("genres", lua.LString("Action, Dark Fantasy"))
			tbl.RawSetString("authors", lua.LString("Kentaro Miura"))
			tbl.RawSetString("year", lua.LNumber(1989))
			tbl.RawSetString("total_chapters", lua.LNumber(364))

			manga, err := mangaFromTable(tbl)
			So(err, ShouldBeNil)
			So(manga.ID, ShouldEqual, "berserk")
			So(manga.Title, ShouldEqual, "Berserk")
			So(manga.Description.MustGet(), ShouldEqual, "Guts.")
			So(manga.Status, ShouldEqual, source.StatusHiatus)
			So(manga.Genres, ShouldHaveLength, 2)
			So(manga.Genres[0], ShouldEqual, "Action")
			So(manga.Authors, ShouldResemble, []string{"Kentaro Miura"})
			So(manga.Year.MustGet(), ShouldEqual, 1989)
			So(manga.TotalChapters.MustGet(), ShouldEqual, 364)
		})

		Convey("Should accept alt titles as a Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))
			tbl.RawSetString("title", lua.LString("X"))

			alts := L.NewTable()
			alts.Append(lua.LString("Ekkusu"))
			alts.Append(lua.LString("X (1999)"))
			tbl.RawSetString("alt_titles", alts)

			manga, err := mangaFromTable(tbl)
			So(err, ShouldBeNil)
			So(manga.AltTitles, ShouldResemble, []string{"Ekkusu", "X (1999)"})
		})

		Convey("Should coerce unknown status labels to ongoing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))
			tbl.RawSetString("title", lua.LString("X"))
			tbl.RawSetString("status", lua.LString("???"))

			manga, err := mangaFromTable(tbl)
			So(err, ShouldBeNil)
			So(manga.Status, ShouldEqual, source.StatusOngoing)
		})

		Convey("Should fail when required field 'id' is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("X"))

			_, err := mangaFromTable(tbl)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestChapterFromTable(t *testing.T) {
	Convey("chapterFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract chapter with explicit number", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("ch-55"))
			tbl.RawSetString("url", lua.LString("https://example.com/ch/55"))
			tbl.RawSetString("number", lua.LNumber(5.5))
			tbl.RawSetString("title", lua.LString("The Beach"))
			tbl.RawSetString("released_at", lua.LNumber(1700000000))

			chapter, err := chapterFromTable(tbl, "berserk")
			So(err, ShouldBeNil)
			So(chapter.ID, ShouldEqual, "ch-55")
			So(chapter.MangaID, ShouldEqual, "berserk")
			So(chapter.Number, ShouldEqual, 5.5)
			So(chapter.Title.MustGet(), ShouldEqual, "The Beach")
			So(chapter.ReleasedAt.MustGet(), ShouldHappenOnOrAfter, time.Unix(1700000000, 0).UTC())
		})

		Convey("Should fall back to the number baked into the title", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))
			tbl.RawSetString("url", lua.LString("https://example.com/x"))
			tbl.RawSetString("title", lua.LString("Chapter 25.5 - Extras"))

			chapter, err := chapterFromTable(tbl, "m")
			So(err, ShouldBeNil)
			So(chapter.Number, ShouldEqual, 25.5)
		})

		Convey("Should default to zero when no number is recoverable", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))
			tbl.RawSetString("url", lua.LString("https://example.com/x"))

			chapter, err := chapterFromTable(tbl, "m")
			So(err, ShouldBeNil)
			So(chapter.Number, ShouldEqual, 0)
			So(chapter.ReleasedAt.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should fail when URL is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString("x"))

			_, err := chapterFromTable(tbl, "m")
			So(err, ShouldNotBeNil)
		})
	})
}
