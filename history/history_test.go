package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type testSource struct{}

func (testSource) Name() string {
	panic("")
}

func (testSource) ID() string {
	return "test source"
}

func (testSource) Search(_ context.Context, _ string) ([]*source.SearchResult, error) {
	panic("")
}

func (testSource) GetManga(_ context.Context, _ string) (*source.Manga, error) {
	panic("")
}

func (testSource) GetChapters(_ context.Context, _ string) ([]*source.Chapter, error) {
	panic("")
}

func (testSource) GetChapterImages(_ context.Context, _ string) ([]string, error) {
	panic("")
}

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a chapter", t, func() {
		chapter := &source.Chapter{
			ID:      "fawfa",
			MangaID: "wjakfkawgjj",
			Number:  42.5,
			Title:   mo.Some("adwad"),
			URL:     "dwaofa",
		}
		manga := &source.Manga{
			ID:       "wjakfkawgjj",
			Title:    "dawf",
			Source:   testSource{},
			Chapters: []*source.Chapter{chapter},
		}

		Convey("When saving the chapter", func() {
			err := Save(manga, chapter, 0)
			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And the chapter should be saved", func() {
					chapters, err := Get()
					So(err, ShouldBeNil)
					So(len(chapters), ShouldBeGreaterThan, 0)

					record := chapters[fmt.Sprintf("%s (%s)", manga.Title, manga.Source.ID())]
					So(record.ID, ShouldEqual, chapter.ID)
					So(record.Number, ShouldEqual, 42.5)
					So(record.String(), ShouldEqual, "dawf : Chapter 42.5")
				})
			})
		})

		Convey("When saving another chapter of the same manga", func() {
			next := &source.Chapter{ID: "next", MangaID: manga.ID, Number: 43, URL: "next-url"}

			So(Save(manga, chapter, 0), ShouldBeNil)
			So(Save(manga, next, 1), ShouldBeNil)

			Convey("Then the record is replaced, not duplicated", func() {
				chapters, err := Get()
				So(err, ShouldBeNil)

				record := chapters[fmt.Sprintf("%s (%s)", manga.Title, manga.Source.ID())]
				So(record.ID, ShouldEqual, "next")
				So(record.Index, ShouldEqual, 1)
			})
		})

		Convey("When removing the record", func() {
			So(Save(manga, chapter, 0), ShouldBeNil)

			chapters, err := Get()
			So(err, ShouldBeNil)

			record := chapters[fmt.Sprintf("%s (%s)", manga.Title, manga.Source.ID())]
			So(record, ShouldNotBeNil)
			So(Remove(record), ShouldBeNil)

			Convey("Then it is gone from the registry", func() {
				chapters, err := Get()
				So(err, ShouldBeNil)
				_, exists := chapters[fmt.Sprintf("%s (%s)", manga.Title, manga.Source.ID())]
				So(exists, ShouldBeFalse)
			})
		})
	})
}
