package anilist

import (
	"testing"

	"github.com/mangasan-cli/mangasan/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestNormalizedName(t *testing.T) {
	Convey("Given names with mixed casing and padding", t, func() {
		So(normalizedName("  Chainsaw Man  "), ShouldEqual, "chainsaw man")
		So(normalizedName("BERSERK"), ShouldEqual, "berserk")
		So(normalizedName("one piece"), ShouldEqual, "one piece")
	})
}

func TestRelationCache(t *testing.T) {
	Convey("Given a manga", t, func() {
		manga := &Manga{ID: 30002}
		manga.Title.English = "Berserk"

		Convey("When a relation is saved", func() {
			err := SetRelation("berserk (1989)", manga)
			So(err, ShouldBeNil)

			Convey("Then it should resolve regardless of casing", func() {
				id := relationCacher.Get("Berserk (1989)")
				So(id.IsPresent(), ShouldBeTrue)
				So(id.MustGet(), ShouldEqual, 30002)
			})

			Convey("And the full record should be cached by id", func() {
				cached := idCacher.Get(30002)
				So(cached.IsPresent(), ShouldBeTrue)
				So(cached.MustGet().Name(), ShouldEqual, "Berserk")
			})
		})
	})
}
