package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mangasan-cli/mangasan/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteJsonResponse(t *testing.T) {
	Convey("writeJsonResponse", t, func() {
		Convey("Should produce valid JSON for empty manga list", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "test", Json: true}
			err := writeJson(&buf, nil, opts)
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestParseMangaPicker(t *testing.T) {
	Convey("Given search results", t, func() {
		results := []*source.SearchResult{
			{ID: "a", Title: "Alpha"},
			{ID: "b", Title: "Beta"},
			{ID: "c", Title: "Gamma"},
		}

		Convey("first and last pick the edges", func() {
			first, err := ParseMangaPicker("first", "")
			So(err, ShouldBeNil)
			So(first(results).ID, ShouldEqual, "a")

			last, err := ParseMangaPicker("last", "")
			So(err, ShouldBeNil)
			So(last(results).ID, ShouldEqual, "c")
		})

		Convey("exact matches the title or picks nothing", func() {
			exact, err := ParseMangaPicker("exact", "Beta")
			So(err, ShouldBeNil)
			So(exact(results).ID, ShouldEqual, "b")

			miss, err := ParseMangaPicker("exact", "Delta")
			So(err, ShouldBeNil)
			So(miss(results), ShouldBeNil)
		})

		Convey("index clamps to the list", func() {
			picker, err := ParseMangaPicker("index", "99")
			So(err, ShouldBeNil)
			So(picker(results).ID, ShouldEqual, "c")
		})

		Convey("unknown kinds are rejected", func() {
			_, err := ParseMangaPicker("kek", "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseChaptersFilter(t *testing.T) {
	Convey("Given a chapter list", t, func() {
		chapters := []*source.Chapter{
			{ID: "1", Number: 1},
			{ID: "2", Number: 2},
			{ID: "3", Number: 2.5},
			{ID: "4", Number: 3},
		}

		apply := func(description string) []*source.Chapter {
			filter, err := ParseChaptersFilter(description)
			So(err, ShouldBeNil)
			filtered, err := filter(chapters)
			So(err, ShouldBeNil)
			return filtered
		}

		Convey("first, last and all behave like slices", func() {
			So(apply("first"), ShouldResemble, chapters[:1])
			So(apply("last"), ShouldResemble, chapters[3:])
			So(apply("all"), ShouldHaveLength, 4)
		})

		Convey("ranges address positions, not numbers", func() {
			filtered := apply("1-2")
			So(filtered, ShouldHaveLength, 2)
			So(filtered[0].ID, ShouldEqual, "2")
			So(filtered[1].ID, ShouldEqual, "3")
		})

		Convey("substrings match the chapter label", func() {
			filtered := apply("@chapter 2.5@")
			So(filtered, ShouldHaveLength, 1)
			So(filtered[0].ID, ShouldEqual, "3")
		})

		Convey("single indexes pick one chapter", func() {
			filtered := apply("0")
			So(filtered, ShouldHaveLength, 1)
			So(filtered[0].ID, ShouldEqual, "1")
		})

		Convey("garbage is rejected", func() {
			_, err := ParseChaptersFilter("not a filter")
			So(err, ShouldNotBeNil)

			_, err = ParseChaptersFilter("@")
			So(err, ShouldNotBeNil)
		})
	})
}
