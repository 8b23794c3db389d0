package source

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChapter(t *testing.T) {
	Convey("Chapter", t, func() {
		Convey("String - whole number", func() {
			ch := &Chapter{Number: 12}
			So(ch.String(), ShouldEqual, "Chapter 12")
		})

		Convey("String - fractional number", func() {
			ch := &Chapter{Number: 5.5}
			So(ch.String(), ShouldEqual, "Chapter 5.5")
		})

		Convey("String - zero is a valid number", func() {
			ch := &Chapter{Number: 0}
			So(ch.String(), ShouldEqual, "Chapter 0")
		})

		Convey("String - with title", func() {
			ch := &Chapter{Number: 1, Title: mo.Some("Romance Dawn")}
			So(ch.String(), ShouldEqual, "Chapter 1: Romance Dawn")
		})
	})
}

func TestFormatChapterNumber(t *testing.T) {
	Convey("FormatChapterNumber", t, func() {
		So(FormatChapterNumber(12), ShouldEqual, "12")
		So(FormatChapterNumber(5.5), ShouldEqual, "5.5")
		So(FormatChapterNumber(0), ShouldEqual, "0")
		So(FormatChapterNumber(100.25), ShouldEqual, "100.25")
	})
}
