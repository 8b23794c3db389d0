package mangapill

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mangasan-cli/mangasan/scraper"
	"github.com/mangasan-cli/mangasan/source"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestMangapill() *Mangapill {
	return New(scraper.Options{})
}

func parseFixture(t *testing.T, fixture string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}

	return doc
}

const searchFixture = `
<div class="container">
	<div class="my-3 grid justify-end gap-3 grid-cols-2 md:grid-cols-3 lg:grid-cols-5">
		<div>
			<a href="/manga/2/one-piece">
				<figure><img class="lazy text-transparent" data-src="https://cdn.example.net/file/2/cover.jpeg"></figure>
			</a>
			<div class="mt-3">
				<a href="/manga/2/one-piece"><div class="leading-tight line-clamp-2 my-1 font-black">One Piece</div></a>
				<div class="flex items-center text-xs gap-2">
					<div>manga</div>
					<div>1997</div>
					<div>publishing</div>
				</div>
			</div>
		</div>
		<div>
			<a href="/manga/723/berserk">
				<figure><img class="lazy text-transparent" data-src=""></figure>
			</a>
			<div class="mt-3">
				<a href="/manga/723/berserk"><div class="leading-tight line-clamp-2 my-1 font-black">Berserk &amp; The Band of the Hawk</div></a>
				<div class="flex items-center text-xs gap-2">
					<div>manga</div>
					<div>1989</div>
					<div>on hiatus</div>
				</div>
			</div>
		</div>
		<div>
			<a href="/genres/action"><div class="leading-tight">Not a manga card</div></a>
		</div>
	</div>
</div>`

func TestMapSearchPage(t *testing.T) {
	Convey("Given a search results page", t, func() {
		m := newTestMangapill()
		results := m.mapSearchPage(parseFixture(t, searchFixture))

		Convey("Cards without a manga link are skipped", func() {
			So(results, ShouldHaveLength, 2)
		})

		Convey("Every canonical field is mapped", func() {
			first := results[0]
			So(first.ID, ShouldEqual, "2/one-piece")
			So(first.Title, ShouldEqual, "One Piece")
			So(first.Cover.MustGet(), ShouldEqual, "https://cdn.example.net/file/2/cover.jpeg")
			So(first.Status.MustGet(), ShouldEqual, source.StatusOngoing)
			So(first.Source.ID(), ShouldEqual, m.ID())
		})

		Convey("Entities are unescaped and odd states stay absent", func() {
			second := results[1]
			So(second.ID, ShouldEqual, "723/berserk")
			So(second.Title, ShouldEqual, "Berserk & The Band of the Hawk")
			So(second.Cover.IsAbsent(), ShouldBeTrue)
			So(second.Status.IsAbsent(), ShouldBeTrue)
		})
	})
}

const detailFixture = `
<div class="container">
	<div class="flex flex-col sm:flex-row my-3">
		<div class="text-transparent">
			<img class="lazy" data-src="https://cdn.example.net/file/2/full-cover.jpeg">
		</div>
		<div class="flex flex-col">
			<h1 class="font-bold text-lg md:text-2xl">One Piece</h1>
			<div class="text-sm text--secondary">ワンピース</div>
			<p class="text-sm text--secondary">Gol D. Roger was known as the &quot;Pirate King&quot;.</p>
		</div>
	</div>
	<div class="grid grid-cols-1 md:grid-cols-3 gap-3 mb-3">
		<div><h5 class="text-secondary">Type</h5><div>manga</div></div>
		<div><h5 class="text-secondary">Year</h5><div>1997</div></div>
		<div><h5 class="text-secondary">Status</h5><div>finished</div></div>
	</div>
	<div class="mb-3">
		<a href="/search?genre=Action&type=&status=">Action</a>
		<a href="/search?genre=Adventure&type=&status=">Adventure</a>
	</div>
	<div data-filter-list>
		<a href="/chapters/2-11050000/one-piece-chapter-1105">Chapter 1105</a>
		<a href="/chapters/2-11045000/one-piece-chapter-1104.5">Chapter 1104.5</a>
	</div>
</div>`

func TestMapDetail(t *testing.T) {
	Convey("Given a manga detail page", t, func() {
		m := newTestMangapill()

		manga, err := m.mapDetail(parseFixture(t, detailFixture), "2/one-piece")
		So(err, ShouldBeNil)

		Convey("Every canonical field is mapped", func() {
			So(manga.ID, ShouldEqual, "2/one-piece")
			So(manga.Title, ShouldEqual, "One Piece")
			So(manga.AltTitles, ShouldResemble, []string{"ワンピース"})
			So(manga.Description.MustGet(), ShouldEqual, `Gol D. Roger was known as the "Pirate King".`)
			So(manga.Cover.MustGet(), ShouldEqual, "https://cdn.example.net/file/2/full-cover.jpeg")
			So(manga.Status, ShouldEqual, source.StatusCompleted)
			So(manga.Year.MustGet(), ShouldEqual, 1997)
			So(manga.Genres, ShouldResemble, []string{"Action", "Adventure"})
			So(manga.TotalChapters.MustGet(), ShouldEqual, 2)
			So(manga.Source.Name(), ShouldEqual, m.Name())
		})

		Convey("A page without a heading is malformed", func() {
			_, err := m.mapDetail(parseFixture(t, `<div class="container"></div>`), "2/one-piece")
			So(scraper.IsKind(err, scraper.KindMalformed), ShouldBeTrue)
		})
	})
}

func TestMapChapterList(t *testing.T) {
	Convey("Given a detail page chapter listing", t, func() {
		m := newTestMangapill()
		chapters := m.mapChapterList(parseFixture(t, detailFixture), "2/one-piece")

		Convey("The newest-first listing is reversed into ascending order", func() {
			So(chapters, ShouldHaveLength, 2)
			So(chapters[0].Number, ShouldEqual, 1104.5)
			So(chapters[1].Number, ShouldEqual, 1105)
		})

		Convey("Identity and URL come from the anchor", func() {
			last := chapters[1]
			So(last.ID, ShouldEqual, "2-11050000/one-piece-chapter-1105")
			So(last.MangaID, ShouldEqual, "2/one-piece")
			So(last.URL, ShouldEqual, "https://mangapill.com/chapters/2-11050000/one-piece-chapter-1105")
			So(last.Title.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestNumberFromLabel(t *testing.T) {
	Convey("Chapter numbers parse from the label first, then the href", t, func() {
		So(numberFromLabel("Chapter 1105", "/chapters/2-1/x-chapter-1105"), ShouldEqual, 1105)
		So(numberFromLabel("Chapter 12.5", "/chapters/2-1/x-chapter-12.5"), ShouldEqual, 12.5)
		So(numberFromLabel("One-Shot", "/chapters/9-1/y-chapter-0"), ShouldEqual, 0)
		So(numberFromLabel("Extra", "/chapters/9-1/y-special"), ShouldEqual, 0)
	})
}

const readerFixture = `
<div class="container">
	<picture><img class="js-page" data-src="https://cdn.example.net/file/2/1105/1.jpeg"></picture>
	<picture><img class="js-page" data-src="https://cdn.example.net/file/2/1105/2.jpeg"></picture>
	<picture><img class="js-page" src="https://cdn.example.net/file/2/1105/3.jpeg"></picture>
	<picture><img class="js-page"></picture>
</div>`

func TestExtractPages(t *testing.T) {
	Convey("Reader images are collected in document order", t, func() {
		pages := extractPages(parseFixture(t, readerFixture))

		So(pages, ShouldResemble, []string{
			"https://cdn.example.net/file/2/1105/1.jpeg",
			"https://cdn.example.net/file/2/1105/2.jpeg",
			"https://cdn.example.net/file/2/1105/3.jpeg",
		})
	})

	Convey("A page with no reader images yields nothing", t, func() {
		So(extractPages(parseFixture(t, `<div class="container"></div>`)), ShouldBeEmpty)
	})
}
