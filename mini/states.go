// Package mini implements a lightweight, minimalist interface for manga search and reading.
package mini

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mangasan-cli/mangasan/history"
	"github.com/mangasan-cli/mangasan/icon"
	"github.com/mangasan-cli/mangasan/key"
	"github.com/mangasan-cli/mangasan/log"
	"github.com/mangasan-cli/mangasan/open"
	"github.com/mangasan-cli/mangasan/provider"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/mangasan-cli/mangasan/style"
	"github.com/mangasan-cli/mangasan/util"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type state int

const (
	mangaSearchState state = iota + 1
	mangaSelectState
	sourceSelectState
	chapterSelectState
	chapterReadState
	historySelectState
	quitState
)

func (m *mini) handleSourceSelectState() error {
	var err error

	if name := viper.GetString(key.DefaultSources); name != "" {
		p, ok := provider.Get(name)
		if !ok {
			return fmt.Errorf("unknown source \"%s\"", name)
		}

		m.selectedSource, err = p.CreateSource()
		if err != nil {
			return err
		}
	} else {
		var providers []*provider.Provider
		providers = append(providers, provider.Builtins()...)
		providers = append(providers, provider.Customs()...)

		slices.SortFunc(providers, func(a, b *provider.Provider) int {
			return strings.Compare(a.String(), b.String())
		})

		title("Select Source")
		b, p, err := menu(providers)
		if err != nil {
			return err
		}

		if quit.eq(b) {
			m.newState(quitState)
			return nil
		}

		erase := progress("Initializing Source..")
		m.selectedSource, err = p.CreateSource()
		if err != nil {
			return err
		}
		erase()
	}

	m.newState(mangaSearchState)
	return nil
}

func (m *mini) handleMangaSearchState() error {
	var searchLoop func() error
	title("Search Manga")

	searchLoop = func() error {
		in, err := getInput(func(s string) bool {
			return s != ""
		})

		if err != nil {
			return err
		}

		query := in.value

		erase := progress("Searching Query..")
		results, err := m.selectedSource.Search(m.ctx, query)
		erase()
		if err != nil {
			fail(err.Error())
			return searchLoop()
		}

		if limit := viper.GetInt(key.MiniSearchLimit); limit > 0 {
			max := lo.Min([]int{len(results), limit})
			results = results[:max]
		}
		m.cachedResults[query] = results

		if len(results) == 0 {
			fail("No search results found")
			return searchLoop()
		}

		m.query = query
		m.newState(mangaSelectState)
		return nil
	}

	return searchLoop()
}

func (m *mini) handleMangaSelectState() error {
	title("Query Results >>")
	b, r, err := menu(m.cachedResults[m.query])
	if err != nil {
		return err
	}

	if quit.eq(b) {
		m.newState(quitState)
		return nil
	}

	erase := progress("Fetching Manga..")
	manga, err := r.Source.GetManga(m.ctx, r.ID)
	erase()
	if err != nil {
		return err
	}

	m.selectedManga = manga
	m.newState(chapterSelectState)
	return nil
}

func (m *mini) handleChapterSelectState() error {
	var err error

	erase := progress("Searching Chapters..")
	m.cachedChapters[m.selectedManga.ID], err = m.selectedSource.GetChapters(m.ctx, m.selectedManga.ID)
	erase()
	if err != nil {
		return err
	}

	chapters := m.cachedChapters[m.selectedManga.ID]
	if viper.GetBool(key.MiniReverseChapters) {
		chapters = lo.Reverse(chapters)
	}
	m.selectedManga.Chapters = chapters

	if len(chapters) == 0 {
		fail("No chapters found")
		m.selectedManga = nil
		m.newState(mangaSelectState)
		return nil
	}

	m.printMangaSummary()

	title(fmt.Sprintf("To specify a range, use: start_number end_number (Chapters: 1-%d)", len(chapters)))
	oneChapterInput := regexp.MustCompile(`^\d+$`)
	rangeInput := regexp.MustCompile(`^\d+ \d+$`)
	in, err := getInput(func(s string) bool {
		var err error

		switch {
		case rangeInput.MatchString(s):
			var a, b int64
			{
				l := strings.Split(s, " ")
				a, err = strconv.ParseInt(l[0], 10, 16)
				if err != nil {
					return false
				}

				b, err = strconv.ParseInt(l[1], 10, 16)
				if err != nil {
					return false
				}
			}

			return a < b && 0 < a && int(a) < len(chapters) && int(b) <= len(chapters)
		case oneChapterInput.MatchString(s):
			var a int64
			a, err = strconv.ParseInt(s, 10, 16)
			if err != nil {
				return false
			}

			return 0 < a && int(a) <= len(chapters)
		default:
			return s == "q"
		}
	})

	if err != nil {
		return err
	}

	switch {
	case rangeInput.MatchString(in.value):
		nums := strings.Split(in.value, " ")
		from := lo.Must(strconv.ParseInt(nums[0], 10, 16))
		to := lo.Must(strconv.ParseInt(nums[1], 10, 16))

		for i := from - 1; i < to; i++ {
			m.selectedChapters = append(m.selectedChapters, chapters[i])
		}
	case oneChapterInput.MatchString(in.value):
		num := lo.Must(strconv.ParseInt(in.value, 10, 16))
		m.selectedChapters = append(m.selectedChapters, chapters[num-1])
	case in.value == "q":
		m.newState(quitState)
		return nil
	}

	m.newState(chapterReadState)

	return nil
}

// printMangaSummary shows the record the user is about to read: title,
// publication state, genres and the synopsis wrapped to the terminal.
func (m *mini) printMangaSummary() {
	manga := m.selectedManga

	fmt.Printf("%s %s %s\n", icon.Get(icon.Book), style.Bold(manga.Title), style.Faint(fmt.Sprintf("(%s)", manga.Status)))

	if len(manga.Genres) > 0 {
		fmt.Println(style.Faint(strings.Join(manga.Genres, ", ")))
	}

	if description, ok := manga.Description.Get(); ok {
		width := m.width
		if width <= 0 {
			width = truncateAt
		}
		fmt.Println(wrap.String(description, width))
	}
}

func (m *mini) handleChapterReadState() error {
	type controls struct {
		next chan struct{}
		prev chan struct{}
		stop chan struct{}
		err  chan error
	}

	var readLoop func(*source.Chapter, *controls, bool, bool)

	readLoop = func(chapter *source.Chapter, c *controls, hasPrev, hasNext bool) {
		util.ClearScreen()

		if err := m.openChapter(chapter); err != nil {
			c.err <- err
			return
		}

		title(fmt.Sprintf("Currently reading %s", chapter))

		var options []*bind
		if hasPrev {
			options = append(options, prev)
		}
		if hasNext {
			options = append(options, next)
		}

		options = append(options, reread, back, search)

		b, _, err := menu([]fmt.Stringer{}, options...)
		if err != nil {
			c.err <- err
			return
		}

		switch b {
		case next:
			c.next <- struct{}{}
		case prev:
			c.prev <- struct{}{}
		case reread:
			readLoop(chapter, c, hasPrev, hasNext)
		case back:
			m.previousState()
			c.stop <- struct{}{}
		case search:
			m.newState(mangaSearchState)
			c.stop <- struct{}{}
		case quit:
			m.newState(quitState)
			c.stop <- struct{}{}
		}
	}

	c := &controls{
		next: make(chan struct{}),
		prev: make(chan struct{}),
		stop: make(chan struct{}),
		err:  make(chan error),
	}

	var i int

	for {
		var (
			hasPrev = i > 0
			hasNext = i+1 < len(m.selectedChapters)
		)

		go readLoop(m.selectedChapters[i], c, hasPrev, hasNext)

		select {
		case <-c.next:
			i++
		case <-c.prev:
			i--
		case <-c.stop:
			return nil
		case err := <-c.err:
			return err
		}
	}
}

// openChapter hands a chapter to the system browser, or prints its page
// URLs when the mini mode is configured to stay inside the terminal.
func (m *mini) openChapter(chapter *source.Chapter) error {
	fmt.Printf("Reading %s...\n", chapter)

	if viper.GetBool(key.MiniShowURLs) {
		erase := progress("Fetching Pages..")
		pages, err := m.selectedSource.GetChapterImages(m.ctx, chapter.ID)
		erase()
		if err != nil {
			return err
		}

		for _, page := range pages {
			fmt.Println(page)
		}
	} else if err := open.Start(chapter.URL); err != nil {
		return err
	}

	if viper.GetBool(key.HistorySaveOnRead) {
		index := lo.IndexOf(m.selectedManga.Chapters, chapter)
		if err := history.Save(m.selectedManga, chapter, index); err != nil {
			log.Warnf("failed to save history: %v", err)
		}
	}

	return nil
}

func (m *mini) handleHistorySelectState() error {
	h, err := history.Get()
	if err != nil {
		return err
	}

	records := lo.Values(h)

	title("History Results >>")
	b, record, err := menu(records)
	if err != nil {
		return err
	}

	if quit.eq(b) {
		m.newState(quitState)
		return nil
	}

	var providers []*provider.Provider
	providers = append(providers, provider.Builtins()...)
	providers = append(providers, provider.Customs()...)

	p, ok := lo.Find(providers, func(p *provider.Provider) bool {
		return p.ID == record.SourceID
	})
	if !ok {
		return fmt.Errorf("unknown source \"%s\"", record.SourceID)
	}

	erase := progress("Initializing Source..")
	s, err := p.CreateSource()
	if err != nil {
		return err
	}
	m.selectedSource = s
	erase()

	erase = progress("Fetching Chapters..")
	manga, err := s.GetManga(m.ctx, record.MangaID)
	if err != nil {
		erase()
		return err
	}

	chapters, err := s.GetChapters(m.ctx, record.MangaID)
	erase()
	if err != nil {
		return err
	}

	// Saved indexes are positions in the list as mini displays it, so the
	// same ordering has to be applied before resuming.
	if viper.GetBool(key.MiniReverseChapters) {
		chapters = lo.Reverse(chapters)
	}

	manga.Chapters = chapters
	m.selectedManga = manga
	m.cachedChapters[manga.ID] = chapters

	if len(chapters) == 0 {
		fail("No chapters found")
		m.newState(sourceSelectState)
		return nil
	}

	// Resume from the last opened chapter, clamped in case the list shrank.
	index := util.Max(0, util.Min(record.Index, len(chapters)-1))
	m.selectedChapters = chapters[index:]

	m.newState(chapterReadState)
	return nil
}
