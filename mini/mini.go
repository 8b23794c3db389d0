// Package mini implements a lightweight, minimalist interface for manga search and reading.
package mini

import (
	"context"
	"os"

	"github.com/mangasan-cli/mangasan/source"
	"github.com/mangasan-cli/mangasan/util"
)

var (
	truncateAt = 100
)

type Options struct {
	Continue bool
}

type mini struct {
	ctx context.Context

	width, height int

	state         state
	statesHistory util.Stack[state]

	selectedSource source.Source

	cachedResults  map[string][]*source.SearchResult
	cachedChapters map[string][]*source.Chapter

	query            string
	selectedManga    *source.Manga
	selectedChapters []*source.Chapter
}

func newMini(ctx context.Context) *mini {
	return &mini{
		ctx:            ctx,
		statesHistory:  util.Stack[state]{},
		cachedResults:  make(map[string][]*source.SearchResult),
		cachedChapters: make(map[string][]*source.Chapter),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	m.statesHistory.Push(m.state)
	m.setState(s)
}

func Run(options *Options) error {
	m := newMini(context.Background())
	m.state = sourceSelectState
	if options.Continue {
		m.state = historySelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case historySelectState:
		return m.handleHistorySelectState()
	case sourceSelectState:
		return m.handleSourceSelectState()
	case mangaSearchState:
		return m.handleMangaSearchState()
	case mangaSelectState:
		return m.handleMangaSelectState()
	case chapterSelectState:
		return m.handleChapterSelectState()
	case chapterReadState:
		return m.handleChapterReadState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
