// Package tui implements the terminal reader.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"briefing/internal/datasource"
	"briefing/internal/filter"
	"briefing/internal/model"
)

// Source is the interface for loading briefing resources.
type Source interface {
	LoadFeed(ctx context.Context) (datasource.Feed, error)
	LoadArticle(ctx context.Context, id string) (model.Article, error)
	Collect(ctx context.Context) (model.CollectResult, error)
}

// Screen is the active view.
type Screen string

const (
	ScreenLoading Screen = "loading"
	ScreenList    Screen = "list"
	ScreenDetail  Screen = "detail"
	ScreenError   Screen = "error"
)

var (
	topicCycle  = []model.Topic{model.TopicAll, model.TopicAI, model.TopicScienceTech, model.TopicOther}
	periodCycle = []model.Period{model.Period24h, model.Period7d, model.Period30d, model.PeriodAll}
)

// Model is the terminal reader state. The feed is loaded once; every filter
// change recomputes the list from the loaded items.
type Model struct {
	ctx context.Context
	src Source
	now func() time.Time

	Screen   Screen
	Items    []model.Article
	Fallback bool
	Query    filter.Query
	Result   filter.Result
	Cursor   int

	// Searching is true while the query text is being edited.
	Searching bool

	Article    *model.Article
	Status     string
	Collecting bool
	Err        error
}

// NewModel creates a Model reading from src.
func NewModel(ctx context.Context, src Source) Model {
	return Model{
		ctx:    ctx,
		src:    src,
		now:    time.Now,
		Screen: ScreenLoading,
		Query: filter.Query{
			Topic:  model.TopicAll,
			Period: model.Period24h,
			Order:  model.OrderLatest,
		},
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return loadFeed(m.ctx, m.src)
}

func (m Model) recompute() Model {
	m.Result = filter.Resolve(m.Items, m.Query, m.now())
	if m.Cursor >= len(m.Result.Items) {
		m.Cursor = max(0, len(m.Result.Items)-1)
	}
	return m
}

func (m Model) selected() (model.Article, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Result.Items) {
		return model.Article{}, false
	}
	return m.Result.Items[m.Cursor], true
}

func next[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
