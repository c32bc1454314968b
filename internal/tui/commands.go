package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// loadFeed creates a command that loads the full feed
func loadFeed(ctx context.Context, src Source) tea.Cmd {
	return func() tea.Msg {
		feed, err := src.LoadFeed(ctx)
		return FeedLoadedMsg{Feed: feed, Err: err}
	}
}

// loadArticle creates a command that loads one article
func loadArticle(ctx context.Context, src Source, id string) tea.Cmd {
	return func() tea.Msg {
		a, err := src.LoadArticle(ctx, id)
		return ArticleLoadedMsg{Article: a, Err: err}
	}
}

// collect creates a command that triggers a backend collection run
func collect(ctx context.Context, src Source) tea.Cmd {
	return func() tea.Msg {
		res, err := src.Collect(ctx)
		return CollectDoneMsg{Result: res, Err: err}
	}
}
