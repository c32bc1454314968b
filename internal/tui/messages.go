package tui

import (
	"briefing/internal/datasource"
	"briefing/internal/model"
)

// FeedLoadedMsg is sent when the feed load finishes
type FeedLoadedMsg struct {
	Feed datasource.Feed
	Err  error
}

// ArticleLoadedMsg is sent when a single article load finishes
type ArticleLoadedMsg struct {
	Article model.Article
	Err     error
}

// CollectDoneMsg is sent when a collection run finishes
type CollectDoneMsg struct {
	Result model.CollectResult
	Err    error
}
