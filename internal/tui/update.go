package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"briefing/internal/datasource"
	"briefing/internal/model"
	"briefing/internal/render"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case FeedLoadedMsg:
		return m.handleFeedLoaded(msg)
	case ArticleLoadedMsg:
		return m.handleArticleLoaded(msg)
	case CollectDoneMsg:
		return m.handleCollectDone(msg)
	}
	return m, nil
}

// handleKeyPress routes keyboard input by screen
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.Searching {
		return m.handleSearchKey(msg)
	}

	switch m.Screen {
	case ScreenDetail:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "backspace", "left", "h":
			m.Screen = ScreenList
			m.Article = nil
		}
		return m, nil
	case ScreenList:
		return m.handleListKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.Screen = ScreenLoading
		m.Err = nil
		return m, loadFeed(m.ctx, m.src)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "t":
		m.Query.Topic = next(topicCycle, m.Query.Topic)
		m.Cursor = 0
		return m.recompute(), nil
	case "p":
		m.Query.Period = next(periodCycle, m.Query.Period)
		m.Cursor = 0
		return m.recompute(), nil
	case "o":
		if m.Query.Order == model.OrderOldest {
			m.Query.Order = model.OrderLatest
		} else {
			m.Query.Order = model.OrderOldest
		}
		return m.recompute(), nil
	case "/":
		m.Searching = true
		return m, nil
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Result.Items)-1 {
			m.Cursor++
		}
	case "enter":
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.Screen = ScreenLoading
		return m, loadArticle(m.ctx, m.src, a.ID)
	case "r":
		m.Screen = ScreenLoading
		return m, loadFeed(m.ctx, m.src)
	case "c":
		if m.Fallback {
			m.Status = "수집 실행: " + render.CollectDisabled
			return m, nil
		}
		if m.Collecting {
			return m, nil
		}
		m.Collecting = true
		m.Status = "수집 중..."
		return m, collect(m.ctx, m.src)
	}
	return m, nil
}

// handleSearchKey edits the query text. Every edit recomputes the list.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.Searching = false
		return m, nil
	case tea.KeyEsc:
		m.Searching = false
		m.Query.Text = ""
	case tea.KeyBackspace:
		if r := []rune(m.Query.Text); len(r) > 0 {
			m.Query.Text = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Query.Text += " "
	case tea.KeyRunes:
		m.Query.Text += string(msg.Runes)
	default:
		return m, nil
	}
	m.Cursor = 0
	return m.recompute(), nil
}

// handleFeedLoaded stores the loaded feed and resolves the list
func (m Model) handleFeedLoaded(msg FeedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Screen = ScreenError
		m.Err = msg.Err
		return m, nil
	}
	m.Items = msg.Feed.Items
	m.Fallback = msg.Feed.Fallback
	m.Screen = ScreenList
	m.Err = nil
	return m.recompute(), nil
}

// handleArticleLoaded opens the detail screen
func (m Model) handleArticleLoaded(msg ArticleLoadedMsg) (tea.Model, tea.Cmd) {
	m.Screen = ScreenList
	if errors.Is(msg.Err, datasource.ErrNotFound) {
		m.Status = render.ArticleNotFound
		return m, nil
	}
	if msg.Err != nil {
		m.Status = fmt.Sprintf("%s (%v)", render.LoadFailed, msg.Err)
		return m, nil
	}
	a := msg.Article
	m.Article = &a
	m.Screen = ScreenDetail
	m.Status = ""
	return m, nil
}

// handleCollectDone reports the collection result and reloads the feed
func (m Model) handleCollectDone(msg CollectDoneMsg) (tea.Model, tea.Cmd) {
	m.Collecting = false
	if msg.Err != nil {
		m.Status = fmt.Sprintf("수집 실패: %v", msg.Err)
		return m, nil
	}
	m.Status = "수집 완료"
	if msg.Result.Message != "" {
		m.Status += ": " + msg.Result.Message
	}
	return m, loadFeed(m.ctx, m.src)
}
