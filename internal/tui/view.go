package tui

import (
	"fmt"
	"strings"

	"briefing/internal/model"
	"briefing/internal/render"
)

const (
	footerList   = "t 주제 | p 기간 | o 정렬 | / 검색 | enter 열기 | r 새로고침 | q 종료"
	footerDetail = "esc 목록으로 | q 종료"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Briefing"))
	b.WriteString("\n")

	if m.Fallback {
		b.WriteString(WarnStyle.Render(render.FallbackBanner))
		b.WriteString("\n")
	}

	switch m.Screen {
	case ScreenLoading:
		b.WriteString(InfoStyle.Render("Loading..."))
		b.WriteString("\n")
	case ScreenError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("%s %v", render.LoadFailed, m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("r 다시 시도 | q 종료"))
		return b.String()
	case ScreenDetail:
		if m.Article != nil {
			b.WriteString(BoxStyle.Render(render.Article(*m.Article)))
			b.WriteString("\n")
		}
		b.WriteString(InfoStyle.Render(footerDetail))
		return b.String()
	case ScreenList:
		b.WriteString(m.filterBar())
		b.WriteString("\n")
		if m.Result.Notice != "" {
			b.WriteString(WarnStyle.Render(m.Result.Notice))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.list())
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(m.Status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(footerList + " | " + m.collectHint()))
	return b.String()
}

func (m Model) filterBar() string {
	search := m.Query.Text
	if m.Searching {
		search += "▏"
	}
	return fmt.Sprintf("주제: %s | 기간: %s | 정렬: %s | 검색: %s",
		m.Query.Topic, m.Query.Period, render.OrderLabel(m.Query.Order), search)
}

func (m Model) list() string {
	if len(m.Result.Items) == 0 {
		return InfoStyle.Render(render.EmptyList) + "\n"
	}
	var b strings.Builder
	for i, a := range m.Result.Items {
		line := fmt.Sprintf("%s  %s", publishedDate(a), render.ArticleLine(a))
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) collectHint() string {
	if m.Fallback {
		return "c 수집 실행 (" + render.CollectDisabled + ")"
	}
	return "c 수집 실행"
}

func publishedDate(a model.Article) string {
	t, err := a.Published()
	if err != nil {
		return "----------"
	}
	return t.Local().Format("2006-01-02")
}
