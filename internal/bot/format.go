package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"briefing/internal/filter"
	"briefing/internal/model"
	"briefing/internal/render"
)

const (
	maxNewsItems   = 10
	maxButtonTitle = 40
	// Telegram rejects callback data longer than 64 bytes.
	maxCallbackData = 64
)

// FormatNews formats a resolved list, showing at most maxNewsItems entries.
func FormatNews(res filter.Result, fallback bool) string {
	items := res.Items
	if len(items) > maxNewsItems {
		items = items[:maxNewsItems]
	}
	text := render.NewsList(items, res.Notice, fallback)
	if rest := len(res.Items) - len(items); rest > 0 {
		text += fmt.Sprintf("\n\n외 %d개 기사가 더 있습니다. 검색어나 기간으로 좁혀보세요.", rest)
	}
	return text
}

func callbackData(action, id string) (string, bool) {
	data := action + ":" + id
	return data, len(data) <= maxCallbackData
}

func articleKeyboard(items []model.Article) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, a := range items {
		if i == maxNewsItems {
			break
		}
		data, ok := callbackData(cmdArticle, a.ID)
		if !ok {
			continue
		}
		label := fmt.Sprintf("%d. %s", i+1, render.Truncate(a.Title, maxButtonTitle))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}
	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func clusterKeyboard(clusters []model.Cluster) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range clusters {
		data, ok := callbackData(cmdCluster, c.ClusterID)
		if !ok {
			continue
		}
		label := render.Truncate(c.ClusterTitle, maxButtonTitle)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}
	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
