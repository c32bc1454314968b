package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"briefing/internal/datasource"
	"briefing/internal/filter"
	"briefing/internal/model"
	"briefing/internal/render"
)

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID, `Welcome to Briefing Bot!

AI / ScienceTech 뉴스 요약을 받아보세요.

Quick start:
1. /news — 최근 24시간 뉴스
2. /news AI 7d 반도체 — 주제, 기간, 검색어 지정
3. /clusters — 이슈별 묶음 보기

Use /help for the full command reference.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Reading:
/news [topic] [period] [order] [query...] — filtered news list
/article <id> — article summary and source link
/clusters — list issue clusters
/cluster <id> — cluster summary and related articles
/trends — keyword and source trends

Backend:
/collect — run a collection pass (live mode only)

topic: All | AI | ScienceTech | Other (default: All)
period: 24h | 7d | 30d | all (default: 24h)
order: latest | oldest (default: latest)

빈 결과일 때는 기간이 자동으로 확장됩니다.`)
}

func (b *Bot) handleNews(ctx context.Context, chatID int64, args string) {
	q, err := ParseNewsArgs(args)
	if err != nil {
		b.reply(chatID, err.Error()+"\n\n"+newsUsage)
		return
	}

	feed, err := b.src.LoadFeed(ctx)
	if err != nil {
		b.log.Error("load feed", "chat_id", chatID, "error", err)
		b.reply(chatID, render.LoadFailed)
		return
	}

	res := filter.Resolve(feed.Items, q, b.now())
	b.log.Debug("resolved news",
		"chat_id", chatID,
		"requested", q.Period,
		"period", res.Period,
		"count", len(res.Items),
	)
	b.send(chatID, FormatNews(res, feed.Fallback), articleKeyboard(res.Items))
}

func (b *Bot) handleArticle(ctx context.Context, chatID int64, args string) {
	id, err := ParseIDArg(args)
	if err != nil {
		b.reply(chatID, "Usage: /article <id>")
		return
	}

	a, err := b.src.LoadArticle(ctx, id)
	if errors.Is(err, datasource.ErrNotFound) {
		b.reply(chatID, render.ArticleNotFound)
		return
	}
	if err != nil {
		b.log.Error("load article", "id", id, "error", err)
		b.reply(chatID, render.LoadFailed)
		return
	}

	var markup *tgbotapi.InlineKeyboardMarkup
	if a.ClusterID != "" {
		markup = clusterKeyboard([]model.Cluster{{ClusterID: a.ClusterID, ClusterTitle: "이 이슈 관련 기사"}})
	}
	b.send(chatID, render.Article(a), markup)
}

func (b *Bot) handleClusters(ctx context.Context, chatID int64) {
	clusters, err := b.src.LoadClusters(ctx)
	if err != nil {
		b.log.Error("load clusters", "error", err)
		b.reply(chatID, render.LoadFailed)
		return
	}
	b.send(chatID, render.ClusterList(clusters), clusterKeyboard(clusters))
}

func (b *Bot) handleCluster(ctx context.Context, chatID int64, args string) {
	id, err := ParseIDArg(args)
	if err != nil {
		b.reply(chatID, "Usage: /cluster <id>")
		return
	}

	var (
		clusters []model.Cluster
		feed     datasource.Feed
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clusters, err = b.src.LoadClusters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		feed, err = b.src.LoadFeed(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		b.log.Error("load cluster", "id", id, "error", err)
		b.reply(chatID, render.LoadFailed)
		return
	}

	c, ok := filter.FindCluster(clusters, id)
	if !ok {
		b.reply(chatID, render.ClusterNotFound)
		return
	}
	members := filter.Members(c, feed.Items)
	b.send(chatID, render.ClusterDetail(c, members), articleKeyboard(members))
}

func (b *Bot) handleTrends(ctx context.Context, chatID int64) {
	t, err := b.src.LoadTrends(ctx)
	if err != nil {
		b.log.Error("load trends", "error", err)
		b.reply(chatID, render.LoadFailed)
		return
	}
	b.reply(chatID, render.Trends(t))
}

func (b *Bot) handleCollect(ctx context.Context, chatID int64) {
	if b.src.Static() {
		b.reply(chatID, "수집 실행: "+render.CollectDisabled)
		return
	}

	res, err := b.src.Collect(ctx)
	if errors.Is(err, datasource.ErrStaticMode) {
		b.reply(chatID, "수집 실행: "+render.CollectDisabled)
		return
	}
	if err != nil {
		b.log.Error("collect", "chat_id", chatID, "error", err)
		b.reply(chatID, fmt.Sprintf("수집 실패: %v", err))
		return
	}

	status := "완료"
	if !res.OK {
		status = "실패"
	}
	text := "수집 " + status
	if res.Message != "" {
		text += ": " + res.Message
	}
	b.reply(chatID, text)
}
