// Package render formats briefing data as plain text for chat and terminal surfaces.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"briefing/internal/model"
)

// User-facing messages shared by every surface.
const (
	EmptyList       = "표시할 뉴스가 없습니다. 조건을 완화해보세요."
	ArticleNotFound = "기사를 찾을 수 없습니다."
	ClusterNotFound = "클러스터를 찾을 수 없습니다."
	NoSourceLink    = "원문 링크 없음"
	FallbackBanner  = "Static fallback mode"
	CollectDisabled = "정적 모드에서는 비활성"
	LoadFailed      = "데이터를 불러오지 못했습니다."
)

const (
	maxBar        = 30
	titleWidth    = 60
	keywordColumn = 16
)

// Bar returns a bar of n blocks, capped at 30.
func Bar(n int) string {
	return strings.Repeat("█", max(0, min(maxBar, n)))
}

// Truncate shortens s to at most width display cells.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// OrderLabel returns the display label of an order.
func OrderLabel(o model.Order) string {
	if o == model.OrderOldest {
		return "오래된순"
	}
	return "최신순"
}

// ArticleLine formats one list entry.
func ArticleLine(a model.Article) string {
	line := fmt.Sprintf("%s (%s)", Truncate(a.Title, titleWidth), a.SourceName)
	if a.ClusterID != "" {
		line += " · 이 이슈 관련 기사"
	}
	return line
}

// NewsList formats a resolved list with its relaxation notice.
func NewsList(items []model.Article, notice string, fallback bool) string {
	var b strings.Builder
	if fallback {
		b.WriteString(FallbackBanner + "\n")
	}
	if notice != "" {
		b.WriteString(notice + "\n")
	}
	if len(items) == 0 {
		b.WriteString(EmptyList)
		return strings.TrimRight(b.String(), "\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	for i, a := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ArticleLine(a))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Article formats the detail view of an article.
func Article(a model.Article) string {
	var b strings.Builder
	b.WriteString(a.Title + "\n")
	if a.SourceName != "" || a.PublishedAt != "" {
		fmt.Fprintf(&b, "%s · %s\n", a.SourceName, a.PublishedAt)
	}
	if a.SummaryKO != "" {
		b.WriteString("\n" + a.SummaryKO + "\n")
	}
	if len(a.KeyPoints) > 0 {
		b.WriteString("\n")
		for _, p := range a.KeyPoints {
			b.WriteString("• " + p + "\n")
		}
	}
	b.WriteString("\n")
	if a.IsValidSourceURL {
		b.WriteString("원문 보기: " + a.CanonicalURL)
	} else {
		b.WriteString(NoSourceLink)
	}
	return b.String()
}

// ClusterList formats the cluster index.
func ClusterList(clusters []model.Cluster) string {
	if len(clusters) == 0 {
		return "클러스터가 없습니다."
	}
	var b strings.Builder
	b.WriteString("Clusters\n")
	for _, c := range clusters {
		fmt.Fprintf(&b, "\n%s · 이 이슈 관련 기사 %d개", c.ClusterTitle, len(c.ArticleIDs))
	}
	return b.String()
}

// ClusterDetail formats a cluster with the loaded member articles.
func ClusterDetail(c model.Cluster, members []model.Article) string {
	var b strings.Builder
	b.WriteString(c.ClusterTitle + "\n")
	if c.ClusterSummaryKO != "" {
		b.WriteString("\n" + c.ClusterSummaryKO + "\n")
	}
	if len(members) > 0 {
		b.WriteString("\n")
	}
	for _, a := range members {
		b.WriteString("- " + ArticleLine(a) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Trends formats a trend snapshot. Absent sections are omitted and absent
// topic counts render as 0.
func Trends(t model.TrendSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "최근 %d일 트렌드\n", t.RecentDays)

	if len(t.KeywordsTop) > 0 {
		b.WriteString("\n키워드 Top\n")
		for _, k := range t.KeywordsTop {
			b.WriteString(barLine(k.Keyword, k.Count))
		}
	}
	if len(t.SourceDistribution) > 0 {
		b.WriteString("\n소스 비율\n")
		for _, s := range t.SourceDistribution {
			b.WriteString(barLine(s.Source, s.Count))
		}
	}

	b.WriteString("\nAI vs SciTech\n")
	fmt.Fprintf(&b, "AI: %d / ScienceTech: %d", t.TopicCount(model.TopicAI), t.TopicCount(model.TopicScienceTech))
	return b.String()
}

func barLine(label string, n int) string {
	label = runewidth.FillRight(Truncate(label, keywordColumn), keywordColumn)
	return fmt.Sprintf("%s %s (%d)\n", label, Bar(n), n)
}
