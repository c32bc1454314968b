package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"briefing/internal/model"
)

func TestBar(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: -2, want: 0},
		{n: 0, want: 0},
		{n: 3, want: 3},
		{n: 30, want: 30},
		{n: 45, want: 30},
	}

	for _, tt := range tests {
		got := Bar(tt.n)
		if diff := cmp.Diff(tt.want, utf8.RuneCountInString(got)); diff != "" {
			t.Errorf("Bar(%d) length mismatch (-want +got):\n%s", tt.n, diff)
		}
		if strings.Trim(got, "█") != "" {
			t.Errorf("Bar(%d) = %q contains other runes", tt.n, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "short", width: 10, want: "short"},
		{name: "ascii", in: "abcdefghij", width: 5, want: "abcd…"},
		{name: "wide runes", in: "한국어뉴스", width: 6, want: "한국…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Truncate(tt.in, tt.width)); diff != "" {
				t.Errorf("Truncate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewsList(t *testing.T) {
	items := []model.Article{
		{ID: "a1", Title: "GPU shortage", SourceName: "Wire", ClusterID: "c1"},
		{ID: "a2", Title: "Mars lander", SourceName: "Space"},
	}

	tests := []struct {
		name     string
		items    []model.Article
		notice   string
		fallback bool
		want     string
	}{
		{
			name:  "plain list",
			items: items,
			want:  "1. GPU shortage (Wire) · 이 이슈 관련 기사\n2. Mars lander (Space)",
		},
		{
			name:     "relaxed in fallback mode",
			items:    items[1:],
			notice:   "기간을 자동 확장했습니다: 24h → 7d",
			fallback: true,
			want:     "Static fallback mode\n기간을 자동 확장했습니다: 24h → 7d\n\n1. Mars lander (Space)",
		},
		{
			name:   "no match",
			notice: "조건에 맞는 기사가 없습니다.",
			want:   "조건에 맞는 기사가 없습니다.\n" + EmptyList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewsList(tt.items, tt.notice, tt.fallback)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewsList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArticle(t *testing.T) {
	a := model.Article{
		Title:            "Chip export rules",
		SourceName:       "Wire",
		PublishedAt:      "2026-03-01T10:00:00Z",
		SummaryKO:        "반도체 수출 규제가 강화되었다.",
		KeyPoints:        []string{"첫째", "둘째"},
		CanonicalURL:     "https://example.com/chips",
		IsValidSourceURL: true,
	}

	want := "Chip export rules\nWire · 2026-03-01T10:00:00Z\n\n반도체 수출 규제가 강화되었다.\n\n• 첫째\n• 둘째\n\n원문 보기: https://example.com/chips"
	if diff := cmp.Diff(want, Article(a)); diff != "" {
		t.Errorf("Article() mismatch (-want +got):\n%s", diff)
	}

	a.IsValidSourceURL = false
	got := Article(a)
	if !strings.HasSuffix(got, NoSourceLink) {
		t.Errorf("expected %q suffix, got:\n%s", NoSourceLink, got)
	}
	if strings.Contains(got, a.CanonicalURL) {
		t.Errorf("invalid source URL was rendered:\n%s", got)
	}
}

func TestClusters(t *testing.T) {
	clusters := []model.Cluster{
		{ClusterID: "c1", ClusterTitle: "Chips", ClusterSummaryKO: "요약", ArticleIDs: []string{"a1", "a2", "gone"}},
		{ClusterID: "c2", ClusterTitle: "Space", ArticleIDs: nil},
	}

	want := "Clusters\n\nChips · 이 이슈 관련 기사 3개\nSpace · 이 이슈 관련 기사 0개"
	if diff := cmp.Diff(want, ClusterList(clusters)); diff != "" {
		t.Errorf("ClusterList() mismatch (-want +got):\n%s", diff)
	}

	members := []model.Article{{ID: "a1", Title: "GPU", SourceName: "Wire"}}
	wantDetail := "Chips\n\n요약\n\n- GPU (Wire)"
	if diff := cmp.Diff(wantDetail, ClusterDetail(clusters[0], members)); diff != "" {
		t.Errorf("ClusterDetail() mismatch (-want +got):\n%s", diff)
	}
}

func TestTrends(t *testing.T) {
	got := Trends(model.TrendSnapshot{
		RecentDays:         7,
		KeywordsTop:        []model.KeywordCount{{Keyword: "llm", Count: 4}},
		SourceDistribution: []model.SourceCount{{Source: "Wire", Count: 40}},
		TopicRatio:         map[model.Topic]int{model.TopicAI: 5},
	})

	for _, want := range []string{
		"최근 7일 트렌드",
		"키워드 Top",
		"llm ",
		"████ (4)",
		Bar(30) + " (40)",
		"AI: 5 / ScienceTech: 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}

	empty := Trends(model.TrendSnapshot{})
	if strings.Contains(empty, "키워드 Top") || strings.Contains(empty, "소스 비율") {
		t.Errorf("absent sections rendered:\n%s", empty)
	}
	if !strings.HasSuffix(empty, "AI: 0 / ScienceTech: 0") {
		t.Errorf("absent topic counts not defaulted:\n%s", empty)
	}
}
