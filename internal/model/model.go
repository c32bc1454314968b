// Package model defines the domain types used across the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Topic is the classification label attached to an article.
type Topic string

// Supported topics. TopicAll is a filter wildcard, never an article value.
const (
	TopicAI          Topic = "AI"
	TopicScienceTech Topic = "ScienceTech"
	TopicOther       Topic = "Other"
	TopicAll         Topic = "All"
)

// ParseTopic converts a user supplied topic filter into a Topic.
// Matching is case-insensitive; an empty string selects TopicAll.
func ParseTopic(s string) (Topic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TopicAll, nil
	case "ai":
		return TopicAI, nil
	case "sciencetech", "scitech":
		return TopicScienceTech, nil
	case "other":
		return TopicOther, nil
	}
	return "", fmt.Errorf("invalid topic %q, use: All, AI, ScienceTech, Other", s)
}

// Period is a maximum article age relative to the current instant.
type Period string

// Supported periods.
const (
	Period24h Period = "24h"
	Period7d  Period = "7d"
	Period30d Period = "30d"
	PeriodAll Period = "all"
)

// Duration returns the window size. PeriodAll reports ok=false: it has no cutoff.
func (p Period) Duration() (time.Duration, bool) {
	switch p {
	case Period24h:
		return 24 * time.Hour, true
	case Period7d:
		return 7 * 24 * time.Hour, true
	case Period30d:
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}

// ParsePeriod converts a user supplied period. An empty string selects Period24h.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Period24h, nil
	case Period24h, Period7d, Period30d, PeriodAll:
		return p, nil
	}
	return "", fmt.Errorf("invalid period %q, use: 24h, 7d, 30d, all", s)
}

// Order selects the primary sort direction of a resolved list.
type Order string

// Supported orders.
const (
	OrderLatest Order = "latest"
	OrderOldest Order = "oldest"
)

// ParseOrder converts a user supplied order. An empty string selects OrderLatest.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderLatest, nil
	case OrderLatest, OrderOldest:
		return o, nil
	}
	return "", fmt.Errorf("invalid order %q, use: latest, oldest", s)
}

// Article is a summarized news item as produced by the upstream service.
type Article struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	SourceName          string   `json:"source_name"`
	SourceURL           string   `json:"source_url"`
	PublishedAt         string   `json:"published_at"`
	Topic               Topic    `json:"topic"`
	CanonicalURL        string   `json:"canonical_url"`
	OriginalURL         string   `json:"original_url"`
	IsValidSourceURL    bool     `json:"is_valid_source_url"`
	SourceURLStatusCode *int     `json:"source_url_status_code,omitempty"`
	SummaryKO           string   `json:"summary_ko"`
	KeyPoints           []string `json:"key_points,omitempty"`
	Keywords            []string `json:"keywords"`
	// ClusterID is a weak reference; the cluster may not be loaded.
	ClusterID string `json:"cluster_id,omitempty"`
}

// Published returns the publish instant of the article.
func (a Article) Published() (time.Time, error) {
	return ParseTimestamp(a.PublishedAt)
}

// Feed is the payload of the feed resource.
type Feed struct {
	Items       []Article `json:"items"`
	GeneratedAt string    `json:"generated_at,omitempty"`
}

// Cluster groups related articles by id. Membership is a relation only:
// ArticleIDs may reference articles that are not loaded.
type Cluster struct {
	ClusterID        string   `json:"cluster_id"`
	ClusterTitle     string   `json:"cluster_title"`
	ClusterSummaryKO string   `json:"cluster_summary_ko"`
	Keywords         []string `json:"keywords"`
	ArticleIDs       []string `json:"article_ids"`
	UpdatedAt        string   `json:"updated_at"`
}

// KeywordCount is one entry of the keyword ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SourceCount is one entry of the source distribution.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// TrendSnapshot holds precomputed keyword and source statistics.
// Every field may be absent in the payload.
type TrendSnapshot struct {
	RecentDays         int            `json:"recent_days"`
	KeywordsTop        []KeywordCount `json:"keywords_top,omitempty"`
	SourceDistribution []SourceCount  `json:"source_distribution,omitempty"`
	TopicRatio         map[Topic]int  `json:"topic_ratio,omitempty"`
}

// TopicCount returns the article count for a topic, 0 when absent.
func (t TrendSnapshot) TopicCount(topic Topic) int {
	return t.TopicRatio[topic]
}

// CollectResult is the response of a live collection run.
type CollectResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
