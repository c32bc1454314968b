// Package filter implements the article list resolution engine.
package filter

import (
	"strings"
	"time"

	"briefing/internal/model"
)

// Query is the user's filter and sort selection.
type Query struct {
	Topic  model.Topic
	Period model.Period
	Text   string
	Order  model.Order
}

// candidate pairs an article with its resolved publish instant.
// Unparsable timestamps resolve to the zero time, the oldest possible instant.
type candidate struct {
	article   model.Article
	published time.Time
	haystack  string
}

func newCandidates(items []model.Article) []candidate {
	out := make([]candidate, len(items))
	for i, a := range items {
		published, err := a.Published()
		if err != nil {
			published = time.Time{}
		}
		out[i] = candidate{
			article:   a,
			published: published,
			haystack:  strings.ToLower(a.Title + a.SummaryKO),
		}
	}
	return out
}

// Match checks whether an article passes the topic, age and text constraints
// of q for the given period. Text matching is a case-insensitive substring
// search over the title followed by the Korean summary.
func Match(a model.Article, q Query, period model.Period, now time.Time) bool {
	published, err := a.Published()
	if err != nil {
		published = time.Time{}
	}
	return matches(candidate{
		article:   a,
		published: published,
		haystack:  strings.ToLower(a.Title + a.SummaryKO),
	}, q.Topic, period, normalizeText(q.Text), now)
}

func matches(c candidate, topic model.Topic, period model.Period, needle string, now time.Time) bool {
	if topic != "" && topic != model.TopicAll && c.article.Topic != topic {
		return false
	}
	if window, ok := period.Duration(); ok {
		if c.published.IsZero() || now.Sub(c.published) > window {
			return false
		}
	}
	if needle != "" && !strings.Contains(c.haystack, needle) {
		return false
	}
	return true
}

// normalizeText lowercases a query. Whitespace is significant: a query of
// " " only matches text containing a space.
func normalizeText(s string) string {
	return strings.ToLower(s)
}
