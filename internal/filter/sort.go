package filter

import (
	"slices"
	"strings"
	"time"

	"briefing/internal/model"
)

// TieKey is the secondary sort key for articles published at the same instant.
func TieKey(a model.Article) string {
	return a.SourceName + ":" + a.Title + ":" + a.ID
}

// Sort orders items in place by publish instant (descending for
// OrderLatest, ascending for OrderOldest), breaking ties by TieKey ascending.
func Sort(items []model.Article, order model.Order) {
	candidates := newCandidates(items)
	sortCandidates(candidates, order)
	for i, c := range candidates {
		items[i] = c.article
	}
}

func sortCandidates(cs []candidate, order model.Order) {
	slices.SortFunc(cs, func(a, b candidate) int {
		if c := comparePublished(a.published, b.published, order); c != 0 {
			return c
		}
		return strings.Compare(TieKey(a.article), TieKey(b.article))
	})
}

func comparePublished(a, b time.Time, order model.Order) int {
	c := a.Compare(b)
	if order == model.OrderOldest {
		return c
	}
	return -c
}
