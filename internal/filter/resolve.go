package filter

import (
	"fmt"
	"time"

	"briefing/internal/model"
)

// NoMatchNotice is reported when no period on the ladder yields a result.
const NoMatchNotice = "조건에 맞는 기사가 없습니다."

// Result is the resolved, ordered article list.
type Result struct {
	Items []model.Article
	// Period is the period that produced Items. It differs from the
	// requested period when the recency constraint was relaxed.
	Period model.Period
	// Notice is empty when Period equals the requested period.
	Notice string
}

// Relaxed reports whether the recency window was widened.
func (r Result) Relaxed(requested model.Period) bool {
	return r.Period != requested
}

// Ladder returns the periods to try for a requested period: the request
// itself, then 7d, 30d and all, keeping only the first occurrence of each.
func Ladder(requested model.Period) []model.Period {
	steps := []model.Period{requested, model.Period7d, model.Period30d, model.PeriodAll}
	seen := make(map[model.Period]bool, len(steps))
	out := make([]model.Period, 0, len(steps))
	for _, p := range steps {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// RelaxNotice describes a widening from requested to used.
func RelaxNotice(requested, used model.Period) string {
	if requested == used {
		return ""
	}
	return fmt.Sprintf("기간을 자동 확장했습니다: %s → %s", requested, used)
}

// Resolve filters items by q, widening only the recency window along the
// Ladder until a non-empty result is found, and sorts the result by q.Order.
// Topic and text constraints are never relaxed. Resolve does not modify items.
func Resolve(items []model.Article, q Query, now time.Time) Result {
	requested := q.Period
	if requested == "" {
		requested = model.Period24h
	}
	needle := normalizeText(q.Text)
	candidates := newCandidates(items)

	for _, p := range Ladder(requested) {
		var hits []candidate
		for _, c := range candidates {
			if matches(c, q.Topic, p, needle, now) {
				hits = append(hits, c)
			}
		}
		if len(hits) == 0 {
			continue
		}
		sortCandidates(hits, q.Order)
		out := make([]model.Article, len(hits))
		for i, c := range hits {
			out[i] = c.article
		}
		return Result{Items: out, Period: p, Notice: RelaxNotice(requested, p)}
	}

	return Result{Items: []model.Article{}, Period: model.PeriodAll, Notice: NoMatchNotice}
}
