package bot

import (
	"fmt"
	"strings"

	"briefing/internal/filter"
	"briefing/internal/model"
)

const maxQueryLen = 200

const newsUsage = "Usage: /news [topic] [period] [order] [query...]\n" +
	"topic: All, AI, ScienceTech, Other\n" +
	"period: 24h, 7d, 30d, all\n" +
	"order: latest, oldest"

// ParseNewsArgs parses the arguments of /news. Leading words that name a
// topic, period or order set that field once; the first word that does not
// starts the free-text query.
func ParseNewsArgs(args string) (filter.Query, error) {
	q := filter.Query{
		Topic:  model.TopicAll,
		Period: model.Period24h,
		Order:  model.OrderLatest,
	}

	var haveTopic, havePeriod, haveOrder bool
	words := strings.Fields(args)
	i := 0
	for ; i < len(words); i++ {
		w := words[i]
		if !haveTopic {
			if t, err := model.ParseTopic(w); err == nil {
				q.Topic, haveTopic = t, true
				continue
			}
		}
		if !havePeriod {
			if p, err := model.ParsePeriod(w); err == nil {
				q.Period, havePeriod = p, true
				continue
			}
		}
		if !haveOrder {
			if o, err := model.ParseOrder(w); err == nil {
				q.Order, haveOrder = o, true
				continue
			}
		}
		break
	}

	q.Text = strings.Join(words[i:], " ")
	if len(q.Text) > maxQueryLen {
		return filter.Query{}, fmt.Errorf("query is too long (max %d bytes)", maxQueryLen)
	}
	return q, nil
}

// ParseIDArg extracts a resource id from a command argument string.
func ParseIDArg(args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", fmt.Errorf("id is required")
	}
	return fields[0], nil
}
