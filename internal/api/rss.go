package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"briefing/internal/filter"
	"briefing/internal/model"
)

// feedXML serves the resolved list as RSS 2.0, accepting the same
// parameters as /api/news.
func (s *Server) feedXML(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loaded, err := s.src.LoadFeed(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	now := s.now()
	res := filter.Resolve(loaded.Items, q, now)

	desc := "AI / ScienceTech news briefing"
	if res.Notice != "" {
		desc += " (" + res.Notice + ")"
	}

	feed := &feeds.Feed{
		Title:       "Briefing",
		Link:        &feeds.Link{Href: s.baseURL(c)},
		Description: desc,
		Updated:     now.UTC(),
		Items:       make([]*feeds.Item, 0, len(res.Items)),
	}
	for _, a := range res.Items {
		feed.Items = append(feed.Items, toFeedItem(a))
	}

	rss := (&feeds.Rss{Feed: feed}).RssFeed()
	for i, item := range rss.Items {
		item.Category = string(res.Items[i].Topic)
	}

	out, err := feeds.ToXML(rss)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(out))
}

func toFeedItem(a model.Article) *feeds.Item {
	item := &feeds.Item{
		Title:       a.Title,
		Link:        &feeds.Link{},
		Id:          a.ID,
		IsPermaLink: "false",
		Description: a.SummaryKO,
	}
	if a.IsValidSourceURL {
		item.Link.Href = a.CanonicalURL
	}
	if t, err := a.Published(); err == nil {
		item.Created = t.UTC()
	}
	return item
}

// baseURL is the public root of the server: the configured public URL, or
// the scheme and host the request arrived with, honoring proxy headers.
func (s *Server) baseURL(c *gin.Context) string {
	if s.publicURL != "" {
		return strings.TrimRight(s.publicURL, "/") + "/"
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := firstHeaderValue(c, "X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(proto)
	}
	host := c.Request.Host
	if fwd := firstHeaderValue(c, "X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	return scheme + "://" + host + "/"
}

func firstHeaderValue(c *gin.Context, key string) string {
	v, _, _ := strings.Cut(c.GetHeader(key), ",")
	return strings.TrimSpace(v)
}
