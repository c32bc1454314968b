// Package api serves the briefing reader over HTTP.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"briefing/internal/datasource"
	"briefing/internal/model"
)

// Source is the interface for loading briefing resources.
type Source interface {
	Static() bool
	LoadFeed(ctx context.Context) (datasource.Feed, error)
	LoadArticle(ctx context.Context, id string) (model.Article, error)
	LoadClusters(ctx context.Context) ([]model.Cluster, error)
	LoadTrends(ctx context.Context) (model.TrendSnapshot, error)
	Collect(ctx context.Context) (model.CollectResult, error)
}

// Server holds the HTTP handlers.
type Server struct {
	src       Source
	log       *slog.Logger
	now       func() time.Time
	publicURL string
}

// New creates a Server reading from src.
func New(src Source, log *slog.Logger) *Server {
	return &Server{src: src, log: log, now: time.Now}
}

// SetPublicURL sets the externally visible root used for feed links.
// When empty, links are derived from each request.
func (s *Server) SetPublicURL(u string) {
	s.publicURL = u
}

// Router constructs a gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.health)
	r.GET("/feed.xml", s.feedXML)

	g := r.Group("/api")
	g.GET("/news", s.listNews)
	g.GET("/articles/:id", s.getArticle)
	g.GET("/clusters", s.listClusters)
	g.GET("/clusters/:id", s.getCluster)
	g.GET("/trends", s.getTrends)
	g.POST("/collect", s.collect)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
