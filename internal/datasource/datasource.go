// Package datasource resolves feed, article, cluster and trend requests against
// either the live backend or a static snapshot.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"briefing/internal/config"
	"briefing/internal/fetcher"
	"briefing/internal/filter"
	"briefing/internal/model"
	"briefing/internal/snapshot"
)

// Options configures a Source. Static is fixed for the lifetime of the Source.
type Options struct {
	Static     bool
	BaseURL    string
	Store      snapshot.Store
	HTTPClient fetcher.HTTPClient
	Timeout    time.Duration
	Log        *slog.Logger
}

// Feed is a loaded article collection. Fallback is true exactly when the
// Source runs in static mode.
type Feed struct {
	Items       []model.Article
	Fallback    bool
	GeneratedAt string
}

// Source loads briefing resources. Every call performs one read; nothing is cached.
type Source struct {
	static  bool
	baseURL string
	store   snapshot.Store
	fetcher *fetcher.Fetcher
	log     *slog.Logger
}

// New creates a Source. Static mode requires a snapshot store, live mode a base URL.
func New(opts Options) (*Source, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Source{static: opts.Static, store: opts.Store, log: log}
	if opts.Static {
		if opts.Store == nil {
			return nil, fmt.Errorf("static mode requires a snapshot store")
		}
		return s, nil
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("live mode requires a base URL")
	}
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	s.baseURL = base
	s.fetcher = fetcher.New(client)
	if opts.Timeout > 0 {
		s.fetcher.SetTimeout(opts.Timeout)
	}
	return s, nil
}

// Static reports whether the Source reads from the snapshot store.
func (s *Source) Static() bool {
	return s.static
}

// LoadFeed returns every article. A payload without items yields an empty slice.
func (s *Source) LoadFeed(ctx context.Context) (Feed, error) {
	var payload model.Feed
	if err := s.load(ctx, "feed", snapshot.FeedKey, "/api/feed", &payload); err != nil {
		return Feed{}, err
	}
	items := payload.Items
	if items == nil {
		items = []model.Article{}
	}
	return Feed{Items: items, Fallback: s.static, GeneratedAt: payload.GeneratedAt}, nil
}

// LoadArticle returns a single article. Unknown ids fail with ErrNotFound.
func (s *Source) LoadArticle(ctx context.Context, id string) (model.Article, error) {
	resource := "article " + id
	if !snapshot.ValidID(id) {
		return model.Article{}, &LoadError{Resource: resource, Err: ErrNotFound}
	}

	var a model.Article
	if err := s.load(ctx, resource, snapshot.ArticleKey(id), "/api/articles/"+url.PathEscape(id), &a); err != nil {
		return model.Article{}, err
	}
	return a, nil
}

// LoadClusters returns the cluster list.
func (s *Source) LoadClusters(ctx context.Context) ([]model.Cluster, error) {
	var clusters []model.Cluster
	if err := s.load(ctx, "clusters", snapshot.ClustersKey, "/api/clusters", &clusters); err != nil {
		return nil, err
	}
	if clusters == nil {
		clusters = []model.Cluster{}
	}
	return clusters, nil
}

// LoadCluster returns the cluster with the given id from the cluster list.
func (s *Source) LoadCluster(ctx context.Context, id string) (model.Cluster, error) {
	clusters, err := s.LoadClusters(ctx)
	if err != nil {
		return model.Cluster{}, err
	}
	c, ok := filter.FindCluster(clusters, id)
	if !ok {
		return model.Cluster{}, &LoadError{Resource: "cluster " + id, Err: ErrNotFound}
	}
	return c, nil
}

// LoadTrends returns the trend snapshot. Absent fields are left to consumers.
func (s *Source) LoadTrends(ctx context.Context) (model.TrendSnapshot, error) {
	var t model.TrendSnapshot
	if err := s.load(ctx, "trends", snapshot.TrendsKey, "/api/trends", &t); err != nil {
		return model.TrendSnapshot{}, err
	}
	return t, nil
}

// Collect asks the live backend to run a collection pass.
func (s *Source) Collect(ctx context.Context) (model.CollectResult, error) {
	if s.static {
		return model.CollectResult{}, ErrStaticMode
	}

	var res model.CollectResult
	if err := s.fetcher.PostJSON(ctx, s.baseURL+"/api/collect", &res); err != nil {
		return model.CollectResult{}, &LoadError{Resource: "collect", Err: err}
	}
	s.log.Info("collection triggered", "ok", res.OK, "message", res.Message)
	return res, nil
}

func (s *Source) load(ctx context.Context, resource, key, path string, v any) error {
	start := time.Now()
	var err error
	if s.static {
		err = s.loadSnapshot(ctx, key, v)
	} else {
		err = s.fetcher.GetJSON(ctx, s.baseURL+path, v)
	}

	if errors.Is(err, fetcher.ErrNotFound) || errors.Is(err, snapshot.ErrNotExist) {
		err = fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		s.log.Debug("load failed", "resource", resource, "static", s.static, "error", err)
		return &LoadError{Resource: resource, Err: err}
	}

	s.log.Debug("loaded", "resource", resource, "static", s.static, "elapsed", time.Since(start))
	return nil
}

func (s *Source) loadSnapshot(ctx context.Context, key string, v any) error {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// NewFromConfig creates a Source for the configured mode. In static mode the
// snapshot store is opened from cfg.SnapshotSource.
func NewFromConfig(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Source, error) {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	opts := Options{
		Static:     cfg.StaticMode,
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: client,
		Timeout:    cfg.HTTPTimeout,
		Log:        log,
	}
	if cfg.StaticMode {
		store, err := snapshot.Open(ctx, cfg.SnapshotSource, snapshot.Options{
			HTTPClient: client,
			S3:         snapshot.S3Config{Region: cfg.S3Region, UsePathStyle: cfg.S3UsePathStyle},
		})
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		opts.Store = store
	}
	return New(opts)
}
