// Package exporter writes a complete static snapshot from a live source.
package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"briefing/internal/datasource"
	"briefing/internal/model"
	"briefing/internal/snapshot"
)

// Source is the subset of datasource.Source read by the exporter.
type Source interface {
	LoadFeed(ctx context.Context) (datasource.Feed, error)
	LoadClusters(ctx context.Context) ([]model.Cluster, error)
	LoadTrends(ctx context.Context) (model.TrendSnapshot, error)
}

// Report summarizes one export run.
type Report struct {
	Articles    int
	Quarantined int
	Duplicates  int
	Clusters    int
}

// Exporter copies live resources into a snapshot store.
type Exporter struct {
	src   Source
	store snapshot.Store
	log   *slog.Logger
	now   func() time.Time
}

// New creates an Exporter.
func New(src Source, store snapshot.Store, log *slog.Logger) *Exporter {
	return &Exporter{
		src:   src,
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Export loads every resource and writes the snapshot. The feed is written
// last so readers never see a feed that references unwritten articles.
// Articles with unparsable timestamps or unusable ids are quarantined.
func (e *Exporter) Export(ctx context.Context) (Report, error) {
	feed, err := e.src.LoadFeed(ctx)
	if err != nil {
		return Report{}, err
	}
	clusters, err := e.src.LoadClusters(ctx)
	if err != nil {
		return Report{}, err
	}
	trends, err := e.src.LoadTrends(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	kept := make([]model.Article, 0, len(feed.Items))
	seen := make(map[string]bool, len(feed.Items))

	for _, a := range feed.Items {
		if !snapshot.ValidID(a.ID) {
			e.log.Warn("quarantined article", "id", a.ID, "reason", "invalid id")
			report.Quarantined++
			continue
		}
		if _, err := a.Published(); err != nil {
			e.log.Warn("quarantined article", "id", a.ID, "published_at", a.PublishedAt, "error", err)
			report.Quarantined++
			continue
		}
		if seen[a.ID] {
			e.log.Warn("duplicate article", "id", a.ID)
			report.Duplicates++
			continue
		}
		seen[a.ID] = true

		if err := e.write(ctx, snapshot.ArticleKey(a.ID), a); err != nil {
			return report, err
		}
		kept = append(kept, a)
	}
	report.Articles = len(kept)

	if err := e.write(ctx, snapshot.ClustersKey, clusters); err != nil {
		return report, err
	}
	report.Clusters = len(clusters)

	if err := e.write(ctx, snapshot.TrendsKey, trends); err != nil {
		return report, err
	}

	out := model.Feed{
		Items:       kept,
		GeneratedAt: e.now().UTC().Format(time.RFC3339),
	}
	if err := e.write(ctx, snapshot.FeedKey, out); err != nil {
		return report, err
	}

	e.log.Info("snapshot exported",
		"articles", report.Articles,
		"quarantined", report.Quarantined,
		"duplicates", report.Duplicates,
		"clusters", report.Clusters,
	)
	return report, nil
}

func (e *Exporter) write(ctx context.Context, key string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := e.store.Put(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
