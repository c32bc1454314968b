package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"briefing/internal/config"
	"briefing/internal/datasource"
	"briefing/internal/exporter"
	"briefing/internal/scheduler"
	"briefing/internal/snapshot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	out := flag.String("out", cfg.SnapshotSource, "snapshot destination: directory or s3://bucket/prefix")
	apiURL := flag.String("api", cfg.APIBaseURL, "live backend base URL")
	interval := flag.Duration("interval", 0, "export repeatedly at this interval (0 exports once)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapshot [-out dest] [-api url] [-interval duration]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Exports feed, articles, clusters and trends from the live backend")
		fmt.Fprintln(os.Stderr, "into a static snapshot readable with STATIC_MODE=true.")
		fmt.Fprintln(os.Stderr, "")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := newLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	src, err := datasource.New(datasource.Options{
		BaseURL:    *apiURL,
		HTTPClient: client,
		Timeout:    cfg.HTTPTimeout,
		Log:        log,
	})
	if err != nil {
		log.Error("create data source", "error", err)
		os.Exit(1)
	}

	store, err := snapshot.Open(ctx, *out, snapshot.Options{
		HTTPClient: client,
		S3:         snapshot.S3Config{Region: cfg.S3Region, UsePathStyle: cfg.S3UsePathStyle},
	})
	if err != nil {
		log.Error("open snapshot store", "dest", *out, "error", err)
		os.Exit(1)
	}

	exp := exporter.New(src, store, log)

	if *interval > 0 {
		sched := scheduler.New(exp, log)
		sched.SetTickInterval(*interval)
		log.Info("starting scheduled export", "dest", *out, "interval", *interval)
		sched.Run(ctx)
		log.Info("export scheduler stopped")
		return
	}

	report, err := exp.Export(ctx)
	if err != nil {
		log.Error("export snapshot", "dest", *out, "error", err)
		os.Exit(1)
	}
	fmt.Printf("exported %d articles, %d clusters to %s (%d quarantined, %d duplicates)\n",
		report.Articles, report.Clusters, *out, report.Quarantined, report.Duplicates)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
