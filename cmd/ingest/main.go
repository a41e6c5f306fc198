// Command ingest runs one feed ingestion from the command line:
// optionally fetch and unpack a published feed archive, then validate
// and upsert every table into the database.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/mbtahub/gtfs-ingest/internal/config"
	"github.com/mbtahub/gtfs-ingest/internal/ingest"
	"github.com/mbtahub/gtfs-ingest/internal/logging"
	"github.com/mbtahub/gtfs-ingest/internal/retriever"
	"github.com/mbtahub/gtfs-ingest/internal/store"
)

func main() {
	var (
		feedDir   = pflag.String("feed-dir", "", "directory holding the extracted feed tables (default from config)")
		fetchURL  = pflag.String("fetch", "", "download and unpack the feed archive at this URL before loading")
		manifest  = pflag.String("manifest", "", "feed manifest YAML path (default from config)")
		batchSize = pflag.Int("batch-size", 0, "accepted rows per commit (default from config)")
	)
	pflag.Parse()

	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if *feedDir != "" {
		cfg.Ingest.FeedDir = *feedDir
	}
	if *manifest != "" {
		cfg.Ingest.ManifestPath = *manifest
	}
	if *batchSize > 0 {
		cfg.Ingest.BatchSize = *batchSize
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Ingest.Timeout)
	defer cancel()

	var files map[string]string
	fetch := *fetchURL
	if cfg.Ingest.ManifestPath != "" {
		m, err := config.LoadManifest(cfg.Ingest.ManifestPath)
		if err != nil {
			slog.Error("failed to load feed manifest", "error", err)
			os.Exit(1)
		}
		if err := ingest.ValidateFiles(m.Feed.Tables); err != nil {
			slog.Error("invalid feed manifest", "error", err)
			os.Exit(1)
		}
		files = m.Feed.Tables
		if fetch == "" {
			fetch = m.Feed.URL
		}
	}

	if fetch != "" {
		r := retriever.New(nil, slog.Default())
		if err := r.Fetch(ctx, fetch, cfg.Ingest.FeedDir); err != nil {
			slog.Error("feed fetch failed", "error", err)
			os.Exit(1)
		}
	}

	if files != nil {
		if err := retriever.VerifyFiles(cfg.Ingest.FeedDir, files); err != nil {
			slog.Error("feed verification failed", "error", err)
			os.Exit(1)
		}
	}

	st, err := store.NewPostgres(ctx, cfg.Database, slog.Default())
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	loader := ingest.NewLoader(st, ingest.Config{
		BatchSize: cfg.Ingest.BatchSize,
		Files:     files,
	}, slog.Default())

	result, err := loader.Run(ctx, uuid.New(), cfg.Ingest.FeedDir)
	if err != nil {
		slog.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}

	for _, t := range result.Tables {
		slog.Info("table summary",
			"table", t.Name,
			"inserted", t.Inserted,
			"updated", t.Updated,
			"skipped", t.Skipped,
		)
	}
}
