package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mbtahub/gtfs-ingest/internal/config"
	"github.com/mbtahub/gtfs-ingest/internal/ingest"
	"github.com/mbtahub/gtfs-ingest/internal/logging"
	"github.com/mbtahub/gtfs-ingest/internal/service"
	"github.com/mbtahub/gtfs-ingest/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"feed_dir", cfg.Ingest.FeedDir,
		"batch_size", cfg.Ingest.BatchSize,
	)

	// Load the feed manifest, when configured
	var files map[string]string
	if cfg.Ingest.ManifestPath != "" {
		manifest, err := config.LoadManifest(cfg.Ingest.ManifestPath)
		if err != nil {
			slog.Error("failed to load feed manifest", "error", err)
			os.Exit(1)
		}
		if err := ingest.ValidateFiles(manifest.Feed.Tables); err != nil {
			slog.Error("invalid feed manifest", "error", err)
			os.Exit(1)
		}
		files = manifest.Feed.Tables
		slog.Info("feed manifest loaded",
			"path", cfg.Ingest.ManifestPath,
			"overrides", len(files),
		)
	}

	slog.Info("entity types registered", "count", len(ingest.Definitions()))

	svc := service.New(cfg, files, slog.Default())
	server := web.NewServer(svc, cfg.Server)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
