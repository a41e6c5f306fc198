// Package service coordinates ingestion runs for the HTTP surface:
// it enforces the one-run-at-a-time rule, opens a fresh store per run,
// and remembers the outcome of the most recent run.
package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbtahub/gtfs-ingest/internal/config"
	"github.com/mbtahub/gtfs-ingest/internal/ingest"
	"github.com/mbtahub/gtfs-ingest/internal/store"
	"github.com/mbtahub/gtfs-ingest/internal/web"
)

// Ingestion runs feed loads on request. Safe for concurrent use.
type Ingestion struct {
	cfg   *config.Config
	files map[string]string
	log   *slog.Logger

	mu      sync.Mutex
	running bool
	latest  *web.RunStatus
}

// New builds the ingestion service. files carries the feed manifest's
// table overrides, nil when no manifest is configured.
func New(cfg *config.Config, files map[string]string, log *slog.Logger) *Ingestion {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ingestion{cfg: cfg, files: files, log: log}
}

// StartRun launches an ingestion run in the background and returns its
// ID. Only one run may be active at a time.
func (s *Ingestion) StartRun(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return "", web.ErrRunInFlight
	}

	runID := uuid.New()
	s.running = true
	s.latest = &web.RunStatus{
		RunID:     runID.String(),
		State:     web.RunRunning,
		StartedAt: time.Now().UTC(),
	}

	go s.run(runID)
	return runID.String(), nil
}

// LatestRun reports the most recent run's status.
func (s *Ingestion) LatestRun() (web.RunStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		return web.RunStatus{}, false
	}
	return *s.latest, true
}

func (s *Ingestion) run(runID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Ingest.Timeout)
	defer cancel()

	result, err := s.runOnce(ctx, runID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	now := time.Now().UTC()
	s.latest.FinishedAt = &now
	if err != nil {
		s.latest.State = web.RunFailed
		s.latest.Error = err.Error()
		s.log.Error("ingestion run failed", "run_id", runID, "error", err)
		return
	}
	s.latest.State = web.RunSucceeded
	s.latest.Tables = result.Tables
}

func (s *Ingestion) runOnce(ctx context.Context, runID uuid.UUID) (*ingest.RunResult, error) {
	st, err := store.NewPostgres(ctx, s.cfg.Database, s.log)
	if err != nil {
		return nil, err
	}

	loader := ingest.NewLoader(st, ingest.Config{
		BatchSize: s.cfg.Ingest.BatchSize,
		Files:     s.files,
	}, s.log)

	return loader.Run(ctx, runID, s.cfg.Ingest.FeedDir)
}
