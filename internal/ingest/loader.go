package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
)

// DefaultBatchSize is how many accepted rows are written between
// transaction commits when the caller does not choose a size.
const DefaultBatchSize = 100_000

// Store is the persistence surface the loader drives. Writes accumulate
// in a transaction until Commit; Rollback discards the open transaction.
// Close releases the store's resources and must be called exactly once.
type Store interface {
	// CreateAll ensures the tables for every registered entity type exist.
	CreateAll(ctx context.Context) error
	// QueryKeys returns every stored primary key for the definition's
	// table, rendered in canonical string form.
	QueryKeys(ctx context.Context, def *Definition) ([]string, error)
	// Insert stages a new record.
	Insert(ctx context.Context, def *Definition, e gtfs.Entity) error
	// UpdateByKey stages an overwrite of the record with the entity's key.
	UpdateByKey(ctx context.Context, def *Definition, e gtfs.Entity) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config carries the loader's tunables.
type Config struct {
	// BatchSize is the number of accepted rows between commits. Zero
	// means DefaultBatchSize.
	BatchSize int
	// Files maps entity type names to feed file names, overriding the
	// registry defaults. Populated from the feed manifest.
	Files map[string]string
}

// TableStats counts the outcomes for one feed table.
type TableStats struct {
	Name     string `json:"name"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
}

// RunResult summarizes one completed ingestion run.
type RunResult struct {
	RunID      uuid.UUID    `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Tables     []TableStats `json:"tables"`
}

// Loader reads a feed directory table by table, validates every row, and
// upserts the accepted entities into the store. Processing is
// single-threaded: tables load in dependency order, rows in file order.
type Loader struct {
	store     Store
	batchSize int
	files     map[string]string
	log       *slog.Logger
}

// NewLoader wires a loader to its store. A nil logger discards progress
// output.
func NewLoader(store Store, cfg Config, log *slog.Logger) *Loader {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{store: store, batchSize: cfg.BatchSize, files: cfg.Files, log: log}
}

// feedFile resolves the file a definition reads from, honoring manifest
// overrides.
func (l *Loader) feedFile(def *Definition) string {
	if f, ok := l.files[def.Name]; ok {
		return f
	}
	return def.File
}

// Run ingests every registered feed table from dir under the given run
// ID. The first invalid row aborts the run: the open transaction rolls
// back, the store closes, and the row's field error comes back to the
// caller. On success the store is committed and closed.
func (l *Loader) Run(ctx context.Context, runID uuid.UUID, dir string) (*RunResult, error) {
	result := &RunResult{RunID: runID, StartedAt: time.Now().UTC()}
	log := l.log.With("run_id", result.RunID)
	log.Info("ingestion run starting", "dir", dir, "batch_size", l.batchSize)

	ordered, err := Order(Definitions())
	if err != nil {
		l.store.Close(ctx)
		return nil, err
	}

	if err := l.store.CreateAll(ctx); err != nil {
		l.store.Close(ctx)
		return nil, fmt.Errorf("create tables: %w", err)
	}

	refs := newRefSets()
	for _, def := range ordered {
		stats, err := l.loadTable(ctx, def, dir, refs, log)
		if err != nil {
			l.store.Rollback(ctx)
			l.store.Close(ctx)
			return nil, err
		}
		result.Tables = append(result.Tables, stats)
	}

	if err := l.store.Commit(ctx); err != nil {
		l.store.Rollback(ctx)
		l.store.Close(ctx)
		return nil, fmt.Errorf("final commit: %w", err)
	}
	if err := l.store.Close(ctx); err != nil {
		return nil, fmt.Errorf("close store: %w", err)
	}

	result.FinishedAt = time.Now().UTC()
	log.Info("ingestion run finished", "elapsed", result.FinishedAt.Sub(result.StartedAt))
	return result, nil
}

func (l *Loader) loadTable(ctx context.Context, def *Definition, dir string, refs refSets, log *slog.Logger) (TableStats, error) {
	stats := TableStats{Name: def.Name}
	log = log.With("table", def.Name)

	existingKeys, err := l.store.QueryKeys(ctx, def)
	if err != nil {
		return stats, fmt.Errorf("query %s keys: %w", def.Name, err)
	}
	existing := make(map[string]struct{}, len(existingKeys))
	for _, k := range existingKeys {
		existing[k] = struct{}{}
		refs.add(def.Name, k)
	}

	file := l.feedFile(def)
	table, err := openTable(dir, file)
	if err != nil {
		return stats, err
	}
	defer table.Close()

	pending := 0
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		row, err := table.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read %s line %d: %w", file, table.Line()+1, err)
		}

		res, err := def.Schema.Load(row, refs)
		if err != nil {
			log.Error("invalid row aborts run",
				"file", file, "line", table.Line(), "row", row.String(), "err", err)
			return stats, err
		}
		if res.Skipped {
			stats.Skipped++
			log.Debug("row skipped", "line", table.Line(), "reason", res.SkipReason)
			continue
		}

		key := res.Entity.Key()
		seen := refs.HasKey(def.Name, key)
		if _, ok := existing[key]; ok || seen {
			if err := l.store.UpdateByKey(ctx, def, res.Entity); err != nil {
				return stats, fmt.Errorf("update %s %s: %w", def.Name, key, err)
			}
			stats.Updated++
		} else {
			if err := l.store.Insert(ctx, def, res.Entity); err != nil {
				return stats, fmt.Errorf("insert %s %s: %w", def.Name, key, err)
			}
			stats.Inserted++
		}
		refs.add(def.Name, key)

		pending++
		if pending >= l.batchSize {
			if err := l.store.Commit(ctx); err != nil {
				return stats, fmt.Errorf("commit %s batch: %w", def.Name, err)
			}
			pending = 0
			log.Info("batch committed",
				"inserted", stats.Inserted, "updated", stats.Updated, "skipped", stats.Skipped)
		}
	}

	if err := l.store.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit %s: %w", def.Name, err)
	}
	log.Info("table loaded",
		"inserted", stats.Inserted, "updated", stats.Updated, "skipped", stats.Skipped)
	return stats, nil
}
