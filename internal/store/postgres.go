// Package store persists validated feed entities in Postgres. The
// Postgres type implements the ingest engine's Store interface on top
// of a pgx connection pool, staging writes in a lazily-opened
// transaction that commits at the engine's batch boundaries.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbtahub/gtfs-ingest/internal/config"
	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
	"github.com/mbtahub/gtfs-ingest/internal/ingest"
)

// Postgres is a transactional feed store backed by a pgx pool.
type Postgres struct {
	pool     *pgxpool.Pool
	ownsPool bool
	tx       pgx.Tx
	log      *slog.Logger
}

// NewPostgres connects a store to the configured database and verifies
// the connection. The returned store owns its pool.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Postgres, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pc.MaxConns = int32(cfg.MaxConns)
	pc.MinConns = int32(cfg.MinConns)
	pc.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Postgres{pool: pool, ownsPool: true, log: log}, nil
}

// NewPostgresFromPool wraps an existing pool. The caller keeps ownership
// of the pool; Close only ends the store's open transaction.
func NewPostgresFromPool(pool *pgxpool.Pool, log *slog.Logger) *Postgres {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Postgres{pool: pool, log: log}
}

func (p *Postgres) begin(ctx context.Context) (pgx.Tx, error) {
	if p.tx != nil {
		return p.tx, nil
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	p.tx = tx
	return tx, nil
}

// CreateAll creates every feed table that does not exist yet.
func (p *Postgres) CreateAll(ctx context.Context) error {
	tx, err := p.begin(ctx)
	if err != nil {
		return err
	}
	for _, stmt := range createStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// QueryKeys returns the stored primary keys for the definition's table,
// each rendered through the definition's key expression.
func (p *Postgres) QueryKeys(ctx context.Context, def *ingest.Definition) ([]string, error) {
	tx, err := p.begin(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT %s FROM %s", def.KeySelect, def.Table))
	if err != nil {
		return nil, fmt.Errorf("query %s keys: %w", def.Table, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan %s key: %w", def.Table, err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Insert stages a new row for the entity.
func (p *Postgres) Insert(ctx context.Context, def *ingest.Definition, e gtfs.Entity) error {
	tx, err := p.begin(ctx)
	if err != nil {
		return err
	}

	cols, args := orderedValues(def.Values(e))
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		def.Table, strings.Join(cols, ", "), strings.Join(marks, ", "))

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", def.Table, err)
	}
	return nil
}

// UpdateByKey stages an overwrite of the stored row sharing the
// entity's primary key. A type with no non-key columns has nothing to
// overwrite and the call is a no-op.
func (p *Postgres) UpdateByKey(ctx context.Context, def *ingest.Definition, e gtfs.Entity) error {
	tx, err := p.begin(ctx)
	if err != nil {
		return err
	}

	values := def.Values(e)
	keyCols := make(map[string]bool, len(def.KeyColumns))
	for _, k := range def.KeyColumns {
		keyCols[k] = true
	}

	cols, args := orderedValues(values)
	var sets []string
	var setArgs []any
	for i, col := range cols {
		if keyCols[col] {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(setArgs)+1))
		setArgs = append(setArgs, args[i])
	}
	if len(sets) == 0 {
		return nil
	}

	var wheres []string
	for _, col := range def.KeyColumns {
		wheres = append(wheres, fmt.Sprintf("%s = $%d", col, len(setArgs)+1))
		setArgs = append(setArgs, values[col])
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		def.Table, strings.Join(sets, ", "), strings.Join(wheres, " AND "))
	if _, err := tx.Exec(ctx, sql, setArgs...); err != nil {
		return fmt.Errorf("update %s: %w", def.Table, err)
	}
	return nil
}

// Commit commits the open transaction, if any.
func (p *Postgres) Commit(ctx context.Context) error {
	if p.tx == nil {
		return nil
	}
	err := p.tx.Commit(ctx)
	p.tx = nil
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback discards the open transaction, if any.
func (p *Postgres) Rollback(ctx context.Context) error {
	if p.tx == nil {
		return nil
	}
	err := p.tx.Rollback(ctx)
	p.tx = nil
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// Close rolls back any open transaction and releases the pool if this
// store owns it.
func (p *Postgres) Close(ctx context.Context) error {
	err := p.Rollback(ctx)
	if p.ownsPool && p.pool != nil {
		p.pool.Close()
	}
	p.pool = nil
	return err
}

// orderedValues flattens a column value map in sorted column order, so
// generated SQL is identical from run to run.
func orderedValues(values map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(values))
	for col := range values {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = values[col]
	}
	return cols, args
}
