// Package postgres provides Postgres-backed persistence implementations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JakeFAU/fighter-timeline/internal/fighter"
)

const defaultTable = "fighters_fighter"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// FighterStoreConfig controls the connection pool used for fighter lookups.
type FighterStoreConfig struct {
	DSN      string
	Table    string
	MaxConns int32
}

type queryCloser interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// FighterStore reads fighter biographies from Postgres.
type FighterStore struct {
	pool  queryCloser
	query string
}

// NewFighterStore connects to Postgres using cfg.
func NewFighterStore(ctx context.Context, cfg FighterStoreConfig) (*FighterStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	store, err := NewFighterStoreWithPool(pool, cfg.Table)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewFighterStoreWithPool constructs a store from an existing pool (primarily for testing).
func NewFighterStoreWithPool(pool queryCloser, table string) (*FighterStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = defaultTable
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	query := fmt.Sprintf(
		`SELECT id, name, COALESCE(nickname, ''), COALESCE(bio_long, '') FROM %s WHERE id = $1`,
		table,
	)
	return &FighterStore{pool: pool, query: query}, nil
}

// Get fetches one fighter. A missing row maps to fighter.ErrNotFound.
func (s *FighterStore) Get(ctx context.Context, id int64) (fighter.Record, error) {
	var rec fighter.Record
	err := s.pool.QueryRow(ctx, s.query, id).Scan(&rec.ID, &rec.Name, &rec.Nickname, &rec.BioLong)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fighter.Record{}, fighter.ErrNotFound
	case err != nil:
		return fighter.Record{}, fmt.Errorf("query fighter %d: %w", id, err)
	}
	return rec, nil
}

// Ping verifies the database is reachable.
func (s *FighterStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close releases the underlying pool resources.
func (s *FighterStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}
