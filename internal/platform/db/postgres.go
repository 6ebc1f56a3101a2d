package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-crm/internal/shared"
)

// New creates a new PostgreSQL connection pool.
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: platform/db: new pool: %v", shared.ErrStorageUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: platform/db: ping: %v", shared.ErrStorageUnavailable, err)
	}

	return pool, nil
}

// EnsureSchema fails with ErrStorageUnavailable when the schema has not been migrated.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	var present bool
	if err := pool.QueryRow(ctx, `SELECT to_regclass('public.permissions') IS NOT NULL`).Scan(&present); err != nil {
		return Classify(err)
	}
	if !present {
		return fmt.Errorf("%w: schema not initialised", shared.ErrStorageUnavailable)
	}
	return nil
}
