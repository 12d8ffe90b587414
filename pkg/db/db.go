package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB holds the connection pool for run history
type DB struct {
	Pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS job_runs (
	id            BIGSERIAL PRIMARY KEY,
	search_term   TEXT        NOT NULL,
	protocol      TEXT        NOT NULL,
	job_id        TEXT        NOT NULL DEFAULT '',
	status        TEXT        NOT NULL,
	result_rows   INTEGER     NOT NULL DEFAULT 0,
	batches       INTEGER     NOT NULL DEFAULT 0,
	results       JSONB       NOT NULL DEFAULT '[]',
	websites_csv  TEXT        NOT NULL DEFAULT '',
	phones_csv    TEXT        NOT NULL DEFAULT '',
	error         TEXT        NOT NULL DEFAULT '',
	started_at    TIMESTAMPTZ NOT NULL,
	finished_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS job_runs_started_at_idx ON job_runs (started_at DESC);
`

// New connects to url and verifies the connection
func New(ctx context.Context, url string) (*DB, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// EnsureSchema creates the job_runs table when it is missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the pool
func (db *DB) Close() {
	db.Pool.Close()
}
