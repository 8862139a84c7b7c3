package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool, ensures the collections table exists and
// returns a postgres-backed store. Collections live in a single key/payload
// table; there is still one serialized document per key, matching the
// read-modify-write contract of the other backends.
func NewPostgres(ctx context.Context, url string) (Store, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS collections (
        key        text PRIMARY KEY,
        payload    jsonb NOT NULL,
        updated_at timestamptz NOT NULL DEFAULT now()
    )`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure collections table: %w", err)
	}

	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Read(ctx context.Context, key string, dest any) error {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM collections WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return nil
	}
	return nil
}

func (s *postgresStore) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, upsertSQL, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) WriteAll(ctx context.Context, entries ...Entry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		raw, err := json.Marshal(e.Value)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, upsertSQL, e.Key, raw); err != nil {
			return fmt.Errorf("write %s: %w", e.Key, err)
		}
	}

	return tx.Commit(ctx)
}

const upsertSQL = `INSERT INTO collections (key, payload, updated_at)
    VALUES ($1, $2, now())
    ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
