package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the tables on startup if they do not exist.
// There is no migration tooling; additive changes go here.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS personas (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		role_title TEXT NOT NULL,
		personality_summary TEXT NOT NULL DEFAULT '',
		system_prompt TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		avatar_emoji TEXT NOT NULL DEFAULT '',
		traits TEXT[] NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS scripts (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL,
		company_size TEXT NOT NULL,
		target_location TEXT NOT NULL,
		product_name TEXT NOT NULL,
		target_role TEXT NOT NULL DEFAULT '',
		difficulty_level TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS script_sections (
		id UUID PRIMARY KEY,
		script_id UUID NOT NULL REFERENCES scripts(id),
		section_type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		talking_points TEXT[] NOT NULL DEFAULT '{}',
		tips TEXT NOT NULL DEFAULT '',
		order_index INT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		persona_id UUID NOT NULL REFERENCES personas(id),
		script_id UUID NOT NULL REFERENCES scripts(id),
		state TEXT NOT NULL DEFAULT 'active',
		started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		ended_at TIMESTAMPTZ,
		feedback_summary TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

	CREATE TABLE IF NOT EXISTS turns (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL REFERENCES sessions(id),
		seq BIGINT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (session_id, seq)
	);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
