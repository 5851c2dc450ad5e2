// Package postgres persists playlist snapshots in a PostgreSQL database.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

var _ ports.SnapshotStore = (*Adapter)(nil)

// Adapter stores one playlist snapshot per orb session, keyed by session ID.
type Adapter struct {
	pool *pgxpool.Pool
}

// NewAdapter connects to the database at dsn and runs the migration.
func NewAdapter(ctx context.Context, dsn string) (*Adapter, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	a := &Adapter{pool: pool}
	if err := a.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

func (a *Adapter) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS playlist_snapshots (
		session_id TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`
	if _, err := a.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// Save upserts the snapshot for a session.
func (a *Adapter) Save(ctx context.Context, sessionID string, playlist domain.Playlist) error {
	payload, err := json.Marshal(playlist)
	if err != nil {
		return fmt.Errorf("postgres: marshal snapshot: %w", err)
	}

	const query = `
	INSERT INTO playlist_snapshots (session_id, payload, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (session_id) DO UPDATE SET
		payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;`

	if _, err := a.pool.Exec(ctx, query, sessionID, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("postgres: save snapshot: %w", err)
	}
	return nil
}

// Get returns the snapshot for a session, or domain.ErrNotFound.
func (a *Adapter) Get(ctx context.Context, sessionID string) (domain.Playlist, error) {
	const query = `SELECT payload FROM playlist_snapshots WHERE session_id = $1;`

	var payload []byte
	err := a.pool.QueryRow(ctx, query, sessionID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Playlist{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("postgres: load snapshot: %w", err)
	}

	var playlist domain.Playlist
	if err := json.Unmarshal(payload, &playlist); err != nil {
		return domain.Playlist{}, fmt.Errorf("postgres: unmarshal snapshot: %w", err)
	}
	return playlist, nil
}

// Close releases the connection pool.
func (a *Adapter) Close() {
	a.pool.Close()
}
