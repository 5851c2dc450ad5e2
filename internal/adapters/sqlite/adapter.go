// Package sqlite persists playlist snapshots in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

var _ ports.SnapshotStore = (*Adapter)(nil)

// Adapter stores one playlist snapshot per orb session, keyed by session ID.
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens (or creates) the database at path and runs the migration.
func NewAdapter(path string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *Adapter) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS playlist_snapshots (
		session_id TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// Save upserts the snapshot for a session.
func (a *Adapter) Save(ctx context.Context, sessionID string, playlist domain.Playlist) error {
	payload, err := json.Marshal(playlist)
	if err != nil {
		return fmt.Errorf("sqlite: marshal snapshot: %w", err)
	}

	const query = `
	INSERT INTO playlist_snapshots (session_id, payload, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		payload = excluded.payload,
		updated_at = excluded.updated_at;`

	if _, err := a.db.ExecContext(ctx, query, sessionID, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlite: save snapshot: %w", err)
	}
	return nil
}

// Get returns the snapshot for a session, or domain.ErrNotFound.
func (a *Adapter) Get(ctx context.Context, sessionID string) (domain.Playlist, error) {
	const query = `SELECT payload FROM playlist_snapshots WHERE session_id = ?;`

	var payload string
	err := a.db.QueryRowContext(ctx, query, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Playlist{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("sqlite: load snapshot: %w", err)
	}

	var playlist domain.Playlist
	if err := json.Unmarshal([]byte(payload), &playlist); err != nil {
		return domain.Playlist{}, fmt.Errorf("sqlite: unmarshal snapshot: %w", err)
	}
	return playlist, nil
}

// Close releases the underlying database handle.
func (a *Adapter) Close() error {
	return a.db.Close()
}
