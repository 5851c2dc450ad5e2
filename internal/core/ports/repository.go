package ports

import (
	"context"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
)

// SnapshotStore persists the most recent playlist per orb session. The stored
// copy is a snapshot, not a live reference; readers may observe it going
// stale relative to in-memory state.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, p domain.Playlist) error
	// Get returns domain.ErrNotFound when no snapshot exists for the session.
	Get(ctx context.Context, sessionID string) (domain.Playlist, error)
}

// SnapshotPublisher hands a snapshot off for asynchronous persistence. It
// must never block the caller.
type SnapshotPublisher interface {
	Publish(sessionID string, p domain.Playlist)
}
