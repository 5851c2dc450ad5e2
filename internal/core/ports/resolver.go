package ports

import (
	"context"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
)

// TrackResolver turns an ordered list of mood names into a playlist.
type TrackResolver interface {
	Resolve(ctx context.Context, moodNames []string) (domain.Playlist, error)
}
