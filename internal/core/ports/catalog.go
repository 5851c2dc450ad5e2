package ports

import (
	"context"
	"errors"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
)

// ErrNoMatch indicates the catalog returned no result for a title/artist pair.
var ErrNoMatch = errors.New("no catalog match")

// TrackCatalog enriches a recommended song with real track metadata.
type TrackCatalog interface {
	FindTrack(ctx context.Context, title, artist string) (domain.Song, error)
}
