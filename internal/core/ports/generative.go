package ports

import (
	"context"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
)

// MoodAnalyzer classifies free text into a mood descriptor.
type MoodAnalyzer interface {
	AnalyzeMood(ctx context.Context, text string) (domain.Mood, error)
}

// SongRecommender suggests {title, artist} pairs for a set of mood names.
type SongRecommender interface {
	RecommendSongs(ctx context.Context, moods []string) ([]domain.Song, error)
}
