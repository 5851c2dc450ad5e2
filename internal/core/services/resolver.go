package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

// Resolver turns mood names into a playlist. It presents a total function:
// every failure path degrades to the curated fallback table, so callers get
// a usable playlist no matter what the collaborators do.
type Resolver struct {
	recommender ports.SongRecommender
	catalog     ports.TrackCatalog
	log         *slog.Logger
}

var _ ports.TrackResolver = (*Resolver)(nil)

// NewResolver constructs a Resolver. catalog may be nil when no catalog
// credentials are configured; songs are then returned unenriched.
func NewResolver(recommender ports.SongRecommender, catalog ports.TrackCatalog, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{recommender: recommender, catalog: catalog, log: log}
}

// Resolve requests recommendations, enriches them with catalog metadata when
// possible, and falls back to the curated mood table when the generative
// step fails. The result is deduplicated by title and capped at
// domain.MaxPlaylistSongs.
func (r *Resolver) Resolve(ctx context.Context, moodNames []string) (domain.Playlist, error) {
	songs, err := r.recommender.RecommendSongs(ctx, moodNames)
	if err != nil {
		r.log.Warn("song recommendation failed, using curated fallback", "error", err)
		songs = curatedSongs(moodNames)
	} else if r.catalog != nil {
		songs = r.enrich(ctx, songs)
	}

	songs = domain.DedupeSongsByTitle(songs)
	if len(songs) > domain.MaxPlaylistSongs {
		songs = songs[:domain.MaxPlaylistSongs]
	}

	cover := ""
	if len(moodNames) > 0 {
		cover = domain.CoverImageURL(moodNames[0])
	}
	return domain.Playlist{Songs: songs, CoverImage: cover}, nil
}

// enrich looks each recommendation up in the catalog, sequentially. Per-song
// failures are isolated: a miss keeps the unenriched record and never aborts
// the batch. The recommended title and artist always win over catalog text.
func (r *Resolver) enrich(ctx context.Context, songs []domain.Song) []domain.Song {
	enriched := make([]domain.Song, 0, len(songs))
	for _, song := range songs {
		match, err := r.catalog.FindTrack(ctx, song.Title, song.Artist)
		if err != nil {
			if !errors.Is(err, ports.ErrNoMatch) {
				r.log.Warn("catalog lookup failed", "title", song.Title, "error", err)
			}
			enriched = append(enriched, song)
			continue
		}
		match.Title = song.Title
		match.Artist = song.Artist
		enriched = append(enriched, match)
	}
	return enriched
}
