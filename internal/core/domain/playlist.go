package domain

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPlaylistSongs caps a generated playlist after deduplication.
const MaxPlaylistSongs = 5

var ErrNotFound = errors.New("domain: not found")

// Song is one playlist entry. The catalog fields stay empty when enrichment
// is disabled or found no match.
type Song struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	AlbumArt   string `json:"albumArt,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	SpotifyURI string `json:"spotifyUri,omitempty"`
	SpotifyURL string `json:"spotifyUrl,omitempty"`
}

// Playlist is replaced wholesale on every resolution, never merged.
type Playlist struct {
	Songs      []Song `json:"songs"`
	CoverImage string `json:"coverImage,omitempty"`
}

// DedupeSongsByTitle collapses duplicate titles. First-occurrence order is
// kept; the last-seen record wins for a repeated title.
func DedupeSongsByTitle(songs []Song) []Song {
	index := make(map[string]int, len(songs))
	out := make([]Song, 0, len(songs))
	for _, s := range songs {
		if i, ok := index[s.Title]; ok {
			out[i] = s
			continue
		}
		index[s.Title] = len(out)
		out = append(out, s)
	}
	return out
}

// CoverImageURL derives a deterministic cover image from a mood name.
func CoverImageURL(mood string) string {
	return fmt.Sprintf("https://source.unsplash.com/random/300x300/?music,%s", strings.TrimSpace(mood))
}
