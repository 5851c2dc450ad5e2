package spotify

import (
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
)

// convertTrack maps a Spotify track to a domain Song. Spotify orders album
// images largest first, so the first image is the cover art.
func convertTrack(track spotify.FullTrack) domain.Song {
	artists := make([]string, len(track.Artists))
	for i, a := range track.Artists {
		artists[i] = a.Name
	}

	albumArt := ""
	if len(track.Album.Images) > 0 {
		albumArt = track.Album.Images[0].URL
	}

	return domain.Song{
		Title:      track.Name,
		Artist:     strings.Join(artists, ", "),
		AlbumArt:   albumArt,
		PreviewURL: track.PreviewURL,
		SpotifyURI: string(track.URI),
		SpotifyURL: track.ExternalURLs["spotify"],
	}
}
