// Package spotify adapts the Spotify Web API as the track catalog. It runs
// on the client-credentials grant only; no user authorization is involved.
package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

// Client wraps the Spotify API client behind the catalog port.
type Client struct {
	api *spotify.Client
}

var _ ports.TrackCatalog = (*Client)(nil)

// NewClient builds a catalog client from app credentials. The token source
// refreshes the short-lived access token as needed.
func NewClient(ctx context.Context, clientID, clientSecret string) *Client {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	httpClient := config.Client(ctx)
	return &Client{api: spotify.New(httpClient, spotify.WithRetry(true))}
}

// New wraps an already constructed API client.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// FindTrack searches `track:<title> artist:<artist>` and takes the first
// result. Returns ports.ErrNoMatch when the catalog has nothing for the pair.
func (c *Client) FindTrack(ctx context.Context, title, artist string) (domain.Song, error) {
	query := searchQuery(title, artist)

	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return domain.Song{}, fmt.Errorf("catalog: search %q: %w", query, err)
	}
	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return domain.Song{}, ports.ErrNoMatch
	}

	return convertTrack(result.Tracks.Tracks[0]), nil
}
