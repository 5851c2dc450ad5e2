package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/services"
)

type generatePlaylistRequest struct {
	// Moods is the comma-joined mood-name list, e.g. "Calm, Energetic".
	Moods string `json:"moods"`
}

type playlistResponse struct {
	Playlist domain.Playlist `json:"playlist"`
}

// GeneratePlaylist handles POST /api/generatePlaylist. Upstream failures are
// absorbed into fallback playlists; only a missing credential is an error.
func (h *Handler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	if h.resolver == nil {
		writeError(w, http.StatusInternalServerError, "OpenAI API key not configured")
		return
	}

	var req generatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	names := splitMoods(req.Moods)
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "moods are required")
		return
	}

	playlist, err := h.resolver.Resolve(r.Context(), names)
	if err != nil {
		h.log.Warn("playlist resolution failed, using placeholder", "error", err)
		playlist = services.PlaceholderPlaylist(names[0])
	}

	writeJSON(w, http.StatusOK, playlistResponse{Playlist: playlist})
}

// GetPlaylistSnapshot handles GET /api/orb/{id}/playlist. It reads the
// persisted snapshot, which may lag the orb's live state.
func (h *Handler) GetPlaylistSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chiURLParam(r, "id")

	playlist, err := h.snapshots.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no playlist snapshot for session")
			return
		}
		h.log.Error("failed to load playlist snapshot", "session", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load playlist")
		return
	}

	writeJSON(w, http.StatusOK, playlistResponse{Playlist: playlist})
}

func splitMoods(joined string) []string {
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
