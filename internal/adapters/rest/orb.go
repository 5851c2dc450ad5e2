package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/services"
)

type orbStateResponse struct {
	Phase             string           `json:"phase"`
	Moods             []domain.Mood    `json:"moods"`
	Playlist          *domain.Playlist `json:"playlist,omitempty"`
	IsPlaylistVisible bool             `json:"isPlaylistVisible"`
	IsLoading         bool             `json:"isLoading"`
}

func stateView(st services.State) orbStateResponse {
	moods := st.Moods
	if moods == nil {
		moods = []domain.Mood{}
	}
	return orbStateResponse{
		Phase:             st.Phase.String(),
		Moods:             moods,
		Playlist:          st.Playlist,
		IsPlaylistVisible: st.IsPlaylistVisible,
		IsLoading:         st.IsLoading,
	}
}

// CreateOrb handles POST /api/orb.
func (h *Handler) CreateOrb(w http.ResponseWriter, r *http.Request) {
	orb := h.orbs.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"id": orb.ID()})
}

// DeleteOrb handles DELETE /api/orb/{id}.
func (h *Handler) DeleteOrb(w http.ResponseWriter, r *http.Request) {
	if !h.orbs.Remove(chiURLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "orb session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetOrbState handles GET /api/orb/{id}.
func (h *Handler) GetOrbState(w http.ResponseWriter, r *http.Request) {
	orb, ok := h.orbFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateView(orb.State()))
}

// AddMood handles POST /api/orb/{id}/moods. Limit and duplicate rejections
// come back as 409 with the state machine untouched.
func (h *Handler) AddMood(w http.ResponseWriter, r *http.Request) {
	orb, ok := h.orbFromRequest(w, r)
	if !ok {
		return
	}

	var mood domain.Mood
	if err := json.NewDecoder(r.Body).Decode(&mood); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(mood.Name) == "" {
		writeError(w, http.StatusBadRequest, "mood name is required")
		return
	}

	if err := orb.AddMood(mood); err != nil {
		if errors.Is(err, domain.ErrMoodLimit) || errors.Is(err, domain.ErrDuplicateMood) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveMood handles DELETE /api/orb/{id}/moods/{name}.
func (h *Handler) RemoveMood(w http.ResponseWriter, r *http.Request) {
	orb, ok := h.orbFromRequest(w, r)
	if !ok {
		return
	}
	orb.RemoveMood(chiURLParam(r, "name"))
	w.WriteHeader(http.StatusNoContent)
}

// ResetOrb handles POST /api/orb/{id}/reset.
func (h *Handler) ResetOrb(w http.ResponseWriter, r *http.Request) {
	orb, ok := h.orbFromRequest(w, r)
	if !ok {
		return
	}
	orb.ResetOrb()
	w.WriteHeader(http.StatusNoContent)
}

// HidePlaylist handles POST /api/orb/{id}/hide.
func (h *Handler) HidePlaylist(w http.ResponseWriter, r *http.Request) {
	orb, ok := h.orbFromRequest(w, r)
	if !ok {
		return
	}
	orb.HidePlaylist()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) orbFromRequest(w http.ResponseWriter, r *http.Request) (*services.Orb, bool) {
	orb, ok := h.orbs.Get(chiURLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "orb session not found")
		return nil, false
	}
	return orb, true
}

func chiURLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
