package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
)

type analyzeMoodRequest struct {
	Text string `json:"text"`
}

type analyzeMoodResponse struct {
	Mood domain.Mood `json:"mood"`
}

// AnalyzeMood handles POST /api/analyzeMood. It is a tolerant proxy: any
// upstream failure becomes a usable fallback mood. Only a missing credential
// surfaces as an error.
func (h *Handler) AnalyzeMood(w http.ResponseWriter, r *http.Request) {
	if h.classifier == nil {
		writeError(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	var req analyzeMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	mood := h.classifier.Classify(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, analyzeMoodResponse{Mood: mood})
}
