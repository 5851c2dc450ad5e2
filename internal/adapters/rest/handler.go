// Package rest exposes the HTTP interface for the mood-orb service.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ewilliams-labs/moodorb/internal/core/ports"
	"github.com/ewilliams-labs/moodorb/internal/core/services"
)

// Handler wires the HTTP routes to the core services. classifier and
// resolver are nil when the generative API key is absent; the proxy
// endpoints answer 500 in that case, everything else keeps working.
type Handler struct {
	classifier *services.Classifier
	resolver   ports.TrackResolver
	orbs       *services.Manager
	snapshots  ports.SnapshotStore
	log        *slog.Logger
	router     chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(classifier *services.Classifier, resolver ports.TrackResolver, orbs *services.Manager, snapshots ports.SnapshotStore, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{
		classifier: classifier,
		resolver:   resolver,
		orbs:       orbs,
		snapshots:  snapshots,
		log:        log,
		router:     chi.NewRouter(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Use(middleware.Logger)
	h.router.Use(middleware.Recoverer)

	h.router.Get("/health", h.HealthCheck)

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/analyzeMood", h.AnalyzeMood)
		r.Post("/generatePlaylist", h.GeneratePlaylist)

		r.Route("/orb", func(r chi.Router) {
			r.Post("/", h.CreateOrb)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetOrbState)
				r.Delete("/", h.DeleteOrb)
				r.Post("/moods", h.AddMood)
				r.Delete("/moods/{name}", h.RemoveMood)
				r.Post("/reset", h.ResetOrb)
				r.Post("/hide", h.HidePlaylist)
				r.Get("/playlist", h.GetPlaylistSnapshot)
			})
		})
	})
}

// HealthCheck verifies the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
