package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/services"
)

type stubAnalyzer struct {
	mood domain.Mood
	err  error
}

func (s *stubAnalyzer) AnalyzeMood(ctx context.Context, text string) (domain.Mood, error) {
	return s.mood, s.err
}

type stubResolver struct {
	playlist domain.Playlist
	err      error
}

func (s *stubResolver) Resolve(ctx context.Context, moodNames []string) (domain.Playlist, error) {
	return s.playlist, s.err
}

type memStore struct {
	mu    sync.Mutex
	saved map[string]domain.Playlist
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]domain.Playlist)}
}

func (s *memStore) Save(ctx context.Context, sessionID string, p domain.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[sessionID] = p
	return nil
}

func (s *memStore) Get(ctx context.Context, sessionID string) (domain.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.saved[sessionID]
	if !ok {
		return domain.Playlist{}, domain.ErrNotFound
	}
	return p, nil
}

func newTestHandler(t *testing.T, classifier *services.Classifier, resolver *stubResolver, store *memStore) *Handler {
	t.Helper()
	if store == nil {
		store = newMemStore()
	}
	manager := services.NewManager(nil, nil, time.Hour, nil)
	t.Cleanup(manager.Close)

	if resolver == nil {
		return NewHandler(classifier, nil, manager, store, nil)
	}
	return NewHandler(classifier, resolver, manager, store, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAnalyzeMood_Unconfigured(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/analyzeMood", map[string]string{"text": "feeling calm"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestAnalyzeMood_FallbackOnAnalyzerFailure(t *testing.T) {
	classifier := services.NewClassifier(&stubAnalyzer{err: errors.New("upstream down")}, nil)
	h := newTestHandler(t, classifier, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/analyzeMood", map[string]string{"text": "quietly hopeful"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp analyzeMoodResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Mood.Name != "quietly hopeful" {
		t.Errorf("Mood.Name = %q", resp.Mood.Name)
	}
	if !resp.Mood.IsCustom {
		t.Error("fallback mood should be custom")
	}
}

func TestAnalyzeMood_BadRequests(t *testing.T) {
	classifier := services.NewClassifier(&stubAnalyzer{mood: domain.Mood{Name: "Calm", Icon: "😌"}}, nil)
	h := newTestHandler(t, classifier, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"text":`},
		{"empty text", `{"text": "   "}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analyzeMood", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGeneratePlaylist_Unconfigured(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/generatePlaylist", map[string]string{"moods": "Calm"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestGeneratePlaylist_ResolvesMoods(t *testing.T) {
	resolver := &stubResolver{playlist: domain.Playlist{
		Songs:      []domain.Song{{Title: "Weightless", Artist: "Marconi Union"}},
		CoverImage: domain.CoverImageURL("Calm"),
	}}
	h := newTestHandler(t, nil, resolver, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/generatePlaylist", map[string]string{"moods": "Calm, Energetic"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp playlistResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Playlist.Songs) != 1 || resp.Playlist.Songs[0].Title != "Weightless" {
		t.Errorf("unexpected songs: %+v", resp.Playlist.Songs)
	}
}

func TestGeneratePlaylist_PlaceholderOnResolverError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("resolver down")}
	h := newTestHandler(t, nil, resolver, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/generatePlaylist", map[string]string{"moods": "Dreamy"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp playlistResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Playlist.Songs) != 3 {
		t.Fatalf("placeholder should have 3 songs, got %d", len(resp.Playlist.Songs))
	}
	if resp.Playlist.Songs[0].Title != "Song A" {
		t.Errorf("Songs[0].Title = %q", resp.Playlist.Songs[0].Title)
	}
}

func TestGeneratePlaylist_EmptyMoods(t *testing.T) {
	h := newTestHandler(t, nil, &stubResolver{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/generatePlaylist", map[string]string{"moods": " , "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOrbLifecycle(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/orb/", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}
	var created map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := created["id"]
	if id == "" {
		t.Fatal("create returned empty id")
	}
	base := "/api/orb/" + id

	rec = doJSON(t, h, http.MethodPost, base+"/moods", domain.Mood{Name: "Calm", Icon: "😌"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("add mood status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, base+"/moods", domain.Mood{Name: "Calm", Icon: "😌"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate mood status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, base+"/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("state status = %d, want 200", rec.Code)
	}
	var st orbStateResponse
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Phase != "armed" {
		t.Errorf("Phase = %q, want armed", st.Phase)
	}
	if len(st.Moods) != 1 || st.Moods[0].Name != "Calm" {
		t.Errorf("Moods = %+v", st.Moods)
	}

	rec = doJSON(t, h, http.MethodDelete, base+"/moods/Calm", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove mood status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, base+"/", nil)
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Phase != "idle" {
		t.Errorf("Phase after removing last mood = %q, want idle", st.Phase)
	}

	rec = doJSON(t, h, http.MethodPost, base+"/reset", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, base+"/hide", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("hide status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, base+"/", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, base+"/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("state after delete status = %d, want 404", rec.Code)
	}
}

func TestAddMood_RejectsFifthMood(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/orb/", nil)
	var created map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	base := "/api/orb/" + created["id"]

	for i := 0; i < 4; i++ {
		rec = doJSON(t, h, http.MethodPost, base+"/moods", domain.Mood{Name: fmt.Sprintf("Mood %d", i)})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("add mood %d status = %d, want 204", i, rec.Code)
		}
	}

	rec = doJSON(t, h, http.MethodPost, base+"/moods", domain.Mood{Name: "One Too Many"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("fifth mood status = %d, want 409", rec.Code)
	}
}

func TestOrbEndpoints_UnknownSession(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orb/missing/"},
		{http.MethodDelete, "/api/orb/missing/"},
		{http.MethodPost, "/api/orb/missing/reset"},
		{http.MethodPost, "/api/orb/missing/hide"},
	}

	for _, tc := range paths {
		rec := doJSON(t, h, tc.method, tc.path, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tc.method, tc.path, rec.Code)
		}
	}
}

func TestGetPlaylistSnapshot(t *testing.T) {
	store := newMemStore()
	store.saved["session-1"] = domain.Playlist{
		Songs: []domain.Song{{Title: "Watermark", Artist: "Enya"}},
	}
	h := newTestHandler(t, nil, nil, store)

	rec := doJSON(t, h, http.MethodGet, "/api/orb/session-1/playlist", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp playlistResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Playlist.Songs) != 1 || resp.Playlist.Songs[0].Artist != "Enya" {
		t.Errorf("unexpected playlist: %+v", resp.Playlist.Songs)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/orb/session-2/playlist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing snapshot status = %d, want 404", rec.Code)
	}
}
