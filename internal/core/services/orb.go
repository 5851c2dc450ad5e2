package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

// DefaultDebounceDelay is the quiet period after the last mood edit before a
// playlist is resolved.
const DefaultDebounceDelay = 5 * time.Second

// Phase identifies where an orb sits in the mood-to-playlist cycle. Idle and
// Ready are rest states; Armed and Resolving are transient.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseResolving
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseResolving:
		return "resolving"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State is a read-only view of an orb for the presentation layer.
type State struct {
	Phase             Phase
	Moods             []domain.Mood
	Playlist          *domain.Playlist
	IsPlaylistVisible bool
	IsLoading         bool
}

// Orb owns the active mood set and drives playlist regeneration. Every mood
// edit re-arms a single debounce timer (cancel-then-replace); when it fires
// the orb resolves the current moods into a playlist. The mutex is the Go
// rendering of the browser's single-writer event loop, and the generation
// counter stamps each armed cycle so a resolution finishing after a later
// edit or a reset is detected and discarded.
type Orb struct {
	id        string
	resolver  ports.TrackResolver
	snapshots ports.SnapshotPublisher
	delay     time.Duration
	log       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	phase      Phase
	moods      []domain.Mood
	playlist   *domain.Playlist
	visible    bool
	loading    bool
	timer      *time.Timer
	generation uint64
}

// NewOrb constructs an orb for one session. resolver and snapshots may be
// nil: a nil resolver degrades every resolution to the placeholder playlist,
// a nil snapshots skips persistence.
func NewOrb(id string, resolver ports.TrackResolver, snapshots ports.SnapshotPublisher, delay time.Duration, log *slog.Logger) *Orb {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orb{
		id:        id,
		resolver:  resolver,
		snapshots: snapshots,
		delay:     delay,
		log:       log.With("session", id),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ID returns the session identifier.
func (o *Orb) ID() string { return o.id }

// AddMood appends a mood and re-arms the debounce timer. Adding a fifth mood
// or a name already in the set is rejected without touching state.
func (o *Orb) AddMood(m domain.Mood) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.moods) >= domain.MaxActiveMoods {
		return domain.ErrMoodLimit
	}
	for _, existing := range o.moods {
		if existing.Name == m.Name {
			return domain.ErrDuplicateMood
		}
	}

	o.moods = append(o.moods, m)
	o.armLocked()
	return nil
}

// RemoveMood removes a mood by name. Removing the last mood clears the
// playlist and visibility synchronously, regardless of any resolution in
// flight; otherwise the timer is re-armed for a fresh quiet period.
func (o *Orb) RemoveMood(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	kept := o.moods[:0]
	for _, m := range o.moods {
		if m.Name != name {
			kept = append(kept, m)
		}
	}
	o.moods = kept

	if len(o.moods) == 0 {
		o.moods = nil
		o.clearLocked()
		return
	}
	o.armLocked()
}

// ResetOrb cancels any pending work, clears moods and playlist, and returns
// to the idle rest state.
func (o *Orb) ResetOrb() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.moods = nil
	o.clearLocked()
}

// HidePlaylist hides the playlist without discarding the stored data. The
// mood set is untouched.
func (o *Orb) HidePlaylist() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = false
}

// State returns a copy of the orb's visible state.
func (o *Orb) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := State{
		Phase:             o.phase,
		Moods:             append([]domain.Mood(nil), o.moods...),
		IsPlaylistVisible: o.visible,
		IsLoading:         o.loading,
	}
	if o.playlist != nil {
		pl := *o.playlist
		pl.Songs = append([]domain.Song(nil), o.playlist.Songs...)
		st.Playlist = &pl
	}
	return st
}

// Close tears the orb down. A resolution in flight is cancelled with it.
func (o *Orb) Close() {
	o.mu.Lock()
	o.stopTimerLocked()
	o.generation++
	o.mu.Unlock()
	o.cancel()
}

// armLocked bumps the generation, superseding any pending timer or in-flight
// resolution, and replaces the timer. Callers hold mu.
func (o *Orb) armLocked() {
	o.stopTimerLocked()
	o.generation++
	o.loading = false
	o.phase = PhaseArmed

	gen := o.generation
	o.timer = time.AfterFunc(o.delay, func() { o.fire(gen) })
}

func (o *Orb) clearLocked() {
	o.stopTimerLocked()
	o.generation++
	o.playlist = nil
	o.visible = false
	o.loading = false
	o.phase = PhaseIdle
}

func (o *Orb) stopTimerLocked() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// fire runs on the timer goroutine after a full quiet period with no edits.
func (o *Orb) fire(gen uint64) {
	o.mu.Lock()
	if gen != o.generation || o.phase != PhaseArmed {
		o.mu.Unlock()
		return
	}
	o.phase = PhaseResolving
	o.loading = true
	names := make([]string, len(o.moods))
	for i, m := range o.moods {
		names[i] = m.Name
	}
	o.mu.Unlock()

	playlist := o.resolve(names)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation || len(o.moods) == 0 {
		// Superseded by a mood edit or a reset while resolving.
		return
	}
	o.playlist = &playlist
	o.visible = true
	o.loading = false
	o.phase = PhaseReady

	if o.snapshots != nil {
		o.snapshots.Publish(o.id, playlist)
	}
}

// resolve never fails: any resolver error collapses to the placeholder
// playlist so nothing ever throws past the orchestration boundary.
func (o *Orb) resolve(names []string) domain.Playlist {
	if o.resolver == nil {
		return PlaceholderPlaylist(names[0])
	}
	playlist, err := o.resolver.Resolve(o.ctx, names)
	if err != nil {
		o.log.Warn("track resolution failed, using placeholder", "error", err)
		return PlaceholderPlaylist(names[0])
	}
	return playlist
}

// PlaceholderPlaylist is the unconditional fallback when resolution itself
// fails: three songs with empty metadata, displayed exactly like a real
// result.
func PlaceholderPlaylist(firstMood string) domain.Playlist {
	return domain.Playlist{
		Songs: []domain.Song{
			{Title: "Song A", Artist: "Artist A"},
			{Title: "Song B", Artist: "Artist B"},
			{Title: "Song C", Artist: "Artist C"},
		},
		CoverImage: domain.CoverImageURL(firstMood),
	}
}
