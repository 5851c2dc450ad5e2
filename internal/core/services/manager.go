package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

// Manager tracks one orb per active session.
type Manager struct {
	resolver  ports.TrackResolver
	snapshots ports.SnapshotPublisher
	delay     time.Duration
	log       *slog.Logger

	mu   sync.RWMutex
	orbs map[string]*Orb
}

// NewManager constructs a session manager. The dependencies are shared by
// every orb it creates.
func NewManager(resolver ports.TrackResolver, snapshots ports.SnapshotPublisher, delay time.Duration, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		resolver:  resolver,
		snapshots: snapshots,
		delay:     delay,
		log:       log,
		orbs:      make(map[string]*Orb),
	}
}

// Create registers a new orb under a fresh session id.
func (m *Manager) Create() *Orb {
	orb := NewOrb(uuid.NewString(), m.resolver, m.snapshots, m.delay, m.log)

	m.mu.Lock()
	m.orbs[orb.ID()] = orb
	m.mu.Unlock()

	return orb
}

// Get looks a session up by id.
func (m *Manager) Get(id string) (*Orb, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orb, ok := m.orbs[id]
	return orb, ok
}

// Remove tears one session down. It reports whether the session existed.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	orb, ok := m.orbs[id]
	delete(m.orbs, id)
	m.mu.Unlock()

	if ok {
		orb.Close()
	}
	return ok
}

// Close tears every session down.
func (m *Manager) Close() {
	m.mu.Lock()
	orbs := m.orbs
	m.orbs = make(map[string]*Orb)
	m.mu.Unlock()

	for _, orb := range orbs {
		orb.Close()
	}
}
