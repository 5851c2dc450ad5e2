// Package worker runs background persistence of playlist snapshots so
// resolving never blocks on storage.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ewilliams-labs/moodorb/internal/core/domain"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
)

const saveTimeout = 5 * time.Second

var _ ports.SnapshotPublisher = (*Pool)(nil)

// Job is one snapshot write.
type Job struct {
	SessionID string
	Playlist  domain.Playlist
}

// Pool fans snapshot writes out to a fixed set of workers. Publish never
// blocks; when the queue is full the snapshot is dropped with a warning.
type Pool struct {
	store ports.SnapshotStore
	jobs  chan Job
	wg    sync.WaitGroup
	log   *slog.Logger
}

// NewPool creates a pool writing to store with the given queue capacity.
func NewPool(store ports.SnapshotStore, queueSize int, log *slog.Logger) *Pool {
	if queueSize <= 0 {
		queueSize = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pool{
		store: store,
		jobs:  make(chan Job, queueSize),
		log:   log,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.process(job)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight writes to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Publish enqueues a snapshot write without blocking the caller.
func (p *Pool) Publish(sessionID string, playlist domain.Playlist) {
	select {
	case p.jobs <- Job{SessionID: sessionID, Playlist: playlist}:
	default:
		p.log.Warn("snapshot queue full, dropping snapshot", "session", sessionID)
	}
}

func (p *Pool) process(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := p.store.Save(ctx, job.SessionID, job.Playlist); err != nil {
		p.log.Error("failed to persist snapshot", "session", job.SessionID, "error", err)
	}
}
