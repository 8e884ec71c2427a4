package usecase

import (
	"context"
	"sync"
)

// JobRegistry tracks cancellation handles for in-flight discovery jobs.
//
// It is a volatile liveness cache only: the durable job status in the store
// is authoritative. A process restart loses every entry, so a job left in
// RUNNING state in the store after a restart is orphaned and is never
// resumed automatically.
type JobRegistry struct {
	mutex   sync.RWMutex
	cancels map[string]context.CancelFunc
}

// NewJobRegistry creates an empty registry
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{
		cancels: make(map[string]context.CancelFunc),
	}
}

// Start registers a cancellation handle for jobID and launches run in its
// own goroutine without blocking the caller. The entry is removed when run
// returns.
func (r *JobRegistry) Start(jobID string, run func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())

	r.mutex.Lock()
	r.cancels[jobID] = cancel
	r.mutex.Unlock()

	go func() {
		defer func() {
			r.mutex.Lock()
			delete(r.cancels, jobID)
			r.mutex.Unlock()
			cancel()
		}()
		run(ctx)
	}()
}

// Cancel signals cooperative cancellation for jobID. Returns false when the
// job is not tracked (already finished or never started here).
func (r *JobRegistry) Cancel(jobID string) bool {
	r.mutex.RLock()
	cancel, exists := r.cancels[jobID]
	r.mutex.RUnlock()

	if !exists {
		return false
	}
	cancel()
	return true
}

// IsRunning reports whether jobID has a live entry
func (r *JobRegistry) IsRunning(jobID string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, exists := r.cancels[jobID]
	return exists
}

// ActiveCount returns the number of tracked jobs
func (r *JobRegistry) ActiveCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.cancels)
}
