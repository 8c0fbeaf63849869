package ratelimits

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps attempts in process memory. The flat-file backend
// uses it: brute-force attempts are ephemeral by nature and do not need to
// survive a restart.
type MemoryRepository struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

// NewMemoryRepository constructs an empty in-memory attempt store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{attempts: make(map[string][]time.Time)}
}

func key(ip, action string) string {
	return ip + "|" + action
}

// Prune removes attempts for (ip, action) older than cutoff.
func (r *MemoryRepository) Prune(ctx context.Context, ip, action string, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(ip, action)
	kept := r.attempts[k][:0]
	for _, at := range r.attempts[k] {
		if !at.Before(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(r.attempts, k)
	} else {
		r.attempts[k] = kept
	}
	return nil
}

// Count returns the number of recorded attempts for (ip, action).
func (r *MemoryRepository) Count(ctx context.Context, ip, action string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attempts[key(ip, action)]), nil
}

// Record stores one attempt.
func (r *MemoryRepository) Record(ctx context.Context, ip, action string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(ip, action)
	r.attempts[k] = append(r.attempts[k], at)
	return nil
}
