package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count       int
	windowStart time.Time
}

// MemoryStore is a process-local fixed-window counter map. Limits are
// per-instance only; multi-instance deployments should use RedisStore so all
// replicas share one counter.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	limit  int
	window time.Duration

	// now is swappable for tests.
	now func() time.Time
}

func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Check implements Store.
func (s *MemoryStore) Check(ctx context.Context, key string) (Decision, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || now.Sub(ent.windowStart) > s.window {
		ent = &memoryEntry{windowStart: now}
		s.entries[key] = ent
	}
	ent.count++

	remaining := s.limit - ent.count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   ent.count <= s.limit,
		Limit:     s.limit,
		Remaining: remaining,
		Reset:     ent.windowStart.Add(s.window),
	}, nil
}

// Cleanup drops entries whose window has fully elapsed.
func (s *MemoryStore) Cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if now.Sub(ent.windowStart) > s.window {
			delete(s.entries, k)
		}
	}
}

// StartJanitor cleans expired entries periodically until ctx is done.
func (s *MemoryStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = 2 * time.Minute
	}
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
