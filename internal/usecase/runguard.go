package usecase

import (
	"sync"

	"clinic-settlements/internal/domain"
)

// runGuard serializes recomputes per settlement key. Runs for different keys
// proceed in parallel; the later of two overlapping runs for the same key is
// rejected so the caller can retry, rather than queueing behind a lock and
// silently overwriting a result it never saw.
type runGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newRunGuard() *runGuard {
	return &runGuard{active: make(map[string]struct{})}
}

func (g *runGuard) acquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, inFlight := g.active[key]; inFlight {
		return &domain.ConcurrentRecomputeError{Key: key}
	}
	g.active[key] = struct{}{}
	return nil
}

func (g *runGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
