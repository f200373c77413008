package service

import (
	"sync"
)

// TargetGuard allows at most one in-flight operation per target id.
type TargetGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewTargetGuard creates an empty guard.
func NewTargetGuard() *TargetGuard {
	return &TargetGuard{active: make(map[string]struct{})}
}

// Acquire marks target as busy and returns the func that releases it.
// An empty target is never guarded.
func (g *TargetGuard) Acquire(target string) (release func(), err error) {
	if target == "" {
		return func() {}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[target]; busy {
		return nil, ErrTargetBusy
	}
	g.active[target] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, target)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether target has an operation in flight.
func (g *TargetGuard) Busy(target string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[target]
	return busy
}
