package resilience

import (
	"context"
	"sync"
)

// SingleFlight collapses concurrent loads of the same key into one call.
type SingleFlight[V any] struct {
	mu       sync.Mutex
	inflight map[string]*flight[V]
}

type flight[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// Do runs fn for key unless a run is already in flight, in which case it
// waits for that run. Waiters give up when ctx ends; the running fn does
// not. shared reports whether the result came from another caller.
func (g *SingleFlight[V]) Do(ctx context.Context, key string, fn func() (V, error)) (value V, shared bool, err error) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flight[V])
	}
	if f, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		select {
		case <-f.done:
			return f.value, true, f.err
		case <-ctx.Done():
			var zero V
			return zero, true, ctx.Err()
		}
	}
	f := &flight[V]{done: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inflight, key)
		g.mu.Unlock()
		close(f.done)
	}()

	f.value, f.err = fn()
	return f.value, false, f.err
}
