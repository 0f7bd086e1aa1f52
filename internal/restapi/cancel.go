package restapi

import (
	"context"
	"sync"
)

// CancelGroup is the session-wide cancellation token shared by all in-flight
// requests. It holds one token generation at a time: requests join the
// current generation at dispatch, and CancelAll tears down the whole
// generation at once while atomically installing a fresh one for subsequent
// calls. There is no per-call cancellation.
type CancelGroup struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCancelGroup creates a CancelGroup with a live initial generation.
func NewCancelGroup() *CancelGroup {
	g := &CancelGroup{}
	g.ctx, g.cancel = context.WithCancel(context.Background())
	return g
}

// Join derives a request context that is cancelled when either the caller's
// context or the group's current generation is cancelled. The returned
// generation context lets the caller distinguish session teardown from its
// own cancellation. release must be called when the request finishes.
func (g *CancelGroup) Join(ctx context.Context) (joined, generation context.Context, release context.CancelFunc) {
	g.mu.Lock()
	generation = g.ctx
	g.mu.Unlock()

	joined, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(generation, cancel)
	return joined, generation, func() {
		stop()
		cancel()
	}
}

// CancelAll cancels every request joined to the current generation and
// installs a fresh generation so subsequent calls are unaffected.
func (g *CancelGroup) CancelAll() {
	g.mu.Lock()
	cancel := g.cancel
	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.mu.Unlock()

	cancel()
}
