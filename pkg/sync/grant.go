package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrAbandoned is returned when waiting on a Grant that was already abandoned.
var ErrAbandoned = errors.New("grant abandoned")

const (
	pending int32 = iota
	granted
	abandoned
)

// Grant is the pending result of Mutex.Acquire.
// It resolves to a ReleaseToken once the lock is handed to its owner.
type Grant struct {
	m     *Mutex
	state atomic.Int32
	ready chan struct{}
	gone  chan struct{}
	token *ReleaseToken
	since time.Time
}

func newGrant(m *Mutex) *Grant {
	return &Grant{
		m:     m,
		ready: make(chan struct{}),
		gone:  make(chan struct{}),
		since: time.Now(),
	}
}

// Ready returns a channel that is closed when the lock has been granted.
func (g *Grant) Ready() <-chan struct{} {
	return g.ready
}

// Wait blocks until the lock is granted and returns the token releasing it.
// Returns nil if the grant was abandoned before its turn came.
func (g *Grant) Wait() *ReleaseToken {
	select {
	case <-g.ready:
		return g.token
	case <-g.gone:
		return nil
	}
}

// WaitContext blocks until the lock is granted or ctx is done.
// If ctx ends first the grant is abandoned and ctx.Err() returned. A grant that won the race
// against the cancellation is still returned, with a nil error, and must be released as usual.
func (g *Grant) WaitContext(ctx context.Context) (*ReleaseToken, error) {
	select {
	case <-g.ready:
		return g.token, nil
	case <-g.gone:
		return nil, ErrAbandoned
	case <-ctx.Done():
	}
	if g.abandon() {
		return nil, ctx.Err()
	}
	select {
	case <-g.ready:
		return g.token, nil
	case <-g.gone:
		return nil, ErrAbandoned
	}
}

// Abandon gives up the request.
// A queued request keeps its place and its turn passes without waking anybody.
// If the lock was already granted, it is released.
func (g *Grant) Abandon() {
	if g.abandon() {
		return
	}
	if g.state.Load() == granted {
		<-g.ready
		g.token.Release()
	}
}

func (g *Grant) abandon() bool {
	if !g.state.CompareAndSwap(pending, abandoned) {
		return false
	}
	close(g.gone)
	g.m.metrics.abandoned.Inc(1)
	return true
}
