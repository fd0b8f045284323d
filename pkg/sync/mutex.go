package sync

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/domiot-io/another-mutex/pkg/logging"
)

// Mutex is an asynchronous mutual exclusion lock that grants the lock in strict FIFO order.
//
// Acquire never blocks. It returns a Grant that becomes ready once the lock is handed to the caller,
// and the lock is given back through the ReleaseToken obtained from that Grant.
// Tokens are single-use: only the first Release has an effect.
//
// A Mutex must be created once per protected resource and shared by pointer.
// It is not reentrant, and a holder that never releases starves every queued waiter.
type Mutex struct {
	mx      sync.Mutex // guards the fields below
	locked  bool
	queue   waitQueue
	minted  uint64
	log     zerolog.Logger
	metrics *mutexMetrics
}

// NewMutex creates a free mutex that does not log.
func NewMutex() *Mutex {
	return NewMutexWithLog(zerolog.Nop())
}

// NewMutexWithLog creates a free mutex reporting lock events to the given logger at debug level.
func NewMutexWithLog(log zerolog.Logger) *Mutex {
	m := &Mutex{log: logging.ForService(log, logging.MutexService)}
	m.metrics = newMutexMetrics(m.Waiting)
	return m
}

// Acquire requests the lock.
// On a free mutex the returned Grant is already ready. Otherwise the request joins the tail
// of the queue and its Grant becomes ready after every earlier request has released.
func (m *Mutex) Acquire() *Grant {
	g := newGrant(m)
	m.mx.Lock()
	if !m.locked {
		m.locked = true
		g.state.Store(granted)
		g.token = m.mint()
		m.mx.Unlock()
		close(g.ready)
		m.metrics.grantedNow()
		m.log.Debug().Uint64(logging.Token, g.token.id).Msg(logging.Acquired)
		return g
	}
	m.queue.push(g)
	waiting := m.queue.len()
	m.mx.Unlock()
	m.metrics.queued.Inc(1)
	m.log.Debug().Int(logging.Waiting, waiting).Msg(logging.Queued)
	return g
}

// AcquireContext waits for the lock until it is granted or ctx is done.
// When ctx wins, the request is abandoned and ctx.Err() is returned.
func (m *Mutex) AcquireContext(ctx context.Context) (*ReleaseToken, error) {
	return m.Acquire().WaitContext(ctx)
}

// TryAcquire takes the lock only if it is free right now.
// A free mutex has no waiters, so this never overtakes a queued request.
func (m *Mutex) TryAcquire() (*ReleaseToken, bool) {
	m.mx.Lock()
	if m.locked {
		m.mx.Unlock()
		return nil, false
	}
	m.locked = true
	t := m.mint()
	m.mx.Unlock()
	m.metrics.grantedNow()
	m.log.Debug().Uint64(logging.Token, t.id).Msg(logging.Acquired)
	return t, true
}

// Perform runs f while holding the lock and releases it afterwards, also when f panics.
func (m *Mutex) Perform(f func() error) error {
	t := m.Acquire().Wait()
	defer t.Release()
	return f()
}

// PerformContext is like Perform, but gives up waiting for the lock when ctx is done.
func (m *Mutex) PerformContext(ctx context.Context, f func() error) error {
	t, err := m.AcquireContext(ctx)
	if err != nil {
		return err
	}
	defer t.Release()
	return f()
}

// Locked reports whether some task holds the lock.
func (m *Mutex) Locked() bool {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.locked
}

// Waiting returns the number of queued requests, including abandoned ones whose turn has not come yet.
func (m *Mutex) Waiting() int {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.queue.len()
}

// mint creates the token for the next holder. Must be called with m.mx held.
func (m *Mutex) mint() *ReleaseToken {
	m.minted++
	return &ReleaseToken{m: m, id: m.minted}
}

// release passes the lock to the first waiter that is still interested, or frees the mutex.
// Abandoned waiters lose their turn here without being woken.
// The chosen waiter is signalled only after m.mx is dropped.
func (m *Mutex) release(t *ReleaseToken) {
	var next *Grant
	skipped := 0
	m.mx.Lock()
	for next == nil {
		g := m.queue.pop()
		if g == nil {
			m.locked = false
			break
		}
		if g.state.CompareAndSwap(pending, granted) {
			g.token = m.mint()
			next = g
		} else {
			skipped++
		}
	}
	waiting := m.queue.len()
	m.mx.Unlock()

	if skipped > 0 {
		m.log.Debug().Int(logging.Size, skipped).Msg(logging.Abandoned)
	}
	if next == nil {
		m.log.Debug().Uint64(logging.Token, t.id).Msg(logging.Freed)
		return
	}
	m.metrics.handedOff(next.since)
	close(next.ready)
	m.log.Debug().
		Uint64(logging.Token, next.token.id).
		Int(logging.Waiting, waiting).
		Int64(logging.WaitTime, time.Since(next.since).Microseconds()).
		Msg(logging.HandedOff)
}
