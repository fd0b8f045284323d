package sync

import "sync/atomic"

// ReleaseToken is the single-use capability handed to the holder of the lock.
// It is owned by the task that acquired the lock and should not outlive its critical section.
type ReleaseToken struct {
	m        *Mutex
	id       uint64
	released atomic.Bool
}

// Release gives the lock back. Only the first call has an effect; later calls,
// including concurrent ones, return immediately. Releasing a nil token does nothing.
func (t *ReleaseToken) Release() {
	if t == nil || !t.released.CompareAndSwap(false, true) {
		return
	}
	t.m.release(t)
}

// Released reports whether Release has been called.
func (t *ReleaseToken) Released() bool {
	return t.released.Load()
}

// ID returns the sequence number of the grant, starting at 1 and increasing with every grant of the mutex.
func (t *ReleaseToken) ID() uint64 {
	return t.id
}
