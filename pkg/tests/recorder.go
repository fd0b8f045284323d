// Package tests contains helpers for exercising locks in tests and tools.
package tests

import (
	"sync"
	"sync/atomic"

	"github.com/domiot-io/another-mutex/pkg/core"
)

// Recorder collects ids in the order tasks report them. Safe for concurrent use.
type Recorder struct {
	mx  sync.Mutex
	ids []int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Push appends an id.
func (r *Recorder) Push(id int) {
	r.mx.Lock()
	r.ids = append(r.ids, id)
	r.mx.Unlock()
}

// IDs returns a copy of the recorded ids.
func (r *Recorder) IDs() []int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]int(nil), r.ids...)
}

// CheckSequence returns an OrderError describing the first position at which the recorded ids
// differ from 0, 1, ..., n-1, or nil if they match.
func (r *Recorder) CheckSequence(n int) error {
	ids := r.IDs()
	for i := 0; i < n; i++ {
		if i >= len(ids) {
			return core.NewOrderError(i, i, -1)
		}
		if ids[i] != i {
			return core.NewOrderError(i, i, ids[i])
		}
	}
	if len(ids) > n {
		return core.NewOrderError(n, -1, ids[n])
	}
	return nil
}

// Occupancy counts tasks currently inside a critical section and remembers the highest count seen.
type Occupancy struct {
	inside atomic.Int64
	peak   atomic.Int64
}

// Enter marks a task entering the critical section and returns the number of tasks inside.
func (o *Occupancy) Enter() int64 {
	n := o.inside.Add(1)
	for {
		p := o.peak.Load()
		if n <= p || o.peak.CompareAndSwap(p, n) {
			return n
		}
	}
}

// Leave marks a task leaving the critical section.
func (o *Occupancy) Leave() {
	o.inside.Add(-1)
}

// Peak returns the highest number of tasks seen inside at once.
func (o *Occupancy) Peak() int64 {
	return o.peak.Load()
}

// Check returns an ExclusionError if two tasks were ever inside at once.
func (o *Occupancy) Check() error {
	if p := o.Peak(); p > 1 {
		return core.NewExclusionError(int(p), "critical sections overlapped")
	}
	return nil
}
