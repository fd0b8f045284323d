package sync

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

// Names of the metrics registered for every mutex.
const (
	MetricAcquired  = "acquired"
	MetricImmediate = "immediate"
	MetricQueued    = "queued"
	MetricAbandoned = "abandoned"
	MetricWaiting   = "waiting"
	MetricWait      = "wait"
)

type mutexMetrics struct {
	registry  metrics.Registry
	acquired  metrics.Counter
	immediate metrics.Counter
	queued    metrics.Counter
	abandoned metrics.Counter
	wait      metrics.Timer
}

func newMutexMetrics(waiting func() int) *mutexMetrics {
	r := metrics.NewRegistry()
	mm := &mutexMetrics{
		registry:  r,
		acquired:  metrics.NewRegisteredCounter(MetricAcquired, r),
		immediate: metrics.NewRegisteredCounter(MetricImmediate, r),
		queued:    metrics.NewRegisteredCounter(MetricQueued, r),
		abandoned: metrics.NewRegisteredCounter(MetricAbandoned, r),
		wait:      metrics.NewRegisteredTimer(MetricWait, r),
	}
	r.Register(MetricWaiting, metrics.NewFunctionalGauge(func() int64 {
		return int64(waiting())
	}))
	return mm
}

func (mm *mutexMetrics) grantedNow() {
	mm.acquired.Inc(1)
	mm.immediate.Inc(1)
	mm.wait.Update(0)
}

func (mm *mutexMetrics) handedOff(since time.Time) {
	mm.acquired.Inc(1)
	mm.wait.UpdateSince(since)
}

// Stats is a snapshot of the counters of a mutex.
type Stats struct {
	// Grants so far, immediate and handed off.
	Acquired int64
	// Grants that did not have to wait.
	Immediate int64
	// Requests that had to join the queue.
	Queued int64
	// Queued requests given up before their turn.
	Abandoned int64
	// Current queue length.
	Waiting int
	Locked  bool
	// Mean and maximal time from request to grant.
	MeanWait time.Duration
	MaxWait  time.Duration
}

// Stats returns a snapshot of the lock statistics.
func (m *Mutex) Stats() Stats {
	m.mx.Lock()
	locked, waiting := m.locked, m.queue.len()
	m.mx.Unlock()
	wait := m.metrics.wait.Snapshot()
	return Stats{
		Acquired:  m.metrics.acquired.Count(),
		Immediate: m.metrics.immediate.Count(),
		Queued:    m.metrics.queued.Count(),
		Abandoned: m.metrics.abandoned.Count(),
		Waiting:   waiting,
		Locked:    locked,
		MeanWait:  time.Duration(wait.Mean()),
		MaxWait:   time.Duration(wait.Max()),
	}
}

// Metrics returns the registry holding the mutex metrics.
func (m *Mutex) Metrics() metrics.Registry {
	return m.metrics.registry
}
