package sync

import (
	"sync"
	"sync/atomic"
)

// WorkerPool represents a pool of parallel workers.
type WorkerPool interface {
	Start()
	Stop()
}

// pool is a pool of N workers that continuously do the same work until Stop() is called.
// Every worker passes its own index to the work function.
type pool struct {
	size int
	work func(worker int)
	wg   sync.WaitGroup
	quit atomic.Bool
}

// NewPool creates a pool of workers with the given size, all doing the same work.
func NewPool(size int, work func(worker int)) WorkerPool {
	return &pool{
		size: size,
		work: work,
	}
}

func (p *pool) Start() {
	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go func(i int) {
			defer p.wg.Done()
			for !p.quit.Load() {
				p.work(i)
			}
		}(i)
	}
}

// Stop waits for every worker to finish its current round of work.
func (p *pool) Stop() {
	p.quit.Store(true)
	p.wg.Wait()
}
