// Package run defines functions exercising a mutex, using services defined in other packages.
package run

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/domiot-io/another-mutex/pkg/config"
	"github.com/domiot-io/another-mutex/pkg/core"
	"github.com/domiot-io/another-mutex/pkg/logging"
	"github.com/domiot-io/another-mutex/pkg/sync"
	"github.com/domiot-io/another-mutex/pkg/tests"
)

type closureService struct {
	startClosure func() error
	stopClosure  func()
}

func newClosureService(startClosure func() error, stopClosure func()) *closureService {
	return &closureService{startClosure: startClosure, stopClosure: stopClosure}
}

func (cs *closureService) Start() error {
	return cs.startClosure()
}

func (cs *closureService) Stop() {
	cs.stopClosure()
}

func stop(services ...core.Service) {
	for _, s := range services {
		s.Stop()
	}
}

func start(services ...core.Service) error {
	for i, s := range services {
		err := s.Start()
		if err != nil {
			stop(services[:i]...)
			return err
		}
	}
	return nil
}

// Report summarizes a stress run.
type Report struct {
	// Critical sections completed.
	Rounds int64
	// Requests given up because the wait timeout passed.
	TimedOut int64
	// The highest number of workers seen inside the critical section at once.
	Peak int64
	// Lock statistics at the end of the run.
	Stats sync.Stats
}

// Process runs an ordered run followed by a stress run on a fresh mutex,
// logging the lock statistics in the meantime.
func Process(p config.Params, log zerolog.Logger) (Report, error) {
	m := sync.NewMutexWithLog(log)
	stats := logging.NewStatsService(p.LogStatsInterval, m.Metrics(), log)
	if err := start(stats); err != nil {
		return Report{}, err
	}
	defer stop(stats)

	if err := Ordered(m, p.Tasks, p.Hold(), log); err != nil {
		return Report{}, err
	}
	return Stress(m, p, log)
}

// Ordered queues the given number of tasks behind a held lock, releases the lock after hold,
// and checks that the tasks entered the critical section in the order they asked for it.
func Ordered(m *sync.Mutex, tasks int, hold time.Duration, log zerolog.Logger) error {
	log = logging.ForService(log, logging.OrderedService)
	rec := tests.NewRecorder()
	holder := m.Acquire().Wait()

	jobs := make([]func() error, tasks)
	for i := range jobs {
		id, g := i, m.Acquire()
		jobs[i] = func() error {
			t := g.Wait()
			defer t.Release()
			rec.Push(id)
			log.Debug().Int(logging.Task, id).Uint64(logging.Token, t.ID()).Msg(logging.TaskDone)
			return nil
		}
	}
	time.AfterFunc(hold, holder.Release)

	if err := core.NewErrGroup().Go(jobs); err != nil {
		return err
	}
	if err := rec.CheckSequence(tasks); err != nil {
		log.Error().Str("where", "run.Ordered").Msg(err.Error())
		return err
	}
	log.Info().Int(logging.Size, tasks).Msg(logging.TaskDone)
	return nil
}

// Stress lets p.Workers workers compete for the lock for p.RunFor(), each holding it for p.Hold().
// At most p.MaxWaiters requests are outstanding at once. With a positive p.Timeout() workers give up
// waiting after that long. Returns an ExclusionError if two workers were ever inside at once.
func Stress(m *sync.Mutex, p config.Params, log zerolog.Logger) (Report, error) {
	log = logging.ForService(log, logging.StressService)
	var (
		occupancy        tests.Occupancy
		rounds, timedOut atomic.Int64
	)
	limit := p.MaxWaiters
	if limit == 0 {
		limit = p.Workers
	}
	outstanding := semaphore.NewWeighted(int64(limit))
	hold, timeout := p.Hold(), p.Timeout()
	ctx := context.Background()

	critical := func() error {
		if n := occupancy.Enter(); n > 1 {
			log.Error().Int64(logging.Size, n).Msg(logging.Violation)
		}
		if hold > 0 {
			time.Sleep(hold)
		}
		occupancy.Leave()
		rounds.Add(1)
		return nil
	}

	workers := sync.NewPool(p.Workers, func(worker int) {
		if err := outstanding.Acquire(ctx, 1); err != nil {
			return
		}
		defer outstanding.Release(1)
		if timeout <= 0 {
			m.Perform(critical)
			return
		}
		wctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := m.PerformContext(wctx, critical); err != nil {
			timedOut.Add(1)
			log.Debug().Int(logging.Task, worker).Msg(logging.Abandoned)
		}
	})
	service := newClosureService(
		func() error {
			workers.Start()
			return nil
		},
		workers.Stop,
	)

	if err := start(service); err != nil {
		return Report{}, err
	}
	time.Sleep(p.RunFor())
	stop(service)

	report := Report{
		Rounds:   rounds.Load(),
		TimedOut: timedOut.Load(),
		Peak:     occupancy.Peak(),
		Stats:    m.Stats(),
	}
	log.Info().
		Int64(logging.Size, report.Rounds).
		Int64("timedOut", report.TimedOut).
		Int64("peak", report.Peak).
		Int64(logging.WaitTime, report.Stats.MeanWait.Microseconds()).
		Msg(logging.Stats)
	return report, occupancy.Check()
}
