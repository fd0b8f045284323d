package logging

import (
	"sort"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"

	"github.com/domiot-io/another-mutex/pkg/core"
)

type statsService struct {
	ticker   <-chan time.Time
	stop     func()
	exitChan chan struct{}
	registry metrics.Registry
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewStatsService constructs a service that logs the content of the given metrics registry every n seconds.
// n equal to 0 disables periodic logging; a final entry is still written on Stop.
func NewStatsService(n int, registry metrics.Registry, log zerolog.Logger) core.Service {
	s := &statsService{
		exitChan: make(chan struct{}),
		registry: registry,
		log:      ForService(log, StatsService),
		stop:     func() {},
	}
	if n == 0 {
		s.ticker = make(<-chan time.Time)
	} else {
		t := time.NewTicker(time.Duration(n) * time.Second)
		s.ticker = t.C
		s.stop = t.Stop
	}
	return s
}

func (s *statsService) Start() error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.exitChan:
				return
			case <-s.ticker:
				s.report()
			}
		}
	}()
	s.log.Info().Msg(ServiceStarted)
	return nil
}

func (s *statsService) Stop() {
	close(s.exitChan)
	s.wg.Wait()
	s.stop()
	s.report()
	s.log.Info().Msg(ServiceStopped)
}

// report writes a single entry with every metric of the registry, ordered by name.
func (s *statsService) report() {
	snapshot := map[string]interface{}{}
	s.registry.Each(func(name string, m interface{}) {
		snapshot[name] = m
	})
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	ev := s.log.Info()
	for _, name := range names {
		switch m := snapshot[name].(type) {
		case metrics.Counter:
			ev = ev.Int64(name, m.Count())
		case metrics.Gauge:
			ev = ev.Int64(name, m.Value())
		case metrics.Timer:
			t := m.Snapshot()
			ev = ev.Int64(name+"_n", t.Count()).
				Int64(name+"_mean_us", int64(t.Mean()/1e3)).
				Int64(name+"_max_us", t.Max()/1e3)
		}
	}
	ev.Msg(Stats)
}
