package config

import (
	"strconv"

	"github.com/domiot-io/another-mutex/pkg/core"
)

func nonNegative(name string, v float64) error {
	if v < 0 {
		return core.NewConfigError(name + " is negative")
	}
	return nil
}

// Valid checks if the given Params describe a runnable stress run.
func Valid(p Params) error {
	if p.Tasks < 1 || p.Tasks > MaxTasks {
		return core.NewConfigError("Tasks must be between 1 and " + strconv.Itoa(MaxTasks))
	}
	if p.Workers < 1 || p.Workers > MaxWorkers {
		return core.NewConfigError("Workers must be between 1 and " + strconv.Itoa(MaxWorkers))
	}
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"MaxWaiters", float64(p.MaxWaiters)},
		{"HoldTime", float64(p.HoldTime)},
		{"Duration", float64(p.Duration)},
		{"WaitTimeout", float64(p.WaitTimeout)},
		{"LogBuffer", float64(p.LogBuffer)},
		{"LogStatsInterval", float64(p.LogStatsInterval)},
	} {
		if err := nonNegative(c.name, c.v); err != nil {
			return err
		}
	}
	if p.LogLevel < 0 || p.LogLevel > 5 {
		return core.NewConfigError("LogLevel must be between 0 and 5")
	}
	return nil
}
