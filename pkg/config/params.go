// Package config reads and writes the parameters of the stress tool.
package config

import "time"

const (
	// MaxTasks is the maximal number of tasks in an ordered run.
	MaxTasks = 1e6
	// MaxWorkers is the maximal number of workers in a stress run.
	MaxWorkers = 1e5
)

// Params represents a set of stress-run parameters adjustable via JSON config files.
type Params struct {
	// The number of tasks queued behind a held lock in the ordered run.
	Tasks int

	// The number of workers competing for the lock in the stress run.
	Workers int

	// The maximal number of outstanding lock requests, holding or waiting, at once. 0 means one per worker.
	MaxWaiters int

	// How long (in milliseconds) a worker holds the lock.
	HoldTime float32

	// How long (in seconds) the stress run lasts.
	Duration float32

	// How long (in milliseconds) a worker waits for the lock before giving up. 0 means forever.
	WaitTimeout float32

	// Log level: 0-debug 1-info 2-warn 3-error 4-fatal 5-panic.
	LogLevel int

	// The size of log diode buffer in bytes. 0 disables the diode. Recommended at least 100k.
	LogBuffer int

	// How often (in seconds) to log the lock statistics. 0 to disable.
	LogStatsInterval int

	// Whether to write the log in the human readable form or in JSON.
	LogHuman bool
}

// NewDefaultParams returns default set of parameters.
func NewDefaultParams() Params {
	result := Params{

		Tasks: 10,

		Workers: 8,

		MaxWaiters: 0,

		HoldTime: 1,

		Duration: 5,

		WaitTimeout: 0,

		LogLevel: 1,

		LogBuffer: 100000,

		LogStatsInterval: 1,

		LogHuman: false,
	}
	return result
}

// Hold returns HoldTime as a duration.
func (p Params) Hold() time.Duration {
	return millis(p.HoldTime)
}

// RunFor returns Duration as a duration.
func (p Params) RunFor() time.Duration {
	return time.Duration(float64(p.Duration) * float64(time.Second))
}

// Timeout returns WaitTimeout as a duration.
func (p Params) Timeout() time.Duration {
	return millis(p.WaitTimeout)
}

func millis(v float32) time.Duration {
	return time.Duration(float64(v) * float64(time.Millisecond))
}
