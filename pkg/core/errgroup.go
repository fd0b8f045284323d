package core

import (
	"errors"
	"sync"
)

// ErrGroup spawns multiple goroutines, waits until they finish, and returns a joined error.
type ErrGroup struct {
	wg     sync.WaitGroup
	errors []error
}

// NewErrGroup creates a new instance of ErrGroup.
func NewErrGroup() *ErrGroup {
	return &ErrGroup{}
}

// Go runs tasks in goroutines, gathers potential errors, and returns them joined in task order.
// Returns nil when every task succeeded.
func (eg *ErrGroup) Go(tasks []func() error) error {
	eg.errors = make([]error, len(tasks))
	eg.wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task func() error) {
			defer eg.wg.Done()
			eg.errors[i] = task()
		}(i, task)
	}
	eg.wg.Wait()
	return errors.Join(eg.errors...)
}
