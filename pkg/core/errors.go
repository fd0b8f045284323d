package core

import "strconv"

// ConfigError is returned when a provided configuration can not be parsed or is invalid.
type ConfigError struct {
	msg string
}

// Error returns a string description of a ConfigError.
func (e *ConfigError) Error() string {
	return "ConfigError: " + e.msg
}

// NewConfigError constructs a ConfigError from a given msg.
func NewConfigError(msg string) *ConfigError {
	return &ConfigError{msg}
}

// ExclusionError is raised when more than one holder was observed inside a critical section.
// It indicates a broken lock, never a misbehaving caller.
type ExclusionError struct {
	Holders int
	msg     string
}

// Error returns a string description of an ExclusionError.
func (e *ExclusionError) Error() string {
	return "ExclusionError: " + strconv.Itoa(e.Holders) + " holders at once: " + e.msg
}

// NewExclusionError constructs an ExclusionError for the given number of simultaneous holders.
func NewExclusionError(holders int, msg string) *ExclusionError {
	return &ExclusionError{holders, msg}
}

// OrderError is raised when locks were granted in an order different from the order they were requested in.
type OrderError struct {
	Position int
	Expected int
	Got      int
}

// Error returns a string description of an OrderError.
func (e *OrderError) Error() string {
	return "OrderError: at position " + strconv.Itoa(e.Position) + " expected " + strconv.Itoa(e.Expected) + ", got " + strconv.Itoa(e.Got)
}

// NewOrderError constructs an OrderError.
func NewOrderError(position, expected, got int) *OrderError {
	return &OrderError{position, expected, got}
}
