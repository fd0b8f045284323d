// Package core contains the small set of interfaces and error types shared by the other packages.
package core

// Service represents a functionality that can be started and stopped.
type Service interface {
	Start() error
	Stop()
}
