package health

import "errors"

var (
	// ErrCheckFailed indicates a health check failed.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a health check timed out.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrMemoryCritical indicates memory usage crossed the critical threshold.
	ErrMemoryCritical = errors.New("health: memory usage critical")
)
