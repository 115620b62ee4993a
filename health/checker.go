package health

import (
	"context"
	"time"
)

// Status is the health of one component. Larger values are worse.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Worse returns the more severe of s and other.
func (s Status) Worse(other Status) Status {
	if other > s {
		return other
	}
	return s
}

// Result is the outcome of one check.
type Result struct {
	Status  Status
	Message string

	// Details carries checker-specific measurements, e.g. allocated bytes.
	Details map[string]any

	// Duration and Timestamp are filled in by the Aggregator when the
	// checker leaves them unset.
	Duration  time.Duration
	Timestamp time.Time

	Error error
}

func newResult(status Status, message string, err error) Result {
	return Result{Status: status, Message: message, Error: err, Timestamp: time.Now()}
}

// Healthy creates a healthy result.
func Healthy(message string) Result { return newResult(StatusHealthy, message, nil) }

// Degraded creates a degraded result.
func Degraded(message string) Result { return newResult(StatusDegraded, message, nil) }

// Unhealthy creates an unhealthy result carrying the cause.
func Unhealthy(message string, err error) Result { return newResult(StatusUnhealthy, message, err) }

// WithDetails returns r with details attached.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker is a named health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a function to a check; give it a name with Named.
type CheckerFunc func(ctx context.Context) Result

// Named returns a Checker called name that runs fn.
func Named(name string, fn CheckerFunc) Checker {
	return namedChecker{name: name, fn: fn}
}

type namedChecker struct {
	name string
	fn   CheckerFunc
}

func (c namedChecker) Name() string                     { return c.name }
func (c namedChecker) Check(ctx context.Context) Result { return c.fn(ctx) }
