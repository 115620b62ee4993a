// Package resilience provides retry handling with configurable backoff.
//
// Retry covers both slow external failures (exponential or constant backoff
// with optional jitter) and in-process failures that a hook can repair
// before the next attempt (BackoffNone):
//
//	retry := resilience.Immediate(2,
//	    func(err error) bool { return errors.Is(err, ErrAllocationFailed) },
//	    func(int, error, time.Duration) { cache.clear() },
//	)
//	err := retry.Execute(ctx, compute)
package resilience
