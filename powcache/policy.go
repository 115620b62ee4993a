package powcache

import "math"

// Guard decides whether a new power may be allocated.
// *health.MemoryChecker satisfies it.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Cost: Allow is called once per inserted entry and must be cheap.
type Guard interface {
	Allow() error
}

// Policy configures cache maintenance.
type Policy struct {
	// CounterLimit is the recency counter value at which the cache shrinks
	// to half its entries before the next call.
	// Default: math.MaxInt32
	CounterLimit int64

	// Guard, when set, is consulted before every new product is computed.
	// Default: nil (no guard)
	Guard Guard
}

// DefaultPolicy returns the default maintenance policy: counter limit
// math.MaxInt32, no guard.
func DefaultPolicy() Policy {
	return Policy{CounterLimit: math.MaxInt32}
}

func (p Policy) withDefaults() Policy {
	if p.CounterLimit <= 0 {
		p.CounterLimit = math.MaxInt32
	}
	return p
}
