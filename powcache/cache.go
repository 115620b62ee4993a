package powcache

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/jonwraymond/bigroot/observe"
	"github.com/jonwraymond/bigroot/resilience"
)

type entry struct {
	power *big.Int
	stamp int64
}

// Cache is a memoizing exponentiator. Use New; the zero value is not usable.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	counter int64

	policy  Policy
	retry   *resilience.Retry
	logger  observe.Logger
	metrics cacheMetrics
}

type options struct {
	policy Policy
	logger observe.Logger
	meter  metric.Meter
}

// Option configures a Cache.
type Option func(*options)

// WithPolicy sets the maintenance policy.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the logger used for shrink and recovery events.
func WithLogger(l observe.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMeter records hit, miss and eviction counters on m.
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		if m != nil {
			o.meter = m
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	o := options{
		policy: DefaultPolicy(),
		logger: observe.NopLogger(),
		meter:  noop.NewMeterProvider().Meter("noop"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache{
		entries: make(map[Key]*entry),
		policy:  o.policy.withDefaults(),
		logger:  o.logger,
	}
	c.metrics = newCacheMetrics(o.meter, o.logger)
	c.retry = resilience.Immediate(2,
		func(err error) bool { return errors.Is(err, ErrAllocationFailed) },
		func(_ int, err error, _ time.Duration) {
			// runs inside PowCached with c.mu held
			c.logger.Warn(context.Background(), "power cache cleared after allocation failure",
				observe.Field{Key: "items", Value: len(c.entries)},
				observe.Field{Key: "error", Value: err.Error()},
			)
			c.clearLocked()
		},
	)
	return c
}

// PowCached returns basement^exponent, reusing and extending the cache.
// The result is a fresh value owned by the caller.
func (c *Cache) PowCached(basement *big.Int, exponent int) (*big.Int, error) {
	if err := validate(basement, exponent); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.counter >= c.policy.CounterLimit {
		c.shrinkLocked(len(c.entries) / 2)
	}

	id := basementID(basement)
	var power *big.Int
	err := c.retry.Execute(context.Background(), func(context.Context) error {
		var err error
		power, err = c.calculate(basement, id, exponent)
		return err
	})
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(power), nil
}

// calculate splits the exponent in halves. Returned values may alias cache
// entries or the basement itself and must not be modified. Callers hold c.mu.
func (c *Cache) calculate(basement *big.Int, id string, exponent int) (*big.Int, error) {
	switch {
	case exponent == 0:
		return big.NewInt(1), nil
	case basement.Sign() == 0:
		return new(big.Int), nil
	case exponent == 1:
		return basement, nil
	}

	key := Key{Basement: id, Exponent: exponent}
	if e, ok := c.entries[key]; ok {
		c.counter++
		e.stamp = c.counter
		c.metrics.hits.Add(context.Background(), 1)
		return e.power, nil
	}
	c.metrics.misses.Add(context.Background(), 1)

	left := exponent / 2
	lhs, err := c.calculate(basement, id, left)
	if err != nil {
		return nil, err
	}
	rhs, err := c.calculate(basement, id, exponent-left)
	if err != nil {
		return nil, err
	}

	if c.policy.Guard != nil {
		if err := c.policy.Guard.Allow(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
		}
	}

	power := new(big.Int).Mul(lhs, rhs)
	c.counter++
	c.entries[key] = &entry{power: power, stamp: c.counter}
	return power, nil
}

// ShrinkCacheData keeps the keep most recently used entries and renumbers
// their stamps from 1. Zero empties the cache and resets the counter.
// Negative values are ignored.
func (c *Cache) ShrinkCacheData(keep int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shrinkLocked(keep)
}

func (c *Cache) shrinkLocked(keep int) {
	switch {
	case keep < 0:
		c.logger.Warn(context.Background(), "ignoring negative power cache shrink",
			observe.Field{Key: "keep", Value: keep})
		return
	case keep == 0:
		c.clearLocked()
		return
	}

	type ranked struct {
		key Key
		e   *entry
	}
	all := make([]ranked, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, ranked{key: k, e: e})
	}
	slices.SortFunc(all, func(a, b ranked) int { return cmp.Compare(a.e.stamp, b.e.stamp) })

	evicted := 0
	if keep < len(all) {
		evicted = len(all) - keep
		for _, r := range all[:evicted] {
			delete(c.entries, r.key)
		}
		all = all[evicted:]
	}
	for i, r := range all {
		r.e.stamp = int64(i + 1)
	}
	c.counter = int64(len(all))

	c.metrics.evictions.Add(context.Background(), int64(evicted))
	c.logger.Debug(context.Background(), "power cache shrunk",
		observe.Field{Key: "kept", Value: len(all)},
		observe.Field{Key: "evicted", Value: evicted},
	)
}

func (c *Cache) clearLocked() {
	evicted := len(c.entries)
	c.entries = make(map[Key]*entry)
	c.counter = 0
	c.reclaim()

	c.metrics.evictions.Add(context.Background(), int64(evicted))
	c.logger.Debug(context.Background(), "power cache cleared",
		observe.Field{Key: "evicted", Value: evicted})
}

// reclaimer is implemented by guards that cache memory readings and need to
// drop them after a collection, such as *health.MemoryChecker.
type reclaimer interface {
	ForceGC()
}

func (c *Cache) reclaim() {
	if r, ok := c.policy.Guard.(reclaimer); ok {
		r.ForceGC()
		return
	}
	runtime.GC()
}

// ItemsInCache returns the number of cached powers.
func (c *Cache) ItemsInCache() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func validate(basement *big.Int, exponent int) error {
	if basement == nil {
		return ErrNilBasement
	}
	if exponent < 0 {
		return ErrNegativeExponent
	}
	return nil
}

type cacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
}

func newCacheMetrics(meter metric.Meter, logger observe.Logger) cacheMetrics {
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{entry}"))
		if err != nil {
			logger.Warn(context.Background(), "power cache metric disabled",
				observe.Field{Key: "metric", Value: name},
				observe.Field{Key: "error", Value: err.Error()},
			)
			c, _ = noop.NewMeterProvider().Meter("noop").Int64Counter(name)
		}
		return c
	}
	return cacheMetrics{
		hits:      counter("powcache.hits", "Cached powers reused"),
		misses:    counter("powcache.misses", "Powers computed and inserted"),
		evictions: counter("powcache.evictions", "Cached powers discarded by shrinking"),
	}
}
