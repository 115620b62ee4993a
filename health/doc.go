// Package health provides health checks and the memory guard used by the
// power cache.
//
// A Checker reports a Status: Healthy, Degraded, or Unhealthy. MemoryChecker
// compares the Go heap against a configured ceiling and also implements
// Allow, which refuses once usage is critical:
//
//	mem := health.NewMemoryChecker(health.MemoryCheckerConfig{
//	    MaxAlloc:          4 << 30,
//	    CriticalThreshold: 0.95,
//	})
//	if err := mem.Allow(); err != nil {
//	    // drop caches before allocating more
//	}
//
// Aggregator runs several checkers in parallel with a shared timeout:
//
//	agg := health.NewAggregator(5 * time.Second)
//	agg.Register(mem)
//	results := agg.CheckAll(ctx)
//	overall := health.OverallStatus(results)
package health
