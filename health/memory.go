package health

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// MemoryCheckerConfig configures the memory health checker.
type MemoryCheckerConfig struct {
	// WarningThreshold is the fraction of MaxAlloc that triggers degraded status.
	// Value should be between 0 and 1. Default: 0.8 (80%)
	WarningThreshold float64

	// CriticalThreshold is the fraction of MaxAlloc that triggers unhealthy
	// status and makes Allow refuse.
	// Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64

	// MaxAlloc is the maximum expected heap allocation in bytes.
	// If zero, the memory obtained from the OS is used instead.
	MaxAlloc uint64

	// SampleInterval bounds how often Allow reads runtime memory stats,
	// which stops the world.
	// Default: 100ms
	SampleInterval time.Duration
}

// MemoryChecker checks memory usage health. It doubles as an allocation
// guard for memory-hungry caches through Allow.
type MemoryChecker struct {
	config MemoryCheckerConfig

	mu         sync.Mutex
	sampledAt  time.Time
	lastRatio  float64
	readMemory func(*runtime.MemStats)
}

// NewMemoryChecker creates a new memory health checker.
func NewMemoryChecker(config MemoryCheckerConfig) *MemoryChecker {
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold + 0.1
		if config.CriticalThreshold > 1 {
			config.CriticalThreshold = 0.99
		}
	}
	if config.SampleInterval <= 0 {
		config.SampleInterval = 100 * time.Millisecond
	}

	return &MemoryChecker{config: config, readMemory: runtime.ReadMemStats}
}

// Name returns the name of this checker.
func (m *MemoryChecker) Name() string {
	return "memory"
}

func (m *MemoryChecker) usage() (ratio float64, stats runtime.MemStats, maxAlloc uint64) {
	m.readMemory(&stats)

	maxAlloc = m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		return 0, stats, 0
	}
	return float64(stats.Alloc) / float64(maxAlloc), stats, maxAlloc
}

// Check performs the memory health check.
func (m *MemoryChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	usageRatio, stats, maxAlloc := m.usage()
	if maxAlloc == 0 {
		return Healthy("memory stats unavailable")
	}

	details := map[string]any{
		"alloc_bytes":   stats.Alloc,
		"alloc_mb":      float64(stats.Alloc) / (1024 * 1024),
		"max_alloc":     maxAlloc,
		"usage_percent": usageRatio * 100,
		"heap_objects":  stats.HeapObjects,
		"num_gc":        stats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	if usageRatio >= m.config.CriticalThreshold {
		return Unhealthy(
			fmt.Sprintf("memory usage critical: %.1f%%", usageRatio*100),
			ErrMemoryCritical,
		).WithDetails(details)
	}

	if usageRatio >= m.config.WarningThreshold {
		return Degraded(
			fmt.Sprintf("memory usage high: %.1f%%", usageRatio*100),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("memory usage normal: %.1f%%", usageRatio*100),
	).WithDetails(details)
}

// Allow returns ErrMemoryCritical while usage is at or above the critical
// threshold. Stats are re-read at most once per SampleInterval; in between,
// the last sample decides.
func (m *MemoryChecker) Allow() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now := time.Now(); m.sampledAt.IsZero() || now.Sub(m.sampledAt) >= m.config.SampleInterval {
		m.lastRatio, _, _ = m.usage()
		m.sampledAt = now
	}

	if m.lastRatio >= m.config.CriticalThreshold {
		return fmt.Errorf("%w: %.1f%% in use", ErrMemoryCritical, m.lastRatio*100)
	}
	return nil
}

// ForceGC triggers a garbage collection and drops the cached sample, so the
// next Allow sees the reclaimed memory.
func (m *MemoryChecker) ForceGC() {
	runtime.GC()
	m.mu.Lock()
	m.sampledAt = time.Time{}
	m.mu.Unlock()
}

var _ Checker = (*MemoryChecker)(nil)
