package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Metrics records operation metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordOperation records one operation with its duration and error status.
	RecordOperation(ctx context.Context, meta OpMeta, duration time.Duration, err error)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates the operation instruments on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"bigroot.op.total",
		metric.WithDescription("Total number of root and power operations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"bigroot.op.errors",
		metric.WithDescription("Total number of failed root and power operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"bigroot.op.duration_ms",
		metric.WithDescription("Operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordOperation records metrics for one operation.
func (m *metricsImpl) RecordOperation(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(meta.attributes()...)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

// NopMetrics returns a Metrics implementation that does nothing.
func NopMetrics() Metrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) RecordOperation(context.Context, OpMeta, time.Duration, error) {}
