package observe

import (
	"context"
	"time"
)

// ExecuteFunc is the signature of an instrumented operation. Results travel
// through the closure; only the error is observed.
type ExecuteFunc func(ctx context.Context, op OpMeta) error

// Middleware wraps operations with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe ExecuteFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Logger returns the logger the middleware writes to.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Wrap wraps fn with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, op OpMeta) error {
		ctx, span := m.tracer.StartSpan(ctx, op)
		start := time.Now()

		err := fn(ctx, op)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)
		m.metrics.RecordOperation(ctx, op, duration, err)

		opLogger := m.logger.WithOp(op)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			opLogger.Error(ctx, "operation failed", fields...)
		} else {
			opLogger.Debug(ctx, "operation completed", fields...)
		}

		return err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
