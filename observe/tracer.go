package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// OpMeta describes one arithmetic operation for telemetry purposes.
type OpMeta struct {
	Operation   string // nthroot, pow, ... (required)
	Algorithm   string // root extraction algorithm, when one was chosen
	Degree      int    // root degree or exponent
	OperandBits int    // bit length of the radicand or basement
}

// SpanName returns the deterministic span name for this operation.
// Format: bigroot.<operation>.<algorithm> or bigroot.<operation>
func (m OpMeta) SpanName() string {
	if m.Algorithm != "" {
		return "bigroot." + m.Operation + "." + m.Algorithm
	}
	return "bigroot." + m.Operation
}

// Validate reports whether the metadata is usable.
func (m OpMeta) Validate() error {
	if m.Operation == "" {
		return ErrMissingOperation
	}
	return nil
}

func (m OpMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("op.name", m.Operation),
	}
	if m.Algorithm != "" {
		attrs = append(attrs, attribute.String("op.algorithm", m.Algorithm))
	}
	if m.Degree != 0 {
		attrs = append(attrs, attribute.Int("op.degree", m.Degree))
	}
	if m.OperandBits != 0 {
		attrs = append(attrs, attribute.Int("op.operand_bits", m.OperandBits))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with operation-specific spans.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span)
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with operation metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool("op.error", false))
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("op.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer whose spans are never recorded.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}
