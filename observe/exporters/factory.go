// Package exporters provides factory functions for creating OpenTelemetry exporters.
package exporters

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Environment variables consulted for remote exporters.
const (
	EnvOTLPEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOTLPTracesEndpoint  = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
	EnvOTLPMetricsEndpoint = "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"
	EnvJaegerEndpoint      = "OTEL_EXPORTER_JAEGER_ENDPOINT"
)

// firstEnv returns the first non-empty environment variable among keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// NewTracingExporter creates a span exporter by name.
// Supported exporters: stdout, otlp, jaeger, none
func NewTracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	switch name {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(os.Stdout))

	case "otlp":
		if firstEnv(EnvOTLPEndpoint, EnvOTLPTracesEndpoint) == "" {
			return nil, fmt.Errorf("OTLP endpoint not configured: set %s or %s", EnvOTLPEndpoint, EnvOTLPTracesEndpoint)
		}
		return otlptracegrpc.New(ctx)

	case "jaeger":
		// Jaeger ingests OTLP natively.
		if firstEnv(EnvJaegerEndpoint) == "" {
			return nil, fmt.Errorf("Jaeger endpoint not configured: set %s", EnvJaegerEndpoint)
		}
		return otlptracegrpc.New(ctx)

	case "none", "":
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("unknown exporter: %q", name)
	}
}

// NewMetricsReader creates a metrics reader by name.
// Supported exporters: stdout, otlp, prometheus, none
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	switch name {
	case "stdout":
		return periodic(stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout)))

	case "otlp":
		if firstEnv(EnvOTLPEndpoint, EnvOTLPMetricsEndpoint) == "" {
			return nil, fmt.Errorf("OTLP metrics endpoint not configured: set %s or %s", EnvOTLPEndpoint, EnvOTLPMetricsEndpoint)
		}
		return periodic(otlpmetricgrpc.New(ctx))

	case "prometheus":
		exp, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		return exp, nil

	case "none", "":
		return periodic(stdoutmetric.New(stdoutmetric.WithWriter(io.Discard)))

	default:
		return nil, fmt.Errorf("unknown metrics exporter: %q", name)
	}
}

func periodic(exp sdkmetric.Exporter, err error) (sdkmetric.Reader, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}
