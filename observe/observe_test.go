package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "bigroot",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "debug"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "missing service name",
			cfg:  Config{},
			want: ErrMissingServiceName,
		},
		{
			name: "unknown tracing exporter",
			cfg:  Config{ServiceName: "s", Tracing: TracingConfig{Enabled: true, Exporter: "zipkin"}},
			want: ErrInvalidTracingExporter,
		},
		{
			name: "sample pct above range",
			cfg:  Config{ServiceName: "s", Tracing: TracingConfig{Enabled: true, SamplePct: 1.5}},
			want: ErrInvalidSamplePct,
		},
		{
			name: "sample pct negative",
			cfg:  Config{ServiceName: "s", Tracing: TracingConfig{Enabled: true, SamplePct: -0.1}},
			want: ErrInvalidSamplePct,
		},
		{
			name: "unknown metrics exporter",
			cfg:  Config{ServiceName: "s", Metrics: MetricsConfig{Enabled: true, Exporter: "statsd"}},
			want: ErrInvalidMetricsExporter,
		},
		{
			name: "unknown log level",
			cfg:  Config{ServiceName: "s", Logging: LoggingConfig{Enabled: true, Level: "trace"}},
			want: ErrInvalidLogLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestConfigValidate_DisabledSectionsIgnored(t *testing.T) {
	cfg := Config{
		ServiceName: "bigroot",
		Tracing:     TracingConfig{Exporter: "zipkin", SamplePct: 7},
		Metrics:     MetricsConfig{Exporter: "statsd"},
		Logging:     LoggingConfig{Level: "trace"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for disabled sections", err)
	}
}

func TestNewObserver_DisabledNoop(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "bigroot"})
	if err != nil {
		t.Fatalf("NewObserver() = %v", err)
	}
	if obs.Tracer() == nil || obs.Meter() == nil || obs.Logger() == nil {
		t.Fatal("expected non-nil tracer, meter and logger")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

func TestNewObserver_EnabledWithNoneExporters(t *testing.T) {
	var buf bytes.Buffer
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "bigroot",
		Version:     "test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "info", Writer: &buf},
	})
	if err != nil {
		t.Fatalf("NewObserver() = %v", err)
	}

	obs.Logger().Info(context.Background(), "hello")
	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"hello"`)) {
		t.Errorf("logger did not write to configured writer: %q", buf.String())
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() = %v", err)
	}
	err = mw.Wrap(func(context.Context, OpMeta) error { return nil })(context.Background(), OpMeta{Operation: "pow"})
	if err != nil {
		t.Errorf("wrapped call = %v", err)
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

func TestNewObserver_InvalidConfigReturnsError(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("NewObserver() = %v, want ErrMissingServiceName", err)
	}
}

func TestNopLogger_NoPanic(t *testing.T) {
	l := NopLogger().WithOp(OpMeta{Operation: "nthroot"}).With(Field{Key: "k", Value: 1})
	ctx := context.Background()
	l.Debug(ctx, "d")
	l.Info(ctx, "i")
	l.Warn(ctx, "w")
	l.Error(ctx, "e")
}
