package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jonwraymond/bigroot/health"
	"github.com/jonwraymond/bigroot/nthroot"
	"github.com/jonwraymond/bigroot/observe"
	"github.com/jonwraymond/bigroot/powcache"
)

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg    Config
	runID  string
	obs    observe.Observer
	mw     *observe.Middleware
	logger observe.Logger
	memory *health.MemoryChecker
	cache  *powcache.Cache
	root   *nthroot.Root

	logFile io.Closer
}

func newApp(ctx context.Context, cfg Config, stderr io.Writer) (*app, error) {
	a := &app{cfg: cfg, runID: uuid.NewString()}

	logWriter := stderr
	if cfg.Log.File != "" {
		lj := &lumberjack.Logger{
			LocalTime:  true,
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxAge:     cfg.Log.MaxAgeDays,
			MaxBackups: cfg.Log.MaxBackups,
			Compress:   cfg.Log.Compress,
		}
		logWriter = lj
		a.logFile = lj
	}
	cfg.Observe.Logging.Writer = logWriter

	obs, err := observe.NewObserver(ctx, cfg.Observe)
	if err != nil {
		_ = a.closeLog()
		return nil, fmt.Errorf("failed to create observer: %w", err)
	}
	a.obs = obs
	a.logger = obs.Logger().With(observe.Field{Key: "run_id", Value: a.runID})

	metrics, err := observe.NewMetrics(obs.Meter())
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	a.mw = observe.NewMiddleware(observe.NewTracer(obs.Tracer()), metrics, a.logger)

	a.memory = health.NewMemoryChecker(health.MemoryCheckerConfig{
		MaxAlloc:          cfg.Cache.MaxAllocMB << 20,
		CriticalThreshold: cfg.Cache.CriticalThreshold,
	})
	policy := powcache.Policy{CounterLimit: cfg.Cache.CounterLimit}
	if cfg.Cache.MaxAllocMB > 0 {
		// without an explicit ceiling the checker compares against memory
		// already obtained from the OS, which is too noisy to refuse on
		policy.Guard = a.memory
	}
	a.cache = powcache.New(
		powcache.WithPolicy(policy),
		powcache.WithLogger(a.logger),
		powcache.WithMeter(obs.Meter()),
	)
	a.root = nthroot.New(
		nthroot.WithExponentiator(a.cache),
		nthroot.WithMiddleware(a.mw),
	)

	a.logger.Debug(ctx, "bigroot started",
		observe.Field{Key: "version", Value: version},
		observe.Field{Key: "log_file", Value: cfg.Log.File},
	)
	return a, nil
}

// Close flushes telemetry and closes the log file.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if a.obs != nil {
		if err := a.obs.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.closeLog(); err != nil {
		errs = append(errs, fmt.Errorf("log file close: %w", err))
	}
	return errors.Join(errs...)
}

func (a *app) closeLog() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}
