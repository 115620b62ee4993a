package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel parses a string log level. Unknown values map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// sink serializes writes from every logger derived from the same root.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

// structuredLogger writes one JSON object per line.
type structuredLogger struct {
	level     LogLevel
	out       *sink
	baseAttrs map[string]any
}

// NewLogger creates a structured logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a structured logger with a custom writer.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &structuredLogger{
		level:     ParseLogLevel(level),
		out:       &sink{w: w},
		baseAttrs: make(map[string]any),
	}
}

func (l *structuredLogger) derive(extra int) map[string]any {
	attrs := make(map[string]any, len(l.baseAttrs)+extra)
	for k, v := range l.baseAttrs {
		attrs[k] = v
	}
	return attrs
}

// WithOp returns a logger with operation context attached.
func (l *structuredLogger) WithOp(meta OpMeta) Logger {
	attrs := l.derive(4)
	attrs["op.name"] = meta.Operation
	if meta.Algorithm != "" {
		attrs["op.algorithm"] = meta.Algorithm
	}
	if meta.Degree != 0 {
		attrs["op.degree"] = meta.Degree
	}
	if meta.OperandBits != 0 {
		attrs["op.operand_bits"] = meta.OperandBits
	}
	return &structuredLogger{level: l.level, out: l.out, baseAttrs: attrs}
}

// With returns a logger carrying the given fields on every entry.
func (l *structuredLogger) With(fields ...Field) Logger {
	attrs := l.derive(len(fields))
	for _, f := range fields {
		attrs[f.Key] = f.Value
	}
	return &structuredLogger{level: l.level, out: l.out, baseAttrs: attrs}
}

func (l *structuredLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *structuredLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *structuredLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelError, msg, fields)
}

func (l *structuredLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *structuredLogger) log(_ context.Context, level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(l.baseAttrs)+len(fields)+3)
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	for k, v := range l.baseAttrs {
		entry[k] = v
	}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return // Silently drop malformed log entries
	}
	data = append(data, '\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	_, _ = l.out.w.Write(data)
}

var _ Logger = (*structuredLogger)(nil)
