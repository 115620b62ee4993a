// Package observe provides observability primitives for big-integer root and
// power operations.
//
// It is a pure instrumentation library: tracing, metrics and a JSON
// structured logger, plus exporter setup. The nthroot and powcache packages
// accept the pieces they need; nothing here performs arithmetic.
package observe
