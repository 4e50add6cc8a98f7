// Package telemetry carries the ambient observability stack for the
// pipeline: a zap logger, OTel span-per-stage tracing, and Prometheus
// stage-latency/cache/ingest metrics, shaped as a library many Pipeline
// values can share rather than per-process singletons.
package telemetry

import "go.uber.org/zap"

// NewLogger builds the production zap logger used by a Pipeline when the
// caller doesn't inject one of their own via WithLogger.
func NewLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
