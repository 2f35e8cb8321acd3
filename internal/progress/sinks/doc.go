// Package sinks implements progress consumers backed by zap and Prometheus.
// Each sink satisfies progress.Sink.
package sinks
