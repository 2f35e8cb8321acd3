// Package progress carries telemetry about timeline parses and scroll runs.
// Producers call Emit on a Hub, which never blocks; a background goroutine
// batches events and hands them to pluggable sinks such as structured logs or
// Prometheus collectors.
package progress
