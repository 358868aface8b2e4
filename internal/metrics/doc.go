// Package metrics records generation metrics.
//
// Components receive a Recorder and default to NoopRecorder, so callers never
// nil-check. The preview server swaps in a PrometheusRecorder and exposes its
// registry through HTTPHandler.
package metrics
