// Package prometheus exposes goHelper metrics through client_golang.
//
// [PrometheusExporter] is a prometheus.Collector: register it with any
// registry, or mount [PrometheusExporter.Handler] which serves it from a
// private one. Counter names are gohelper_*_total; the single histogram is
// gohelper_layout_latency_seconds and is only present when latency
// histograms are enabled.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry.
//   - Mutate helper state.
package prometheus
