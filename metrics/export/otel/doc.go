// Package otel bridges goHelper counters into an OpenTelemetry meter.
//
// [NewOTelExporter] registers an Int64ObservableCounter for each helper
// counter: log lines per level, encrypt and decrypt outcomes, generated ids,
// hashes and codes, user and admin redirects, layout renders and failures,
// session writes and debug dumps. Layout latency is exported as one
// Int64ObservableGauge per cumulative bucket plus a sample count, and
// gohelper_layout_error_ratio reports failed compositions as a fraction of
// all compositions.
//
// A single callback reads [goHelper.Helper.MetricsSnapshot] on each
// collection cycle. [OTelExporter.InstrumentNames] lists every instrument in
// registration order.
//
// # What this package must NOT do
//
//   - Own the MeterProvider; callers supply the Meter.
//   - Mutate helper state.
package otel
