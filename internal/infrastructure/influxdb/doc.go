// Package influxdb records preset activity telemetry in InfluxDB v2.
//
// The client is optional: when influxdb is disabled in configuration
// Connect returns ErrDisabled and callers run without telemetry. Writes
// are non-blocking and batched; async write failures are surfaced
// through the SetOnError callback.
package influxdb
