// Package metrics defines the sink interfaces and event types used to record
// inference activity. Concrete sinks live under infra/metrics.
package metrics
