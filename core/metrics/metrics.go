package metrics

import "time"

// InferenceEvent describes one engine invocation to be recorded.
type InferenceEvent struct {
	Engine     string
	MachineID  string
	Confidence float64
	ModelUsed  bool
	Outcome    string
	Duration   time.Duration
	Time       time.Time
}

// Engine labels used in InferenceEvent.
const (
	EngineForecast   = "forecast"
	EngineAnomaly    = "anomaly"
	EngineStatistics = "statistics"
)

// Outcome labels used in InferenceEvent.
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
)

// MetricsSink records inference events for observability purposes.
type MetricsSink interface {
	RecordInference(ev InferenceEvent) error
}

// AnomalyAlertEvent captures an alert raised by the telemetry monitor.
type AnomalyAlertEvent struct {
	AlertID   string
	MachineID string
	Index     int
	Value     float64
	Score     float64
	Threshold float64
	Time      time.Time
}

// AnomalyAlertRecorder records raised anomaly alerts. Sinks implement it
// optionally.
type AnomalyAlertRecorder interface {
	RecordAnomalyAlert(ev AnomalyAlertEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordInference implements MetricsSink.
func (NopSink) RecordInference(InferenceEvent) error { return nil }

// RecordAnomalyAlert implements AnomalyAlertRecorder.
func (NopSink) RecordAnomalyAlert(AnomalyAlertEvent) error { return nil }
