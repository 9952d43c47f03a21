package metrics

import coremetrics "github.com/smartenergy/aeos-ml/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordInference forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordInference(ev coremetrics.InferenceEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordInference(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordAnomalyAlert forwards alerts to sinks that record them.
func (m *MultiSink) RecordAnomalyAlert(ev coremetrics.AnomalyAlertEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.AnomalyAlertRecorder); ok {
			if err := rec.RecordAnomalyAlert(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
