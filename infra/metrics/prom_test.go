package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/smartenergy/aeos-ml/core/metrics"
)

func TestPromSink_RecordInference(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	ev := coremetrics.InferenceEvent{
		Engine:     coremetrics.EngineForecast,
		MachineID:  "m1",
		Confidence: 0.9,
		ModelUsed:  true,
		Outcome:    coremetrics.OutcomeOK,
		Duration:   5 * time.Millisecond,
		Time:       time.Now(),
	}
	if err := sink.RecordInference(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP inference_requests_total Total number of inference engine invocations
# TYPE inference_requests_total counter
inference_requests_total{engine="forecast",model_used="true",outcome="ok"} 1
`
	if err := testutil.CollectAndCompare(sink.requests, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.latency); c == 0 {
		t.Errorf("latency not recorded")
	}
}

func TestPromSink_RecordAnomalyAlertAndModelGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordAnomalyAlert(coremetrics.AnomalyAlertEvent{MachineID: "m2", Score: 3}); err != nil {
		t.Fatalf("alert error: %v", err)
	}
	if got := testutil.ToFloat64(sink.alerts.WithLabelValues("m2")); got != 1 {
		t.Errorf("alert counter = %v, want 1", got)
	}

	sink.RecordModelLoaded(true)
	if got := testutil.ToFloat64(sink.model); got != 1 {
		t.Errorf("model gauge = %v, want 1", got)
	}
	sink.RecordModelLoaded(false)
	if got := testutil.ToFloat64(sink.model); got != 0 {
		t.Errorf("model gauge = %v, want 0", got)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
