package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	coremetrics "github.com/smartenergy/aeos-ml/core/metrics"
	"github.com/smartenergy/aeos-ml/internal/eventbus"
)

type recordSink struct {
	mu         sync.Mutex
	inferences int
	alerts     int
}

func (r *recordSink) RecordInference(coremetrics.InferenceEvent) error {
	r.mu.Lock()
	r.inferences++
	r.mu.Unlock()
	return nil
}

func (r *recordSink) RecordAnomalyAlert(coremetrics.AnomalyAlertEvent) error {
	r.mu.Lock()
	r.alerts++
	r.mu.Unlock()
	return nil
}

func (r *recordSink) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inferences, r.alerts
}

// plainSink records inferences only.
type plainSink struct{ inferences int }

func (p *plainSink) RecordInference(coremetrics.InferenceEvent) error {
	p.inferences++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &plainSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordInference(coremetrics.InferenceEvent{}); err != nil {
		t.Fatalf("record inference: %v", err)
	}
	if err := m.RecordAnomalyAlert(coremetrics.AnomalyAlertEvent{}); err != nil {
		t.Fatalf("record alert: %v", err)
	}
	if inf, al := s1.counts(); inf != 1 || al != 1 {
		t.Fatalf("events not forwarded to recordSink: %d %d", inf, al)
	}
	if s2.inferences != 1 {
		t.Fatalf("inference not forwarded to plainSink")
	}
}

func TestStartAlertCollector(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sink := &recordSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartAlertCollector(ctx, bus, sink)
	bus.Publish(coremetrics.AnomalyAlertEvent{MachineID: "m1"})

	deadline := time.After(2 * time.Second)
	for {
		if _, alerts := sink.counts(); alerts > 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("alert not recorded")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
