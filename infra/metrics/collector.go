package metrics

import (
	"context"

	coremetrics "github.com/smartenergy/aeos-ml/core/metrics"
	"github.com/smartenergy/aeos-ml/internal/eventbus"
)

// StartAlertCollector subscribes to the alert bus and records every alert in
// the sink. It stops when the context is canceled.
func StartAlertCollector(ctx context.Context, bus *eventbus.AlertBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	rec, ok := sink.(coremetrics.AnomalyAlertRecorder)
	if !ok {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-sub:
				if !open {
					return
				}
				_ = rec.RecordAnomalyAlert(ev)
			}
		}
	}()
}
