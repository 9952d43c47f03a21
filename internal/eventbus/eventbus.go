package eventbus

import (
	"sync"

	"github.com/smartenergy/aeos-ml/core/metrics"
)

// AlertBus fans anomaly alerts out to in-process subscribers. Delivery is
// non-blocking: a slow subscriber drops events instead of stalling the
// telemetry monitor.
type AlertBus struct {
	mu     sync.RWMutex
	subs   []chan metrics.AnomalyAlertEvent
	closed bool
}

// New creates an AlertBus.
func New() *AlertBus { return &AlertBus{} }

// Publish sends the alert to all subscribers.
func (b *AlertBus) Publish(ev metrics.AnomalyAlertEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a subscriber and returns its channel.
func (b *AlertBus) Subscribe() <-chan metrics.AnomalyAlertEvent {
	ch := make(chan metrics.AnomalyAlertEvent, 16)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *AlertBus) Unsubscribe(sub <-chan metrics.AnomalyAlertEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes the bus and all subscriber channels.
func (b *AlertBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
