package eventbus

import (
	"testing"
	"time"

	"github.com/smartenergy/aeos-ml/core/metrics"
)

func TestAlertBus_PublishSubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Publish(metrics.AnomalyAlertEvent{MachineID: "m1", Score: 3.2})

	select {
	case ev := <-sub:
		if ev.MachineID != "m1" {
			t.Fatalf("unexpected event: %#v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestAlertBus_Unsubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
	b.Publish(metrics.AnomalyAlertEvent{MachineID: "m1"})
}

func TestAlertBus_CloseIsIdempotent(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Close()
	b.Close()
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
	if late := b.Subscribe(); late == nil {
		t.Fatal("subscribe after close must still return a channel")
	}
}

func TestAlertBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := New()
	_ = b.Subscribe()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(metrics.AnomalyAlertEvent{Index: i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
