package mqtt

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartenergy/aeos-ml/infra/logger"
	"github.com/smartenergy/aeos-ml/internal/eventbus"
)

type capturePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
}

func (c *capturePublisher) Publish(topic string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *capturePublisher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.topics)
}

func monitorConfig() Config {
	cfg := Config{Enabled: true, Broker: "tcp://localhost:1883", MinPoints: 4, WindowSize: 16, Threshold: 1.5}
	cfg.SetDefaults()
	return cfg
}

func feed(m *Monitor, machine string, values []float64) {
	for _, v := range values {
		payload, _ := json.Marshal(Reading{MachineID: machine, PowerKW: v})
		m.HandleReading("aeos/machines/"+machine+"/readings", payload)
	}
}

func TestMonitor_AlertsOnSpike(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMonitor(monitorConfig(), pub, nil, logger.NopLogger{})

	feed(m, "m1", []float64{10, 11, 10, 9, 10, 11, 100})
	require.Equal(t, 1, pub.count())
	assert.Equal(t, "aeos/alerts/m1", pub.topics[0])

	var alert Alert
	require.NoError(t, json.Unmarshal(pub.payloads[0], &alert))
	assert.Equal(t, "m1", alert.MachineID)
	assert.Equal(t, 100.0, alert.Value)
	assert.Greater(t, alert.Score, 1.5)
	assert.NotEmpty(t, alert.AlertID)
	assert.False(t, alert.Timestamp.IsZero())
}

func TestMonitor_NoAlertBelowMinPoints(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMonitor(monitorConfig(), pub, nil, logger.NopLogger{})
	feed(m, "m1", []float64{10, 10, 1000})
	assert.Zero(t, pub.count())
}

func TestMonitor_SteadySeriesStaysQuiet(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMonitor(monitorConfig(), pub, nil, logger.NopLogger{})
	feed(m, "m1", []float64{10, 10, 10, 10, 10, 10, 10, 10})
	assert.Zero(t, pub.count())
}

func TestMonitor_MachineIDFromTopic(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMonitor(monitorConfig(), pub, nil, logger.NopLogger{})
	for _, v := range []float64{5, 5, 5, 5, 5, 50} {
		payload, _ := json.Marshal(map[string]float64{"power_kw": v})
		m.HandleReading("aeos/machines/press-7/readings", payload)
	}
	require.Equal(t, 1, pub.count())
	assert.Equal(t, "aeos/alerts/press-7", pub.topics[0])
}

func TestMonitor_MalformedPayloadDropped(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMonitor(monitorConfig(), pub, nil, logger.NopLogger{})
	m.HandleReading("aeos/machines/m1/readings", []byte("{broken"))
	assert.Zero(t, pub.count())
}

func TestMonitor_WindowIsBounded(t *testing.T) {
	cfg := monitorConfig()
	cfg.WindowSize = 8
	pub := &capturePublisher{}
	m := NewMonitor(cfg, pub, nil, logger.NopLogger{})

	// A spike far in the past scrolls out of the window; once it does, the
	// same steady value cannot alert again.
	feed(m, "m1", []float64{100, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10})
	m.mu.Lock()
	got := len(m.windows["m1"])
	m.mu.Unlock()
	assert.Equal(t, 8, got)
}

func TestMonitor_PublishesOnBus(t *testing.T) {
	pub := &capturePublisher{}
	bus := eventbus.New()
	defer bus.Close()
	sub := bus.Subscribe()

	m := NewMonitor(monitorConfig(), pub, bus, logger.NopLogger{})
	feed(m, "m9", []float64{10, 11, 10, 9, 10, 11, 100})

	select {
	case ev := <-sub:
		assert.Equal(t, "m9", ev.MachineID)
		assert.Equal(t, 100.0, ev.Value)
	default:
		t.Fatal("no alert event on bus")
	}
}
