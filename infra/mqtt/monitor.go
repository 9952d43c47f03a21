package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartenergy/aeos-ml/core/inference"
	"github.com/smartenergy/aeos-ml/core/metrics"
	"github.com/smartenergy/aeos-ml/infra/logger"
	"github.com/smartenergy/aeos-ml/internal/eventbus"
)

// Reading is a single machine telemetry sample.
type Reading struct {
	MachineID string    `json:"machine_id"`
	PowerKW   float64   `json:"power_kw"`
	Timestamp time.Time `json:"timestamp"`
}

// Alert is published when a reading scores above the configured threshold.
type Alert struct {
	AlertID   string    `json:"alert_id"`
	MachineID string    `json:"machine_id"`
	Value     float64   `json:"value"`
	Score     float64   `json:"score"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher sends a payload to a topic. Satisfied by *Client.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Monitor keeps a bounded sliding window of readings per machine and scores
// each incoming sample against its window. Newly anomalous samples raise an
// alert on the alerts topic and on the in-process bus.
type Monitor struct {
	cfg Config
	pub Publisher
	bus *eventbus.AlertBus
	log logger.Logger

	mu      sync.Mutex
	windows map[string][]float64
}

// NewMonitor creates a Monitor. bus may be nil when no in-process consumers
// exist.
func NewMonitor(cfg Config, pub Publisher, bus *eventbus.AlertBus, log logger.Logger) *Monitor {
	return &Monitor{
		cfg:     cfg,
		pub:     pub,
		bus:     bus,
		log:     log,
		windows: make(map[string][]float64),
	}
}

// Subscriber registers a handler for a topic filter. Satisfied by *Client.
type Subscriber interface {
	Subscribe(topic string, handler func(topic string, payload []byte)) error
}

// Start subscribes the monitor to the readings topic.
func (m *Monitor) Start(sub Subscriber) error {
	if err := sub.Subscribe(m.cfg.ReadingsTopic, m.HandleReading); err != nil {
		return fmt.Errorf("subscribe %s: %w", m.cfg.ReadingsTopic, err)
	}
	m.log.Infof("telemetry monitor subscribed to %s", m.cfg.ReadingsTopic)
	return nil
}

// HandleReading ingests one telemetry message. Malformed payloads are logged
// and dropped.
func (m *Monitor) HandleReading(topic string, payload []byte) {
	var r Reading
	if err := json.Unmarshal(payload, &r); err != nil {
		m.log.Warnf("dropping malformed reading on %s: %v", topic, err)
		return
	}
	if r.MachineID == "" {
		r.MachineID = machineFromTopic(topic)
	}
	if r.MachineID == "" {
		m.log.Warnf("dropping reading without machine id on %s", topic)
		return
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	window := m.appendReading(r.MachineID, r.PowerKW)
	if len(window) < m.cfg.MinPoints {
		return
	}

	res, err := inference.DetectAnomalies(window, m.cfg.Threshold)
	if err != nil {
		m.log.Errorf("scoring window for %s: %v", r.MachineID, err)
		return
	}
	last := len(window) - 1
	if len(res.Indices) == 0 || res.Indices[len(res.Indices)-1] != last {
		return
	}
	m.raiseAlert(r, res.Scores[last], last)
}

// appendReading grows the machine window, trimming it to the configured size,
// and returns a copy safe to score outside the lock.
func (m *Monitor) appendReading(machineID string, value float64) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := append(m.windows[machineID], value)
	if len(w) > m.cfg.WindowSize {
		w = w[len(w)-m.cfg.WindowSize:]
	}
	m.windows[machineID] = w
	cp := make([]float64, len(w))
	copy(cp, w)
	return cp
}

func (m *Monitor) raiseAlert(r Reading, score float64, index int) {
	alert := Alert{
		AlertID:   uuid.NewString(),
		MachineID: r.MachineID,
		Value:     r.PowerKW,
		Score:     score,
		Threshold: m.cfg.Threshold,
		Timestamp: r.Timestamp,
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		m.log.Errorf("encode alert for %s: %v", r.MachineID, err)
		return
	}
	topic := m.cfg.AlertsTopicPrefix + "/" + r.MachineID
	if err := m.pub.Publish(topic, payload); err != nil {
		m.log.Errorf("publish alert to %s: %v", topic, err)
	}
	if m.bus != nil {
		m.bus.Publish(metrics.AnomalyAlertEvent{
			AlertID:   alert.AlertID,
			MachineID: alert.MachineID,
			Index:     index,
			Value:     alert.Value,
			Score:     alert.Score,
			Threshold: alert.Threshold,
			Time:      alert.Timestamp,
		})
	}
	m.log.Infof("anomaly alert for %s: value=%.2f score=%.2f", r.MachineID, r.PowerKW, score)
}

// machineFromTopic extracts the machine id from "aeos/machines/<id>/readings"
// style topics.
func machineFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}
