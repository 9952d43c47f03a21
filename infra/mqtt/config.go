package mqtt

import "fmt"

// Config defines the connection and monitoring parameters for the MQTT
// telemetry connector.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	QoS      byte   `json:"qos"`
	// ReadingsTopic is the subscription filter for machine telemetry.
	ReadingsTopic string `json:"readings_topic"`
	// AlertsTopicPrefix is prepended to the machine id when publishing alerts.
	AlertsTopicPrefix string `json:"alerts_topic_prefix"`
	// WindowSize bounds the per-machine sliding window of readings.
	WindowSize int `json:"window_size"`
	// MinPoints is the number of readings required before scoring starts.
	MinPoints int `json:"min_points"`
	// Threshold is the z-score above which a reading raises an alert.
	Threshold float64 `json:"threshold"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "aeos-ml"
	}
	if c.ReadingsTopic == "" {
		c.ReadingsTopic = "aeos/machines/+/readings"
	}
	if c.AlertsTopicPrefix == "" {
		c.AlertsTopicPrefix = "aeos/alerts"
	}
	if c.WindowSize == 0 {
		c.WindowSize = 48
	}
	if c.MinPoints == 0 {
		c.MinPoints = 8
	}
	if c.Threshold == 0 {
		c.Threshold = 2.0
	}
}

// Validate checks mandatory fields when the connector is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	if c.WindowSize < c.MinPoints {
		return fmt.Errorf("window_size %d must not be smaller than min_points %d", c.WindowSize, c.MinPoints)
	}
	if c.MinPoints < 3 {
		return fmt.Errorf("min_points %d must be at least 3", c.MinPoints)
	}
	return nil
}
