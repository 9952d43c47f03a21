package simulator

// Config drives the telemetry generator.
type Config struct {
	// Machines is the number of simulated machines.
	Machines int `json:"machines"`
	// IntervalSeconds is the publish period per machine.
	IntervalSeconds int `json:"interval_seconds"`
	// TopicPrefix is completed as <prefix>/<machine id>/readings.
	TopicPrefix string `json:"topic_prefix"`
	// BasePowerKW is the mean consumption of each machine.
	BasePowerKW float64 `json:"base_power_kw"`
	// Amplitude scales the daily sinusoidal swing around the base.
	Amplitude float64 `json:"amplitude"`
	// NoiseStd is the standard deviation of the gaussian noise term.
	NoiseStd float64 `json:"noise_std"`
	// SpikeProbability is the chance per reading of an injected outlier.
	SpikeProbability float64 `json:"spike_probability"`
	// SpikeMultiplier scales the base power when a spike is injected.
	SpikeMultiplier float64 `json:"spike_multiplier"`
	// Seed fixes the random source; zero seeds from the clock.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Machines == 0 {
		c.Machines = 3
	}
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = 5
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "aeos/machines"
	}
	if c.BasePowerKW == 0 {
		c.BasePowerKW = 12.5
	}
	if c.Amplitude == 0 {
		c.Amplitude = 4.0
	}
	if c.NoiseStd == 0 {
		c.NoiseStd = 0.5
	}
	if c.SpikeProbability == 0 {
		c.SpikeProbability = 0.02
	}
	if c.SpikeMultiplier == 0 {
		c.SpikeMultiplier = 6.0
	}
}
