package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/smartenergy/aeos-ml/infra/logger"
	"github.com/smartenergy/aeos-ml/infra/mqtt"
)

// machine generates a plausible consumption profile: a daily sinusoid around
// a per-machine base, gaussian noise and rare injected spikes.
type machine struct {
	id    string
	base  float64
	phase float64
}

// Simulator publishes synthetic telemetry for a set of machines.
type Simulator struct {
	cfg      Config
	pub      mqtt.Publisher
	log      logger.Logger
	rng      *rand.Rand
	machines []machine
}

// New creates a Simulator publishing through pub.
func New(cfg Config, pub mqtt.Publisher, log logger.Logger) *Simulator {
	cfg.SetDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	machines := make([]machine, cfg.Machines)
	for i := range machines {
		machines[i] = machine{
			id:    fmt.Sprintf("machine-%02d", i+1),
			base:  cfg.BasePowerKW * (0.8 + 0.4*rng.Float64()),
			phase: rng.Float64() * 2 * math.Pi,
		}
	}
	return &Simulator{cfg: cfg, pub: pub, log: log, rng: rng, machines: machines}
}

// Run publishes one reading per machine every interval until the context is
// cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Infof("simulating %d machines every %s", len(s.machines), interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Tick(now)
		}
	}
}

// Tick publishes one reading per machine stamped at now.
func (s *Simulator) Tick(now time.Time) {
	for _, m := range s.machines {
		r := mqtt.Reading{
			MachineID: m.id,
			PowerKW:   s.sample(m, now),
			Timestamp: now.UTC(),
		}
		payload, err := json.Marshal(r)
		if err != nil {
			s.log.Errorf("marshal reading for %s: %v", m.id, err)
			continue
		}
		topic := fmt.Sprintf("%s/%s/readings", s.cfg.TopicPrefix, m.id)
		if err := s.pub.Publish(topic, payload); err != nil {
			s.log.Warnf("publish reading for %s: %v", m.id, err)
		}
	}
}

func (s *Simulator) sample(m machine, now time.Time) float64 {
	dayFraction := float64(now.Hour()*3600+now.Minute()*60+now.Second()) / 86400
	value := m.base +
		s.cfg.Amplitude*math.Sin(2*math.Pi*dayFraction+m.phase) +
		s.rng.NormFloat64()*s.cfg.NoiseStd
	if s.rng.Float64() < s.cfg.SpikeProbability {
		value = m.base * s.cfg.SpikeMultiplier
	}
	if value < 0 {
		value = 0
	}
	return value
}
