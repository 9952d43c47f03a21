package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/smartenergy/aeos-ml/core/metrics"
)

// PromSink records inference activity in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	alerts   *prometheus.CounterVec
	model    prometheus.Gauge
}

// NewPromSink registers inference metrics on the default Prometheus
// registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inference_requests_total",
		Help: "Total number of inference engine invocations",
	}, []string{"engine", "outcome", "model_used"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inference_duration_seconds",
		Help:    "Engine computation time per request",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anomaly_alerts_total",
		Help: "Total number of anomaly alerts raised by the telemetry monitor",
	}, []string{"machine_id"})
	model := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "model_loaded",
		Help: "Whether a predictive model artifact is loaded (1) or not (0)",
	})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(alerts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			alerts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(model); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			model = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, latency: latency, alerts: alerts, model: model}, nil
}

// RecordInference increments the request counter and observes the latency.
func (s *PromSink) RecordInference(ev coremetrics.InferenceEvent) error {
	s.requests.WithLabelValues(ev.Engine, ev.Outcome, strconv.FormatBool(ev.ModelUsed)).Inc()
	s.latency.WithLabelValues(ev.Engine).Observe(ev.Duration.Seconds())
	return nil
}

// RecordAnomalyAlert increments the alert counter for the machine.
func (s *PromSink) RecordAnomalyAlert(ev coremetrics.AnomalyAlertEvent) error {
	s.alerts.WithLabelValues(ev.MachineID).Inc()
	return nil
}

// RecordModelLoaded sets the model availability gauge.
func (s *PromSink) RecordModelLoaded(loaded bool) {
	if s.model == nil {
		return
	}
	if loaded {
		s.model.Set(1)
	} else {
		s.model.Set(0)
	}
}
