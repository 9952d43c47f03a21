package app

import (
	"context"
	"fmt"
	"time"

	"github.com/smartenergy/aeos-ml/api"
	"github.com/smartenergy/aeos-ml/config"
	"github.com/smartenergy/aeos-ml/core/inference"
	coremetrics "github.com/smartenergy/aeos-ml/core/metrics"
	"github.com/smartenergy/aeos-ml/infra/artifact"
	"github.com/smartenergy/aeos-ml/infra/logger"
	"github.com/smartenergy/aeos-ml/infra/metrics"
	"github.com/smartenergy/aeos-ml/infra/mqtt"
	"github.com/smartenergy/aeos-ml/internal/eventbus"
)

const shutdownTimeout = 10 * time.Second

// Service orchestrates the HTTP server and the MQTT telemetry connector.
type Service struct {
	server  *api.Server
	monitor *mqtt.Monitor
	client  *mqtt.Client
	bus     *eventbus.AlertBus
	sink    coremetrics.MetricsSink
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetGlobalLevel(cfg.Logging.Level)
	logg := logger.New("service")

	holder := artifact.Load(cfg.Model.Path, logg)
	engine := inference.NewForecastEngine(holder, logg)

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink.RecordModelLoaded(holder.Available())
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	svc := &Service{
		bus:  bus,
		sink: sink,
		log:  logg,
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.NewClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.client = client
		svc.monitor = mqtt.NewMonitor(cfg.MQTT, client, bus, logg)
	}

	handler := api.NewHandler(engine, holder, sink, logg)
	svc.server = api.NewServer(cfg.Server, handler, logg)
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartAlertCollector(ctx, s.bus, s.sink)

	if s.monitor != nil {
		if err := s.monitor.Start(s.client); err != nil {
			return fmt.Errorf("mqtt monitor: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Stop(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.client != nil {
		s.client.Disconnect()
	}
	s.bus.Close()
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	return nil
}
