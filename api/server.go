package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartenergy/aeos-ml/core/logger"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	ReadTimeoutSec  int    `json:"read_timeout_seconds"`
	WriteTimeoutSec int    `json:"write_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8001
	}
	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}
	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 10
	}
}

// Server wraps the echo HTTP server.
type Server struct {
	echo *echo.Echo
	cfg  ServerConfig
	log  logger.Logger
}

// NewServer builds the echo instance with middleware, the API routes and the
// Prometheus scrape endpoint.
func NewServer(cfg ServerConfig, h *Handler, log logger.Logger) *Server {
	cfg.SetDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = time.Duration(cfg.ReadTimeoutSec) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.WriteTimeoutSec) * time.Second

	e.Use(middleware.Recover())
	e.Use(requestLogging(log))

	h.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{echo: e, cfg: cfg, log: log}
}

// Start runs the server until it fails or Stop is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.log.Infof("http server listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying echo instance, used by tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

// requestLogging logs each request with method, path, status and latency.
func requestLogging(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Debugw("http request", map[string]any{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
			})
			return err
		}
	}
}
