package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartenergy/aeos-ml/core/inference"
	"github.com/smartenergy/aeos-ml/core/logger"
	"github.com/smartenergy/aeos-ml/core/metrics"
	"github.com/smartenergy/aeos-ml/core/mlmodel"
)

// Version is reported by the info endpoints.
const Version = "1.0.0"

// Handler exposes the inference engines over HTTP.
type Handler struct {
	forecast *inference.ForecastEngine
	holder   *mlmodel.Holder
	sink     metrics.MetricsSink
	log      logger.Logger
}

// NewHandler creates a Handler. A nil sink disables metrics recording.
func NewHandler(forecast *inference.ForecastEngine, holder *mlmodel.Holder, sink metrics.MetricsSink, log logger.Logger) *Handler {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Handler{forecast: forecast, holder: holder, sink: sink, log: log}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleRoot)
	e.GET("/health", h.handleHealth)
	e.POST("/predict", h.handlePredict)
	e.POST("/anomalies", h.handleAnomalies)
	e.POST("/statistics", h.handleStatistics)
	e.GET("/model-info", h.handleModelInfo)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func errorJSON(c echo.Context, status int, detail string) error {
	return c.JSON(status, ErrorResponse{Detail: detail})
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Timestamp:   timestamp(),
		ModelLoaded: h.holder.Available(),
	})
}

func (h *Handler) handlePredict(c echo.Context) error {
	var req ForecastRequest
	if rerr := readAndValidate(c, &req); rerr != nil {
		h.record(metrics.EngineForecast, req.MachineID, 0, metrics.OutcomeClientError, 0)
		return errorJSON(c, rerr.status, rerr.detail)
	}

	start := time.Now()
	res, err := h.forecast.Forecast(req.HistoricalData, *req.FuturePeriods)
	if err != nil {
		return h.engineError(c, metrics.EngineForecast, req.MachineID, start, err)
	}

	h.record(metrics.EngineForecast, req.MachineID, res.Confidence, metrics.OutcomeOK, time.Since(start))
	return c.JSON(http.StatusOK, ForecastResponse{
		MachineID:   req.MachineID,
		Predictions: res.Predictions,
		Confidence:  res.Confidence,
		Timestamp:   timestamp(),
	})
}

func (h *Handler) handleAnomalies(c echo.Context) error {
	var req AnomalyRequest
	if rerr := readAndValidate(c, &req); rerr != nil {
		h.record(metrics.EngineAnomaly, req.MachineID, 0, metrics.OutcomeClientError, 0)
		return errorJSON(c, rerr.status, rerr.detail)
	}

	start := time.Now()
	res, err := inference.DetectAnomalies(req.Data, *req.Threshold)
	if err != nil {
		return h.engineError(c, metrics.EngineAnomaly, req.MachineID, start, err)
	}

	h.record(metrics.EngineAnomaly, req.MachineID, 0, metrics.OutcomeOK, time.Since(start))
	return c.JSON(http.StatusOK, AnomalyResponse{
		MachineID:     req.MachineID,
		Anomalies:     res.Indices,
		AnomalyScores: res.Scores,
		Timestamp:     timestamp(),
	})
}

func (h *Handler) handleStatistics(c echo.Context) error {
	var data []float64
	if err := c.Bind(&data); err != nil {
		h.record(metrics.EngineStatistics, "", 0, metrics.OutcomeClientError, 0)
		return errorJSON(c, http.StatusBadRequest, "body must be a JSON array of numbers")
	}

	start := time.Now()
	st, err := inference.ComputeStatistics(data)
	if err != nil {
		return h.engineError(c, metrics.EngineStatistics, "", start, err)
	}

	h.record(metrics.EngineStatistics, "", 0, metrics.OutcomeOK, time.Since(start))
	return c.JSON(http.StatusOK, StatisticsResponse{
		Count:      st.Count,
		Mean:       st.Mean,
		Median:     st.Median,
		Std:        st.Std,
		Min:        st.Min,
		Max:        st.Max,
		Quartile25: st.P25,
		Quartile75: st.P75,
		Timestamp:  timestamp(),
	})
}

func (h *Handler) handleModelInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, ModelInfoResponse{
		ModelLoaded: h.holder.Available(),
		ModelPath:   h.holder.Path(),
		Version:     Version,
		Timestamp:   timestamp(),
		Capabilities: []string{
			"energy_prediction",
			"anomaly_detection",
			"statistics",
			"health_check",
		},
	})
}

func (h *Handler) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, ServiceInfoResponse{
		Service: "AEOS ML Server",
		Version: Version,
		Status:  "active",
		Endpoints: map[string]string{
			"health":     "/health",
			"predict":    "/predict",
			"anomalies":  "/anomalies",
			"statistics": "/statistics",
			"model_info": "/model-info",
			"metrics":    "/metrics",
		},
	})
}

// engineError maps engine failures to HTTP errors. Insufficient input is the
// caller's fault; anything else is reported as a generic server error without
// leaking internals.
func (h *Handler) engineError(c echo.Context, engine, machineID string, start time.Time, err error) error {
	var ide *inference.InsufficientDataError
	if errors.As(err, &ide) {
		h.record(engine, machineID, 0, metrics.OutcomeClientError, time.Since(start))
		return errorJSON(c, http.StatusBadRequest, ide.Error())
	}
	h.log.Errorf("%s engine failed for %q: %v", engine, machineID, err)
	h.record(engine, machineID, 0, metrics.OutcomeServerError, time.Since(start))
	return errorJSON(c, http.StatusInternalServerError, "internal computation error")
}

func (h *Handler) record(engine, machineID string, confidence float64, outcome string, d time.Duration) {
	_ = h.sink.RecordInference(metrics.InferenceEvent{
		Engine:     engine,
		MachineID:  machineID,
		Confidence: confidence,
		ModelUsed:  h.holder.Available(),
		Outcome:    outcome,
		Duration:   d,
		Time:       time.Now().UTC(),
	})
}
