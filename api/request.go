package api

// ForecastRequest asks for future consumption of one machine.
type ForecastRequest struct {
	MachineID      string    `json:"machine_id" validate:"required"`
	HistoricalData []float64 `json:"historical_data" validate:"required,min=2"`
	// FuturePeriods defaults to 24; an explicit 0 requests an empty forecast.
	FuturePeriods *int `json:"future_periods" default:"24" validate:"omitempty,gte=0"`
}

// AnomalyRequest asks for outlier scoring of one machine's series.
type AnomalyRequest struct {
	MachineID string    `json:"machine_id" validate:"required"`
	Data      []float64 `json:"data" validate:"required,min=3"`
	Threshold *float64  `json:"threshold" default:"2.0" validate:"omitempty,gt=0"`
}

// ForecastResponse carries the predictions and their provenance signal.
type ForecastResponse struct {
	MachineID   string    `json:"machine_id"`
	Predictions []float64 `json:"predictions"`
	Confidence  float64   `json:"confidence"`
	Timestamp   string    `json:"timestamp"`
}

// AnomalyResponse carries flagged indices plus a score per input point.
type AnomalyResponse struct {
	MachineID     string    `json:"machine_id"`
	Anomalies     []int     `json:"anomalies"`
	AnomalyScores []float64 `json:"anomaly_scores"`
	Timestamp     string    `json:"timestamp"`
}

// StatisticsResponse summarises a series.
type StatisticsResponse struct {
	Count      int     `json:"count"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	Std        float64 `json:"std"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Quartile25 float64 `json:"quartile_25"`
	Quartile75 float64 `json:"quartile_75"`
	Timestamp  string  `json:"timestamp"`
}

// HealthResponse reports service liveness and model availability.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ModelInfoResponse describes the loaded model capability.
type ModelInfoResponse struct {
	ModelLoaded  bool     `json:"model_loaded"`
	ModelPath    string   `json:"model_path"`
	Version      string   `json:"version"`
	Timestamp    string   `json:"timestamp"`
	Capabilities []string `json:"capabilities"`
}

// ServiceInfoResponse is the root endpoint descriptor.
type ServiceInfoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
