package inference

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/smartenergy/aeos-ml/core/logger"
	"github.com/smartenergy/aeos-ml/core/mlmodel"
)

// Confidence levels communicate forecast provenance, not calibrated
// probabilities.
const (
	// ConfidenceModel is reported when the loaded model produced the forecast.
	ConfidenceModel = 0.9
	// ConfidenceSmoothing is reported when no model is loaded and the
	// exponential smoothing fallback ran.
	ConfidenceSmoothing = 0.6
	// ConfidenceDegraded is reported when the model failed and the forecast
	// degraded to the series mean.
	ConfidenceDegraded = 0.5
)

// smoothingAlpha is the fixed coefficient of the fallback recurrence.
const smoothingAlpha = 0.3

// minForecastPoints is the minimum series length accepted by Forecast.
const minForecastPoints = 2

// ForecastResult holds the predicted values and their provenance signal.
type ForecastResult struct {
	Predictions []float64
	Confidence  float64
}

// ForecastEngine forecasts future consumption using the model holder when a
// model is available and exponential smoothing otherwise.
type ForecastEngine struct {
	holder *mlmodel.Holder
	log    logger.Logger
}

// NewForecastEngine creates a ForecastEngine reading from the given holder.
func NewForecastEngine(holder *mlmodel.Holder, log logger.Logger) *ForecastEngine {
	return &ForecastEngine{holder: holder, log: log}
}

// Forecast returns horizon future values for the series. The series must hold
// at least two points; horizon zero yields an empty forecast with the
// confidence still reflecting the path that would have run. Model failures
// never surface to the caller: the result degrades to the series mean.
func (e *ForecastEngine) Forecast(series []float64, horizon int) (ForecastResult, error) {
	if len(series) < minForecastPoints {
		return ForecastResult{}, errInsufficientData(minForecastPoints, len(series))
	}
	if horizon < 0 {
		return ForecastResult{}, fmt.Errorf("horizon must be non-negative, got %d", horizon)
	}

	if e.holder.Available() {
		return e.modelForecast(series, horizon), nil
	}
	return ForecastResult{
		Predictions: smoothedForecast(series, horizon),
		Confidence:  ConfidenceSmoothing,
	}, nil
}

func (e *ForecastEngine) modelForecast(series []float64, horizon int) ForecastResult {
	out, err := e.holder.Predict(series)
	if err != nil || len(out) == 0 {
		if err != nil {
			e.log.Warnf("model prediction failed, degrading to mean forecast: %v", err)
		} else {
			e.log.Warnf("model returned an empty forecast, degrading to mean forecast")
		}
		return ForecastResult{
			Predictions: repeat(stat.Mean(series, nil), horizon),
			Confidence:  ConfidenceDegraded,
		}
	}

	if len(out) >= horizon {
		return ForecastResult{Predictions: out[:horizon], Confidence: ConfidenceModel}
	}
	// Shorter model output is padded by holding its last value.
	padded := make([]float64, horizon)
	copy(padded, out)
	for i := len(out); i < horizon; i++ {
		padded[i] = out[len(out)-1]
	}
	return ForecastResult{Predictions: padded, Confidence: ConfidenceModel}
}

// smoothedForecast iterates predicted = alpha*previous + (1-alpha)*mean,
// seeded from the last observation. Successive values converge toward the
// series mean.
func smoothedForecast(series []float64, horizon int) []float64 {
	mean := stat.Mean(series, nil)
	preds := make([]float64, horizon)
	prev := series[len(series)-1]
	for i := range preds {
		prev = smoothingAlpha*prev + (1-smoothingAlpha)*mean
		preds[i] = prev
	}
	return preds
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
