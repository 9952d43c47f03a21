// Package artifact loads the optional predictive model artifact from disk.
// The artifact is a JSON description of a trained linear trend model; loading
// happens once at startup and a missing or corrupt file degrades the service
// to fallback-only mode instead of failing it.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/smartenergy/aeos-ml/core/logger"
	"github.com/smartenergy/aeos-ml/core/mlmodel"
)

// linearModelType is the only artifact type currently supported.
const linearModelType = "linear_regression"

type artifactFile struct {
	ModelType string  `json:"model_type"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	OutputLen int     `json:"output_len"`
	MinInput  int     `json:"min_input"`
}

// LinearPredictor extrapolates a fitted consumption trend over future time
// indices. The fit itself happens offline; only the coefficients ship in the
// artifact.
type LinearPredictor struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	OutputLen int
	MinInput  int
}

// Predict continues the fitted line from the end of the series. The series
// index is the time axis, so the first predicted step is slope*len+intercept.
func (p *LinearPredictor) Predict(series []float64) ([]float64, error) {
	if len(series) < p.MinInput {
		return nil, fmt.Errorf("model requires at least %d input points, got %d", p.MinInput, len(series))
	}
	out := make([]float64, p.OutputLen)
	for i := range out {
		t := float64(len(series) + i)
		out[i] = p.Slope*t + p.Intercept
	}
	return out, nil
}

// Load reads the artifact at path and returns a holder around it. Any load
// failure is logged and results in an unavailable holder; startup never fails
// because of the model.
func Load(path string, log logger.Logger) *mlmodel.Holder {
	if path == "" {
		log.Infof("no model artifact configured, running fallback-only")
		return mlmodel.NewHolder(nil, path)
	}
	pred, err := loadPredictor(path)
	if err != nil {
		log.Warnf("could not load model artifact %s: %v", path, err)
		return mlmodel.NewHolder(nil, path)
	}
	log.Infof("model artifact loaded from %s (r2=%.3f)", path, pred.RSquared)
	return mlmodel.NewHolder(pred, path)
}

func loadPredictor(path string) (*LinearPredictor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var af artifactFile
	if err := json.Unmarshal(raw, &af); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if af.ModelType != linearModelType {
		return nil, fmt.Errorf("unsupported model type %q", af.ModelType)
	}
	if af.OutputLen <= 0 {
		af.OutputLen = 24
	}
	if af.MinInput <= 0 {
		af.MinInput = 2
	}
	return &LinearPredictor{
		Slope:     af.Slope,
		Intercept: af.Intercept,
		RSquared:  af.RSquared,
		OutputLen: af.OutputLen,
		MinInput:  af.MinInput,
	}, nil
}
