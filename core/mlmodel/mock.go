package mlmodel

import "errors"

// MockPredictor returns a fixed forecast or a configured error.
type MockPredictor struct {
	Output []float64
	Err    error
}

// Predict returns a copy of the configured output or the configured error.
func (m MockPredictor) Predict(series []float64) ([]float64, error) {
	_ = series
	if m.Err != nil {
		return nil, m.Err
	}
	cp := make([]float64, len(m.Output))
	copy(cp, m.Output)
	return cp, nil
}

// ErrMockFailure is a ready-made failure for tests.
var ErrMockFailure = errors.New("mock predictor failure")
