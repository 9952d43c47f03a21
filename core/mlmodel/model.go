package mlmodel

import "fmt"

// Predictor produces future values from a historical series. Implementations
// live outside the core; the engines only rely on this contract.
type Predictor interface {
	// Predict returns forecasted values for the given series. The output
	// length is decided by the model, not the caller.
	Predict(series []float64) ([]float64, error)
}

// ModelError wraps a failure of the underlying model artifact.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model prediction failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// NewModelError wraps err as a ModelError.
func NewModelError(err error) *ModelError { return &ModelError{Err: err} }

// Holder wraps at most one Predictor. It is built once at startup and never
// mutated afterwards, so concurrent reads need no locking.
type Holder struct {
	predictor Predictor
	path      string
}

// NewHolder creates a Holder around the given predictor. A nil predictor
// yields a holder that reports unavailable.
func NewHolder(p Predictor, path string) *Holder {
	return &Holder{predictor: p, path: path}
}

// Available reports whether a predictor is loaded.
func (h *Holder) Available() bool {
	return h != nil && h.predictor != nil
}

// Path returns the configured artifact location, loaded or not.
func (h *Holder) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Predict delegates to the loaded predictor. Failures are returned as
// *ModelError so callers can distinguish model faults from their own.
func (h *Holder) Predict(series []float64) ([]float64, error) {
	if !h.Available() {
		return nil, NewModelError(fmt.Errorf("no model loaded"))
	}
	out, err := h.predictor.Predict(series)
	if err != nil {
		return nil, NewModelError(err)
	}
	return out, nil
}
