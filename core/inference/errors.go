package inference

import "fmt"

// InsufficientDataError reports a series shorter than an engine's minimum.
// It maps to a client error at the HTTP boundary.
type InsufficientDataError struct {
	Min int
	Got int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d data points, got %d", e.Min, e.Got)
}

func errInsufficientData(min, got int) *InsufficientDataError {
	return &InsufficientDataError{Min: min, Got: got}
}
