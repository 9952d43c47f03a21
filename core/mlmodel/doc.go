// Package mlmodel defines the contract for the optional predictive model.
// The model artifact is loaded once at startup and exposed to the engines as
// an immutable capability that may be absent or may fail at call time.
package mlmodel
