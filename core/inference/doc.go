// Package inference implements the forecasting, anomaly detection and
// descriptive statistics engines operating on energy consumption series.
// Engines are pure functions of their input plus the read-only model holder,
// so calls are safe to run concurrently without coordination.
package inference
