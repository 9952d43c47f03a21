package inference

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarises a series. Std is the population standard deviation;
// percentiles use linear interpolation between closest ranks.
type Statistics struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
}

// ComputeStatistics summarises the series. At least one point is required;
// min, max and the percentiles are undefined on an empty series.
func ComputeStatistics(series []float64) (Statistics, error) {
	if len(series) < 1 {
		return Statistics{}, errInsufficientData(1, len(series))
	}

	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	return Statistics{
		Count:  len(series),
		Mean:   stat.Mean(series, nil),
		Median: percentile(sorted, 0.5),
		Std:    stat.PopStdDev(series, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		P25:    percentile(sorted, 0.25),
		P75:    percentile(sorted, 0.75),
	}, nil
}

// percentile interpolates linearly at rank p*(n-1) of an ascending slice.
// gonum's stat.Quantile cumulant kinds follow the empirical CDF and disagree
// with this convention, so the interpolation is done directly.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
