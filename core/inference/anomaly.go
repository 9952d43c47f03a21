package inference

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// minAnomalyPoints is the minimum series length accepted by DetectAnomalies.
const minAnomalyPoints = 3

// AnomalyResult carries per-point z-scores and the indices flagged as
// outliers. Scores align 1:1 with the input series; Indices is strictly
// increasing.
type AnomalyResult struct {
	Indices []int
	Scores  []float64
}

// DetectAnomalies flags points whose absolute z-score strictly exceeds the
// threshold. A constant series has zero deviation everywhere and therefore
// never produces anomalies.
func DetectAnomalies(series []float64, threshold float64) (AnomalyResult, error) {
	if len(series) < minAnomalyPoints {
		return AnomalyResult{}, errInsufficientData(minAnomalyPoints, len(series))
	}

	mean := stat.Mean(series, nil)
	std := stat.PopStdDev(series, nil)

	scores := make([]float64, len(series))
	indices := make([]int, 0)
	if std == 0 {
		return AnomalyResult{Indices: indices, Scores: scores}, nil
	}
	for i, v := range series {
		scores[i] = math.Abs(v-mean) / std
		if scores[i] > threshold {
			indices = append(indices, i)
		}
	}
	return AnomalyResult{Indices: indices, Scores: scores}, nil
}
