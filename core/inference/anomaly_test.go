package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAnomalies_TooShort(t *testing.T) {
	_, err := DetectAnomalies([]float64{1, 2}, 2.0)
	require.Error(t, err)
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 3, ide.Min)
}

func TestDetectAnomalies_ConstantSeries(t *testing.T) {
	res, err := DetectAnomalies([]float64{5, 5, 5, 5}, 0.0)
	require.NoError(t, err)
	assert.Empty(t, res.Indices)
	require.Len(t, res.Scores, 4)
	for _, s := range res.Scores {
		assert.Zero(t, s)
	}
}

func TestDetectAnomalies_Outlier(t *testing.T) {
	res, err := DetectAnomalies([]float64{1, 1, 1, 1, 100}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, res.Indices)
	assert.Len(t, res.Scores, 5)
}

func TestDetectAnomalies_StrictComparator(t *testing.T) {
	// mean=20.8, sigma=39.6, z[4]=2.0: sits on the default threshold.
	res, err := DetectAnomalies([]float64{1, 1, 1, 1, 100}, 1.99)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, res.Indices)
	assert.InDelta(t, 2.0, res.Scores[4], 0.01)

	// A threshold equal to the exact score must unflag the point, proving
	// > rather than >= is used.
	res2, err := DetectAnomalies([]float64{1, 1, 1, 1, 100}, res.Scores[4])
	require.NoError(t, err)
	assert.Empty(t, res2.Indices)
	assert.Equal(t, res.Scores, res2.Scores)
}

func TestDetectAnomalies_FlagsMatchScores(t *testing.T) {
	series := []float64{3, 9, 4, 2, 50, 5, 3, 2, 60, 4}
	threshold := 1.0
	res, err := DetectAnomalies(series, threshold)
	require.NoError(t, err)

	require.Len(t, res.Scores, len(series))
	want := make([]int, 0)
	for i, s := range res.Scores {
		if s > threshold {
			want = append(want, i)
		}
	}
	assert.Equal(t, want, res.Indices)
	for i := 1; i < len(res.Indices); i++ {
		assert.Greater(t, res.Indices[i], res.Indices[i-1])
	}
}
