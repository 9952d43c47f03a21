package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartenergy/aeos-ml/infra/logger"
)

func writeArtifact(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "absent.json"), logger.NopLogger{})
	assert.False(t, h.Available())
}

func TestLoad_EmptyPath(t *testing.T) {
	h := Load("", logger.NopLogger{})
	assert.False(t, h.Available())
}

func TestLoad_CorruptFile(t *testing.T) {
	path := writeArtifact(t, "{not json")
	h := Load(path, logger.NopLogger{})
	assert.False(t, h.Available())
}

func TestLoad_UnsupportedType(t *testing.T) {
	path := writeArtifact(t, `{"model_type":"random_forest"}`)
	h := Load(path, logger.NopLogger{})
	assert.False(t, h.Available())
}

func TestLoad_LinearModel(t *testing.T) {
	path := writeArtifact(t, `{"model_type":"linear_regression","slope":2,"intercept":1,"output_len":3}`)
	h := Load(path, logger.NopLogger{})
	require.True(t, h.Available())
	assert.Equal(t, path, h.Path())

	out, err := h.Predict([]float64{5, 6, 7, 8})
	require.NoError(t, err)
	// Continues the line at t=4,5,6.
	assert.Equal(t, []float64{9, 11, 13}, out)
}

func TestLinearPredictor_InputTooShort(t *testing.T) {
	p := &LinearPredictor{Slope: 1, OutputLen: 2, MinInput: 5}
	_, err := p.Predict([]float64{1, 2})
	assert.Error(t, err)
}
