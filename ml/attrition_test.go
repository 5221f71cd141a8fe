package ml

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const tinyAttritionArtifact = `{
  "model": "logistic_regression",
  "features": ["a", "b", "c"],
  "mean": [0, 0, 0],
  "scale": [1, 1, 1],
  "coef": [1, -1, 0.5],
  "intercept": -0.25
}`

func TestLoadAttrition_MissingFile(t *testing.T) {
	_, err := LoadAttrition(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadAttrition_BadJSON(t *testing.T) {
	path := writeArtifact(t, "bad.json", "{pas du json")
	_, err := LoadAttrition(path)
	assert.Error(t, err)
}

func TestLoadAttrition_InconsistentWidths(t *testing.T) {
	path := writeArtifact(t, "bad.json", `{
	  "features": ["a", "b"],
	  "mean": [0],
	  "scale": [1, 1],
	  "coef": [1, 1],
	  "intercept": 0
	}`)
	_, err := LoadAttrition(path)
	assert.Error(t, err)
}

func TestLoadAttrition_ZeroScale(t *testing.T) {
	path := writeArtifact(t, "bad.json", `{
	  "features": ["a"],
	  "mean": [0],
	  "scale": [0],
	  "coef": [1],
	  "intercept": 0
	}`)
	_, err := LoadAttrition(path)
	assert.Error(t, err)
}

func TestAttritionPredict(t *testing.T) {
	p, err := LoadAttrition(writeArtifact(t, "tiny.json", tinyAttritionArtifact))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, p.Features())

	// z = 1*1 - 0.25 = 0.75 > 0
	label, err := p.Predict([]float64{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, LabelYes, label)

	// z = -1 - 0.25 = -1.25 < 0
	label, err = p.Predict([]float64{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, LabelNo, label)
}

func TestAttritionPredict_WrongLength(t *testing.T) {
	p, err := LoadAttrition(writeArtifact(t, "tiny.json", tinyAttritionArtifact))
	require.NoError(t, err)

	_, err = p.Predict([]float64{1, 2})
	assert.Error(t, err)
	_, err = p.Predict(nil)
	assert.Error(t, err)
}

func TestAttritionPredict_NonFinite(t *testing.T) {
	p, err := LoadAttrition(writeArtifact(t, "tiny.json", tinyAttritionArtifact))
	require.NoError(t, err)

	_, err = p.Predict([]float64{math.NaN(), 0, 0})
	assert.Error(t, err)
	_, err = p.Predict([]float64{0, math.Inf(1), 0})
	assert.Error(t, err)
}

func TestShippedAttritionArtifact(t *testing.T) {
	p, err := LoadAttrition(filepath.Join("..", "artifacts", "attrition_pipe.json"))
	require.NoError(t, err)
	require.Len(t, p.Features(), 30)
	assert.Equal(t, "age", p.Features()[0])
	assert.Equal(t, "years_with_curr_manager", p.Features()[29])

	query := make([]float64, 30)
	for i := range query {
		query[i] = 1
	}
	first, err := p.Predict(query)
	require.NoError(t, err)
	// Même entrée, même label, à chaque appel.
	for i := 0; i < 5; i++ {
		again, err := p.Predict(query)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
