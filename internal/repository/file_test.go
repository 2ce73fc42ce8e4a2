package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuescore/internal/model"
	"valuescore/internal/service"
)

const artifactJSON = `{
	"name": "high-value",
	"kind": "logistic_regression",
	"feature_names": ["Recency","Frequency","Monetary","spend_last_90_days","SpendTrend","AverageOrderValue"],
	"scaler": {"mean": [30, 4, 500, 120, 0, 75], "scale": [20, 2, 250, 60, 0.5, 25]},
	"coef": [-0.5, 0.25, 1.5, 0.75, 0.125, 0.5],
	"intercept": -0.2
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mymodel.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileArtifactStore_FetchArtifact(t *testing.T) {
	store := NewFileArtifactStore(writeFile(t, artifactJSON))

	a, err := store.FetchArtifact(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "high-value", a.Name)
	assert.Equal(t, model.KindLogisticRegression, a.Kind)
	assert.Equal(t, model.FeatureNames, a.FeatureNames)
	require.NotNil(t, a.Scaler)
	assert.Equal(t, []float64{20, 2, 250, 60, 0.5, 25}, a.Scaler.Scale)
	assert.Equal(t, -0.2, a.Intercept)
	assert.True(t, strings.HasPrefix(store.Describe(), "file:"))
}

func TestFileArtifactStore_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") }},
		{name: "corrupt file", path: func(t *testing.T) string { return writeFile(t, "\x80\x04\x95 pickled bytes") }},
		{name: "unknown key", path: func(t *testing.T) string { return writeFile(t, `{"name": "x", "coeff": [1]}`) }},
		{name: "trailing document", path: func(t *testing.T) string { return writeFile(t, `{"name": "x"} {"name": "y"}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileArtifactStore(tt.path(t)).FetchArtifact(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFileArtifactStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileArtifactStore(writeFile(t, artifactJSON)).FetchArtifact(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTableRowScoresLikeFile(t *testing.T) {
	fromFile, err := NewFileArtifactStore("../../mymodel.json").FetchArtifact(context.Background())
	require.NoError(t, err)

	row := model.NewModelArtifactRow(fromFile)
	fromRow := row.Artifact()

	fileClassifier, err := service.NewClassifier(fromFile)
	require.NoError(t, err)
	rowClassifier, err := service.NewClassifier(fromRow)
	require.NoError(t, err)

	// Monetary sits on the shipped model's 0.6 boundary
	features := model.FeatureVector{
		Recency:           10,
		Frequency:         5,
		Monetary:          7386.944958260536,
		SpendLast90Days:   50,
		SpendTrend:        0.1,
		AverageOrderValue: 40,
	}
	want, err := fileClassifier.Score(features.Row())
	require.NoError(t, err)
	got, err := rowClassifier.Score(features.Row())
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, service.Label(want), service.Label(got))
}
