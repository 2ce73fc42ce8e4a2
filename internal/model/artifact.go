package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Supported classifier kinds
const (
	KindLogisticRegression = "logistic_regression"
)

// ModelArtifact is the exported form of the trained classification pipeline
type ModelArtifact struct {
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Scaler       *Scaler   `json:"scaler,omitempty"`
	Coef         []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
}

// Scaler is a standard scaler applied before the linear step: (x - mean) / scale
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ModelArtifactRow is a ModelArtifact as stored in the model_artifacts table.
// Numeric arrays are DOUBLE PRECISION[] so a stored artifact scores exactly like its file.
type ModelArtifactRow struct {
	Name         string          `db:"name"`
	Kind         string          `db:"kind"`
	FeatureNames JSONArray       `db:"feature_names"`
	ScalerMean   pq.Float64Array `db:"scaler_mean"`
	ScalerScale  pq.Float64Array `db:"scaler_scale"`
	Coef         pq.Float64Array `db:"coef"`
	Intercept    float64         `db:"intercept"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// NewModelArtifactRow converts an artifact into its table representation
func NewModelArtifactRow(a *ModelArtifact) ModelArtifactRow {
	row := ModelArtifactRow{
		Name:         a.Name,
		Kind:         a.Kind,
		FeatureNames: JSONArray(a.FeatureNames),
		Coef:         pq.Float64Array(cloneFloats(a.Coef)),
		Intercept:    a.Intercept,
	}
	if a.Scaler != nil {
		row.ScalerMean = pq.Float64Array(cloneFloats(a.Scaler.Mean))
		row.ScalerScale = pq.Float64Array(cloneFloats(a.Scaler.Scale))
	}
	return row
}

// Artifact converts a stored row back into a ModelArtifact
func (r *ModelArtifactRow) Artifact() *ModelArtifact {
	a := &ModelArtifact{
		Name:         r.Name,
		Kind:         r.Kind,
		FeatureNames: []string(r.FeatureNames),
		Coef:         cloneFloats(r.Coef),
		Intercept:    r.Intercept,
	}
	// NULL columns scan to nil
	if r.ScalerMean != nil && r.ScalerScale != nil {
		a.Scaler = &Scaler{
			Mean:  cloneFloats(r.ScalerMean),
			Scale: cloneFloats(r.ScalerScale),
		}
	}
	return a
}

func cloneFloats(in []float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	copy(out, in)
	return out
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
