package service

import (
	"errors"
	"fmt"
	"math"

	"valuescore/internal/model"
)

// Classifier is a loaded logistic regression pipeline. It is immutable after
// construction and safe for concurrent use.
type Classifier struct {
	name      string
	mean      []float64
	scale     []float64
	coef      []float64
	intercept float64
}

// NewClassifier validates an artifact and builds a Classifier from it
func NewClassifier(a *model.ModelArtifact) (*Classifier, error) {
	if a == nil {
		return nil, errors.New("artifact is empty")
	}
	if a.Kind != model.KindLogisticRegression {
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}

	n := len(model.FeatureNames)
	if len(a.FeatureNames) != n {
		return nil, fmt.Errorf("artifact has %d features, want %d", len(a.FeatureNames), n)
	}
	for i, name := range model.FeatureNames {
		if a.FeatureNames[i] != name {
			return nil, fmt.Errorf("feature %d is %q, want %q", i, a.FeatureNames[i], name)
		}
	}

	if err := checkVector("coef", a.Coef, n); err != nil {
		return nil, err
	}
	if math.IsNaN(a.Intercept) || math.IsInf(a.Intercept, 0) {
		return nil, errors.New("intercept is not finite")
	}

	c := &Classifier{
		name:      a.Name,
		coef:      append([]float64(nil), a.Coef...),
		intercept: a.Intercept,
	}

	if a.Scaler != nil {
		if err := checkVector("scaler.mean", a.Scaler.Mean, n); err != nil {
			return nil, err
		}
		if err := checkVector("scaler.scale", a.Scaler.Scale, n); err != nil {
			return nil, err
		}
		for i, s := range a.Scaler.Scale {
			if s == 0 {
				return nil, fmt.Errorf("scaler.scale[%d] is zero", i)
			}
		}
		c.mean = append([]float64(nil), a.Scaler.Mean...)
		c.scale = append([]float64(nil), a.Scaler.Scale...)
	}

	return c, nil
}

func checkVector(field string, values []float64, n int) error {
	if len(values) != n {
		return fmt.Errorf("%s has %d values, want %d", field, len(values), n)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s[%d] is not finite", field, i)
		}
	}
	return nil
}

// Name returns the artifact name the classifier was built from
func (c *Classifier) Name() string {
	return c.name
}

// Score returns the positive-class probability for one ordered feature row
func (c *Classifier) Score(row []float64) (float64, error) {
	if len(row) != len(c.coef) {
		return 0, &InferenceError{Err: fmt.Errorf("row has %d features, model expects %d", len(row), len(c.coef))}
	}

	z := c.intercept
	for i, x := range row {
		if c.scale != nil {
			x = (x - c.mean[i]) / c.scale[i]
		}
		z += c.coef[i] * x
	}

	p := sigmoid(z)
	if math.IsNaN(p) {
		return 0, &InferenceError{Err: errors.New("decision function is not a number")}
	}
	return p, nil
}

// sigmoid is the logistic function, written to avoid overflow for large |z|
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
