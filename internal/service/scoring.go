package service

import (
	"context"

	"valuescore/internal/model"
)

// HighValueThreshold is the probability at or above which a customer is labelled high value
const HighValueThreshold = 0.6

// Scorer returns the positive-class probability for an ordered feature row
type Scorer interface {
	Score(row []float64) (float64, error)
}

// ScoringService turns a validated feature vector into a prediction
type ScoringService struct {
	scorer Scorer
}

// NewScoringService creates a new scoring service around a loaded model
func NewScoringService(scorer Scorer) *ScoringService {
	return &ScoringService{
		scorer: scorer,
	}
}

// Predict scores one customer and applies the high value threshold
func (s *ScoringService) Predict(_ context.Context, v model.FeatureVector) (*model.PredictionResult, error) {
	prob, err := s.scorer.Score(v.Row())
	if err != nil {
		return nil, err
	}

	return &model.PredictionResult{
		HighValueProbability: prob,
		Prediction:           Label(prob),
		Status:               model.StatusSuccess,
	}, nil
}

// Ready reports whether the model answers a probe row
func (s *ScoringService) Ready() error {
	if s.scorer == nil {
		return &InferenceError{Err: errNoScorer}
	}
	_, err := s.scorer.Score(make([]float64, len(model.FeatureNames)))
	return err
}

// Label maps a probability to its prediction label
func Label(prob float64) string {
	if prob >= HighValueThreshold {
		return model.LabelHighValue
	}
	return model.LabelNotHighValue
}
