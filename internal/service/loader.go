package service

import (
	"context"

	"go.uber.org/zap"

	"valuescore/internal/model"
)

// ArtifactSource is where the trained model is read from
type ArtifactSource interface {
	FetchArtifact(ctx context.Context) (*model.ModelArtifact, error)
	Describe() string
}

// LoadClassifier fetches the artifact once and builds the classifier. Any
// failure is returned as a *ModelLoadError; there is no retry or fallback.
func LoadClassifier(ctx context.Context, source ArtifactSource, logger *zap.Logger) (*Classifier, error) {
	artifact, err := source.FetchArtifact(ctx)
	if err != nil {
		return nil, &ModelLoadError{Source: source.Describe(), Err: err}
	}

	classifier, err := NewClassifier(artifact)
	if err != nil {
		return nil, &ModelLoadError{Source: source.Describe(), Err: err}
	}

	logger.Info("model loaded",
		zap.String("source", source.Describe()),
		zap.String("name", artifact.Name),
		zap.String("kind", artifact.Kind),
		zap.Bool("scaled", artifact.Scaler != nil),
	)
	return classifier, nil
}
