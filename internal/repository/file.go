package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"valuescore/internal/model"
)

// FileArtifactStore reads a JSON model artifact from disk
type FileArtifactStore struct {
	path string
}

// NewFileArtifactStore creates a store for the artifact at path
func NewFileArtifactStore(path string) *FileArtifactStore {
	return &FileArtifactStore{path: path}
}

// FetchArtifact reads and decodes the artifact file
func (s *FileArtifactStore) FetchArtifact(ctx context.Context) (*model.ModelArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	return DecodeArtifact(f)
}

// Describe names the source for logs and errors
func (s *FileArtifactStore) Describe() string {
	return "file:" + s.path
}

// DecodeArtifact decodes a single JSON artifact document. Unknown keys are
// rejected so a misspelled field cannot silently zero a coefficient.
func DecodeArtifact(r io.Reader) (*model.ModelArtifact, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var a model.ModelArtifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to decode model artifact: trailing data after document")
	}
	return &a, nil
}
