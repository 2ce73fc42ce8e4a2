package service

import (
	"errors"
	"fmt"
)

var errNoScorer = errors.New("no model loaded")

// ModelLoadError reports that no usable classifier could be built at startup
type ModelLoadError struct {
	Source string
	Err    error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model from %s: %v", e.Source, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// InferenceError reports a failure inside a scoring call
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
