// Package errors provides custom error types for the Gemini chat client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrGenerationFailed = errors.New("generation call failed")
	ErrNoContent        = errors.New("no content in response")
	ErrClientClosed     = errors.New("client is closed")
	ErrEmptyPrompt      = errors.New("prompt cannot be empty")
	ErrBusy             = errors.New("a request is already in flight")
)

// GenerationError represents a failed call to the generative-language API.
// Network failures, API errors and empty responses all end up here.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed (model %s)", e.Model)
	}
	return fmt.Sprintf("generation failed (model %s): %v", e.Model, e.Err)
}

// Unwrap returns the underlying cause
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *GenerationError) Is(target error) bool {
	if target == ErrGenerationFailed {
		return true
	}
	_, ok := target.(*GenerationError)
	return ok
}

// NewGenerationError creates a new GenerationError
func NewGenerationError(model string, err error) *GenerationError {
	return &GenerationError{Model: model, Err: err}
}

// IsGenerationError reports whether err is, or wraps, a generation failure.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}

// IsNoContent reports whether the API answered without any text.
func IsNoContent(err error) bool {
	return errors.Is(err, ErrNoContent)
}

// GetModel extracts the model name from a GenerationError, or "".
func GetModel(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Model
	}
	return ""
}
