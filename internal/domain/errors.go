package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed caller input. It surfaces as a
// 400 at the HTTP boundary.
type ValidationError struct {
	// Fields lists the offending request fields by their JSON names.
	Fields []string
	// Message overrides the generated text when set.
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return "invalid request"
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given missing fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// UpstreamError reports a failed or incomplete response from the forecast
// provider. It surfaces as a 502 at the HTTP boundary and is never retried.
type UpstreamError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ModelUnavailableError reports that no usable classifier artifact is loaded.
// Every inference request fails with it until the service is restarted with a
// valid artifact; there is no automatic reload.
type ModelUnavailableError struct {
	Err error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model not loaded: %v", e.Err)
	}
	return "model not loaded"
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }
