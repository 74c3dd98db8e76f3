package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration document validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProvisionError represents a failure while creating an OS resource
// during image generation.
type ProvisionError struct {
	Resource string
	Err      error
}

// NewProvisionError constructs a ProvisionError for the named resource.
func NewProvisionError(resource string, err error) error {
	return &ProvisionError{Resource: resource, Err: err}
}

func (e *ProvisionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Resource != "" {
		return fmt.Sprintf("provision error on %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("provision error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ProvisionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ObservationError indicates a live-state probe could not read the system.
type ObservationError struct {
	Kind string
	Err  error
}

// NewObservationError constructs an ObservationError for the given resource kind.
func NewObservationError(kind string, err error) error {
	return &ObservationError{Kind: kind, Err: err}
}

func (e *ObservationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind != "" {
		return fmt.Sprintf("observation error [%s]: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("observation error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ObservationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PersistError indicates the engine snapshot could not be written or read.
type PersistError struct {
	Path string
	Err  error
}

// NewPersistError constructs a PersistError.
func NewPersistError(path string, err error) error {
	return &PersistError{Path: path, Err: err}
}

func (e *PersistError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("persist error: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("persist error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *PersistError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
