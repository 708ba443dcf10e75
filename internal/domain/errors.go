// Package domain defines domain-specific errors.
// These errors represent visualization failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services and adapters can return.
var (
	// ErrIllegalArgument is returned when a color-model argument is outside its valid range.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrInvalidColor is returned when a base color is not a 6-digit hex string.
	ErrInvalidColor = errors.New("invalid color: must be 6 hex digits")

	// ErrInvalidStyle is returned when a visual style name is not recognized.
	ErrInvalidStyle = errors.New("invalid visual style")

	// ErrUnsupportedSource is returned when a source is neither a live stream nor playable media.
	ErrUnsupportedSource = errors.New("unsupported audio source")

	// ErrSourceClosed is returned when a closed source is connected again.
	ErrSourceClosed = errors.New("audio source closed")

	// ErrSourceUnavailable is returned when a capture device cannot be opened
	// (no device, permission denied, device busy).
	ErrSourceUnavailable = errors.New("audio source unavailable")

	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrAlreadyInitialized is returned when attempting to initialize an already initialized component.
	ErrAlreadyInitialized = errors.New("component already initialized")

	// ErrAlreadyRunning is returned when starting a driver that is already running.
	ErrAlreadyRunning = errors.New("visualization already running")

	// ErrNotRunning is returned when stopping a driver that is idle.
	ErrNotRunning = errors.New("visualization not running")

	// ErrUnsupportedFormat is returned when an audio file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrFileNotFound is returned when a file does not exist.
	ErrFileNotFound = errors.New("file not found")
)

// AudioSourceError represents an error from an audio source adapter.
// This wraps low-level decoder and device errors with additional context.
type AudioSourceError struct {
	Op      string // Operation that failed (e.g., "open", "connect", "close")
	Source  string // File path or device name (if applicable)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *AudioSourceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("audio source %s failed for '%s': %s", e.Op, e.Source, e.Message)
	}
	return fmt.Sprintf("audio source %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *AudioSourceError) Unwrap() error {
	return e.Err
}

// NewAudioSourceError creates a new AudioSourceError.
func NewAudioSourceError(op, source, message string, err error) *AudioSourceError {
	return &AudioSourceError{
		Op:      op,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
// It always unwraps to ErrIllegalArgument so callers can test the category with errors.Is.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap returns ErrIllegalArgument.
func (e *ValidationError) Unwrap() error {
	return ErrIllegalArgument
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "VisualizationService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
