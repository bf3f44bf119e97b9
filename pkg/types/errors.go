package types

import (
	"fmt"
)

// InvalidConfigurationError represents a topology declaration that violates a
// structural invariant. It is raised synchronously while a builder finalizes
// and aborts the entire build; there is no partial-cluster result.
type InvalidConfigurationError struct {
	Message string
}

// Error returns the error message.
func (e *InvalidConfigurationError) Error() string {
	return e.Message
}

// NewInvalidConfigurationError creates a new InvalidConfigurationError with
// the given message.
func NewInvalidConfigurationError(format string, args ...interface{}) *InvalidConfigurationError {
	return &InvalidConfigurationError{
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidConfigurationError checks if an error is an InvalidConfigurationError.
func IsInvalidConfigurationError(err error) bool {
	_, ok := err.(*InvalidConfigurationError)
	return ok
}

// WrapInvalidConfigurationError wraps an error with additional context while
// preserving its kind.
func WrapInvalidConfigurationError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	message := fmt.Sprintf(format, args...)
	if ice, ok := err.(*InvalidConfigurationError); ok {
		return &InvalidConfigurationError{
			Message: fmt.Sprintf("%s: %s", message, ice.Message),
		}
	}

	return &InvalidConfigurationError{
		Message: fmt.Sprintf("%s: %v", message, err),
	}
}
