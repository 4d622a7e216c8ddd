// Package apperrors defines application-level error types.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError indicates configuration or flag validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// ExecutionError indicates a process could not be started or waited on.
// A process that ran and exited non-zero is not an ExecutionError.
type ExecutionError struct {
	Cause   error
	Command string
	Message string
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("execution failed for %s: %s: %v", e.Command, e.Message, e.Cause)
	}
	return fmt.Sprintf("execution failed for %s: %s", e.Command, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionError creates a new execution error.
func NewExecutionError(command, message string, cause error) *ExecutionError {
	return &ExecutionError{
		Command: command,
		Message: message,
		Cause:   cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

// ExitStatusError carries a process exit status up to main, which exits
// with Code without printing anything further.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitStatusError wraps a non-zero exit status. It returns nil for 0.
func NewExitStatusError(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitStatusError{Code: code}
}

// ExitCode extracts the exit status an error should terminate the process
// with: the carried status for ExitStatusError, 127 for an ExecutionError
// (the command could not be run), 1 otherwise and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitStatusError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return 127
	}
	return 1
}
