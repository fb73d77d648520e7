// Package apperrors defines the structured error types used across the
// benchmark suite, allowing a clear distinction between error classes
// (invalid input, exhausted generation budgets, algorithm defects, ...)
// and carrying the offending values for reporting.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types that wrap a cause implement Unwrap() to support errors.Is()
// and errors.As().
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTimeout   = 2   // Indicates the operation timed out.
	ExitErrorBenchmark = 3   // Indicates a benchmark produced no usable result.
	ExitErrorConfig    = 4   // Indicates a configuration error.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an error due to invalid input validation.
// It is used for API request validation and configuration validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
//
// Parameters:
//   - field: The name of the field that failed validation.
//   - message: A description of why validation failed.
//   - value: The invalid value (optional).
//
// Returns:
//   - error: A new ValidationError instance.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// InvalidInputError reports a number that cannot be factored: values below 2,
// the prime 2 itself, or any prime. This is a caller error and is never
// retried.
type InvalidInputError struct {
	// N is the rejected input.
	N *big.Int
	// Reason explains why N was rejected.
	Reason string
}

// Error returns the error message for an InvalidInputError.
func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input N=%s: %s", e.N, e.Reason)
}

// NewInvalidInputError creates an InvalidInputError for n.
func NewInvalidInputError(n *big.Int, reason string) error {
	return InvalidInputError{N: new(big.Int).Set(n), Reason: reason}
}

// GenerationExhaustedError reports that random number generation did not
// produce a suitable value within its attempt budget. The caller may retry
// with a fresh call; it indicates bad luck, not a bug.
type GenerationExhaustedError struct {
	// Kind names what was being generated ("prime", "semiprime", "composite").
	Kind string
	// Bits is the requested bit length.
	Bits int
	// Attempts is the attempt budget that was exhausted.
	Attempts int
}

// Error returns the error message for a GenerationExhaustedError.
func (e GenerationExhaustedError) Error() string {
	return fmt.Sprintf("could not generate %d-bit %s after %d attempts", e.Bits, e.Kind, e.Attempts)
}

// NoCoprimeError reports that coprime base selection for period finding
// exhausted its rejection-sampling budget. Callers should treat it as an
// internal retry exhaustion.
type NoCoprimeError struct {
	// N is the modulus a coprime base was sought for.
	N *big.Int
	// Tries is the number of sampling attempts made.
	Tries int
}

// Error returns the error message for a NoCoprimeError.
func (e NoCoprimeError) Error() string {
	return fmt.Sprintf("no coprime base found for N=%s after %d tries", e.N, e.Tries)
}

// FactorizationFailedError reports that the factors returned by an algorithm
// did not verify against N. It is treated as an algorithm-implementation
// defect: always surfaced, never silently swallowed.
type FactorizationFailedError struct {
	// N is the input that was being factored.
	N *big.Int
	// Factors is the rejected factor list.
	Factors []*big.Int
}

// Error returns the error message for a FactorizationFailedError.
func (e FactorizationFailedError) Error() string {
	return fmt.Sprintf("factorization of N=%s produced invalid factors %v", e.N, e.Factors)
}

// FactorizationExhaustedError reports that the period-finding attempt loop
// used all of its iterations without finding factors. This is an expected,
// reportable outcome recorded as a failed trial, not a process-fatal error.
type FactorizationExhaustedError struct {
	// N is the input that was being factored.
	N *big.Int
	// Attempts is the number of attempts made.
	Attempts int
}

// Error returns the error message for a FactorizationExhaustedError.
func (e FactorizationExhaustedError) Error() string {
	return fmt.Sprintf("failed to factor N=%s after %d attempts", e.N, e.Attempts)
}

// NoSuccessfulTrialsError reports that every trial in a benchmark failed.
// It is fatal to that benchmark run and propagated to the caller, since
// timing statistics are undefined without at least one success.
type NoSuccessfulTrialsError struct {
	// Trials is the number of trials that were attempted.
	Trials int
}

// Error returns the error message for a NoSuccessfulTrialsError.
func (e NoSuccessfulTrialsError) Error() string {
	return fmt.Sprintf("no successful factorizations in %d trials", e.Trials)
}

// InvalidDurationError reports a non-positive duration passed to the PFF
// calculation. It is a programmer error.
type InvalidDurationError struct {
	// Seconds is the rejected duration value.
	Seconds float64
}

// Error returns the error message for an InvalidDurationError.
func (e InvalidDurationError) Error() string {
	return fmt.Sprintf("time per run must be positive, got %g", e.Seconds)
}

// ServerError represents errors that occur in the HTTP server component.
// It wraps an underlying error with additional context specific to the
// server operation.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ServerError, combining the
// descriptive message and the underlying cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
