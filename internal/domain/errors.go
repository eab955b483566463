package domain

import "fmt"

// Custom error types for the auth subsystem

// ValidationError represents validation failures. Field names the input the
// failure is attributable to (e.g. "email", "password") and is empty for
// non-field errors.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// CancelledError represents a user-aborted sign-in flow.
type CancelledError struct {
	Message string
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("cancelled: %s", e.Message)
}

// ProviderNotSupportedError represents a provider kind with no implementation.
type ProviderNotSupportedError struct {
	Kind ProviderKind
}

func (e *ProviderNotSupportedError) Error() string {
	return fmt.Sprintf("provider not supported: %s", e.Kind)
}

// InternalError represents unexpected failures.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("internal error: %s - %v", e.Message, e.Err)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// IsCancelled checks if an error is a CancelledError
func IsCancelled(err error) bool {
	_, ok := err.(*CancelledError)
	return ok
}

// IsProviderNotSupported checks if an error is a ProviderNotSupportedError
func IsProviderNotSupported(err error) bool {
	_, ok := err.(*ProviderNotSupportedError)
	return ok
}
