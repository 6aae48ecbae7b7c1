// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// Rule violations. These are the hard failures raised by record rules; they
// block the pending change.
var (
	// ErrCourseNameEqualsDescription is returned when a course title repeats its description.
	ErrCourseNameEqualsDescription = errors.New("course name equals description")

	// ErrCourseNameNotUnique is returned when another course already uses the title.
	ErrCourseNameNotUnique = errors.New("course name not unique")

	// ErrInstructorIsAttendee is returned when a session's instructor is also one of its attendees.
	ErrInstructorIsAttendee = errors.New("instructor is an attendee")

	// ErrSeatsNegative is returned in strict capacity mode when seats is below zero.
	ErrSeatsNegative = errors.New("seats negative")

	// ErrSessionOverbooked is returned in strict capacity mode when attendees exceed seats.
	ErrSessionOverbooked = errors.New("session overbooked")
)

// ValidationError is a hard validation failure carrying a human-readable
// message that is safe to show to API clients.
type ValidationError struct {
	// Field is the record field the failure is attributed to (may be empty).
	Field string
	// Message is the user-facing explanation.
	Message string
	// Err is the specific cause, if any.
	Err error
}

// NewValidationError creates a ValidationError for field with message.
// err names the specific cause and may be nil.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap exposes both ErrValidation and the specific cause to errors.Is/errors.As.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// IsValidationError reports whether err is, or wraps, a hard validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
