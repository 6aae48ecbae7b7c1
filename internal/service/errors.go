package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP statuses.
var (
	// ErrCourseNotFound indicates that the course does not exist.
	ErrCourseNotFound = errors.New("course not found")

	// ErrSessionNotFound indicates that the session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrPartnerNotFound indicates that the partner does not exist.
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAttendeeNotFound indicates that the partner does not attend the session.
	ErrAttendeeNotFound = errors.New("partner does not attend the session")

	// ErrCourseHasSessions indicates that a course cannot be deleted while
	// sessions still reference it.
	ErrCourseHasSessions = errors.New("course still has sessions")

	// ErrLoginExists indicates that the user login is already taken.
	ErrLoginExists = errors.New("login already exists")

	// ErrUnknownPartner is the cause of validation errors raised when a
	// session references partners that do not exist.
	ErrUnknownPartner = errors.New("unknown partner")

	// ErrUnknownCourse is the cause of validation errors raised when a
	// session references a course that does not exist.
	ErrUnknownCourse = errors.New("unknown course")

	// ErrUnknownUser is the cause of validation errors raised when a course
	// names a responsible user that does not exist.
	ErrUnknownUser = errors.New("unknown user")
)

// sentinelMappings translates store errors to service sentinels.
var sentinelMappings = []struct {
	from error
	to   error
}{
	{store.ErrCourseNotFound, ErrCourseNotFound},
	{store.ErrSessionNotFound, ErrSessionNotFound},
	{store.ErrPartnerNotFound, ErrPartnerNotFound},
	{store.ErrUserNotFound, ErrUserNotFound},
	{store.ErrUserLoginExists, ErrLoginExists},
	{store.ErrReferenced, ErrCourseHasSessions},
}

// serviceSentinels are returned unwrapped when found anywhere in an error chain.
var serviceSentinels = []error{
	ErrCourseNotFound,
	ErrSessionNotFound,
	ErrPartnerNotFound,
	ErrUserNotFound,
	ErrAttendeeNotFound,
	ErrCourseHasSessions,
	ErrLoginExists,
}

// ServiceError wraps unexpected errors from a service operation with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "course", "session")
	Service string
	// Operation is the operation that failed (e.g., "create_course")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError. Validation errors and known
// sentinels are returned directly without wrapping; store sentinels are
// translated to their service equivalents first.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Hard rule failures keep their user-facing message intact.
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr
	}

	for _, sentinel := range serviceSentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	for _, m := range sentinelMappings {
		if errors.Is(err, m.from) {
			return m.to
		}
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
