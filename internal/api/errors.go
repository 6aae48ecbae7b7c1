package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/academy-api/internal/api/shared"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/service"
	"github.com/phrazzld/academy-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Rule violations and other domain validation failures
	case domain.IsValidationError(err):
		return http.StatusUnprocessableEntity

	// Malformed requests
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidFilter),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrPartnerNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAttendeeNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrCourseHasSessions),
		errors.Is(err, service.ErrLoginExists),
		store.IsDuplicateError(err):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	// Rule messages are written for end users.
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return SanitizeValidationError(err)
	}

	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return "Course not found"
	case errors.Is(err, service.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, service.ErrPartnerNotFound):
		return "Partner not found"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrAttendeeNotFound):
		return "Partner does not attend this session"
	case errors.Is(err, service.ErrCourseHasSessions):
		return "Course still has sessions"
	case errors.Is(err, service.ErrLoginExists):
		return "Login already exists"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"
	case errors.Is(err, store.ErrInvalidFilter):
		return "Invalid filter"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns request validation failures into a short
// message naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "uuid", "uuid4":
		return "invalid ID format"
	case "dive":
		return "invalid element"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message of unexpected errors when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Field != "" {
		opts = append(opts, shared.WithField(vErr.Field))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
