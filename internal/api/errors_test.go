package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/academy-api/internal/api/shared"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/service"
	"github.com/phrazzld/academy-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rule violation", domain.NewValidationError("name", "Title must be unique.", domain.ErrCourseNameNotUnique), http.StatusUnprocessableEntity},
		{"wrapped rule violation", fmt.Errorf("tx: %w", domain.NewValidationError("seats", "x", nil)), http.StatusUnprocessableEntity},
		{"invalid id", fmt.Errorf("%w: id has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"invalid filter", store.ErrInvalidFilter, http.StatusBadRequest},
		{"value out of range", service.NewServiceError("user", "adjust_karma", "failed to adjust karma",
			fmt.Errorf("%w: numeric value out of range", store.ErrInvalidEntity)), http.StatusBadRequest},
		{"course not found", service.ErrCourseNotFound, http.StatusNotFound},
		{"store not found", store.ErrSessionNotFound, http.StatusNotFound},
		{"not attending", service.ErrAttendeeNotFound, http.StatusNotFound},
		{"has sessions", service.ErrCourseHasSessions, http.StatusConflict},
		{"login taken", service.ErrLoginExists, http.StatusConflict},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Title and Description must be different.",
		GetSafeErrorMessage(domain.NewValidationError("name", "Title and Description must be different.", nil)))
	assert.Equal(t, "Session not found", GetSafeErrorMessage(service.ErrSessionNotFound))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("pq: password authentication failed")))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `validate:"required,email"`
		Count int    `validate:"max=3"`
	}

	err := shared.Validate.Struct(payload{Email: "nope", Count: 2})
	require.Error(t, err)
	assert.Equal(t, "Invalid email: invalid email format", SanitizeValidationError(err))

	err = shared.Validate.Struct(payload{Email: "a@b.co", Count: 9})
	require.Error(t, err)
	assert.Equal(t, "Invalid count: too large", SanitizeValidationError(err))

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
