package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrCourseNotFound", err: ErrCourseNotFound, expected: true},
		{name: "wrapped ErrSessionNotFound", err: fmt.Errorf("loading: %w", ErrSessionNotFound), expected: true},
		{name: "ErrPartnerNotFound in StoreError", err: NewStoreError("partner", "get", "missing", ErrPartnerNotFound), expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "duplicate is not not-found", err: ErrCourseNameExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrCourseNameExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrUserLoginExists)))
	assert.False(t, IsDuplicateError(ErrCourseNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("session", "update", "failed to replace attendees", cause)

	assert.Equal(t, "update operation on session failed: failed to replace attendees: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("course", "delete", "blocked", nil)
	assert.Equal(t, "delete operation on course failed: blocked", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}

func TestErrReferencedIsDeleteFailed(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, ErrReferenced, ErrDeleteFailed)
}

func TestEqColumns(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"description", "name"}, Eq{"name": "a", "description": "b"}.Columns())
	assert.Empty(t, Eq{}.Columns())
}
