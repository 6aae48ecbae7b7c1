package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/events"
	"github.com/phrazzld/academy-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCourseSearcher is a testify mock of CourseSearcher.
type MockCourseSearcher struct {
	mock.Mock
}

func (m *MockCourseSearcher) Search(ctx context.Context, filter store.Eq) ([]*domain.Course, error) {
	args := m.Called(ctx, filter)
	if courses, ok := args.Get(0).([]*domain.Course); ok {
		return courses, args.Error(1)
	}
	return nil, args.Error(1)
}

// memSearcher answers name searches from a fixed set of stored courses.
type memSearcher []*domain.Course

func (s memSearcher) Search(_ context.Context, filter store.Eq) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, c := range s {
		if name, ok := filter[domain.CourseFieldName]; ok && c.Name == name {
			out = append(out, c)
		}
	}
	return out, nil
}

func course(name, description string) *domain.Course {
	return &domain.Course{ID: uuid.New(), Name: name, Description: description}
}

func assertValidation(t *testing.T, err error, target error, message string) {
	t.Helper()
	require.Error(t, err)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "expected *domain.ValidationError, got %T: %v", err, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, target)
	assert.Equal(t, message, vErr.Message)
}

func TestCheckNameDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		batch   []*domain.Course
		wantErr bool
	}{
		{name: "different", batch: []*domain.Course{course("Go", "Learn Go")}},
		{name: "equal", batch: []*domain.Course{course("Go", "Go")}, wantErr: true},
		{name: "both empty", batch: []*domain.Course{course("", "")}, wantErr: true},
		{name: "case differs", batch: []*domain.Course{course("Go", "go")}},
		{name: "second of batch equal", batch: []*domain.Course{course("A", "B"), course("C", "C")}, wantErr: true},
		{name: "empty batch", batch: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNameDescription(context.Background(), tt.batch)
			if tt.wantErr {
				assertValidation(t, err, domain.ErrCourseNameEqualsDescription, MsgNameEqualsDescription)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckNameUnique(t *testing.T) {
	t.Parallel()

	stored := course("Go", "Learn Go")
	other := course("Rust", "Learn Rust")
	searcher := memSearcher{stored, other}
	check := CheckNameUnique(searcher)

	t.Run("new course with fresh name", func(t *testing.T) {
		assert.NoError(t, check(context.Background(), []*domain.Course{course("Zig", "")}))
	})

	t.Run("second course with existing name", func(t *testing.T) {
		err := check(context.Background(), []*domain.Course{course("Go", "another")})
		assertValidation(t, err, domain.ErrCourseNameNotUnique, MsgNameNotUnique)
	})

	t.Run("rename to own name", func(t *testing.T) {
		self := *stored
		self.Description = "updated"
		assert.NoError(t, check(context.Background(), []*domain.Course{&self}))
	})

	t.Run("rename to another course's name", func(t *testing.T) {
		renamed := *stored
		renamed.Name = "Rust"
		err := check(context.Background(), []*domain.Course{&renamed})
		assertValidation(t, err, domain.ErrCourseNameNotUnique, MsgNameNotUnique)
	})

	t.Run("swap names within one batch", func(t *testing.T) {
		a, b := *stored, *other
		a.Name, b.Name = "Rust", "Go"
		assert.NoError(t, check(context.Background(), []*domain.Course{&a, &b}))
	})

	t.Run("duplicate names within one batch", func(t *testing.T) {
		err := check(context.Background(), []*domain.Course{course("Zig", ""), course("Zig", "x")})
		assertValidation(t, err, domain.ErrCourseNameNotUnique, MsgNameNotUnique)
	})
}

func TestCheckNameUniqueSearchError(t *testing.T) {
	t.Parallel()

	searcher := new(MockCourseSearcher)
	dbErr := errors.New("connection refused")
	searcher.On("Search", mock.Anything, store.Eq{domain.CourseFieldName: "Go"}).Return(nil, dbErr)

	err := CheckNameUnique(searcher)(context.Background(), []*domain.Course{course("Go", "")})

	assert.ErrorIs(t, err, dbErr)
	assert.False(t, domain.IsValidationError(err))
	searcher.AssertExpectations(t)
}

func TestCourseRegistry(t *testing.T) {
	t.Parallel()

	stored := course("Go", "Learn Go")
	reg, err := NewCourseRegistry(memSearcher{stored}, nil)
	require.NoError(t, err)

	t.Run("name equals description", func(t *testing.T) {
		c := course("Same", "Same")
		_, err := reg.Dispatch(context.Background(), domain.CourseFields(), []*domain.Course{c})
		assertValidation(t, err, domain.ErrCourseNameEqualsDescription, MsgNameEqualsDescription)
	})

	t.Run("description change alone skips uniqueness", func(t *testing.T) {
		assert.Equal(t, []string{HookCheckNameDescription},
			reg.Triggered(events.KindConstraint, []string{domain.CourseFieldDescription}))
	})

	t.Run("responsible change triggers nothing", func(t *testing.T) {
		c := course("Same", "Same")
		warnings, err := reg.Dispatch(context.Background(), []string{domain.CourseFieldResponsible}, []*domain.Course{c})
		assert.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("duplicate name", func(t *testing.T) {
		c := course("Go", "other")
		_, err := reg.Dispatch(context.Background(), []string{domain.CourseFieldName}, []*domain.Course{c})
		assertValidation(t, err, domain.ErrCourseNameNotUnique, MsgNameNotUnique)
	})
}
