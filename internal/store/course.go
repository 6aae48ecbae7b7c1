package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
)

// CourseStore defines the interface for course data persistence.
type CourseStore interface {
	// Create saves a new course.
	// Returns ErrCourseNameExists if the unique name index rejects it.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by ID, without its sessions.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// Update writes every mutable field of course.
	// Returns ErrCourseNotFound if the course does not exist.
	Update(ctx context.Context, course *domain.Course) error

	// Delete removes a course.
	// Returns ErrCourseNotFound if it does not exist and ErrReferenced if
	// sessions still point to it.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns every course ordered by name.
	List(ctx context.Context) ([]*domain.Course, error)

	// Search returns the courses matching every column of filter.
	// Searchable columns are name, description and responsible_id; any
	// other column yields ErrInvalidFilter.
	Search(ctx context.Context, filter Eq) ([]*domain.Course, error)

	// WithTx returns a CourseStore bound to tx.
	WithTx(tx *sql.Tx) CourseStore

	// DB returns the underlying database connection.
	DB() *sql.DB
}
