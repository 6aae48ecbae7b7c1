package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
)

// SessionStore defines the interface for session data persistence. Loaded
// sessions always carry their attendee set and a freshly derived TakenSeats.
type SessionStore interface {
	// Create saves a new session and its attendee set.
	Create(ctx context.Context, session *domain.Session) error

	// GetByID retrieves a session by ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// Update writes every mutable field of session and replaces its attendee set.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.Session) error

	// Delete removes a session and its attendance rows.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns sessions matching filter ordered by start date.
	List(ctx context.Context, filter SessionFilter) ([]*domain.Session, error)

	// ListByCourse returns every session of a course, archived included,
	// ordered by start date then creation.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Session, error)

	// WithTx returns a SessionStore bound to tx.
	WithTx(tx *sql.Tx) SessionStore

	// DB returns the underlying database connection.
	DB() *sql.DB
}
