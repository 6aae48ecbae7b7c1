package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrUserLoginExists if the login is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Update writes the user's name and karma.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// AdjustKarma atomically adds delta to the user's karma and returns the new value.
	// Returns ErrUserNotFound if the user does not exist.
	AdjustKarma(ctx context.Context, id uuid.UUID, delta int) (int, error)

	// Delete removes a user. Courses they were responsible for keep existing
	// with no responsible user.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore

	// DB returns the underlying database connection.
	DB() *sql.DB
}
