package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID = errors.New("user ID cannot be empty")
	ErrEmptyLogin  = errors.New("login cannot be empty")
)

// User is an account that can be made responsible for courses.
// Karma is a reputation counter with no bounds.
type User struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Karma     int       `json:"karma"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with zero karma.
// Returns an error if validation fails.
func NewUser(login, name string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Login:     login,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Login == "" {
		return NewValidationError("login", "Login is required.", ErrEmptyLogin)
	}
	return nil
}

// AdjustKarma adds delta (which may be negative) to the counter.
func (u *User) AdjustKarma(delta int) {
	u.Karma += delta
	u.UpdatedAt = time.Now().UTC()
}
