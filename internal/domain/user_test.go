package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("ada", "Ada Lovelace")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Karma != 0 {
		t.Errorf("Expected zero karma, got %d", user.Karma)
	}

	_, err = NewUser("", "Nobody")
	if !errors.Is(err, ErrEmptyLogin) {
		t.Errorf("Expected error %v, got %v", ErrEmptyLogin, err)
	}
}

func TestUserAdjustKarma(t *testing.T) {
	t.Parallel()

	user := &User{ID: uuid.New(), Login: "ada"}
	user.AdjustKarma(5)
	user.AdjustKarma(-12)
	if user.Karma != -7 {
		t.Errorf("Expected karma -7, got %d", user.Karma)
	}
	if user.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}
}
