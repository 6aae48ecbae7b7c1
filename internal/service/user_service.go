package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/store"
)

// UserService provides user-related operations
type UserService interface {
	// CreateUser creates a user with zero karma.
	// Returns ErrLoginExists if the login is already taken.
	CreateUser(ctx context.Context, login, name string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// AdjustKarma adds delta to the user's karma and returns the updated user.
	AdjustKarma(ctx context.Context, id uuid.UUID, delta int) (*domain.User, error)

	// SetKarma overwrites the user's karma.
	SetKarma(ctx context.Context, id uuid.UUID, karma int) (*domain.User, error)

	// DeleteUser removes a user. Courses they were responsible for are kept.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, &ServiceError{Service: "user", Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if db == nil {
		return nil, &ServiceError{Service: "user", Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// CreateUser implements UserService.CreateUser
func (s *userServiceImpl) CreateUser(ctx context.Context, login, name string) (*domain.User, error) {
	user, err := domain.NewUser(login, name)
	if err != nil {
		return nil, NewServiceError("user", "create_user", "invalid user", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		logServiceFailure(s.logger, "create_user", err, "login", login)
		return nil, NewServiceError("user", "create_user", "failed to create user", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "login", user.Login)
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		logServiceFailure(s.logger, "get_user", err, "user_id", id)
		return nil, NewServiceError("user", "get_user", "failed to get user", err)
	}
	return user, nil
}

// AdjustKarma implements UserService.AdjustKarma
func (s *userServiceImpl) AdjustKarma(ctx context.Context, id uuid.UUID, delta int) (*domain.User, error) {
	var user *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)
		if _, err := users.AdjustKarma(ctx, id, delta); err != nil {
			return err
		}
		u, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		logServiceFailure(s.logger, "adjust_karma", err, "user_id", id, "delta", delta)
		return nil, NewServiceError("user", "adjust_karma", "failed to adjust karma", err)
	}

	s.logger.Debug("karma adjusted", "user_id", id, "delta", delta, "karma", user.Karma)
	return user, nil
}

// SetKarma implements UserService.SetKarma
func (s *userServiceImpl) SetKarma(ctx context.Context, id uuid.UUID, karma int) (*domain.User, error) {
	var user *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)
		u, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		u.AdjustKarma(karma - u.Karma)
		if err := users.Update(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		logServiceFailure(s.logger, "set_karma", err, "user_id", id)
		return nil, NewServiceError("user", "set_karma", "failed to set karma", err)
	}

	s.logger.Debug("karma set", "user_id", id, "karma", karma)
	return user, nil
}

// DeleteUser implements UserService.DeleteUser
func (s *userServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		logServiceFailure(s.logger, "delete_user", err, "user_id", id)
		return NewServiceError("user", "delete_user", "failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
