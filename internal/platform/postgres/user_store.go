package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/platform/logger"
	"github.com/phrazzld/academy-api/internal/store"
)

var userColumns = []string{"id", "login", "name", "karma", "created_at", "updated_at"}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	sb     sq.StatementBuilderType
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query, args, err := s.sb.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Login, user.Name, user.Karma, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attempted to create user with existing login",
				slog.String("user_id", user.ID.String()))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
		}
		return MapError(err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := s.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user domain.User
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Login,
		&user.Name,
		&user.Karma,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return &user, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	query, args, err := s.sb.Update("users").
		Set("name", user.Name).
		Set("karma", user.Karma).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// AdjustKarma implements store.UserStore.AdjustKarma
func (s *PostgresUserStore) AdjustKarma(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Update("users").
		Set("karma", sq.Expr("karma + ?", delta)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING karma").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build adjust karma query: %w", err)
	}

	var karma int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&karma); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrUserNotFound
		}
		log.Error("failed to adjust karma",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return 0, MapError(err)
	}

	log.Debug("karma adjusted",
		slog.String("user_id", id.String()),
		slog.Int("delta", delta),
		slog.Int("karma", karma))
	return karma, nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := s.sb.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return mapDeleteError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		sb:     s.sb,
		logger: s.logger,
	}
}

// DB implements store.UserStore.DB
func (s *PostgresUserStore) DB() *sql.DB {
	if db, ok := s.db.(*sql.DB); ok {
		return db
	}
	return nil
}
