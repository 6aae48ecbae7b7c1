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

var partnerColumns = []string{"id", "name", "email", "created_at"}

// PostgresPartnerStore implements the store.PartnerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPartnerStore struct {
	db     store.DBTX
	sb     sq.StatementBuilderType
	logger *slog.Logger
}

// NewPostgresPartnerStore creates a new PostgreSQL implementation of the PartnerStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPartnerStore(db store.DBTX, logger *slog.Logger) *PostgresPartnerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPartnerStore{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.With(slog.String("component", "partner_store")),
	}
}

// Ensure PostgresPartnerStore implements store.PartnerStore interface
var _ store.PartnerStore = (*PostgresPartnerStore)(nil)

// Create implements store.PartnerStore.Create
func (s *PostgresPartnerStore) Create(ctx context.Context, partner *domain.Partner) error {
	if err := partner.Validate(); err != nil {
		return err
	}

	query, args, err := s.sb.Insert("partners").
		Columns(partnerColumns...).
		Values(partner.ID, partner.Name, partner.Email, partner.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create partner query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create partner",
			slog.String("error", err.Error()),
			slog.String("partner_id", partner.ID.String()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.PartnerStore.GetByID
func (s *PostgresPartnerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	query, args, err := s.sb.Select(partnerColumns...).
		From("partners").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get partner query: %w", err)
	}

	var partner domain.Partner
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&partner.ID, &partner.Name, &partner.Email, &partner.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPartnerNotFound
		}
		return nil, MapError(err)
	}
	return &partner, nil
}

// List implements store.PartnerStore.List
func (s *PostgresPartnerStore) List(ctx context.Context) ([]*domain.Partner, error) {
	query, args, err := s.sb.Select(partnerColumns...).
		From("partners").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list partners query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	partners := []*domain.Partner{}
	for rows.Next() {
		var partner domain.Partner
		if err := rows.Scan(&partner.ID, &partner.Name, &partner.Email, &partner.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning partner row: %w", err)
		}
		partners = append(partners, &partner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", err)
	}
	return partners, nil
}

// Missing implements store.PartnerStore.Missing
func (s *PostgresPartnerStore) Missing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := s.sb.Select("id").
		From("partners").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build partner lookup query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	found := make(map[uuid.UUID]struct{}, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning partner id: %w", err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partner ids: %w", err)
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// WithTx implements store.PartnerStore.WithTx
func (s *PostgresPartnerStore) WithTx(tx *sql.Tx) store.PartnerStore {
	return &PostgresPartnerStore{
		db:     tx,
		sb:     s.sb,
		logger: s.logger,
	}
}
