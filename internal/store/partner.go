package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
)

// PartnerStore defines the interface for partner data persistence.
type PartnerStore interface {
	Create(ctx context.Context, partner *domain.Partner) error

	// GetByID returns ErrPartnerNotFound if the partner does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error)

	List(ctx context.Context) ([]*domain.Partner, error)

	// Missing returns the IDs among ids that have no partner row, in input order.
	Missing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// WithTx returns a PartnerStore bound to tx.
	WithTx(tx *sql.Tx) PartnerStore
}
