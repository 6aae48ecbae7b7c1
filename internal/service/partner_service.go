package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/store"
)

// PartnerService provides partner-related operations
type PartnerService interface {
	CreatePartner(ctx context.Context, name, email string) (*domain.Partner, error)
	GetPartner(ctx context.Context, id uuid.UUID) (*domain.Partner, error)
	ListPartners(ctx context.Context) ([]*domain.Partner, error)
}

type partnerServiceImpl struct {
	partnerStore store.PartnerStore
	logger       *slog.Logger
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(partnerStore store.PartnerStore, logger *slog.Logger) (PartnerService, error) {
	if partnerStore == nil {
		return nil, &ServiceError{Service: "partner", Operation: "create_service", Message: "partnerStore cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &partnerServiceImpl{
		partnerStore: partnerStore,
		logger:       logger.With("component", "partner_service"),
	}, nil
}

func (s *partnerServiceImpl) CreatePartner(ctx context.Context, name, email string) (*domain.Partner, error) {
	partner, err := domain.NewPartner(name, email)
	if err != nil {
		return nil, NewServiceError("partner", "create_partner", "invalid partner", err)
	}

	if err := s.partnerStore.Create(ctx, partner); err != nil {
		logServiceFailure(s.logger, "create_partner", err)
		return nil, NewServiceError("partner", "create_partner", "failed to create partner", err)
	}

	s.logger.Info("partner created", "partner_id", partner.ID)
	return partner, nil
}

func (s *partnerServiceImpl) GetPartner(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	partner, err := s.partnerStore.GetByID(ctx, id)
	if err != nil {
		logServiceFailure(s.logger, "get_partner", err, "partner_id", id)
		return nil, NewServiceError("partner", "get_partner", "failed to get partner", err)
	}
	return partner, nil
}

func (s *partnerServiceImpl) ListPartners(ctx context.Context) ([]*domain.Partner, error) {
	partners, err := s.partnerStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list partners", "error", err)
		return nil, NewServiceError("partner", "list_partners", "failed to list partners", err)
	}
	return partners, nil
}
