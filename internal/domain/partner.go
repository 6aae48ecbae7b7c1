package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Partner-specific validation errors
var (
	ErrPartnerIDEmpty   = errors.New("partner ID cannot be empty")
	ErrPartnerNameEmpty = errors.New("partner name cannot be empty")
)

// Partner is a person who can teach or attend sessions.
type Partner struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPartner creates a new Partner.
func NewPartner(name, email string) (*Partner, error) {
	partner := &Partner{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := partner.Validate(); err != nil {
		return nil, err
	}

	return partner, nil
}

// Validate checks if the Partner has valid data.
func (p *Partner) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPartnerIDEmpty
	}
	if p.Name == "" {
		return NewValidationError("name", "Name is required.", ErrPartnerNameEmpty)
	}
	return nil
}
