package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/academy-api/internal/api/shared"
	"github.com/phrazzld/academy-api/internal/platform/logger"
	"github.com/phrazzld/academy-api/internal/service"
)

// PartnerHandler handles partner-related HTTP requests
type PartnerHandler struct {
	partnerService service.PartnerService
	logger         *slog.Logger
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService service.PartnerService, logger *slog.Logger) *PartnerHandler {
	if partnerService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("partnerService cannot be nil for PartnerHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PartnerHandler{
		partnerService: partnerService,
		logger:         logger.With(slog.String("component", "partner_handler")),
	}
}

// CreatePartner handles POST /partners requests
func (h *PartnerHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreatePartnerRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	partner, err := h.partnerService.CreatePartner(r.Context(), req.Name, req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create partner")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, partnerToResponse(partner))
}

// ListPartners handles GET /partners requests
func (h *PartnerHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partnerService.ListPartners(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list partners")
		return
	}

	resp := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		resp = append(resp, partnerToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetPartner handles GET /partners/{id} requests
func (h *PartnerHandler) GetPartner(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	partner, err := h.partnerService.GetPartner(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get partner")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, partnerToResponse(partner))
}
