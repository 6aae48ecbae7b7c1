package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/api/shared"
	"github.com/phrazzld/academy-api/internal/platform/logger"
	"github.com/phrazzld/academy-api/internal/service"
	"github.com/phrazzld/academy-api/internal/store"
)

// SessionHandler handles session-related HTTP requests
type SessionHandler struct {
	sessionService service.SessionService
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService service.SessionService, logger *slog.Logger) *SessionHandler {
	if sessionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessionService cannot be nil for SessionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /sessions requests
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.sessionService.CreateSession(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}

	h.respondWithResult(w, r, http.StatusCreated, result)
}

// ListSessions handles GET /sessions requests. Archived sessions are
// excluded unless include_archived=true.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var filter store.SessionFilter
	query := r.URL.Query()

	if raw := query.Get("course_id"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("invalid course_id filter", slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid course_id")
			return
		}
		filter.CourseID = uuid.NullUUID{UUID: courseID, Valid: true}
	}

	if raw := query.Get("include_archived"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid include_archived")
			return
		}
		filter.IncludeArchived = include
	}

	sessions, err := h.sessionService.ListSessions(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list sessions")
		return
	}

	resp := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, sessionToResponse(s))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetSession handles GET /sessions/{id} requests
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// UpdateSession handles PUT /sessions/{id} requests
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.sessionService.UpdateSession(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update session")
		return
	}

	h.respondWithResult(w, r, http.StatusOK, result)
}

// DeleteSession handles DELETE /sessions/{id} requests
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Onchange handles POST /sessions/onchange requests: it returns the derived
// values and advisory warnings for an edit in progress without saving it.
func (h *SessionHandler) Onchange(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req OnchangeSessionRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.sessionService.PreviewSession(r.Context(), req.SessionID, in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to evaluate session changes")
		return
	}

	h.respondWithResult(w, r, http.StatusOK, result)
}

// AddAttendees handles POST /sessions/{id}/attendees requests
func (h *SessionHandler) AddAttendees(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req AttendeesRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.sessionService.AddAttendees(r.Context(), id, req.PartnerIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add attendees")
		return
	}

	h.respondWithResult(w, r, http.StatusOK, result)
}

// RemoveAttendee handles DELETE /sessions/{id}/attendees/{partnerID} requests
func (h *SessionHandler) RemoveAttendee(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}
	partnerID, ok := handlePathUUID(w, r, "partnerID", log)
	if !ok {
		return
	}

	result, err := h.sessionService.RemoveAttendee(r.Context(), id, partnerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove attendee")
		return
	}

	h.respondWithResult(w, r, http.StatusOK, result)
}

// Archive handles POST /sessions/{id}/archive requests
func (h *SessionHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// Unarchive handles POST /sessions/{id}/unarchive requests
func (h *SessionHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *SessionHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	result, err := h.sessionService.SetActive(r.Context(), id, active)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change session state")
		return
	}

	h.respondWithResult(w, r, http.StatusOK, result)
}

func (h *SessionHandler) respondWithResult(w http.ResponseWriter, r *http.Request, status int, result *service.SessionResult) {
	if len(result.Warnings) > 0 {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("session change raised warnings",
			slog.Int("count", len(result.Warnings)),
			slog.String("first", result.Warnings[0].Title))
	}
	shared.RespondWithJSON(w, r, status, sessionResultToResponse(result))
}
