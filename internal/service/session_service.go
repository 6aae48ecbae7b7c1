package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/rules"
	"github.com/phrazzld/academy-api/internal/store"
)

// SessionResult is a session as written, with the advisory warnings its
// change raised.
type SessionResult struct {
	Session  *domain.Session
	Warnings []domain.Warning
}

// CreateSessionInput holds the fields of a new session. StartDate defaults to
// today and Active to true.
type CreateSessionInput struct {
	CourseID     uuid.UUID
	Name         string
	StartDate    *time.Time
	Duration     float64
	Seats        int
	InstructorID uuid.NullUUID
	AttendeeIDs  []uuid.UUID
	Active       *bool
}

// UpdateSessionInput holds a partial session change. Nil fields are left unchanged.
type UpdateSessionInput struct {
	Name         *string
	StartDate    *time.Time
	Duration     *float64
	Seats        *int
	InstructorID *uuid.NullUUID
	CourseID     *uuid.UUID
	AttendeeIDs  *[]uuid.UUID
	Active       *bool
}

// apply writes the set fields onto session and returns the names of the
// fields it wrote.
func (in UpdateSessionInput) apply(session *domain.Session) []string {
	var changed []string
	if in.Name != nil {
		session.Name = *in.Name
		changed = append(changed, domain.SessionFieldName)
	}
	if in.StartDate != nil {
		session.StartDate = domain.DateOf(*in.StartDate)
		changed = append(changed, domain.SessionFieldStartDate)
	}
	if in.Duration != nil {
		session.SetDuration(*in.Duration)
		changed = append(changed, domain.SessionFieldDuration)
	}
	if in.Seats != nil {
		session.Seats = *in.Seats
		changed = append(changed, domain.SessionFieldSeats)
	}
	if in.InstructorID != nil {
		session.InstructorID = *in.InstructorID
		changed = append(changed, domain.SessionFieldInstructor)
	}
	if in.CourseID != nil {
		session.CourseID = *in.CourseID
		changed = append(changed, domain.SessionFieldCourse)
	}
	if in.AttendeeIDs != nil {
		session.SetAttendees(*in.AttendeeIDs)
		changed = append(changed, domain.SessionFieldAttendees)
	}
	if in.Active != nil {
		session.Active = *in.Active
		changed = append(changed, domain.SessionFieldActive)
	}
	return changed
}

// SessionService provides session-related operations
type SessionService interface {
	// CreateSession validates and saves a new session of an existing course.
	CreateSession(ctx context.Context, in CreateSessionInput) (*SessionResult, error)

	// UpdateSession applies a partial change; only the written fields trigger rules.
	UpdateSession(ctx context.Context, id uuid.UUID, in UpdateSessionInput) (*SessionResult, error)

	// AddAttendees adds partners to the attendee set. Partners already attending are ignored.
	AddAttendees(ctx context.Context, id uuid.UUID, partnerIDs []uuid.UUID) (*SessionResult, error)

	// RemoveAttendee removes a partner from the attendee set.
	// Returns ErrAttendeeNotFound if the partner does not attend.
	RemoveAttendee(ctx context.Context, id uuid.UUID, partnerID uuid.UUID) (*SessionResult, error)

	// SetActive archives (false) or unarchives (true) a session.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*SessionResult, error)

	// GetSession retrieves a session with its attendees.
	GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// ListSessions returns sessions matching filter.
	ListSessions(ctx context.Context, filter store.SessionFilter) ([]*domain.Session, error)

	// DeleteSession removes a session.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// PreviewSession applies in to the stored session (or to a blank new one
	// when base is unset) and returns the derived values and advisory
	// warnings without persisting anything or evaluating constraints.
	PreviewSession(ctx context.Context, base uuid.NullUUID, in UpdateSessionInput) (*SessionResult, error)
}

type sessionServiceImpl struct {
	sessionStore store.SessionStore
	courseStore  store.CourseStore
	partnerStore store.PartnerStore
	registry     *rules.SessionRegistry
	db           *sql.DB
	now          func() time.Time
	logger       *slog.Logger
}

// SessionServiceOption configures a SessionService.
type SessionServiceOption func(*sessionServiceImpl)

// WithClock sets the clock used for default start dates.
func WithClock(now func() time.Time) SessionServiceOption {
	return func(s *sessionServiceImpl) {
		s.now = now
	}
}

// NewSessionService creates a new SessionService with the session rules registered.
func NewSessionService(
	sessionStore store.SessionStore,
	courseStore store.CourseStore,
	partnerStore store.PartnerStore,
	ruleOpts rules.SessionOptions,
	db *sql.DB,
	logger *slog.Logger,
	opts ...SessionServiceOption,
) (SessionService, error) {
	if sessionStore == nil || courseStore == nil || partnerStore == nil {
		return nil, &ServiceError{Service: "session", Operation: "create_service", Message: "stores cannot be nil"}
	}
	if db == nil {
		return nil, &ServiceError{Service: "session", Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := rules.NewSessionRegistry(ruleOpts, logger)
	if err != nil {
		return nil, NewServiceError("session", "create_service", "failed to register session rules", err)
	}

	s := &sessionServiceImpl{
		sessionStore: sessionStore,
		courseStore:  courseStore,
		partnerStore: partnerStore,
		registry:     registry,
		db:           db,
		now:          time.Now,
		logger:       logger.With("component", "session_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateSession implements SessionService.CreateSession
func (s *sessionServiceImpl) CreateSession(ctx context.Context, in CreateSessionInput) (*SessionResult, error) {
	session, err := domain.NewSession(in.CourseID, in.Name, s.now())
	if err != nil {
		return nil, NewServiceError("session", "create_session", "invalid session", err)
	}
	if in.StartDate != nil {
		session.StartDate = domain.DateOf(*in.StartDate)
	}
	session.SetDuration(in.Duration)
	session.Seats = in.Seats
	session.InstructorID = in.InstructorID
	session.SetAttendees(in.AttendeeIDs)
	if in.Active != nil {
		session.Active = *in.Active
	}

	var warnings []domain.Warning
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkCourse(ctx, s.courseStore.WithTx(tx), session.CourseID); err != nil {
			return err
		}
		if err := s.checkPartners(ctx, s.partnerStore.WithTx(tx), session); err != nil {
			return err
		}

		warnings, err = s.registry.Dispatch(ctx, domain.SessionFields(), []*domain.Session{session})
		if err != nil {
			return err
		}
		return mapUnknownCourse(s.sessionStore.WithTx(tx).Create(ctx, session))
	})
	if err != nil {
		logServiceFailure(s.logger, "create_session", err, "course_id", in.CourseID)
		return nil, NewServiceError("session", "create_session", "failed to create session", err)
	}

	s.logger.Info("session created",
		"session_id", session.ID,
		"course_id", session.CourseID,
		"warnings", len(warnings))
	return &SessionResult{Session: session, Warnings: warnings}, nil
}

// UpdateSession implements SessionService.UpdateSession
func (s *sessionServiceImpl) UpdateSession(ctx context.Context, id uuid.UUID, in UpdateSessionInput) (*SessionResult, error) {
	return s.modify(ctx, "update_session", id, func(session *domain.Session) ([]string, error) {
		return in.apply(session), nil
	})
}

// AddAttendees implements SessionService.AddAttendees
func (s *sessionServiceImpl) AddAttendees(ctx context.Context, id uuid.UUID, partnerIDs []uuid.UUID) (*SessionResult, error) {
	return s.modify(ctx, "add_attendees", id, func(session *domain.Session) ([]string, error) {
		if session.AddAttendees(partnerIDs...) == 0 {
			return nil, nil
		}
		return []string{domain.SessionFieldAttendees}, nil
	})
}

// RemoveAttendee implements SessionService.RemoveAttendee
func (s *sessionServiceImpl) RemoveAttendee(ctx context.Context, id uuid.UUID, partnerID uuid.UUID) (*SessionResult, error) {
	return s.modify(ctx, "remove_attendee", id, func(session *domain.Session) ([]string, error) {
		if !session.RemoveAttendee(partnerID) {
			return nil, ErrAttendeeNotFound
		}
		return []string{domain.SessionFieldAttendees}, nil
	})
}

// SetActive implements SessionService.SetActive
func (s *sessionServiceImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) (*SessionResult, error) {
	return s.modify(ctx, "set_active", id, func(session *domain.Session) ([]string, error) {
		if session.Active == active {
			return nil, nil
		}
		session.Active = active
		return []string{domain.SessionFieldActive}, nil
	})
}

// modify loads a session inside a transaction, applies mutate, runs the
// rules for the fields it reports changed and saves the result.
func (s *sessionServiceImpl) modify(
	ctx context.Context,
	op string,
	id uuid.UUID,
	mutate func(*domain.Session) ([]string, error),
) (*SessionResult, error) {
	result := &SessionResult{}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSessions := s.sessionStore.WithTx(tx)

		session, err := txSessions.GetByID(ctx, id)
		if err != nil {
			return err
		}

		changed, err := mutate(session)
		if err != nil {
			return err
		}
		result.Session = session
		if len(changed) == 0 {
			return nil
		}

		if err := session.Validate(); err != nil {
			return err
		}
		if containsField(changed, domain.SessionFieldCourse) {
			if err := s.checkCourse(ctx, s.courseStore.WithTx(tx), session.CourseID); err != nil {
				return err
			}
		}
		if containsField(changed, domain.SessionFieldAttendees) || containsField(changed, domain.SessionFieldInstructor) {
			if err := s.checkPartners(ctx, s.partnerStore.WithTx(tx), session); err != nil {
				return err
			}
		}

		result.Warnings, err = s.registry.Dispatch(ctx, changed, []*domain.Session{session})
		if err != nil {
			return err
		}

		session.Touch()
		return mapUnknownCourse(txSessions.Update(ctx, session))
	})
	if err != nil {
		logServiceFailure(s.logger, op, err, "session_id", id)
		return nil, NewServiceError("session", op, "failed to modify session", err)
	}

	s.logger.Debug("session modified",
		"operation", op,
		"session_id", id,
		"warnings", len(result.Warnings))
	return result, nil
}

// GetSession implements SessionService.GetSession
func (s *sessionServiceImpl) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, err := s.sessionStore.GetByID(ctx, id)
	if err != nil {
		logServiceFailure(s.logger, "get_session", err, "session_id", id)
		return nil, NewServiceError("session", "get_session", "failed to get session", err)
	}
	return session, nil
}

// ListSessions implements SessionService.ListSessions
func (s *sessionServiceImpl) ListSessions(ctx context.Context, filter store.SessionFilter) ([]*domain.Session, error) {
	sessions, err := s.sessionStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list sessions", "error", err)
		return nil, NewServiceError("session", "list_sessions", "failed to list sessions", err)
	}
	return sessions, nil
}

// DeleteSession implements SessionService.DeleteSession
func (s *sessionServiceImpl) DeleteSession(ctx context.Context, id uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.sessionStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		logServiceFailure(s.logger, "delete_session", err, "session_id", id)
		return NewServiceError("session", "delete_session", "failed to delete session", err)
	}

	s.logger.Info("session deleted", "session_id", id)
	return nil
}

// PreviewSession implements SessionService.PreviewSession
func (s *sessionServiceImpl) PreviewSession(ctx context.Context, base uuid.NullUUID, in UpdateSessionInput) (*SessionResult, error) {
	var session *domain.Session
	if base.Valid {
		stored, err := s.sessionStore.GetByID(ctx, base.UUID)
		if err != nil {
			return nil, NewServiceError("session", "preview_session", "failed to load session", err)
		}
		session = stored
	} else {
		session = &domain.Session{
			StartDate:   domain.DateOf(s.now()),
			AttendeeIDs: []uuid.UUID{},
			Active:      true,
		}
	}

	changed := in.apply(session)
	warnings := s.registry.Preview(ctx, changed, []*domain.Session{session})

	return &SessionResult{Session: session, Warnings: warnings}, nil
}

// checkCourse rejects sessions that reference a course that does not exist.
func (s *sessionServiceImpl) checkCourse(ctx context.Context, courses store.CourseStore, id uuid.UUID) error {
	_, err := courses.GetByID(ctx, id)
	return mapUnknownCourse(err)
}

// mapUnknownCourse turns a missing course, found by lookup or by the
// session's foreign key, into a validation error on course_id.
func mapUnknownCourse(err error) error {
	if errors.Is(err, store.ErrCourseNotFound) {
		return domain.NewValidationError(domain.SessionFieldCourse, "Course does not exist.", ErrUnknownCourse)
	}
	return err
}

// checkPartners rejects sessions whose instructor or attendees do not exist.
func (s *sessionServiceImpl) checkPartners(ctx context.Context, partners store.PartnerStore, session *domain.Session) error {
	ids := append([]uuid.UUID(nil), session.AttendeeIDs...)
	if session.InstructorID.Valid {
		ids = append(ids, session.InstructorID.UUID)
	}
	if len(ids) == 0 {
		return nil
	}

	missing, err := partners.Missing(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	field := domain.SessionFieldAttendees
	if session.InstructorID.Valid && containsID(missing, session.InstructorID.UUID) && !session.HasAttendee(session.InstructorID.UUID) {
		field = domain.SessionFieldInstructor
	}

	names := make([]string, 0, len(missing))
	for _, id := range missing {
		names = append(names, id.String())
	}
	return domain.NewValidationError(field,
		fmt.Sprintf("Unknown partner: %s", strings.Join(names, ", ")),
		ErrUnknownPartner)
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
