package rules

import (
	"context"
	"log/slog"

	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/events"
)

// SessionRegistry is the rule registry of sessions.
type SessionRegistry = events.Registry[*domain.Session]

// SessionOptions tunes the session rules.
type SessionOptions struct {
	// StrictCapacity also rejects negative seats and overbooking instead of
	// only warning about them.
	StrictCapacity bool
}

// NewSessionRegistry returns a session registry with every session rule registered.
func NewSessionRegistry(opts SessionOptions, logger *slog.Logger) (*SessionRegistry, error) {
	reg := events.NewRegistry[*domain.Session]("session", domain.SessionFields(), logger)
	if err := RegisterSessionRules(reg, opts); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterSessionRules registers the session computes, advisories and
// constraints on reg.
func RegisterSessionRules(reg *SessionRegistry, opts SessionOptions) error {
	if err := reg.Compute(HookComputeTakenSeats, ComputeTakenSeats,
		domain.SessionFieldSeats, domain.SessionFieldAttendees); err != nil {
		return err
	}

	if err := reg.Onchange(HookSeatsAttendeesAdvisory, CapacityWarning,
		domain.SessionFieldSeats, domain.SessionFieldAttendees); err != nil {
		return err
	}

	if opts.StrictCapacity {
		if err := reg.Constrain(HookCheckCapacityStrict, CheckCapacity,
			domain.SessionFieldSeats, domain.SessionFieldAttendees); err != nil {
			return err
		}
	}

	return reg.Constrain(HookCheckInstructorNotAttends, CheckInstructorNotAttendee,
		domain.SessionFieldInstructor, domain.SessionFieldAttendees)
}

// ComputeTakenSeats refreshes TakenSeats on every session of the batch.
func ComputeTakenSeats(_ context.Context, batch []*domain.Session) {
	for _, s := range batch {
		s.ComputeTakenSeats()
	}
}

// CapacityWarning reports negative seats or more attendees than seats.
// Negative seats take precedence.
func CapacityWarning(_ context.Context, s *domain.Session) *domain.Warning {
	switch {
	case s.Seats < 0:
		return &domain.Warning{Title: TitleCapacityWarning, Message: MsgSeatsNegative}
	case len(s.AttendeeIDs) > s.Seats:
		return &domain.Warning{Title: TitleCapacityWarning, Message: MsgTooManyAttendees}
	default:
		return nil
	}
}

// CheckCapacity is the hard form of CapacityWarning.
func CheckCapacity(_ context.Context, batch []*domain.Session) error {
	for _, s := range batch {
		switch {
		case s.Seats < 0:
			return domain.NewValidationError(domain.SessionFieldSeats, MsgSeatsNegative, domain.ErrSeatsNegative)
		case len(s.AttendeeIDs) > s.Seats:
			return domain.NewValidationError(domain.SessionFieldAttendees, MsgTooManyAttendees, domain.ErrSessionOverbooked)
		}
	}
	return nil
}

// CheckInstructorNotAttendee rejects any session whose instructor is among its attendees.
func CheckInstructorNotAttendee(_ context.Context, batch []*domain.Session) error {
	for _, s := range batch {
		if s.InstructorID.Valid && s.HasAttendee(s.InstructorID.UUID) {
			return domain.NewValidationError(domain.SessionFieldInstructor, MsgInstructorAttends,
				domain.ErrInstructorIsAttendee)
		}
	}
	return nil
}
