package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Session field names, as used by rule registration and change tracking.
const (
	SessionFieldName       = "name"
	SessionFieldStartDate  = "start_date"
	SessionFieldDuration   = "duration"
	SessionFieldSeats      = "seats"
	SessionFieldInstructor = "instructor_id"
	SessionFieldCourse     = "course_id"
	SessionFieldAttendees  = "attendee_ids"
	SessionFieldActive     = "active"
)

// SessionFields lists every writable Session field.
func SessionFields() []string {
	return []string{
		SessionFieldName,
		SessionFieldStartDate,
		SessionFieldDuration,
		SessionFieldSeats,
		SessionFieldInstructor,
		SessionFieldCourse,
		SessionFieldAttendees,
		SessionFieldActive,
	}
}

// Session-specific validation errors
var (
	ErrSessionIDEmpty       = errors.New("session ID cannot be empty")
	ErrSessionNameEmpty     = errors.New("session name cannot be empty")
	ErrSessionCourseIDEmpty = errors.New("session course ID cannot be empty")
)

// Session is a scheduled occurrence of a Course, with capacity and attendance.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	// Duration is expressed in days, kept to two decimals.
	Duration     float64       `json:"duration"`
	Seats        int           `json:"seats"`
	InstructorID uuid.NullUUID `json:"instructor_id"`
	CourseID     uuid.UUID     `json:"course_id"`
	// AttendeeIDs has set semantics: no partner appears twice.
	AttendeeIDs []uuid.UUID `json:"attendee_ids"`
	// TakenSeats is derived from Seats and AttendeeIDs; see ComputeTakenSeats.
	TakenSeats float64   `json:"taken_seats"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSession creates an active Session of courseID starting on the date of today.
// Returns an error if validation fails.
func NewSession(courseID uuid.UUID, name string, today time.Time) (*Session, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:          uuid.New(),
		Name:        name,
		StartDate:   DateOf(today),
		CourseID:    courseID,
		AttendeeIDs: []uuid.UUID{},
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks the structural requirements of a Session.
// Capacity and exclusivity rules live in the rules package.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.Name == "" {
		return NewValidationError(SessionFieldName, "Name is required.", ErrSessionNameEmpty)
	}

	if s.CourseID == uuid.Nil {
		return NewValidationError(SessionFieldCourse, "Course is required.", ErrSessionCourseIDEmpty)
	}

	return nil
}

// SetDuration stores d rounded to two decimals.
func (s *Session) SetDuration(d float64) {
	s.Duration = math.Round(d*100) / 100
}

// SetAttendees replaces the attendee set, dropping duplicates and nil IDs
// while keeping first-seen order.
func (s *Session) SetAttendees(ids []uuid.UUID) {
	s.AttendeeIDs = make([]uuid.UUID, 0, len(ids))
	s.AddAttendees(ids...)
}

// AddAttendees adds partners not already attending and returns how many were added.
func (s *Session) AddAttendees(ids ...uuid.UUID) int {
	added := 0
	for _, id := range ids {
		if id == uuid.Nil || s.HasAttendee(id) {
			continue
		}
		s.AttendeeIDs = append(s.AttendeeIDs, id)
		added++
	}
	return added
}

// RemoveAttendee removes id from the attendee set. It reports whether id was present.
func (s *Session) RemoveAttendee(id uuid.UUID) bool {
	for i, existing := range s.AttendeeIDs {
		if existing == id {
			s.AttendeeIDs = append(s.AttendeeIDs[:i], s.AttendeeIDs[i+1:]...)
			return true
		}
	}
	return false
}

// HasAttendee reports whether id is in the attendee set.
func (s *Session) HasAttendee(id uuid.UUID) bool {
	for _, existing := range s.AttendeeIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// ComputeTakenSeats refreshes the derived TakenSeats percentage.
func (s *Session) ComputeTakenSeats() {
	s.TakenSeats = TakenSeatsPercent(s.Seats, len(s.AttendeeIDs))
}

// Touch bumps UpdatedAt.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// TakenSeatsPercent returns attendees as a percentage of seats. Zero seats
// yield 0. The result exceeds 100 for overbooked sessions.
func TakenSeatsPercent(seats, attendees int) float64 {
	if seats == 0 {
		return 0
	}
	return float64(attendees) / float64(seats) * 100
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
