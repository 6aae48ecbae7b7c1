package rules

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWith(seats, attendees int) *domain.Session {
	s := &domain.Session{ID: uuid.New(), Name: "s", CourseID: uuid.New(), Seats: seats, Active: true}
	for i := 0; i < attendees; i++ {
		s.AddAttendees(uuid.New())
	}
	return s
}

func newSessionRegistry(t *testing.T, strict bool) *SessionRegistry {
	t.Helper()
	reg, err := NewSessionRegistry(SessionOptions{StrictCapacity: strict}, nil)
	require.NoError(t, err)
	return reg
}

func TestComputeTakenSeats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seats     int
		attendees int
		want      float64
	}{
		{name: "zero seats with attendees", seats: 0, attendees: 3, want: 0},
		{name: "half full", seats: 10, attendees: 5, want: 50.0},
		{name: "overbooked", seats: 10, attendees: 12, want: 120.0},
		{name: "empty", seats: 4, attendees: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sessionWith(tt.seats, tt.attendees)
			ComputeTakenSeats(context.Background(), []*domain.Session{s})
			assert.InDelta(t, tt.want, s.TakenSeats, 1e-9)
		})
	}
}

func TestCapacityWarning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seats     int
		attendees int
		want      *domain.Warning
	}{
		{name: "negative seats", seats: -1, attendees: 0, want: &domain.Warning{
			Title: "Something bad happened", Message: "You can not add a negative value"}},
		{name: "negative seats wins over overbooking", seats: -1, attendees: 3, want: &domain.Warning{
			Title: "Something bad happened", Message: "You can not add a negative value"}},
		{name: "too many attendees", seats: 2, attendees: 3, want: &domain.Warning{
			Title: "Something bad happened", Message: "You cannot add more attendees than the number of seats"}},
		{name: "exactly full", seats: 3, attendees: 3, want: nil},
		{name: "zero seats no attendees", seats: 0, attendees: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapacityWarning(context.Background(), sessionWith(tt.seats, tt.attendees)))
		})
	}
}

func TestCheckInstructorNotAttendee(t *testing.T) {
	t.Parallel()

	instructor := uuid.New()

	clean := sessionWith(5, 2)
	clean.InstructorID = uuid.NullUUID{UUID: instructor, Valid: true}
	assert.NoError(t, CheckInstructorNotAttendee(context.Background(), []*domain.Session{clean}))

	noInstructor := sessionWith(5, 2)
	assert.NoError(t, CheckInstructorNotAttendee(context.Background(), []*domain.Session{noInstructor}))

	attending := sessionWith(5, 1)
	attending.InstructorID = uuid.NullUUID{UUID: instructor, Valid: true}
	attending.AddAttendees(instructor)
	err := CheckInstructorNotAttendee(context.Background(), []*domain.Session{clean, attending})
	assertValidation(t, err, domain.ErrInstructorIsAttendee, "you are not add instructor as attendee!")
}

func TestCheckCapacity(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckCapacity(context.Background(), []*domain.Session{sessionWith(3, 3)}))

	err := CheckCapacity(context.Background(), []*domain.Session{sessionWith(-1, 0)})
	assertValidation(t, err, domain.ErrSeatsNegative, MsgSeatsNegative)

	err = CheckCapacity(context.Background(), []*domain.Session{sessionWith(1, 2)})
	assertValidation(t, err, domain.ErrSessionOverbooked, MsgTooManyAttendees)
}

func TestSessionRegistryAdvisoryDefault(t *testing.T) {
	t.Parallel()

	reg := newSessionRegistry(t, false)
	changed := []string{domain.SessionFieldSeats, domain.SessionFieldAttendees}

	t.Run("overbooked is advisory", func(t *testing.T) {
		s := sessionWith(10, 12)
		warnings, err := reg.Dispatch(context.Background(), changed, []*domain.Session{s})

		require.NoError(t, err)
		assert.InDelta(t, 120.0, s.TakenSeats, 1e-9)
		require.Len(t, warnings, 1)
		assert.Equal(t, MsgTooManyAttendees, warnings[0].Message)
	})

	t.Run("negative seats is advisory", func(t *testing.T) {
		s := sessionWith(-1, 0)
		warnings, err := reg.Dispatch(context.Background(), []string{domain.SessionFieldSeats}, []*domain.Session{s})

		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.NotEmpty(t, warnings[0].Title)
		assert.NotEmpty(t, warnings[0].Message)
	})

	t.Run("one warning per offending record", func(t *testing.T) {
		batch := []*domain.Session{sessionWith(-1, 0), sessionWith(5, 1), sessionWith(1, 2)}
		warnings, err := reg.Dispatch(context.Background(), changed, batch)

		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Equal(t, MsgSeatsNegative, warnings[0].Message)
		assert.Equal(t, MsgTooManyAttendees, warnings[1].Message)
	})

	t.Run("name change runs no rules", func(t *testing.T) {
		s := sessionWith(1, 2)
		warnings, err := reg.Dispatch(context.Background(), []string{domain.SessionFieldName}, []*domain.Session{s})
		assert.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Zero(t, s.TakenSeats, "compute only runs when seats or attendees change")
	})
}

func TestSessionRegistryInstructorTriggers(t *testing.T) {
	t.Parallel()

	reg := newSessionRegistry(t, false)
	partner := uuid.New()

	for _, field := range []string{domain.SessionFieldAttendees, domain.SessionFieldInstructor} {
		t.Run(field, func(t *testing.T) {
			s := sessionWith(5, 0)
			s.AddAttendees(partner)
			s.InstructorID = uuid.NullUUID{UUID: partner, Valid: true}

			_, err := reg.Dispatch(context.Background(), []string{field}, []*domain.Session{s})
			assertValidation(t, err, domain.ErrInstructorIsAttendee, MsgInstructorAttends)
		})
	}
}

func TestSessionRegistryStrictCapacity(t *testing.T) {
	t.Parallel()

	reg := newSessionRegistry(t, true)
	s := sessionWith(1, 2)

	warnings, err := reg.Dispatch(context.Background(), []string{domain.SessionFieldAttendees}, []*domain.Session{s})

	assertValidation(t, err, domain.ErrSessionOverbooked, MsgTooManyAttendees)
	assert.Len(t, warnings, 1, "the warning is still reported alongside the error")
}

func TestSessionRegistryPreview(t *testing.T) {
	t.Parallel()

	reg := newSessionRegistry(t, true)
	partner := uuid.New()
	s := sessionWith(0, 0)
	s.AddAttendees(partner)
	s.InstructorID = uuid.NullUUID{UUID: partner, Valid: true}

	warnings := reg.Preview(context.Background(), domain.SessionFields(), []*domain.Session{s})

	require.Len(t, warnings, 1)
	assert.Equal(t, MsgTooManyAttendees, warnings[0].Message)
	assert.Zero(t, s.TakenSeats)
}
