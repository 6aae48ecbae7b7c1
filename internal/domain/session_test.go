package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()
	today := time.Date(2024, 3, 14, 17, 45, 0, 0, time.UTC)

	session, err := NewSession(courseID, "Morning group", today)
	require.NoError(t, err)

	assert.Equal(t, courseID, session.CourseID)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), session.StartDate)
	assert.True(t, session.Active, "sessions are active by default")
	assert.Empty(t, session.AttendeeIDs)
	assert.Zero(t, session.TakenSeats)

	_, err = NewSession(uuid.Nil, "Orphan", today)
	assert.True(t, errors.Is(err, ErrSessionCourseIDEmpty))

	_, err = NewSession(courseID, "", today)
	assert.True(t, errors.Is(err, ErrSessionNameEmpty))
}

func TestTakenSeatsPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seats     int
		attendees int
		expected  float64
	}{
		{"zero seats with attendees", 0, 3, 0},
		{"zero seats no attendees", 0, 0, 0},
		{"half full", 10, 5, 50},
		{"full", 4, 4, 100},
		{"overbooked", 10, 12, 120},
		{"empty", 8, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, TakenSeatsPercent(tt.seats, tt.attendees), 1e-9)
		})
	}
}

func TestSessionAttendeeSet(t *testing.T) {
	t.Parallel()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	session := &Session{ID: uuid.New(), Name: "s", CourseID: uuid.New()}

	session.SetAttendees([]uuid.UUID{a, b, a, uuid.Nil, c, b})
	assert.Equal(t, []uuid.UUID{a, b, c}, session.AttendeeIDs)

	assert.Equal(t, 0, session.AddAttendees(a, b))
	assert.Equal(t, 1, session.AddAttendees(uuid.New()))
	assert.Len(t, session.AttendeeIDs, 4)

	assert.True(t, session.RemoveAttendee(b))
	assert.False(t, session.RemoveAttendee(b))
	assert.False(t, session.HasAttendee(b))
	assert.True(t, session.HasAttendee(c))
}

func TestSessionComputeTakenSeats(t *testing.T) {
	t.Parallel()

	session := &Session{Seats: 10}
	session.SetAttendees([]uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()})
	session.ComputeTakenSeats()
	assert.InDelta(t, 50.0, session.TakenSeats, 1e-9)

	// Recomputing with unchanged inputs is deterministic.
	first := session.TakenSeats
	session.ComputeTakenSeats()
	assert.Equal(t, first, session.TakenSeats)
}

func TestSessionSetDuration(t *testing.T) {
	t.Parallel()

	session := &Session{}
	session.SetDuration(1.23456)
	assert.Equal(t, 1.23, session.Duration)
	session.SetDuration(2.5)
	assert.Equal(t, 2.5, session.Duration)
}
