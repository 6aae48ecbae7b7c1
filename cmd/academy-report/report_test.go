package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func reportSession(courseID uuid.UUID, name string, seats, attendees int) *domain.Session {
	s := &domain.Session{
		ID:        uuid.New(),
		Name:      name,
		CourseID:  courseID,
		StartDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Seats:     seats,
		Active:    true,
	}
	for i := 0; i < attendees; i++ {
		s.AttendeeIDs = append(s.AttendeeIDs, uuid.New())
	}
	return s
}

func TestBuildRows(t *testing.T) {
	t.Parallel()

	goID, rustID := uuid.New(), uuid.New()
	courses := []*domain.Course{
		{ID: rustID, Name: "Rust"},
		{ID: goID, Name: "Go"},
	}
	sessions := []*domain.Session{
		reportSession(rustID, "Evening", 10, 5),
		reportSession(goID, "Morning", 1, 2),
		reportSession(goID, "Broken", -1, 0),
		reportSession(uuid.New(), "Orphan", 5, 0),
	}

	rows := buildRows(context.Background(), courses, sessions)

	require.Len(t, rows, 3)
	assert.Equal(t, "Go", rows[0].Course)
	assert.Equal(t, "Morning", rows[0].Session)
	assert.InDelta(t, 200.0, rows[0].Taken, 0.001)
	require.NotNil(t, rows[0].Warning)
	assert.Equal(t, rules.MsgTooManyAttendees, rows[0].Warning.Message)

	assert.Equal(t, "Broken", rows[1].Session)
	require.NotNil(t, rows[1].Warning)
	assert.Equal(t, rules.MsgSeatsNegative, rows[1].Warning.Message)

	assert.Equal(t, "Rust", rows[2].Course)
	assert.Nil(t, rows[2].Warning)
	assert.InDelta(t, 50.0, rows[2].Taken, 0.001)
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()
	rows := buildRows(context.Background(),
		[]*domain.Course{{ID: courseID, Name: "Go"}},
		[]*domain.Session{
			reportSession(courseID, "Morning", 1, 2),
			reportSession(courseID, "Afternoon", 4, 1),
		})

	var buf bytes.Buffer
	renderReport(&buf, rows)
	out := buf.String()

	assert.Contains(t, out, "TAKEN %")
	assert.Contains(t, out, "Afternoon")
	assert.Contains(t, out, "25.00")
	assert.Contains(t, out, "1 session(s) need attention")
	assert.Contains(t, out, "Go / Morning: "+rules.TitleCapacityWarning+". "+rules.MsgTooManyAttendees)
}

func TestRenderReport_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderReport(&buf, nil)
	assert.Equal(t, "No sessions found.\n", buf.String())
}
