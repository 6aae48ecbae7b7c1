package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Course field names, as used by rule registration and change tracking.
const (
	CourseFieldName        = "name"
	CourseFieldDescription = "description"
	CourseFieldResponsible = "responsible_id"
)

// CourseFields lists every writable Course field.
func CourseFields() []string {
	return []string{CourseFieldName, CourseFieldDescription, CourseFieldResponsible}
}

// Course-specific validation errors
var (
	// ErrCourseIDEmpty is returned when a course ID is empty or nil.
	ErrCourseIDEmpty = errors.New("course ID cannot be empty")

	// ErrCourseNameEmpty is returned when a course has no title.
	ErrCourseNameEmpty = errors.New("course name cannot be empty")
)

// Course is a named offering that owns zero or more Sessions.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// ResponsibleID references a User. It is cleared, not cascaded, when
	// that user is deleted.
	ResponsibleID uuid.NullUUID `json:"responsible_id"`
	// Sessions is the back-reference to sessions of this course, loaded on
	// read and ordered by start date.
	Sessions  []*Session `json:"sessions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCourse creates a new Course with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewCourse(name, description string, responsibleID uuid.NullUUID) (*Course, error) {
	now := time.Now().UTC()
	course := &Course{
		ID:            uuid.New(),
		Name:          name,
		Description:   description,
		ResponsibleID: responsibleID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks the structural requirements of a Course.
// Cross-field and cross-record rules live in the rules package.
func (c *Course) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCourseIDEmpty
	}

	if c.Name == "" {
		return NewValidationError(CourseFieldName, "Title is required.", ErrCourseNameEmpty)
	}

	return nil
}

// Touch bumps UpdatedAt.
func (c *Course) Touch() {
	c.UpdatedAt = time.Now().UTC()
}
