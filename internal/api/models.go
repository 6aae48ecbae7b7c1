package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/service"
)

// DateLayout is the wire format of session start dates.
const DateLayout = "2006-01-02"

// Optional records whether a JSON field was present, so that an explicit
// null can be told apart from an absent field.
type Optional[T any] struct {
	Set   bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It is also called for null.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

// CreateCourseRequest defines the payload for POST /api/courses.
type CreateCourseRequest struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	ResponsibleID uuid.NullUUID `json:"responsible_id"`
}

// UpdateCourseRequest defines the payload for PUT /api/courses/{id}.
// Absent fields are left unchanged; responsible_id may be null to clear it.
type UpdateCourseRequest struct {
	Name          *string                 `json:"name"`
	Description   *string                 `json:"description"`
	ResponsibleID Optional[uuid.NullUUID] `json:"responsible_id"`
}

func (req UpdateCourseRequest) toInput() service.UpdateCourseInput {
	in := service.UpdateCourseInput{Name: req.Name, Description: req.Description}
	if req.ResponsibleID.Set {
		responsible := req.ResponsibleID.Value
		in.ResponsibleID = &responsible
	}
	return in
}

// CreateSessionRequest defines the payload for POST /api/sessions.
type CreateSessionRequest struct {
	CourseID     uuid.UUID     `json:"course_id"    validate:"required"`
	Name         string        `json:"name"`
	StartDate    *string       `json:"start_date"   validate:"omitempty,datetime=2006-01-02"`
	Duration     float64       `json:"duration"`
	Seats        int           `json:"seats"`
	InstructorID uuid.NullUUID `json:"instructor_id"`
	AttendeeIDs  []uuid.UUID   `json:"attendee_ids" validate:"max=1000"`
	Active       *bool         `json:"active"`
}

func (req CreateSessionRequest) toInput() (service.CreateSessionInput, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return service.CreateSessionInput{}, err
	}
	return service.CreateSessionInput{
		CourseID:     req.CourseID,
		Name:         req.Name,
		StartDate:    start,
		Duration:     req.Duration,
		Seats:        req.Seats,
		InstructorID: req.InstructorID,
		AttendeeIDs:  req.AttendeeIDs,
		Active:       req.Active,
	}, nil
}

// UpdateSessionRequest defines the payload for PUT /api/sessions/{id}.
// Absent fields are left unchanged; instructor_id may be null to clear it.
type UpdateSessionRequest struct {
	Name         *string                 `json:"name"`
	StartDate    *string                 `json:"start_date"    validate:"omitempty,datetime=2006-01-02"`
	Duration     *float64                `json:"duration"`
	Seats        *int                    `json:"seats"`
	InstructorID Optional[uuid.NullUUID] `json:"instructor_id"`
	CourseID     *uuid.UUID              `json:"course_id"`
	AttendeeIDs  *[]uuid.UUID            `json:"attendee_ids"  validate:"omitempty,max=1000"`
	Active       *bool                   `json:"active"`
}

func (req UpdateSessionRequest) toInput() (service.UpdateSessionInput, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return service.UpdateSessionInput{}, err
	}
	in := service.UpdateSessionInput{
		Name:        req.Name,
		StartDate:   start,
		Duration:    req.Duration,
		Seats:       req.Seats,
		CourseID:    req.CourseID,
		AttendeeIDs: req.AttendeeIDs,
		Active:      req.Active,
	}
	if req.InstructorID.Set {
		instructor := req.InstructorID.Value
		in.InstructorID = &instructor
	}
	return in, nil
}

// OnchangeSessionRequest defines the payload for POST /api/sessions/onchange:
// the fields being edited, applied to the stored session named by session_id
// or to a new one.
type OnchangeSessionRequest struct {
	SessionID uuid.NullUUID `json:"session_id"`
	UpdateSessionRequest
}

// AttendeesRequest defines the payload for POST /api/sessions/{id}/attendees.
type AttendeesRequest struct {
	PartnerIDs []uuid.UUID `json:"partner_ids" validate:"required,min=1,max=1000"`
}

// CreatePartnerRequest defines the payload for POST /api/partners.
type CreatePartnerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateUserRequest defines the payload for POST /api/users.
type CreateUserRequest struct {
	Login string `json:"login" validate:"max=64"`
	Name  string `json:"name"`
}

// AdjustKarmaRequest defines the payload for POST /api/users/{id}/karma.
type AdjustKarmaRequest struct {
	Delta *int `json:"delta" validate:"required"`
}

// SetKarmaRequest defines the payload for PUT /api/users/{id}/karma.
type SetKarmaRequest struct {
	Karma *int `json:"karma" validate:"required"`
}

// WarningResponse is an advisory message returned alongside a successful write.
type WarningResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// CourseResponse represents the response data for a course
type CourseResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ResponsibleID *string           `json:"responsible_id"`
	Sessions      []SessionResponse `json:"sessions,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// SessionResponse represents the response data for a session
type SessionResponse struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	StartDate    string    `json:"start_date"`
	Duration     float64   `json:"duration"`
	Seats        int       `json:"seats"`
	InstructorID *string   `json:"instructor_id"`
	CourseID     string    `json:"course_id,omitempty"`
	AttendeeIDs  []string  `json:"attendee_ids"`
	TakenSeats   float64   `json:"taken_seats"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionWriteResponse is returned by session writes and onchange previews.
type SessionWriteResponse struct {
	Session  SessionResponse   `json:"session"`
	Warnings []WarningResponse `json:"warnings"`
}

// PartnerResponse represents the response data for a partner
type PartnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserResponse represents the response data for a user
type UserResponse struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Karma     int       `json:"karma"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func courseToResponse(course *domain.Course) CourseResponse {
	resp := CourseResponse{
		ID:            course.ID.String(),
		Name:          course.Name,
		Description:   course.Description,
		ResponsibleID: nullUUIDString(course.ResponsibleID),
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
	}
	for _, s := range course.Sessions {
		resp.Sessions = append(resp.Sessions, sessionToResponse(s))
	}
	return resp
}

func sessionToResponse(session *domain.Session) SessionResponse {
	attendees := make([]string, 0, len(session.AttendeeIDs))
	for _, id := range session.AttendeeIDs {
		attendees = append(attendees, id.String())
	}

	resp := SessionResponse{
		Name:         session.Name,
		StartDate:    session.StartDate.Format(DateLayout),
		Duration:     session.Duration,
		Seats:        session.Seats,
		InstructorID: nullUUIDString(session.InstructorID),
		AttendeeIDs:  attendees,
		TakenSeats:   session.TakenSeats,
		Active:       session.Active,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
	// Onchange previews of new sessions have no identity yet.
	if session.ID != uuid.Nil {
		resp.ID = session.ID.String()
	}
	if session.CourseID != uuid.Nil {
		resp.CourseID = session.CourseID.String()
	}
	return resp
}

func sessionResultToResponse(result *service.SessionResult) SessionWriteResponse {
	warnings := make([]WarningResponse, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, WarningResponse{Title: w.Title, Message: w.Message})
	}
	return SessionWriteResponse{
		Session:  sessionToResponse(result.Session),
		Warnings: warnings,
	}
}

func partnerToResponse(partner *domain.Partner) PartnerResponse {
	return PartnerResponse{
		ID:        partner.ID.String(),
		Name:      partner.Name,
		Email:     partner.Email,
		CreatedAt: partner.CreatedAt,
	}
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Login:     user.Login,
		Name:      user.Name,
		Karma:     user.Karma,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func nullUUIDString(id uuid.NullUUID) *string {
	if !id.Valid {
		return nil
	}
	s := id.UUID.String()
	return &s
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, domain.NewValidationError("start_date", "Start date must be formatted as YYYY-MM-DD.", err)
	}
	return &t, nil
}
