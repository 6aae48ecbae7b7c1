package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/service"
	"github.com/phrazzld/academy-api/internal/store"
)

// MockCourseService implements service.CourseService for testing
type MockCourseService struct {
	CreateCourseFn func(ctx context.Context, in service.CreateCourseInput) (*domain.Course, error)
	UpdateCourseFn func(ctx context.Context, id uuid.UUID, in service.UpdateCourseInput) (*domain.Course, error)
	GetCourseFn    func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	ListCoursesFn  func(ctx context.Context) ([]*domain.Course, error)
	DeleteCourseFn func(ctx context.Context, id uuid.UUID) error

	// Default return values
	Course       *domain.Course
	DefaultError error
}

var _ service.CourseService = (*MockCourseService)(nil)

func (m *MockCourseService) CreateCourse(ctx context.Context, in service.CreateCourseInput) (*domain.Course, error) {
	if m.CreateCourseFn != nil {
		return m.CreateCourseFn(ctx, in)
	}
	return m.Course, m.DefaultError
}

func (m *MockCourseService) UpdateCourse(ctx context.Context, id uuid.UUID, in service.UpdateCourseInput) (*domain.Course, error) {
	if m.UpdateCourseFn != nil {
		return m.UpdateCourseFn(ctx, id, in)
	}
	return m.Course, m.DefaultError
}

func (m *MockCourseService) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if m.GetCourseFn != nil {
		return m.GetCourseFn(ctx, id)
	}
	return m.Course, m.DefaultError
}

func (m *MockCourseService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	if m.ListCoursesFn != nil {
		return m.ListCoursesFn(ctx)
	}
	if m.Course != nil {
		return []*domain.Course{m.Course}, m.DefaultError
	}
	return []*domain.Course{}, m.DefaultError
}

func (m *MockCourseService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if m.DeleteCourseFn != nil {
		return m.DeleteCourseFn(ctx, id)
	}
	return m.DefaultError
}

// MockSessionService implements service.SessionService for testing
type MockSessionService struct {
	CreateSessionFn  func(ctx context.Context, in service.CreateSessionInput) (*service.SessionResult, error)
	UpdateSessionFn  func(ctx context.Context, id uuid.UUID, in service.UpdateSessionInput) (*service.SessionResult, error)
	AddAttendeesFn   func(ctx context.Context, id uuid.UUID, partnerIDs []uuid.UUID) (*service.SessionResult, error)
	RemoveAttendeeFn func(ctx context.Context, id uuid.UUID, partnerID uuid.UUID) (*service.SessionResult, error)
	SetActiveFn      func(ctx context.Context, id uuid.UUID, active bool) (*service.SessionResult, error)
	GetSessionFn     func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	ListSessionsFn   func(ctx context.Context, filter store.SessionFilter) ([]*domain.Session, error)
	DeleteSessionFn  func(ctx context.Context, id uuid.UUID) error
	PreviewSessionFn func(ctx context.Context, base uuid.NullUUID, in service.UpdateSessionInput) (*service.SessionResult, error)

	// Default return values
	Result       *service.SessionResult
	DefaultError error
}

var _ service.SessionService = (*MockSessionService)(nil)

func (m *MockSessionService) CreateSession(ctx context.Context, in service.CreateSessionInput) (*service.SessionResult, error) {
	if m.CreateSessionFn != nil {
		return m.CreateSessionFn(ctx, in)
	}
	return m.Result, m.DefaultError
}

func (m *MockSessionService) UpdateSession(ctx context.Context, id uuid.UUID, in service.UpdateSessionInput) (*service.SessionResult, error) {
	if m.UpdateSessionFn != nil {
		return m.UpdateSessionFn(ctx, id, in)
	}
	return m.Result, m.DefaultError
}

func (m *MockSessionService) AddAttendees(ctx context.Context, id uuid.UUID, partnerIDs []uuid.UUID) (*service.SessionResult, error) {
	if m.AddAttendeesFn != nil {
		return m.AddAttendeesFn(ctx, id, partnerIDs)
	}
	return m.Result, m.DefaultError
}

func (m *MockSessionService) RemoveAttendee(ctx context.Context, id uuid.UUID, partnerID uuid.UUID) (*service.SessionResult, error) {
	if m.RemoveAttendeeFn != nil {
		return m.RemoveAttendeeFn(ctx, id, partnerID)
	}
	return m.Result, m.DefaultError
}

func (m *MockSessionService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*service.SessionResult, error) {
	if m.SetActiveFn != nil {
		return m.SetActiveFn(ctx, id, active)
	}
	return m.Result, m.DefaultError
}

func (m *MockSessionService) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if m.GetSessionFn != nil {
		return m.GetSessionFn(ctx, id)
	}
	if m.Result != nil {
		return m.Result.Session, m.DefaultError
	}
	return nil, m.DefaultError
}

func (m *MockSessionService) ListSessions(ctx context.Context, filter store.SessionFilter) ([]*domain.Session, error) {
	if m.ListSessionsFn != nil {
		return m.ListSessionsFn(ctx, filter)
	}
	if m.Result != nil && m.Result.Session != nil {
		return []*domain.Session{m.Result.Session}, m.DefaultError
	}
	return []*domain.Session{}, m.DefaultError
}

func (m *MockSessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if m.DeleteSessionFn != nil {
		return m.DeleteSessionFn(ctx, id)
	}
	return m.DefaultError
}

func (m *MockSessionService) PreviewSession(ctx context.Context, base uuid.NullUUID, in service.UpdateSessionInput) (*service.SessionResult, error) {
	if m.PreviewSessionFn != nil {
		return m.PreviewSessionFn(ctx, base, in)
	}
	return m.Result, m.DefaultError
}

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateUserFn  func(ctx context.Context, login, name string) (*domain.User, error)
	GetUserFn     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	AdjustKarmaFn func(ctx context.Context, id uuid.UUID, delta int) (*domain.User, error)
	SetKarmaFn    func(ctx context.Context, id uuid.UUID, karma int) (*domain.User, error)
	DeleteUserFn  func(ctx context.Context, id uuid.UUID) error

	User         *domain.User
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) CreateUser(ctx context.Context, login, name string) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, login, name)
	}
	return m.User, m.DefaultError
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return m.User, m.DefaultError
}

func (m *MockUserService) AdjustKarma(ctx context.Context, id uuid.UUID, delta int) (*domain.User, error) {
	if m.AdjustKarmaFn != nil {
		return m.AdjustKarmaFn(ctx, id, delta)
	}
	return m.User, m.DefaultError
}

func (m *MockUserService) SetKarma(ctx context.Context, id uuid.UUID, karma int) (*domain.User, error) {
	if m.SetKarmaFn != nil {
		return m.SetKarmaFn(ctx, id, karma)
	}
	return m.User, m.DefaultError
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return m.DefaultError
}

// MockPartnerService implements service.PartnerService for testing
type MockPartnerService struct {
	CreatePartnerFn func(ctx context.Context, name, email string) (*domain.Partner, error)
	GetPartnerFn    func(ctx context.Context, id uuid.UUID) (*domain.Partner, error)
	ListPartnersFn  func(ctx context.Context) ([]*domain.Partner, error)

	Partner      *domain.Partner
	DefaultError error
}

var _ service.PartnerService = (*MockPartnerService)(nil)

func (m *MockPartnerService) CreatePartner(ctx context.Context, name, email string) (*domain.Partner, error) {
	if m.CreatePartnerFn != nil {
		return m.CreatePartnerFn(ctx, name, email)
	}
	return m.Partner, m.DefaultError
}

func (m *MockPartnerService) GetPartner(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	if m.GetPartnerFn != nil {
		return m.GetPartnerFn(ctx, id)
	}
	return m.Partner, m.DefaultError
}

func (m *MockPartnerService) ListPartners(ctx context.Context) ([]*domain.Partner, error) {
	if m.ListPartnersFn != nil {
		return m.ListPartnersFn(ctx)
	}
	if m.Partner != nil {
		return []*domain.Partner{m.Partner}, m.DefaultError
	}
	return []*domain.Partner{}, m.DefaultError
}
