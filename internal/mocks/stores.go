package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockCourseStore is a mock of store.CourseStore for use with testify/mock
type TestifyMockCourseStore struct {
	mock.Mock
}

var _ store.CourseStore = (*TestifyMockCourseStore)(nil)

func (m *TestifyMockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *TestifyMockCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if course, ok := args.Get(0).(*domain.Course); ok {
		return course, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockCourseStore) Update(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *TestifyMockCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TestifyMockCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if courses, ok := args.Get(0).([]*domain.Course); ok {
		return courses, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockCourseStore) Search(ctx context.Context, filter store.Eq) ([]*domain.Course, error) {
	args := m.Called(ctx, filter)
	if courses, ok := args.Get(0).([]*domain.Course); ok {
		return courses, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself.
func (m *TestifyMockCourseStore) WithTx(*sql.Tx) store.CourseStore {
	return m
}

func (m *TestifyMockCourseStore) DB() *sql.DB {
	return nil
}

// TestifyMockSessionStore is a mock of store.SessionStore for use with testify/mock
type TestifyMockSessionStore struct {
	mock.Mock
}

var _ store.SessionStore = (*TestifyMockSessionStore)(nil)

func (m *TestifyMockSessionStore) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *TestifyMockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(*domain.Session); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockSessionStore) Update(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *TestifyMockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TestifyMockSessionStore) List(ctx context.Context, filter store.SessionFilter) ([]*domain.Session, error) {
	args := m.Called(ctx, filter)
	if sessions, ok := args.Get(0).([]*domain.Session); ok {
		return sessions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockSessionStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Session, error) {
	args := m.Called(ctx, courseID)
	if sessions, ok := args.Get(0).([]*domain.Session); ok {
		return sessions, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself.
func (m *TestifyMockSessionStore) WithTx(*sql.Tx) store.SessionStore {
	return m
}

func (m *TestifyMockSessionStore) DB() *sql.DB {
	return nil
}

// TestifyMockUserStore is a mock of store.UserStore for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *TestifyMockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *TestifyMockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// AdjustKarma is a mock implementation of store.UserStore.AdjustKarma
func (m *TestifyMockUserStore) AdjustKarma(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *TestifyMockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

// DB is a mock implementation of store.UserStore.DB
func (m *TestifyMockUserStore) DB() *sql.DB {
	return nil
}

// TestifyMockPartnerStore is a mock of store.PartnerStore for use with testify/mock
type TestifyMockPartnerStore struct {
	mock.Mock
}

var _ store.PartnerStore = (*TestifyMockPartnerStore)(nil)

func (m *TestifyMockPartnerStore) Create(ctx context.Context, partner *domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *TestifyMockPartnerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	args := m.Called(ctx, id)
	if partner, ok := args.Get(0).(*domain.Partner); ok {
		return partner, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockPartnerStore) List(ctx context.Context) ([]*domain.Partner, error) {
	args := m.Called(ctx)
	if partners, ok := args.Get(0).([]*domain.Partner); ok {
		return partners, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockPartnerStore) Missing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if missing, ok := args.Get(0).([]uuid.UUID); ok {
		return missing, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself.
func (m *TestifyMockPartnerStore) WithTx(*sql.Tx) store.PartnerStore {
	return m
}
