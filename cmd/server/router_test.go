package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/api"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/mocks"
	"github.com/phrazzld/academy-api/internal/platform/logger"
	"github.com/phrazzld/academy-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T) (api.Handlers, *mocks.MockCourseService) {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	courses := &mocks.MockCourseService{}
	return api.Handlers{
		Courses:  api.NewCourseHandler(courses, log),
		Sessions: api.NewSessionHandler(&mocks.MockSessionService{}, log),
		Partners: api.NewPartnerHandler(&mocks.MockPartnerService{}, log),
		Users:    api.NewUserHandler(&mocks.MockUserService{}, log),
	}, courses
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	handlers, _ := newTestHandlers(t)
	srv := httptest.NewServer(newRouter(log, handlers))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestRouter_APIMountedUnderPrefix(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	handlers, courses := newTestHandlers(t)
	courses.ListCoursesFn = func(context.Context) ([]*domain.Course, error) {
		return []*domain.Course{{ID: uuid.New(), Name: "Go 101"}}, nil
	}
	router := newRouter(log, handlers)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Go 101", body[0]["name"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	handlers, courses := newTestHandlers(t)
	courses.CreateCourseFn = func(context.Context, service.CreateCourseInput) (*domain.Course, error) {
		panic("boom")
	}
	router := newRouter(log, handlers)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/courses", strings.NewReader(`{"name":"Go"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMaskDatabaseURL(t *testing.T) {
	t.Parallel()

	masked := maskDatabaseURL("postgres://academy:s3cret@db:5432/academy")
	assert.NotContains(t, masked, "s3cret")
	assert.Contains(t, masked, "academy")
	assert.Contains(t, masked, "@db:5432/academy")
	assert.Equal(t, "postgres://db:5432/academy", maskDatabaseURL("postgres://db:5432/academy"))
	assert.Equal(t, "db", extractHostFromURL("postgres://academy:s3cret@db:5432/academy"))
}

func TestRunMigrations_RejectsUnknownCommand(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	err := runMigrations(nil, log, "redo-everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
