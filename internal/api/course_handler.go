package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/academy-api/internal/api/shared"
	"github.com/phrazzld/academy-api/internal/platform/logger"
	"github.com/phrazzld/academy-api/internal/service"
)

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	courseService service.CourseService
	logger        *slog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, logger *slog.Logger) *CourseHandler {
	if courseService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("courseService cannot be nil for CourseHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CourseHandler{
		courseService: courseService,
		logger:        logger.With(slog.String("component", "course_handler")),
	}
}

// CreateCourse handles POST /courses requests
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCourseRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), service.CreateCourseInput{
		Name:          req.Name,
		Description:   req.Description,
		ResponsibleID: req.ResponsibleID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create course")
		return
	}

	log.Debug("course created", slog.String("course_id", course.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, courseToResponse(course))
}

// ListCourses handles GET /courses requests
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list courses")
		return
	}

	resp := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, courseToResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetCourse handles GET /courses/{id} requests. The response includes the
// course's sessions.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get course")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, courseToResponse(course))
}

// UpdateCourse handles PUT /courses/{id} requests
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), id, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update course")
		return
	}

	log.Debug("course updated", slog.String("course_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, courseToResponse(course))
}

// DeleteCourse handles DELETE /courses/{id} requests
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
