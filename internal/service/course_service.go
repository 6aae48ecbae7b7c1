package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/rules"
	"github.com/phrazzld/academy-api/internal/store"
)

// CreateCourseInput holds the fields of a new course.
type CreateCourseInput struct {
	Name          string
	Description   string
	ResponsibleID uuid.NullUUID
}

// UpdateCourseInput holds a partial course update. Nil fields are left unchanged.
type UpdateCourseInput struct {
	Name          *string
	Description   *string
	ResponsibleID *uuid.NullUUID
}

// CourseService provides course-related operations
type CourseService interface {
	// CreateCourse validates and saves a new course.
	CreateCourse(ctx context.Context, in CreateCourseInput) (*domain.Course, error)

	// UpdateCourse applies a partial update; only the written fields trigger rules.
	UpdateCourse(ctx context.Context, id uuid.UUID, in UpdateCourseInput) (*domain.Course, error)

	// GetCourse retrieves a course together with all of its sessions.
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// ListCourses returns every course without sessions.
	ListCourses(ctx context.Context) ([]*domain.Course, error)

	// DeleteCourse removes a course that has no sessions left.
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type courseServiceImpl struct {
	courseStore  store.CourseStore
	sessionStore store.SessionStore
	userStore    store.UserStore
	registry     *rules.CourseRegistry
	db           *sql.DB
	logger       *slog.Logger
}

// NewCourseService creates a new CourseService with the course rules registered.
func NewCourseService(
	courseStore store.CourseStore,
	sessionStore store.SessionStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) (CourseService, error) {
	if courseStore == nil || sessionStore == nil || userStore == nil {
		return nil, &ServiceError{Service: "course", Operation: "create_service", Message: "stores cannot be nil"}
	}
	if db == nil {
		return nil, &ServiceError{Service: "course", Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := rules.NewCourseRegistry(txAwareSearcher{base: courseStore}, logger)
	if err != nil {
		return nil, NewServiceError("course", "create_service", "failed to register course rules", err)
	}

	return &courseServiceImpl{
		courseStore:  courseStore,
		sessionStore: sessionStore,
		userStore:    userStore,
		registry:     registry,
		db:           db,
		logger:       logger.With("component", "course_service"),
	}, nil
}

// CreateCourse implements CourseService.CreateCourse
func (s *courseServiceImpl) CreateCourse(ctx context.Context, in CreateCourseInput) (*domain.Course, error) {
	course, err := domain.NewCourse(in.Name, in.Description, in.ResponsibleID)
	if err != nil {
		return nil, NewServiceError("course", "create_course", "invalid course", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCourses := s.courseStore.WithTx(tx)
		if err := s.checkResponsible(ctx, s.userStore.WithTx(tx), course.ResponsibleID); err != nil {
			return err
		}
		if _, err := s.registry.Dispatch(withCourseStore(ctx, txCourses), domain.CourseFields(), []*domain.Course{course}); err != nil {
			return err
		}
		return txCourses.Create(ctx, course)
	})
	if err != nil {
		s.logFailure("create_course", err, "course_name", in.Name)
		return nil, NewServiceError("course", "create_course", "failed to create course", mapCourseNameConflict(err))
	}

	s.logger.Info("course created",
		"course_id", course.ID,
		"course_name", course.Name)
	return course, nil
}

// UpdateCourse implements CourseService.UpdateCourse
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id uuid.UUID, in UpdateCourseInput) (*domain.Course, error) {
	var updated *domain.Course

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCourses := s.courseStore.WithTx(tx)

		course, err := txCourses.GetByID(ctx, id)
		if err != nil {
			return err
		}

		var changed []string
		if in.Name != nil {
			course.Name = *in.Name
			changed = append(changed, domain.CourseFieldName)
		}
		if in.Description != nil {
			course.Description = *in.Description
			changed = append(changed, domain.CourseFieldDescription)
		}
		if in.ResponsibleID != nil {
			course.ResponsibleID = *in.ResponsibleID
			changed = append(changed, domain.CourseFieldResponsible)
			if err := s.checkResponsible(ctx, s.userStore.WithTx(tx), course.ResponsibleID); err != nil {
				return err
			}
		}

		if len(changed) == 0 {
			updated = course
			return nil
		}

		if err := course.Validate(); err != nil {
			return err
		}
		if _, err := s.registry.Dispatch(withCourseStore(ctx, txCourses), changed, []*domain.Course{course}); err != nil {
			return err
		}

		course.Touch()
		if err := txCourses.Update(ctx, course); err != nil {
			return err
		}
		updated = course
		return nil
	})
	if err != nil {
		s.logFailure("update_course", err, "course_id", id)
		return nil, NewServiceError("course", "update_course", "failed to update course", mapCourseNameConflict(err))
	}

	s.logger.Debug("course updated", "course_id", id)
	return updated, nil
}

// GetCourse implements CourseService.GetCourse
func (s *courseServiceImpl) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course *domain.Course

	err := store.RunInReadOnlyTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		c, err := s.courseStore.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		sessions, err := s.sessionStore.WithTx(tx).ListByCourse(ctx, id)
		if err != nil {
			return err
		}
		c.Sessions = sessions
		course = c
		return nil
	})
	if err != nil {
		s.logFailure("get_course", err, "course_id", id)
		return nil, NewServiceError("course", "get_course", "failed to get course", err)
	}

	return course, nil
}

// ListCourses implements CourseService.ListCourses
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courseStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", "error", err)
		return nil, NewServiceError("course", "list_courses", "failed to list courses", err)
	}
	return courses, nil
}

// DeleteCourse implements CourseService.DeleteCourse
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.courseStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		s.logFailure("delete_course", err, "course_id", id)
		return NewServiceError("course", "delete_course", "failed to delete course", err)
	}

	s.logger.Info("course deleted", "course_id", id)
	return nil
}

func (s *courseServiceImpl) checkResponsible(ctx context.Context, users store.UserStore, id uuid.NullUUID) error {
	if !id.Valid {
		return nil
	}
	if _, err := users.GetByID(ctx, id.UUID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domain.NewValidationError(domain.CourseFieldResponsible, "Responsible user does not exist.", ErrUnknownUser)
		}
		return err
	}
	return nil
}

// logFailure logs expected failures at debug level and the rest as errors.
func (s *courseServiceImpl) logFailure(op string, err error, attrs ...any) {
	logServiceFailure(s.logger, op, err, attrs...)
}

// mapCourseNameConflict turns a unique index violation on the course name
// into the same validation error the uniqueness rule raises.
func mapCourseNameConflict(err error) error {
	if errors.Is(err, store.ErrCourseNameExists) {
		return domain.NewValidationError(domain.CourseFieldName, rules.MsgNameNotUnique, domain.ErrCourseNameNotUnique)
	}
	return err
}

func logServiceFailure(logger *slog.Logger, op string, err error, attrs ...any) {
	attrs = append(attrs, "operation", op, "error", err)
	if domain.IsValidationError(err) || store.IsNotFoundError(err) || errors.Is(err, store.ErrDeleteFailed) {
		logger.Debug("operation rejected", attrs...)
		return
	}
	logger.Error("operation failed", attrs...)
}
