package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/platform/logger"
	"github.com/phrazzld/academy-api/internal/store"
)

var courseColumns = []string{"id", "name", "description", "responsible_id", "created_at", "updated_at"}

// searchableCourseColumns are the columns CourseStore.Search accepts.
var searchableCourseColumns = map[string]struct{}{
	"id":                          {},
	domain.CourseFieldName:        {},
	domain.CourseFieldDescription: {},
	domain.CourseFieldResponsible: {},
}

// PostgresCourseStore implements the store.CourseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCourseStore struct {
	db     store.DBTX
	sb     sq.StatementBuilderType
	logger *slog.Logger
}

// NewPostgresCourseStore creates a new PostgreSQL implementation of the CourseStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCourseStore(db store.DBTX, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCourseStore{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure PostgresCourseStore implements store.CourseStore interface
var _ store.CourseStore = (*PostgresCourseStore)(nil)

// Create implements store.CourseStore.Create
func (s *PostgresCourseStore) Create(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during create",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	query, args, err := s.sb.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Name, course.Description, course.ResponsibleID,
			course.CreatedAt, course.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}

	log.Info("course created",
		slog.String("course_id", course.ID.String()))
	return nil
}

// GetByID implements store.CourseStore.GetByID
func (s *PostgresCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Select(courseColumns...).
		From("courses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found", slog.String("course_id", id.String()))
			return nil, store.ErrCourseNotFound
		}
		log.Error("failed to get course by ID",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return nil, MapError(err)
	}

	return course, nil
}

// Update implements store.CourseStore.Update
func (s *PostgresCourseStore) Update(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		return err
	}

	query, args, err := s.sb.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Set("responsible_id", course.ResponsibleID).
		Set("updated_at", course.UpdatedAt).
		Where(sq.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCourseNotFound); err != nil {
		return err
	}

	log.Debug("course updated", slog.String("course_id", course.ID.String()))
	return nil
}

// Delete implements store.CourseStore.Delete
func (s *PostgresCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Delete("courses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Warn("failed to delete course",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return mapDeleteError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCourseNotFound); err != nil {
		return err
	}

	log.Info("course deleted", slog.String("course_id", id.String()))
	return nil
}

// List implements store.CourseStore.List
func (s *PostgresCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	return s.query(ctx, s.sb.Select(courseColumns...).From("courses").OrderBy("name ASC"))
}

// Search implements store.CourseStore.Search
func (s *PostgresCourseStore) Search(ctx context.Context, filter store.Eq) ([]*domain.Course, error) {
	where := sq.Eq{}
	for _, col := range filter.Columns() {
		if _, ok := searchableCourseColumns[col]; !ok {
			return nil, fmt.Errorf("%w: course column %q", store.ErrInvalidFilter, col)
		}
		where[col] = filterValue(filter[col])
	}

	builder := s.sb.Select(courseColumns...).From("courses").OrderBy("name ASC")
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	return s.query(ctx, builder)
}

func (s *PostgresCourseStore) query(ctx context.Context, builder sq.SelectBuilder) ([]*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query courses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	courses := []*domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// WithTx implements store.CourseStore.WithTx
func (s *PostgresCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return &PostgresCourseStore{
		db:     tx,
		sb:     s.sb,
		logger: s.logger,
	}
}

// DB implements store.CourseStore.DB
func (s *PostgresCourseStore) DB() *sql.DB {
	if db, ok := s.db.(*sql.DB); ok {
		return db
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.ResponsibleID,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}

// filterValue unwraps nullable IDs so that an unset one matches NULL.
func filterValue(v any) any {
	switch val := v.(type) {
	case uuid.NullUUID:
		if !val.Valid {
			return nil
		}
		return val.UUID
	case *uuid.UUID:
		if val == nil {
			return nil
		}
		return *val
	default:
		return v
	}
}
