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

var sessionColumns = []string{
	"id", "name", "start_date", "duration", "seats",
	"instructor_id", "course_id", "active", "created_at", "updated_at",
}

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend. Attendance lives in
// the session_attendees join table.
type PostgresSessionStore struct {
	db     store.DBTX
	sb     sq.StatementBuilderType
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query, args, err := s.sb.Insert("sessions").
		Columns(sessionColumns...).
		Values(session.ID, session.Name, session.StartDate, session.Duration, session.Seats,
			session.InstructorID, session.CourseID, session.Active,
			session.CreatedAt, session.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("course_id", session.CourseID.String()))
		return MapError(err)
	}

	if err := s.insertAttendees(ctx, session); err != nil {
		return err
	}

	log.Info("session created",
		slog.String("session_id", session.ID.String()),
		slog.String("course_id", session.CourseID.String()),
		slog.Int("attendees", len(session.AttendeeIDs)))
	return nil
}

// GetByID implements store.SessionStore.GetByID
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	session, err := scanSession(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found", slog.String("session_id", id.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session by ID",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}

	if err := s.loadAttendees(ctx, []*domain.Session{session}); err != nil {
		return nil, err
	}
	return session, nil
}

// Update implements store.SessionStore.Update
func (s *PostgresSessionStore) Update(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		return err
	}

	query, args, err := s.sb.Update("sessions").
		Set("name", session.Name).
		Set("start_date", session.StartDate).
		Set("duration", session.Duration).
		Set("seats", session.Seats).
		Set("instructor_id", session.InstructorID).
		Set("course_id", session.CourseID).
		Set("active", session.Active).
		Set("updated_at", session.UpdatedAt).
		Where(sq.Eq{"id": session.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update session query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrSessionNotFound); err != nil {
		return err
	}

	deleteQuery, deleteArgs, err := s.sb.Delete("session_attendees").
		Where(sq.Eq{"session_id": session.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear attendees query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return store.NewStoreError("session", "update", "failed to clear attendees", MapError(err))
	}

	if err := s.insertAttendees(ctx, session); err != nil {
		return err
	}

	log.Debug("session updated",
		slog.String("session_id", session.ID.String()),
		slog.Int("attendees", len(session.AttendeeIDs)))
	return nil
}

// Delete implements store.SessionStore.Delete
func (s *PostgresSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Delete("sessions").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return mapDeleteError(err)
	}
	if err := CheckRowsAffected(result, store.ErrSessionNotFound); err != nil {
		return err
	}

	log.Info("session deleted", slog.String("session_id", id.String()))
	return nil
}

// List implements store.SessionStore.List
func (s *PostgresSessionStore) List(ctx context.Context, filter store.SessionFilter) ([]*domain.Session, error) {
	builder := s.sb.Select(sessionColumns...).
		From("sessions").
		OrderBy("start_date ASC", "created_at ASC")

	where := sq.Eq{}
	if filter.CourseID.Valid {
		where["course_id"] = filter.CourseID.UUID
	}
	if !filter.IncludeArchived {
		where["active"] = true
	}
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	return s.query(ctx, builder)
}

// ListByCourse implements store.SessionStore.ListByCourse
func (s *PostgresSessionStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Session, error) {
	return s.List(ctx, store.SessionFilter{
		CourseID:        uuid.NullUUID{UUID: courseID, Valid: true},
		IncludeArchived: true,
	})
}

func (s *PostgresSessionStore) query(ctx context.Context, builder sq.SelectBuilder) ([]*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build session query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query sessions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []*domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	// Release the connection before the attendee query; a transaction
	// cannot run a second query while rows are open.
	_ = rows.Close()

	if err := s.loadAttendees(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// loadAttendees fills AttendeeIDs of every session with one query and
// derives TakenSeats.
func (s *PostgresSessionStore) loadAttendees(ctx context.Context, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(sessions))
	byID := make(map[uuid.UUID]*domain.Session, len(sessions))
	for _, session := range sessions {
		session.AttendeeIDs = []uuid.UUID{}
		ids = append(ids, session.ID)
		byID[session.ID] = session
	}

	query, args, err := s.sb.Select("session_id", "partner_id").
		From("session_attendees").
		Where(sq.Eq{"session_id": ids}).
		OrderBy("session_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attendee query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return store.NewStoreError("session", "get", "failed to load attendees", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var sessionID, partnerID uuid.UUID
		if err := rows.Scan(&sessionID, &partnerID); err != nil {
			return fmt.Errorf("error scanning attendee row: %w", err)
		}
		if session, ok := byID[sessionID]; ok {
			session.AttendeeIDs = append(session.AttendeeIDs, partnerID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating attendee rows: %w", err)
	}

	for _, session := range sessions {
		session.ComputeTakenSeats()
	}
	return nil
}

func (s *PostgresSessionStore) insertAttendees(ctx context.Context, session *domain.Session) error {
	if len(session.AttendeeIDs) == 0 {
		return nil
	}

	builder := s.sb.Insert("session_attendees").Columns("session_id", "partner_id", "position")
	for i, partnerID := range session.AttendeeIDs {
		builder = builder.Values(session.ID, partnerID, i)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert attendees query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert attendees",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return store.NewStoreError("session", "write", "failed to insert attendees", MapError(err))
	}
	return nil
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		sb:     s.sb,
		logger: s.logger,
	}
}

// DB implements store.SessionStore.DB
func (s *PostgresSessionStore) DB() *sql.DB {
	if db, ok := s.db.(*sql.DB); ok {
		return db
	}
	return nil
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	if err := row.Scan(
		&session.ID,
		&session.Name,
		&session.StartDate,
		&session.Duration,
		&session.Seats,
		&session.InstructorID,
		&session.CourseID,
		&session.Active,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return nil, err
	}
	session.StartDate = domain.DateOf(session.StartDate)
	return &session, nil
}
