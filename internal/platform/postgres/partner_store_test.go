package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	partner, err := domain.NewPartner("Alice", "alice@example.com")
	require.NoError(t, err)

	db, mock := newMockDB(t)
	s := NewPostgresPartnerStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO partners (id,name,email,created_at)")).
		WithArgs(partner.ID, "Alice", "alice@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM partners WHERE id = $1")).
		WithArgs(partner.ID).
		WillReturnRows(sqlmock.NewRows(partnerColumns).
			AddRow(partner.ID.String(), "Alice", "alice@example.com", partner.CreatedAt))
	mock.ExpectQuery("FROM partners").
		WillReturnError(sql.ErrNoRows)

	require.NoError(t, s.Create(context.Background(), partner))

	got, err := s.GetByID(context.Background(), partner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrPartnerNotFound)
}

func TestPartnerStoreList(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewPostgresPartnerStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM partners ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows(partnerColumns).
			AddRow(uuid.New().String(), "Alice", "", now).
			AddRow(uuid.New().String(), "Bob", "", now))

	partners, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, partners, 2)
	assert.Equal(t, "Bob", partners[1].Name)
}

func TestPartnerStoreMissing(t *testing.T) {
	t.Parallel()

	known, unknown := uuid.New(), uuid.New()

	db, mock := newMockDB(t)
	s := NewPostgresPartnerStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM partners WHERE id IN ($1,$2)")).
		WithArgs(known, unknown).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(known.String()))

	missing, err := s.Missing(context.Background(), []uuid.UUID{known, unknown})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{unknown}, missing)

	none, err := s.Missing(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, none)
}
