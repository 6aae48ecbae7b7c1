package service

import (
	"context"
	"testing"

	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namedCourseStore answers every search with one course carrying its label.
// Only Search is used.
type namedCourseStore struct {
	store.CourseStore
	label string
	calls int
}

func (s *namedCourseStore) Search(context.Context, store.Eq) ([]*domain.Course, error) {
	s.calls++
	return []*domain.Course{{Name: s.label}}, nil
}

func TestTxAwareSearcher(t *testing.T) {
	t.Parallel()

	filter := store.Eq{domain.CourseFieldName: "Go"}
	base := &namedCourseStore{label: "base"}
	txStore := &namedCourseStore{label: "tx"}

	searcher := txAwareSearcher{base: base}

	got, err := searcher.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, "base", got[0].Name)

	got, err = searcher.Search(withCourseStore(context.Background(), txStore), filter)
	require.NoError(t, err)
	assert.Equal(t, "tx", got[0].Name)

	assert.Equal(t, 1, base.calls)
	assert.Equal(t, 1, txStore.calls)
}
