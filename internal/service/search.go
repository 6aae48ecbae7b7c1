package service

import (
	"context"

	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/store"
)

type courseStoreKey struct{}

// withCourseStore returns a context carrying the transaction-bound course store,
// so that rules searching courses observe the write in progress.
func withCourseStore(ctx context.Context, s store.CourseStore) context.Context {
	return context.WithValue(ctx, courseStoreKey{}, s)
}

// txAwareSearcher searches through the course store bound to the current
// transaction when there is one, and through base otherwise.
type txAwareSearcher struct {
	base store.CourseStore
}

func (s txAwareSearcher) Search(ctx context.Context, filter store.Eq) ([]*domain.Course, error) {
	if txStore, ok := ctx.Value(courseStoreKey{}).(store.CourseStore); ok && txStore != nil {
		return txStore.Search(ctx, filter)
	}
	return s.base.Search(ctx, filter)
}
