package rules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/events"
	"github.com/phrazzld/academy-api/internal/store"
)

// CourseSearcher is the equality-filter query the uniqueness rule needs.
// store.CourseStore satisfies it.
type CourseSearcher interface {
	Search(ctx context.Context, filter store.Eq) ([]*domain.Course, error)
}

// CourseRegistry is the rule registry of courses.
type CourseRegistry = events.Registry[*domain.Course]

// NewCourseRegistry returns a course registry with every course rule registered.
func NewCourseRegistry(searcher CourseSearcher, logger *slog.Logger) (*CourseRegistry, error) {
	reg := events.NewRegistry[*domain.Course]("course", domain.CourseFields(), logger)
	if err := RegisterCourseRules(reg, searcher); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterCourseRules registers the course constraints on reg.
func RegisterCourseRules(reg *CourseRegistry, searcher CourseSearcher) error {
	if err := reg.Constrain(HookCheckNameDescription, CheckNameDescription,
		domain.CourseFieldName, domain.CourseFieldDescription); err != nil {
		return err
	}
	return reg.Constrain(HookCheckNameUnique, CheckNameUnique(searcher), domain.CourseFieldName)
}

// CheckNameDescription rejects any course whose title equals its description,
// empty strings included.
func CheckNameDescription(_ context.Context, batch []*domain.Course) error {
	for _, c := range batch {
		if c.Name == c.Description {
			return domain.NewValidationError(domain.CourseFieldName, MsgNameEqualsDescription,
				domain.ErrCourseNameEqualsDescription)
		}
	}
	return nil
}

// CheckNameUnique returns a constraint rejecting any course whose title is
// held by another course. Stored rows of the batch's own records are not
// counted, so renaming a course to its current title passes; two records of
// the same batch sharing a title collide.
func CheckNameUnique(searcher CourseSearcher) events.ConstraintFunc[*domain.Course] {
	return func(ctx context.Context, batch []*domain.Course) error {
		inBatch := make(map[uuid.UUID]struct{}, len(batch))
		for _, c := range batch {
			inBatch[c.ID] = struct{}{}
		}

		seen := make(map[string]uuid.UUID, len(batch))
		for _, c := range batch {
			if other, dup := seen[c.Name]; dup && other != c.ID {
				return nameNotUnique()
			}
			seen[c.Name] = c.ID

			matches, err := searcher.Search(ctx, store.Eq{domain.CourseFieldName: c.Name})
			if err != nil {
				return fmt.Errorf("checking course name uniqueness: %w", err)
			}
			for _, m := range matches {
				if _, own := inBatch[m.ID]; !own {
					return nameNotUnique()
				}
			}
		}
		return nil
	}
}

func nameNotUnique() error {
	return domain.NewValidationError(domain.CourseFieldName, MsgNameNotUnique, domain.ErrCourseNameNotUnique)
}
