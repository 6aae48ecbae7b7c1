// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock and are configured with On(...).
// Their WithTx methods return the receiver, so a single mock observes calls
// made both inside and outside a transaction.
//
// Service mocks use function fields instead, falling back to the Default*
// values when a function is not set:
//
//	svc := &mocks.MockCourseService{
//	    GetCourseFn: func(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
//	        return nil, service.ErrCourseNotFound
//	    },
//	}
package mocks
