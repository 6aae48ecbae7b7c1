package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	A, B    int
	Derived int
}

var testFields = []string{"a", "b", "c"}

func newTestRegistry(t *testing.T) *Registry[*record] {
	t.Helper()
	return NewRegistry[*record]("record", testFields, nil)
}

func TestRegisterRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	noop := func(ctx context.Context, batch []*record) error { return nil }

	tests := []struct {
		name   string
		fields []string
	}{
		{name: "unknown field", fields: []string{"d"}},
		{name: "trailing space", fields: []string{"a", "b "}},
		{name: "leading space", fields: []string{" a"}},
		{name: "case mismatch", fields: []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Constrain("check_"+tt.name, noop, tt.fields...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownField), "expected ErrUnknownField, got %v", err)
		})
	}

	assert.Empty(t, reg.Triggered(KindConstraint, testFields), "rejected hooks must not be registered")
}

func TestRegisterRejectsInvalidHooks(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	noop := func(ctx context.Context, batch []*record) error { return nil }

	require.NoError(t, reg.Constrain("check", noop, "a"))

	err := reg.Constrain("check", noop, "b")
	assert.ErrorIs(t, err, ErrDuplicateHook)

	err = reg.Compute("check", func(ctx context.Context, batch []*record) {}, "b")
	assert.ErrorIs(t, err, ErrDuplicateHook, "names are unique across kinds")

	err = reg.Constrain("no_fields", noop)
	assert.ErrorIs(t, err, ErrNoFields)

	err = reg.Onchange("nil_fn", nil, "a")
	assert.ErrorIs(t, err, ErrNilHook)
}

func TestDispatchOrderAndSelection(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	var calls []string

	require.NoError(t, reg.Constrain("constraint_ab", func(ctx context.Context, batch []*record) error {
		calls = append(calls, "constraint_ab")
		return nil
	}, "a", "b"))
	require.NoError(t, reg.Onchange("onchange_a", func(ctx context.Context, r *record) *domain.Warning {
		calls = append(calls, "onchange_a")
		return nil
	}, "a"))
	require.NoError(t, reg.Compute("compute_b", func(ctx context.Context, batch []*record) {
		calls = append(calls, "compute_b")
	}, "b"))
	require.NoError(t, reg.Compute("compute_c", func(ctx context.Context, batch []*record) {
		calls = append(calls, "compute_c")
	}, "c"))

	_, err := reg.Dispatch(context.Background(), []string{"a", "b"}, []*record{{}})
	require.NoError(t, err)

	// Computes, then onchanges, then constraints; compute_c not triggered;
	// constraint_ab runs once although both of its fields changed.
	assert.Equal(t, []string{"compute_b", "onchange_a", "constraint_ab"}, calls)
}

func TestDispatchNoChangedFieldsIsNoop(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	called := false
	require.NoError(t, reg.Constrain("check", func(ctx context.Context, batch []*record) error {
		called = true
		return errors.New("boom")
	}, "a"))

	warnings, err := reg.Dispatch(context.Background(), nil, []*record{{}})
	assert.NoError(t, err)
	assert.Empty(t, warnings)

	warnings, err = reg.Dispatch(context.Background(), []string{"a"}, nil)
	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.False(t, called)
}

func TestDispatchComputeFeedsLaterHooks(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	require.NoError(t, reg.Compute("derive", func(ctx context.Context, batch []*record) {
		for _, r := range batch {
			r.Derived = r.A + r.B
		}
	}, "a", "b"))
	require.NoError(t, reg.Onchange("large", func(ctx context.Context, r *record) *domain.Warning {
		if r.Derived > 10 {
			return &domain.Warning{Title: "Large", Message: "derived value above 10"}
		}
		return nil
	}, "a", "b"))

	batch := []*record{{A: 1, B: 2}, {A: 8, B: 8}, {A: 20}}
	warnings, err := reg.Dispatch(context.Background(), []string{"b"}, batch)

	require.NoError(t, err)
	assert.Equal(t, 3, batch[0].Derived)
	assert.Equal(t, 16, batch[1].Derived)
	assert.Len(t, warnings, 2, "one warning per offending record")
}

func TestDispatchConstraintErrorKeepsWarnings(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	errFirst := errors.New("first")
	secondCalled := false

	require.NoError(t, reg.Onchange("warn", func(ctx context.Context, r *record) *domain.Warning {
		return &domain.Warning{Title: "t", Message: "m"}
	}, "a"))
	require.NoError(t, reg.Onchange("zero", func(ctx context.Context, r *record) *domain.Warning {
		return &domain.Warning{}
	}, "a"))
	require.NoError(t, reg.Constrain("first", func(ctx context.Context, batch []*record) error {
		return errFirst
	}, "a"))
	require.NoError(t, reg.Constrain("second", func(ctx context.Context, batch []*record) error {
		secondCalled = true
		return nil
	}, "a"))

	warnings, err := reg.Dispatch(context.Background(), []string{"a"}, []*record{{}})

	assert.ErrorIs(t, err, errFirst)
	assert.False(t, secondCalled, "first constraint error aborts dispatch")
	assert.Equal(t, []domain.Warning{{Title: "t", Message: "m"}}, warnings, "zero warnings are dropped")
}

func TestPreviewSkipsConstraints(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	require.NoError(t, reg.Constrain("always_fails", func(ctx context.Context, batch []*record) error {
		return errors.New("should not run")
	}, "a"))
	require.NoError(t, reg.Compute("derive", func(ctx context.Context, batch []*record) {
		for _, r := range batch {
			r.Derived = r.A * 2
		}
	}, "a"))

	batch := []*record{{A: 4}}
	warnings := reg.Preview(context.Background(), []string{"a"}, batch)

	assert.Empty(t, warnings)
	assert.Equal(t, 8, batch[0].Derived)
}

func TestTriggeredAndFields(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	require.NoError(t, reg.Constrain("x", func(ctx context.Context, batch []*record) error { return nil }, "a"))
	require.NoError(t, reg.Constrain("y", func(ctx context.Context, batch []*record) error { return nil }, "b", "a"))

	assert.Equal(t, []string{"x", "y"}, reg.Triggered(KindConstraint, []string{"a"}))
	assert.Equal(t, []string{"y"}, reg.Triggered(KindConstraint, []string{"b"}))
	assert.Empty(t, reg.Triggered(KindCompute, []string{"a"}))
	assert.Equal(t, testFields, reg.Fields())
	assert.Equal(t, "record", reg.Model())
	assert.Equal(t, "constraint", KindConstraint.String())
}

func TestRegistryConcurrentUse(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a'+i%26)) + "_hook"
			_ = reg.Compute(name, func(ctx context.Context, batch []*record) {}, "a")
			_, _ = reg.Dispatch(context.Background(), []string{"a"}, []*record{{}})
		}(i)
	}
	wg.Wait()

	assert.Len(t, reg.Triggered(KindCompute, []string{"a"}), 20)
}
