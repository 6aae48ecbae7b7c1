package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/platform/logger"
)

// Registration errors
var (
	// ErrUnknownField is returned when a rule depends on a field the model does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrDuplicateHook is returned when a rule name is registered twice on the same model.
	ErrDuplicateHook = errors.New("duplicate hook")

	// ErrNoFields is returned when a rule is registered without any trigger field.
	ErrNoFields = errors.New("hook has no trigger fields")

	// ErrNilHook is returned when a rule is registered without a function.
	ErrNilHook = errors.New("hook function is nil")
)

// HookKind identifies the role a rule plays in a dispatch.
type HookKind int

// Hook kinds, in dispatch order.
const (
	KindCompute HookKind = iota
	KindOnchange
	KindConstraint
)

// String returns the kind name used in logs.
func (k HookKind) String() string {
	switch k {
	case KindCompute:
		return "compute"
	case KindOnchange:
		return "onchange"
	case KindConstraint:
		return "constraint"
	default:
		return "unknown"
	}
}

// ComputeFunc refreshes derived fields of every record in batch.
type ComputeFunc[T any] func(ctx context.Context, batch []T)

// OnchangeFunc inspects one record and returns an advisory warning, or nil.
type OnchangeFunc[T any] func(ctx context.Context, record T) *domain.Warning

// ConstraintFunc validates batch and returns a hard error to abort the change.
type ConstraintFunc[T any] func(ctx context.Context, batch []T) error

type hook[T any] struct {
	name       string
	kind       HookKind
	fields     []string
	compute    ComputeFunc[T]
	onchange   OnchangeFunc[T]
	constraint ConstraintFunc[T]
}

// Registry maps the fields of one record type to the rules that depend on them.
// It is safe for concurrent use.
type Registry[T any] struct {
	model  string
	fields []string
	known  map[string]struct{}

	mu    sync.RWMutex
	hooks []*hook[T]
	names map[string]struct{}

	logger *slog.Logger
}

// NewRegistry creates a Registry for model declaring the given fields.
// If logger is nil, a default logger will be used.
func NewRegistry[T any](model string, fields []string, logger *slog.Logger) *Registry[T] {
	if logger == nil {
		logger = slog.Default()
	}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f] = struct{}{}
	}

	return &Registry[T]{
		model:  model,
		fields: append([]string(nil), fields...),
		known:  known,
		names:  make(map[string]struct{}),
		logger: logger.With("component", "rule_registry", "model", model),
	}
}

// Model returns the record type name.
func (r *Registry[T]) Model() string {
	return r.model
}

// Fields returns the declared field names in declaration order.
func (r *Registry[T]) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Compute registers fn to refresh derived values when any of fields changes.
func (r *Registry[T]) Compute(name string, fn ComputeFunc[T], fields ...string) error {
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilHook, name)
	}
	return r.register(&hook[T]{name: name, kind: KindCompute, fields: fields, compute: fn})
}

// Onchange registers fn as an advisory check when any of fields changes.
func (r *Registry[T]) Onchange(name string, fn OnchangeFunc[T], fields ...string) error {
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilHook, name)
	}
	return r.register(&hook[T]{name: name, kind: KindOnchange, fields: fields, onchange: fn})
}

// Constrain registers fn as a hard constraint when any of fields changes.
func (r *Registry[T]) Constrain(name string, fn ConstraintFunc[T], fields ...string) error {
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilHook, name)
	}
	return r.register(&hook[T]{name: name, kind: KindConstraint, fields: fields, constraint: fn})
}

func (r *Registry[T]) register(h *hook[T]) error {
	if len(h.fields) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFields, h.name)
	}

	// Field names must match exactly; "seats " is not "seats".
	for _, f := range h.fields {
		if _, ok := r.known[f]; !ok {
			return fmt.Errorf("%w: %q in %s hook %s on %s", ErrUnknownField, f, h.kind, h.name, r.model)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[h.name]; exists {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateHook, h.name, r.model)
	}

	h.fields = append([]string(nil), h.fields...)
	r.names[h.name] = struct{}{}
	r.hooks = append(r.hooks, h)

	r.logger.Debug("registered hook",
		"hook", h.name,
		"kind", h.kind.String(),
		"fields", h.fields)
	return nil
}

// Triggered returns the names of the hooks of kind that the changed fields
// trigger, in registration order.
func (r *Registry[T]) Triggered(kind HookKind, changed []string) []string {
	hooks := r.triggered(kind, changed)
	names := make([]string, 0, len(hooks))
	for _, h := range hooks {
		names = append(names, h.name)
	}
	return names
}

func (r *Registry[T]) triggered(kind HookKind, changed []string) []*hook[T] {
	if len(changed) == 0 {
		return nil
	}

	changedSet := make(map[string]struct{}, len(changed))
	for _, f := range changed {
		changedSet[f] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*hook[T]
	for _, h := range r.hooks {
		if h.kind != kind {
			continue
		}
		for _, f := range h.fields {
			if _, ok := changedSet[f]; ok {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// Dispatch runs every rule triggered by changed against batch: computes,
// then onchanges, then constraints. Warnings are collected and returned even
// when a constraint fails; the first constraint error stops the dispatch.
func (r *Registry[T]) Dispatch(ctx context.Context, changed []string, batch []T) ([]domain.Warning, error) {
	warnings := r.Preview(ctx, changed, batch)

	if len(batch) == 0 {
		return warnings, nil
	}

	log := logger.FromContextOrDefault(ctx, r.logger)
	for _, h := range r.triggered(KindConstraint, changed) {
		if err := h.constraint(ctx, batch); err != nil {
			log.Debug("constraint rejected change",
				"model", r.model,
				"hook", h.name,
				"error", err)
			return warnings, err
		}
	}

	return warnings, nil
}

// Preview runs computes and onchanges for changed against batch without
// evaluating constraints.
func (r *Registry[T]) Preview(ctx context.Context, changed []string, batch []T) []domain.Warning {
	if len(batch) == 0 {
		return nil
	}

	for _, h := range r.triggered(KindCompute, changed) {
		h.compute(ctx, batch)
	}

	var warnings []domain.Warning
	for _, h := range r.triggered(KindOnchange, changed) {
		for _, record := range batch {
			if w := h.onchange(ctx, record); w != nil && !w.IsZero() {
				warnings = append(warnings, *w)
			}
		}
	}

	if len(warnings) > 0 {
		logger.FromContextOrDefault(ctx, r.logger).Debug("advisory warnings raised",
			"model", r.model,
			"count", len(warnings))
	}

	return warnings
}
