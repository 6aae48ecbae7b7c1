// Package rules holds the validation and derivation rules of courses and
// sessions, and registers them on per-model event registries.
//
// Hard failures are returned as *domain.ValidationError and abort the pending
// change. Advisory findings are returned as domain.Warning values and never
// block it.
package rules
