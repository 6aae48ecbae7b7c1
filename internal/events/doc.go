// Package events dispatches record field changes to the rules registered
// against those fields.
//
// A Registry is declared per record type with the names of the fields that
// type exposes. Rules subscribe to one or more fields in one of three roles:
//
//   - Compute: refresh derived fields of every record in the batch
//   - Onchange: inspect a single record and optionally return an advisory warning
//   - Constraint: validate the batch and return a hard error that aborts the change
//
// Dispatch runs the rules whose fields intersect the changed set, computes
// first, then onchanges, then constraints, each rule at most once and in
// registration order.
package events
