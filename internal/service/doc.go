// Package service contains the application use cases of the academy: it
// drives the record lifecycle of courses, sessions, partners and users.
//
// Every write follows the same sequence inside one database transaction:
//
//  1. load the current record (updates only) and apply the requested changes
//  2. dispatch the changed fields to the rule registry, which refreshes
//     derived fields, collects advisory warnings and evaluates constraints
//  3. persist the record
//
// A constraint failure rolls the transaction back and is returned to the
// caller as a *domain.ValidationError. Advisory warnings never block the
// write; they travel back alongside the saved record.
//
// Services receive their stores through constructor injection and never
// depend on a specific storage implementation.
package service
