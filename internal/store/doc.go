// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so that the record rules and services
// remain independent of specific database technologies.
package store
