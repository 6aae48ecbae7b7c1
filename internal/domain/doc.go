// Package domain contains the core business entities, value objects, and
// domain logic of the application: courses, their scheduled sessions, the
// partners who teach and attend them, and the users responsible for courses.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
