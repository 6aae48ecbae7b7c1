// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations.
//
// Hard rule violations are answered with 422 and the rule's message.
// Advisory warnings never fail a request; they are returned in the
// "warnings" array of session write responses.
package api
