package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Courses  *CourseHandler
	Sessions *SessionHandler
	Partners *PartnerHandler
	Users    *UserHandler
}

// RegisterRoutes mounts every API route on r.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/courses", func(r chi.Router) {
		r.Post("/", h.Courses.CreateCourse)
		r.Get("/", h.Courses.ListCourses)
		r.Get("/{id}", h.Courses.GetCourse)
		r.Put("/{id}", h.Courses.UpdateCourse)
		r.Delete("/{id}", h.Courses.DeleteCourse)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Sessions.CreateSession)
		r.Get("/", h.Sessions.ListSessions)
		r.Post("/onchange", h.Sessions.Onchange)
		r.Get("/{id}", h.Sessions.GetSession)
		r.Put("/{id}", h.Sessions.UpdateSession)
		r.Delete("/{id}", h.Sessions.DeleteSession)
		r.Post("/{id}/attendees", h.Sessions.AddAttendees)
		r.Delete("/{id}/attendees/{partnerID}", h.Sessions.RemoveAttendee)
		r.Post("/{id}/archive", h.Sessions.Archive)
		r.Post("/{id}/unarchive", h.Sessions.Unarchive)
	})

	r.Route("/partners", func(r chi.Router) {
		r.Post("/", h.Partners.CreatePartner)
		r.Get("/", h.Partners.ListPartners)
		r.Get("/{id}", h.Partners.GetPartner)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Users.CreateUser)
		r.Get("/{id}", h.Users.GetUser)
		r.Post("/{id}/karma", h.Users.AdjustKarma)
		r.Put("/{id}/karma", h.Users.SetKarma)
		r.Delete("/{id}", h.Users.DeleteUser)
	})
}

// HealthCheck handles GET /health requests
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
