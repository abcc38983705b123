// internal/app/features/projectsapi/routes.go
package projectsapi

import (
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/projects subrouter. Every endpoint requires
// a signed-in user.
func Routes(h *Handler, svc *auth.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(svc.Middleware)

	r.Get("/", h.ServeList)
	r.Post("/", h.ServeCreate)
	r.Get("/collaborations", h.ServeCollaborations)
	r.Route("/{projectID}", func(r chi.Router) {
		r.Get("/", h.ServeGet)
		r.Put("/", h.ServeUpdate)
		r.Delete("/", h.ServeDelete)
		r.Post("/close", h.ServeClose)
		r.Post("/reopen", h.ServeReopen)
		r.Post("/leave", h.ServeLeave)
	})
	return r
}
