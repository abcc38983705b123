// internal/app/features/requestsapi/routes.go
package requestsapi

import (
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/requests subrouter. Every endpoint requires
// a signed-in user.
func Routes(h *Handler, svc *auth.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(svc.Middleware)

	r.Post("/", h.ServeSend)
	r.Get("/mine", h.ServeMine)
	r.Get("/project/{projectID}", h.ServeForProject)
	r.Post("/{requestID}/respond", h.ServeRespond)
	r.Delete("/{requestID}", h.ServeWithdraw)
	return r
}
