// internal/app/features/profileapi/routes.go
package profileapi

import (
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/profile subrouter.
func Routes(h *Handler, svc *auth.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(svc.Middleware)
	r.Put("/", h.ServeUpdate)
	return r
}
