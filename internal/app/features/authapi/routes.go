// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/auth subrouter. The open endpoints take no
// token; /me and the account delete require one.
func Routes(h *Handler, svc *auth.Service) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.ServeLogin)
	r.Post("/register", h.ServeRegister)
	r.Post("/logout", h.ServeLogout)
	r.Post("/forgot-password", h.ServeForgotPassword)
	r.Post("/reset-password", h.ServeResetPassword)
	r.Post("/verify-email", h.ServeVerifyEmail)
	r.Post("/resend-verification", h.ServeResendVerification)

	r.Group(func(r chi.Router) {
		r.Use(svc.Middleware)
		r.Get("/me", h.ServeMe)
		r.Delete("/account", h.ServeDeleteAccount)
	})
	return r
}
