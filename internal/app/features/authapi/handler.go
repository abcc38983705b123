// internal/app/features/authapi/handler.go
package authapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devcollab/devcollab/internal/app/features/shared"
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/devcollab/devcollab/internal/app/system/authutil"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the account endpoints.
type Handler struct {
	Auth *auth.Service
	Log  *zap.Logger
}

func NewHandler(svc *auth.Service, logger *zap.Logger) *Handler {
	return &Handler{Auth: svc, Log: logger}
}

type userBody struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
}

func toUserBody(u *models.User) userBody {
	return userBody{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		Description: u.Description,
		Languages:   u.Languages,
	}
}

// ServeLogin handles POST /api/auth/login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}

	token, user, err := h.Auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Log.Error("login failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	shared.JSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserBody(user),
	})
}

// ServeRegister handles POST /api/auth/register. The profile fields
// land on the new account, so a fresh register reads back complete from
// /api/auth/me.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string   `json:"name"`
		Email       string   `json:"email"`
		Password    string   `json:"password"`
		Languages   []string `json:"languages"`
		Description string   `json:"description"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}

	user, err := h.Auth.Register(r.Context(), auth.RegisterInput{
		Name:        body.Name,
		Email:       body.Email,
		Password:    body.Password,
		Languages:   body.Languages,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailInUse):
			shared.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, authutil.ErrWeakPassword),
			errors.Is(err, inputval.ErrNameRequired),
			errors.Is(err, inputval.ErrNameTooLong),
			errors.Is(err, inputval.ErrNoLanguages),
			errors.Is(err, inputval.ErrDescriptionTooLong):
			shared.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrInconsistentRegistration):
			// The credential exists; sign-in will repair the profile.
			shared.Error(w, http.StatusInternalServerError, "registration incomplete, try signing in")
		default:
			h.Log.Error("register failed", zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	shared.JSON(w, http.StatusCreated, map[string]any{"user": toUserBody(user)})
}

// ServeMe handles GET /api/auth/me (authenticated).
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"user": toUserBody(user)})
}

// ServeLogout handles POST /api/auth/logout. The bearer token's
// session is revoked; an already-dead token still gets a 204.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := ""
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
		token = strings.TrimSpace(parts[1])
	}
	if err := h.Auth.Logout(r.Context(), token); err != nil {
		h.Log.Warn("logout failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeForgotPassword handles POST /api/auth/forgot-password. Always
// 204 so the endpoint cannot probe which emails exist.
func (h *Handler) ServeForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}
	if err := h.Auth.SendPasswordReset(r.Context(), body.Email); err != nil {
		h.Log.Warn("password reset send failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeResetPassword handles POST /api/auth/reset-password.
func (h *Handler) ServeResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}
	if err := h.Auth.ResetPassword(r.Context(), body.Token, body.Password); err != nil {
		if errors.Is(err, authutil.ErrWeakPassword) {
			shared.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		shared.Error(w, http.StatusBadRequest, "invalid or expired reset link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeVerifyEmail handles POST /api/auth/verify-email.
func (h *Handler) ServeVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}
	if err := h.Auth.VerifyEmail(r.Context(), body.Token); err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid verification link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeResendVerification handles POST /api/auth/resend-verification.
func (h *Handler) ServeResendVerification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}
	if err := h.Auth.ResendVerification(r.Context(), body.Email); err != nil {
		h.Log.Warn("resend verification failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDeleteAccount handles DELETE /api/auth/account (authenticated).
func (h *Handler) ServeDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if err := h.Auth.DeleteAccount(r.Context(), user.ID); err != nil {
		h.Log.Error("account deletion failed",
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
