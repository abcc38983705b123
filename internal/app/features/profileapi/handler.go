// internal/app/features/profileapi/handler.go
package profileapi

import (
	"errors"
	"net/http"

	"github.com/devcollab/devcollab/internal/app/features/shared"
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"go.uber.org/zap"
)

// Handler serves the own-profile endpoints.
type Handler struct {
	Profile *usecase.Profile
	Log     *zap.Logger
}

func NewHandler(profile *usecase.Profile, logger *zap.Logger) *Handler {
	return &Handler{Profile: profile, Log: logger}
}

// ServeUpdate handles PUT /api/profile. Email is not part of the form;
// clients keep showing the address they already hold.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Languages   []string `json:"languages"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}

	err := h.Profile.Update(r.Context(), user.ID, inputval.ProfileInput{
		Name:        body.Name,
		Description: body.Description,
		Languages:   body.Languages,
	})
	if err != nil {
		switch {
		case errors.Is(err, inputval.ErrNameRequired),
			errors.Is(err, inputval.ErrNameTooLong),
			errors.Is(err, inputval.ErrDescriptionRequired),
			errors.Is(err, inputval.ErrDescriptionTooLong),
			errors.Is(err, inputval.ErrNoLanguages):
			shared.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("profile update failed",
				zap.String("user_id", user.ID.Hex()),
				zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "could not save profile")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
