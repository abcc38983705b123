// internal/app/features/requestsapi/handler.go
package requestsapi

import (
	"errors"
	"net/http"

	"github.com/devcollab/devcollab/internal/app/features/shared"
	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	requeststore "github.com/devcollab/devcollab/internal/app/store/requests"
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/devcollab/devcollab/internal/app/system/normalize"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the join-request endpoints.
type Handler struct {
	Requests *usecase.Requests
	Projects *usecase.Projects
	Log      *zap.Logger
}

func NewHandler(requests *usecase.Requests, projects *usecase.Projects, logger *zap.Logger) *Handler {
	return &Handler{Requests: requests, Projects: projects, Log: logger}
}

type requestBody struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
	Message   string `json:"message"`
	Status    string `json:"status"`

	// Project display fields, degraded when the project is gone.
	ProjectName  string `json:"project_name"`
	ProjectOpen  bool   `json:"project_open"`
	ProjectFound bool   `json:"project_found"`
}

func (h *Handler) toRequestBody(r *http.Request, req models.JoinRequest) requestBody {
	details := h.Projects.Details(r.Context(), req.ProjectID)
	return requestBody{
		ID:           req.ID.Hex(),
		UserID:       req.UserID.Hex(),
		ProjectID:    req.ProjectID.Hex(),
		Message:      req.Message,
		Status:       req.Status,
		ProjectName:  details.Name,
		ProjectOpen:  details.IsOpen,
		ProjectFound: details.Found,
	}
}

// ServeSend handles POST /api/requests.
func (h *Handler) ServeSend(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	var body struct {
		ProjectID string `json:"project_id"`
		Message   string `json:"message"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}
	projectID, err := primitive.ObjectIDFromHex(body.ProjectID)
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	req, err := h.Requests.Send(r.Context(), user.ID, projectID, body.Message)
	if err != nil {
		switch {
		case errors.Is(err, projectstore.ErrProjectNotFound):
			shared.Error(w, http.StatusNotFound, "project not found")
		case errors.Is(err, usecase.ErrOwnProject),
			errors.Is(err, usecase.ErrProjectClosed),
			errors.Is(err, requeststore.ErrDuplicateRequest):
			shared.Error(w, http.StatusConflict, err.Error())
		default:
			h.Log.Error("request send failed", zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "could not send request")
		}
		return
	}
	shared.JSON(w, http.StatusCreated, map[string]any{"request": h.toRequestBody(r, *req)})
}

// ServeMine handles GET /api/requests/mine.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	reqs, err := h.Requests.MyRequests(r.Context(), user.ID)
	if err != nil {
		h.Log.Error("own requests load failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load requests")
		return
	}

	bodies := make([]requestBody, 0, len(reqs))
	for _, req := range reqs {
		bodies = append(bodies, h.toRequestBody(r, req))
	}
	shared.JSON(w, http.StatusOK, map[string]any{"requests": bodies})
}

// ServeForProject handles GET /api/requests/project/{projectID},
// creator only.
func (h *Handler) ServeForProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	reqs, err := h.Requests.ProjectRequests(r.Context(), user.ID, projectID)
	if err != nil {
		switch {
		case errors.Is(err, projectstore.ErrProjectNotFound):
			shared.Error(w, http.StatusNotFound, "project not found")
		case errors.Is(err, usecase.ErrNotCreator):
			shared.Error(w, http.StatusForbidden, err.Error())
		default:
			h.Log.Error("project requests load failed", zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "could not load requests")
		}
		return
	}

	bodies := make([]requestBody, 0, len(reqs))
	for _, req := range reqs {
		bodies = append(bodies, h.toRequestBody(r, req))
	}
	shared.JSON(w, http.StatusOK, map[string]any{"requests": bodies})
}

// ServeRespond handles POST /api/requests/{requestID}/respond with a
// body of {"status": "Accepted"} or {"status": "Rejected"}.
func (h *Handler) ServeRespond(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid request id")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !shared.Decode(w, r, h.Log, &body) {
		return
	}

	if err := h.Requests.Respond(r.Context(), user.ID, requestID, normalize.Status(body.Status)); err != nil {
		switch {
		case errors.Is(err, requeststore.ErrRequestNotFound):
			shared.Error(w, http.StatusNotFound, "request not found")
		case errors.Is(err, requeststore.ErrBadStatus):
			shared.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrAlreadyDecided):
			shared.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, usecase.ErrNotCreator):
			shared.Error(w, http.StatusForbidden, err.Error())
		default:
			h.Log.Error("request respond failed", zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "could not update request")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeWithdraw handles DELETE /api/requests/{requestID}, sender only.
func (h *Handler) ServeWithdraw(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.Requests.Withdraw(r.Context(), user.ID, requestID); err != nil {
		switch {
		case errors.Is(err, requeststore.ErrRequestNotFound):
			shared.Error(w, http.StatusNotFound, "request not found")
		case errors.Is(err, usecase.ErrNotRequester):
			shared.Error(w, http.StatusForbidden, err.Error())
		default:
			h.Log.Error("request withdraw failed", zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "could not withdraw request")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
