// internal/app/features/projectsapi/handler.go
package projectsapi

import (
	"errors"
	"net/http"

	"github.com/devcollab/devcollab/internal/app/features/shared"
	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the project endpoints.
type Handler struct {
	Projects     *usecase.Projects
	Participants *usecase.Participants
	Log          *zap.Logger
}

func NewHandler(projects *usecase.Projects, participants *usecase.Participants, logger *zap.Logger) *Handler {
	return &Handler{Projects: projects, Participants: participants, Log: logger}
}

type projectBody struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	WeeklyHours int      `json:"weekly_hours"`
	CollabType  string   `json:"collab_type"`
	Status      string   `json:"status"`
	CreatorID   string   `json:"creator_id"`
}

type memberBody struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Found  bool   `json:"found"`
}

type creatorBody struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	Email       string   `json:"email"`
	Found       bool     `json:"found"`
}

func toCreatorBody(c usecase.CreatorProfile) creatorBody {
	return creatorBody{
		UserID:      c.UserID.Hex(),
		Name:        c.Name,
		Description: c.Description,
		Languages:   c.Languages,
		Email:       c.Email,
		Found:       c.Found,
	}
}

type projectForm struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	WeeklyHours string   `json:"weekly_hours"`
	CollabType  string   `json:"collab_type"`
}

func toProjectBody(p models.Project) projectBody {
	return projectBody{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Languages:   p.Languages,
		WeeklyHours: p.WeeklyHours,
		CollabType:  p.CollabType,
		Status:      p.Status,
		CreatorID:   p.CreatorID.Hex(),
	}
}

func (f projectForm) input() inputval.ProjectInput {
	return inputval.ProjectInput{
		Name:        f.Name,
		Description: f.Description,
		Languages:   f.Languages,
		WeeklyHours: f.WeeklyHours,
		CollabType:  f.CollabType,
	}
}

// ServeList handles GET /api/projects.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.Browse(r.Context())
	if err != nil {
		h.Log.Error("project list failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load projects")
		return
	}

	bodies := make([]projectBody, 0, len(projects))
	for _, p := range projects {
		bodies = append(bodies, toProjectBody(p))
	}
	shared.JSON(w, http.StatusOK, map[string]any{"projects": bodies})
}

// ServeGet handles GET /api/projects/{projectID}, including the member
// list and the creator's public card.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	project, err := h.Projects.Get(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, projectstore.ErrProjectNotFound) {
			shared.Error(w, http.StatusNotFound, "project not found")
			return
		}
		h.Log.Error("project get failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load project")
		return
	}

	members, err := h.Participants.Members(r.Context(), projectID)
	if err != nil {
		h.Log.Warn("member list failed",
			zap.String("project_id", projectID.Hex()),
			zap.Error(err))
		members = nil
	}
	memberBodies := make([]memberBody, 0, len(members))
	for _, m := range members {
		memberBodies = append(memberBodies, memberBody{
			UserID: m.UserID.Hex(),
			Name:   m.Name,
			Found:  m.Found,
		})
	}

	shared.JSON(w, http.StatusOK, map[string]any{
		"project": toProjectBody(*project),
		"creator": toCreatorBody(h.Projects.Creator(r.Context(), project.CreatorID)),
		"members": memberBodies,
	})
}

// ServeCollaborations handles GET /api/projects/collaborations: the
// projects the viewer participates in, each resolved to its display
// row. A deleted project degrades its row instead of dropping it.
func (h *Handler) ServeCollaborations(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	links, err := h.Participants.Collaborations(r.Context(), user.ID)
	if err != nil {
		h.Log.Error("collaborations load failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load collaborations")
		return
	}

	type collaborationBody struct {
		ProjectID string `json:"project_id"`
		Name      string `json:"name"`
		Open      bool   `json:"open"`
		Found     bool   `json:"found"`
	}
	rows := make([]collaborationBody, 0, len(links))
	for _, link := range links {
		details := h.Projects.Details(r.Context(), link.ProjectID)
		rows = append(rows, collaborationBody{
			ProjectID: link.ProjectID.Hex(),
			Name:      details.Name,
			Open:      details.IsOpen,
			Found:     details.Found,
		})
	}
	shared.JSON(w, http.StatusOK, map[string]any{"collaborations": rows})
}

// ServeCreate handles POST /api/projects.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	var form projectForm
	if !shared.Decode(w, r, h.Log, &form) {
		return
	}

	project, err := h.Projects.Create(r.Context(), user.ID, form.input())
	if err != nil {
		if errors.Is(err, usecase.ErrProjectLimit) {
			shared.Error(w, http.StatusConflict, err.Error())
			return
		}
		if isValidationError(err) {
			shared.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("project create failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not create project")
		return
	}
	shared.JSON(w, http.StatusCreated, map[string]any{"project": toProjectBody(*project)})
}

// ServeUpdate handles PUT /api/projects/{projectID}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	var form projectForm
	if !shared.Decode(w, r, h.Log, &form) {
		return
	}

	if err := h.Projects.Edit(r.Context(), user.ID, projectID, form.input()); err != nil {
		h.writeMutationError(w, err, "could not update project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeClose handles POST /api/projects/{projectID}/close.
func (h *Handler) ServeClose(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	if err := h.Projects.Close(r.Context(), user.ID, projectID); err != nil {
		h.writeMutationError(w, err, "could not close project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeReopen handles POST /api/projects/{projectID}/reopen.
func (h *Handler) ServeReopen(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	if err := h.Projects.Reopen(r.Context(), user.ID, projectID); err != nil {
		h.writeMutationError(w, err, "could not reopen project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDelete handles DELETE /api/projects/{projectID}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	if err := h.Projects.Delete(r.Context(), user.ID, projectID); err != nil {
		if errors.Is(err, projectstore.ErrProjectNotClosed) {
			shared.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.writeMutationError(w, err, "could not delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeLeave handles POST /api/projects/{projectID}/leave.
func (h *Handler) ServeLeave(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	if err := h.Participants.Leave(r.Context(), user.ID, projectID); err != nil {
		h.Log.Error("leave failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not leave project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeMutationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, projectstore.ErrProjectNotFound):
		shared.Error(w, http.StatusNotFound, "project not found")
	case errors.Is(err, usecase.ErrNotCreator):
		shared.Error(w, http.StatusForbidden, err.Error())
	case isValidationError(err):
		shared.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.Error("project mutation failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, fallback)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, inputval.ErrNameRequired) ||
		errors.Is(err, inputval.ErrNameTooLong) ||
		errors.Is(err, inputval.ErrDescriptionRequired) ||
		errors.Is(err, inputval.ErrDescriptionTooLong) ||
		errors.Is(err, inputval.ErrNoLanguages) ||
		errors.Is(err, inputval.ErrBadWeeklyHours) ||
		errors.Is(err, inputval.ErrCollabTypeRequired)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
