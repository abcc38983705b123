// internal/app/usecase/projects.go
package usecase

import (
	"context"
	"errors"

	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxProjectsPerUser caps how many projects one user may have created
// at once.
const MaxProjectsPerUser = 2

var (
	// ErrProjectLimit is returned when a user at the cap tries to
	// create another project.
	ErrProjectLimit = errors.New("you can only create 2 projects")

	// ErrNotCreator is returned when someone other than the creator
	// tries a creator-only operation.
	ErrNotCreator = errors.New("only the project creator can do that")
)

// Projects bundles the project operations.
type Projects struct {
	projects     ProjectRepo
	requests     RequestRepo
	participants ParticipantRepo
	users        UserRepo
}

func NewProjects(projects ProjectRepo, requests RequestRepo, participants ParticipantRepo, users UserRepo) *Projects {
	return &Projects{projects: projects, requests: requests, participants: participants, users: users}
}

// Browse returns every project for the list screen.
func (u *Projects) Browse(ctx context.Context) ([]models.Project, error) {
	return u.projects.List(ctx)
}

// Get loads one project.
func (u *Projects) Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return u.projects.GetByID(ctx, id)
}

// Details resolves a project reference for list rows, degrading to a
// placeholder when the project is gone.
func (u *Projects) Details(ctx context.Context, id primitive.ObjectID) projectstore.ProjectDetails {
	return u.projects.GetDetails(ctx, id)
}

// CreatorProfile is the creator's public card on the detail screen.
type CreatorProfile struct {
	UserID      primitive.ObjectID
	Name        string
	Description string
	Languages   []string
	Email       string
	Found       bool
}

// Creator resolves a project's creator profile. A gone profile degrades
// to a placeholder, same policy as the member list.
func (u *Projects) Creator(ctx context.Context, creatorID primitive.ObjectID) CreatorProfile {
	profile := CreatorProfile{UserID: creatorID, Name: "Unknown", Languages: []string{}}
	if user, err := u.users.GetByID(ctx, creatorID); err == nil {
		profile.Name = user.Name
		profile.Description = user.Description
		profile.Languages = user.Languages
		profile.Email = user.Email
		profile.Found = true
	}
	return profile
}

// Create validates the form and inserts a new open project, enforcing
// the per-user cap. The count check and the insert are separate reads,
// so two simultaneous creates can race past the cap; the cap is a UX
// guard, not a hard invariant.
func (u *Projects) Create(ctx context.Context, creatorID primitive.ObjectID, in inputval.ProjectInput) (*models.Project, error) {
	hours, err := inputval.ValidateProject(in)
	if err != nil {
		return nil, err
	}

	count, err := u.projects.CountByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if count >= MaxProjectsPerUser {
		return nil, ErrProjectLimit
	}

	project, err := u.projects.Create(ctx, models.Project{
		Name:        inputval.Sanitize(in.Name),
		Description: inputval.Sanitize(in.Description),
		Languages:   in.Languages,
		WeeklyHours: hours,
		CollabType:  in.CollabType,
		CreatorID:   creatorID,
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Edit validates the form and updates the editable fields. Only the
// creator may edit.
func (u *Projects) Edit(ctx context.Context, userID, projectID primitive.ObjectID, in inputval.ProjectInput) error {
	hours, err := inputval.ValidateProject(in)
	if err != nil {
		return err
	}
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatorID != userID {
		return ErrNotCreator
	}

	project.Name = inputval.Sanitize(in.Name)
	project.Description = inputval.Sanitize(in.Description)
	project.Languages = in.Languages
	project.WeeklyHours = hours
	project.CollabType = in.CollabType
	return u.projects.Update(ctx, *project)
}

// Close marks a creator's project closed.
func (u *Projects) Close(ctx context.Context, userID, projectID primitive.ObjectID) error {
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatorID != userID {
		return ErrNotCreator
	}
	return u.projects.Close(ctx, projectID)
}

// Reopen flips a creator's closed project back to open.
func (u *Projects) Reopen(ctx context.Context, userID, projectID primitive.ObjectID) error {
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatorID != userID {
		return ErrNotCreator
	}
	return u.projects.Reopen(ctx, projectID)
}

// Delete removes a closed project and its dependent documents. The
// cascade runs link-first, then requests, then the project itself; the
// writes are not atomic, and a failure partway leaves the project in
// place with fewer links, which the next delete attempt cleans up.
func (u *Projects) Delete(ctx context.Context, userID, projectID primitive.ObjectID) error {
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatorID != userID {
		return ErrNotCreator
	}
	if project.Status != models.ProjectClosed {
		return projectstore.ErrProjectNotClosed
	}

	if err := u.participants.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	if err := u.requests.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	return u.projects.Delete(ctx, projectID)
}
