// internal/app/usecase/usecase.go

// Package usecase holds the application operations between the stores
// and the view-models or HTTP handlers. Each use case depends on the
// narrow slice of store behavior it needs, so tests can substitute
// fakes without a database.
package usecase

import (
	"context"

	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectRepo is the project-store surface the use cases touch.
type ProjectRepo interface {
	List(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Update(ctx context.Context, p models.Project) error
	Close(ctx context.Context, id primitive.ObjectID) error
	Reopen(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByCreator(ctx context.Context, creatorID primitive.ObjectID) (int64, error)
	GetDetails(ctx context.Context, id primitive.ObjectID) projectstore.ProjectDetails
}

// RequestRepo is the request-store surface the use cases touch.
type RequestRepo interface {
	Send(ctx context.Context, r models.JoinRequest) (models.JoinRequest, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.JoinRequest, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.JoinRequest, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.JoinRequest, error)
	FindByUserAndProject(ctx context.Context, userID, projectID primitive.ObjectID) (*models.JoinRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (string, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error
}

// ParticipantRepo is the participant-store surface the use cases touch.
type ParticipantRepo interface {
	Add(ctx context.Context, userID, projectID primitive.ObjectID) error
	Remove(ctx context.Context, userID, projectID primitive.ObjectID) error
	Exists(ctx context.Context, userID, projectID primitive.ObjectID) (bool, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Participant, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Participant, error)
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error
}

// UserRepo is the profile-store surface the use cases touch.
type UserRepo interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// StatusListener is notified after a request status write with the
// before and after values. The accept notifier implements it.
type StatusListener interface {
	StatusChanged(ctx context.Context, req models.JoinRequest, previous, current string)
}
