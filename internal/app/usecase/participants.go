// internal/app/usecase/participants.go
package usecase

import (
	"context"

	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participants bundles the participant-link operations.
type Participants struct {
	participants ParticipantRepo
	users        UserRepo
}

func NewParticipants(participants ParticipantRepo, users UserRepo) *Participants {
	return &Participants{participants: participants, users: users}
}

// Member is a participant row resolved to its profile for display.
// Gone profiles degrade to a placeholder name rather than dropping the
// row.
type Member struct {
	UserID primitive.ObjectID
	Name   string
	Found  bool
}

// Members lists the resolved participants of a project.
func (u *Participants) Members(ctx context.Context, projectID primitive.ObjectID) ([]Member, error) {
	links, err := u.participants.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(links))
	for _, link := range links {
		m := Member{UserID: link.UserID, Name: "Unknown"}
		if user, err := u.users.GetByID(ctx, link.UserID); err == nil {
			m.Name = user.Name
			m.Found = true
		}
		members = append(members, m)
	}
	return members, nil
}

// Collaborations lists the projects a user participates in.
func (u *Participants) Collaborations(ctx context.Context, userID primitive.ObjectID) ([]models.Participant, error) {
	return u.participants.ListByUser(ctx, userID)
}

// IsMember reports whether the user is linked to the project.
func (u *Participants) IsMember(ctx context.Context, userID, projectID primitive.ObjectID) (bool, error) {
	return u.participants.Exists(ctx, userID, projectID)
}

// Leave removes the user's own link to a project.
func (u *Participants) Leave(ctx context.Context, userID, projectID primitive.ObjectID) error {
	return u.participants.Remove(ctx, userID, projectID)
}
