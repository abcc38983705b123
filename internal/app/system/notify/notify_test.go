package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/devcollab/devcollab/internal/app/system/mailer"
	"github.com/devcollab/devcollab/internal/app/system/notify"
	"github.com/devcollab/devcollab/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeUsers struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

type fakeProjects struct {
	projects map[primitive.ObjectID]*models.Project
}

func (f *fakeProjects) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	if p, ok := f.projects[id]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

type captureSender struct {
	sent []mailer.Email
}

func (c *captureSender) Send(_ context.Context, msg mailer.Email) error {
	c.sent = append(c.sent, msg)
	return nil
}

func fixture() (*fakeUsers, *fakeProjects, models.JoinRequest) {
	creatorID := primitive.NewObjectID()
	requesterID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()

	users := &fakeUsers{users: map[primitive.ObjectID]*models.User{
		creatorID:   {ID: creatorID, Name: "Carla", Email: "carla@example.com"},
		requesterID: {ID: requesterID, Name: "Rafa", Email: "rafa@example.com"},
	}}
	projects := &fakeProjects{projects: map[primitive.ObjectID]*models.Project{
		projectID: {ID: projectID, Name: "Compiler", CreatorID: creatorID, Status: models.ProjectOpen},
	}}
	req := models.JoinRequest{
		ID:        primitive.NewObjectID(),
		UserID:    requesterID,
		ProjectID: projectID,
		Status:    models.RequestAccepted,
	}
	return users, projects, req
}

func TestAcceptNotifier_FiresOnTransitionIntoAccepted(t *testing.T) {
	users, projects, req := fixture()
	sender := &captureSender{}
	n := notify.NewAcceptNotifier(users, projects, sender, zap.NewNop())

	n.StatusChanged(context.Background(), req, models.RequestPending, models.RequestAccepted)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "carla@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].TextBody, "rafa@example.com")
	assert.Equal(t, "rafa@example.com", sender.sent[1].To)
	assert.Contains(t, sender.sent[1].TextBody, "carla@example.com")
	assert.Contains(t, sender.sent[1].Subject, "Compiler")
}

func TestAcceptNotifier_SilentOnNonAcceptTransitions(t *testing.T) {
	users, projects, req := fixture()
	sender := &captureSender{}
	n := notify.NewAcceptNotifier(users, projects, sender, zap.NewNop())

	n.StatusChanged(context.Background(), req, models.RequestPending, models.RequestRejected)
	n.StatusChanged(context.Background(), req, models.RequestAccepted, models.RequestRejected)
	// Re-accepting an already-accepted request fires nothing.
	n.StatusChanged(context.Background(), req, models.RequestAccepted, models.RequestAccepted)

	assert.Empty(t, sender.sent)
}

func TestAcceptNotifier_SkipsWhenProjectGone(t *testing.T) {
	users, _, req := fixture()
	sender := &captureSender{}
	n := notify.NewAcceptNotifier(users, &fakeProjects{projects: map[primitive.ObjectID]*models.Project{}}, sender, zap.NewNop())

	n.StatusChanged(context.Background(), req, models.RequestPending, models.RequestAccepted)

	assert.Empty(t, sender.sent)
}
