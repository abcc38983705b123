package usecase_test

import (
	"context"
	"testing"

	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	"github.com/devcollab/devcollab/internal/app/system/inputval"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/devcollab/devcollab/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validInput(name string) inputval.ProjectInput {
	return inputval.ProjectInput{
		Name:        name,
		Description: "Something worth building",
		Languages:   []string{"Go"},
		WeeklyHours: "5",
		CollabType:  "Remote",
	}
}

func TestProjects_Create_EnforcesCap(t *testing.T) {
	projects := newMemProjects()
	uc := usecase.NewProjects(projects, newMemRequests(), newMemParticipants(), newMemUsers())
	ctx := context.Background()
	creator := primitive.NewObjectID()

	_, err := uc.Create(ctx, creator, validInput("One"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, creator, validInput("Two"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, creator, validInput("Three"))
	assert.ErrorIs(t, err, usecase.ErrProjectLimit)

	// A different creator is unaffected.
	_, err = uc.Create(ctx, primitive.NewObjectID(), validInput("Theirs"))
	assert.NoError(t, err)
}

func TestProjects_Create_ValidationMessages(t *testing.T) {
	uc := usecase.NewProjects(newMemProjects(), newMemRequests(), newMemParticipants(), newMemUsers())
	ctx := context.Background()
	creator := primitive.NewObjectID()

	in := validInput("P")
	in.WeeklyHours = "abc"
	_, err := uc.Create(ctx, creator, in)
	assert.ErrorIs(t, err, inputval.ErrBadWeeklyHours)
	assert.EqualError(t, err, "must be a number greater than 0")

	in = validInput("P")
	in.WeeklyHours = "0"
	_, err = uc.Create(ctx, creator, in)
	assert.ErrorIs(t, err, inputval.ErrBadWeeklyHours)

	in = validInput("this name is way too long for a project okay")
	_, err = uc.Create(ctx, creator, in)
	assert.ErrorIs(t, err, inputval.ErrNameTooLong)

	in = validInput("P")
	in.Languages = nil
	_, err = uc.Create(ctx, creator, in)
	assert.ErrorIs(t, err, inputval.ErrNoLanguages)
}

func TestProjects_Delete_CascadesAndRequiresClosed(t *testing.T) {
	projects := newMemProjects()
	requests := newMemRequests()
	participants := newMemParticipants()
	uc := usecase.NewProjects(projects, requests, participants, newMemUsers())
	ctx := context.Background()
	creator := primitive.NewObjectID()

	project, err := uc.Create(ctx, creator, validInput("Doomed"))
	require.NoError(t, err)

	member := primitive.NewObjectID()
	require.NoError(t, participants.Add(ctx, member, project.ID))
	_, err = requests.Send(ctx, newJoinRequest(member, project.ID))
	require.NoError(t, err)

	// Open projects cannot be deleted.
	err = uc.Delete(ctx, creator, project.ID)
	assert.ErrorIs(t, err, projectstore.ErrProjectNotClosed)

	require.NoError(t, uc.Close(ctx, creator, project.ID))
	require.NoError(t, uc.Delete(ctx, creator, project.ID))

	_, err = uc.Get(ctx, project.ID)
	assert.ErrorIs(t, err, projectstore.ErrProjectNotFound)

	links, err := participants.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, links, "participant links must be removed with the project")

	reqs, err := requests.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, reqs, "requests must be removed with the project")
}

func TestProjects_CreatorOnlyMutations(t *testing.T) {
	projects := newMemProjects()
	uc := usecase.NewProjects(projects, newMemRequests(), newMemParticipants(), newMemUsers())
	ctx := context.Background()
	creator := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	project, err := uc.Create(ctx, creator, validInput("Mine"))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Close(ctx, stranger, project.ID), usecase.ErrNotCreator)
	assert.ErrorIs(t, uc.Reopen(ctx, stranger, project.ID), usecase.ErrNotCreator)
	assert.ErrorIs(t, uc.Edit(ctx, stranger, project.ID, validInput("Hijacked")), usecase.ErrNotCreator)
	assert.ErrorIs(t, uc.Delete(ctx, stranger, project.ID), usecase.ErrNotCreator)
}

func TestProjects_Creator(t *testing.T) {
	users := newMemUsers()
	uc := usecase.NewProjects(newMemProjects(), newMemRequests(), newMemParticipants(), users)
	ctx := context.Background()

	creator := models.User{
		ID:          primitive.NewObjectID(),
		Name:        "Carla",
		Description: "Weekends",
		Languages:   []string{"Go"},
		Email:       "carla@example.com",
	}
	users.put(creator)

	profile := uc.Creator(ctx, creator.ID)
	assert.True(t, profile.Found)
	assert.Equal(t, "Carla", profile.Name)
	assert.Equal(t, "Weekends", profile.Description)
	assert.Equal(t, []string{"Go"}, profile.Languages)
	assert.Equal(t, "carla@example.com", profile.Email)

	// A gone profile degrades to the placeholder.
	missing := uc.Creator(ctx, primitive.NewObjectID())
	assert.False(t, missing.Found)
	assert.Equal(t, "Unknown", missing.Name)
	assert.Empty(t, missing.Email)
}

func TestProjects_StatusToggle(t *testing.T) {
	projects := newMemProjects()
	uc := usecase.NewProjects(projects, newMemRequests(), newMemParticipants(), newMemUsers())
	ctx := context.Background()
	creator := primitive.NewObjectID()

	project, err := uc.Create(ctx, creator, validInput("Toggled"))
	require.NoError(t, err)

	require.NoError(t, uc.Close(ctx, creator, project.ID))
	got, err := uc.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectClosed, got.Status)

	require.NoError(t, uc.Reopen(ctx, creator, project.ID))
	got, err = uc.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectOpen, got.Status)
}
