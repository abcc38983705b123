// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"

	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	userstore "github.com/devcollab/devcollab/internal/app/store/users"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fixtures creates the documents a test needs without repeating store
// boilerplate.
type Fixtures struct {
	t        *testing.T
	users    *userstore.Store
	projects *projectstore.Store
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:        t,
		users:    userstore.New(db),
		projects: projectstore.New(db, zap.NewNop()),
	}
}

// CreateUser inserts a profile with the given name and a derived email.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	user, err := f.users.Create(ctx, models.User{
		Name:      name,
		Email:     email,
		Languages: []string{"Go"},
	})
	if err != nil {
		f.t.Fatalf("fixture user %q: %v", name, err)
	}
	return user
}

// CreateProject inserts an open project for the creator.
func (f *Fixtures) CreateProject(ctx context.Context, creator models.User, name string) models.Project {
	f.t.Helper()
	project, err := f.projects.Create(ctx, models.Project{
		Name:        name,
		Description: "A test project",
		Languages:   []string{"Go"},
		WeeklyHours: 5,
		CollabType:  "Remote",
		CreatorID:   creator.ID,
	})
	if err != nil {
		f.t.Fatalf("fixture project %q: %v", name, err)
	}
	return project
}
