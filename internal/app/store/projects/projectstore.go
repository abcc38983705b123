// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"

	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store adapts projects to the "proyectos" collection.
type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{c: db.Collection("proyectos"), log: logger}
}

var (
	// ErrProjectNotClosed is returned when Delete is attempted on a
	// project that is still open. Projects must be closed first.
	ErrProjectNotClosed = errors.New("project must be closed before deletion")

	// ErrProjectNotFound is returned when an operation targets a project
	// that no longer exists.
	ErrProjectNotFound = errors.New("project not found")
)

// List returns every project, newest first. Documents missing optional
// fields decode to defaults rather than failing the whole list.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Normalize()
	}
	return projects, nil
}

// GetByID loads a single project. Returns ErrProjectNotFound when the
// document does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// Create inserts a project with a fresh ID and Open status.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Status = models.ProjectOpen
	p.Normalize()
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Update replaces the editable fields of a project. Status and creator
// are not touched here; Close handles the status transition.
func (s *Store) Update(ctx context.Context, p models.Project) error {
	p.Normalize()
	set := bson.M{
		"nombre":           p.Name,
		"descripcion":      p.Description,
		"lenguajes":        p.Languages,
		"horasSemanales":   p.WeeklyHours,
		"tipoColaboracion": p.CollabType,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Close marks a project as closed. Closing an already-closed project is
// a no-op, not an error.
func (s *Store) Close(ctx context.Context, id primitive.ObjectID) error {
	return s.setStatus(ctx, id, models.ProjectClosed)
}

// Reopen flips a closed project back to open. Reopening an open project
// is a no-op.
func (s *Store) Reopen(ctx context.Context, id primitive.ObjectID) error {
	return s.setStatus(ctx, id, models.ProjectOpen)
}

func (s *Store) setStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"estado": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes a project document. Only closed projects may be
// deleted; callers remove participant links for the project first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != models.ProjectClosed {
		return ErrProjectNotClosed
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// CountByCreator reports how many projects a user has created. The
// create flow uses this to enforce the per-user cap.
func (s *Store) CountByCreator(ctx context.Context, creatorID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"creadorID": creatorID})
}

// ProjectDetails is the denormalized shape the detail screen renders for
// a row in a request or participant list.
type ProjectDetails struct {
	Name   string
	IsOpen bool
	Found  bool
}

// GetDetails resolves a project reference into display fields. When the
// project has been deleted out from under the reference, it degrades to
// a sentinel row instead of failing the caller.
func (s *Store) GetDetails(ctx context.Context, id primitive.ObjectID) ProjectDetails {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("project lookup failed, using placeholder",
			zap.String("project_id", id.Hex()),
			zap.Error(err))
		return ProjectDetails{Name: "Unknown", IsOpen: false, Found: false}
	}
	return ProjectDetails{Name: p.Name, IsOpen: p.IsOpen(), Found: true}
}
