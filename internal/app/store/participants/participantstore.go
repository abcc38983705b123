// internal/app/store/participants/participantstore.go
package participantstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store adapts participant links to the "participantes" collection. A
// link is a plain user-project pair; accepting a join request creates
// one.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("participantes")}
}

// ErrAlreadyParticipant is returned when Add finds an existing link for
// the same user and project.
var ErrAlreadyParticipant = errors.New("user is already a participant")

// Add creates a participant link. The unique index on the pair makes
// repeated accepts idempotent at the storage layer.
func (s *Store) Add(ctx context.Context, userID, projectID primitive.ObjectID) error {
	link := models.Participant{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ProjectID: projectID,
	}
	if _, err := s.c.InsertOne(ctx, link); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrAlreadyParticipant
		}
		return err
	}
	return nil
}

// Remove deletes the link for a user-project pair. Removing a link that
// does not exist is a no-op.
func (s *Store) Remove(ctx context.Context, userID, projectID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"usuarioID": userID, "proyectoID": projectID})
	return err
}

// Exists reports whether the user is linked to the project.
func (s *Store) Exists(ctx context.Context, userID, projectID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"usuarioID": userID, "proyectoID": projectID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByProject returns the links for a project, for the member list.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Participant, error) {
	return s.list(ctx, bson.M{"proyectoID": projectID})
}

// ListByUser returns the links for a user, for their collaborations
// screen.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Participant, error) {
	return s.list(ctx, bson.M{"usuarioID": userID})
}

// DeleteByProject removes every link for a project. Runs before the
// project document itself is deleted; the two deletes are separate
// writes, so callers must order them link-first.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"proyectoID": projectID})
	return err
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Participant, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.Participant
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}
