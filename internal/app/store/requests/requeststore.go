// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store adapts join requests to the "solicitudes" collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("solicitudes")}
}

var (
	// ErrRequestNotFound is returned when an operation targets a request
	// that does not exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrDuplicateRequest is returned when a user already has a request
	// for the same project.
	ErrDuplicateRequest = errors.New("a request for this project already exists")

	// ErrBadStatus is returned when UpdateStatus is given a value outside
	// the known request states.
	ErrBadStatus = errors.New("invalid request status")
)

// Send inserts a join request. The status is always forced to Pending
// regardless of what the caller set; creators decide outcomes, not
// requesters.
func (s *Store) Send(ctx context.Context, r models.JoinRequest) (models.JoinRequest, error) {
	r.ID = primitive.NewObjectID()
	r.Status = models.RequestPending
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JoinRequest{}, ErrDuplicateRequest
		}
		return models.JoinRequest{}, err
	}
	return r, nil
}

// GetByID loads a single request.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.JoinRequest, error) {
	var r models.JoinRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	r.Normalize()
	return &r, nil
}

// ListByProject returns every request targeting a project, for the
// creator's review screen.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.JoinRequest, error) {
	return s.list(ctx, bson.M{"proyectoID": projectID})
}

// ListByUser returns every request a user has sent, for their own
// requests screen.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.JoinRequest, error) {
	return s.list(ctx, bson.M{"usuarioID": userID})
}

// FindByUserAndProject returns the user's request for a project, or
// ErrRequestNotFound when none exists. The detail screen uses this to
// decide whether to show the "request to join" action.
func (s *Store) FindByUserAndProject(ctx context.Context, userID, projectID primitive.ObjectID) (*models.JoinRequest, error) {
	var r models.JoinRequest
	filter := bson.M{"usuarioID": userID, "proyectoID": projectID}
	if err := s.c.FindOne(ctx, filter).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	r.Normalize()
	return &r, nil
}

// UpdateStatus sets a request's status and returns the status it had
// before the write. Callers compare the two to detect the transition
// into Accepted exactly once.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (previous string, err error) {
	if !models.ValidRequestStatus(status) {
		return "", ErrBadStatus
	}

	var before models.JoinRequest
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"estado": status}}).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrRequestNotFound
		}
		return "", err
	}
	before.Normalize()
	return before.Status, nil
}

// Delete removes a single request, used when the sender withdraws it.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// DeleteByProject removes all requests targeting a project, part of the
// project-deletion cascade.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"proyectoID": projectID})
	return err
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.JoinRequest, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []models.JoinRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].Normalize()
	}
	return requests, nil
}
