// internal/app/store/sessions/sessionstore.go
package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store adapts server-side sessions to the "sesiones" collection. A
// session backs a bearer token; revoking the session invalidates the
// token even before it expires.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sesiones")}
}

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Create opens a session for the user with the given lifetime.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, ttl time.Duration) (models.Session, error) {
	now := time.Now().UTC()
	sess := models.Session{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// GetByID loads a live session. Expired sessions read as not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	var sess models.Session
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.Expired(time.Now().UTC()) {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// Delete revokes one session (logout).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByUser revokes every session for a user, part of account
// deletion.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"usuarioID": userID})
	return err
}

// DeleteExpired purges sessions past their expiry. The cleanup worker
// runs this on an interval.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expira": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
