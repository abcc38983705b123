// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/devcollab/devcollab/internal/app/system/normalize"
	"github.com/devcollab/devcollab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store adapts User profiles to the "usuarios" collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("usuarios")}
}

// ErrDuplicateEmail is returned when a profile with the same email already
// exists.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// GetByID loads a profile by ObjectID. Missing optional fields decode to
// their zero value and are normalized to empty defaults, never an error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	u.Normalize()
	return &u, nil
}

// GetByEmail looks up a profile by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"correo": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	u.Normalize()
	return &u, nil
}

// Create inserts a new profile document after normalizing core fields.
// The caller may supply the ID so the profile shares its credential's
// ID; a zero ID gets a fresh one.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Normalize()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the fields a user may change on their own profile.
// Email is deliberately absent; callers preserve the known email when
// rebuilding the cached user.
type ProfileUpdate struct {
	Name        string
	Description string
	Languages   []string
}

// UpdateProfile sets the mutable profile fields. Returns
// mongo.ErrNoDocuments when the profile does not exist.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	langs := upd.Languages
	if langs == nil {
		langs = []string{}
	}
	set := bson.M{
		"nombre":      normalize.Name(upd.Name),
		"descripcion": upd.Description,
		"lenguajes":   langs,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a profile document. Part of the account-deletion flow;
// the auth service removes the credential and sessions as well.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
