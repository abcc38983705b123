// internal/app/store/credentials/credentialstore.go
package credentialstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/devcollab/devcollab/internal/app/system/normalize"
	"github.com/devcollab/devcollab/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store adapts sign-in credentials to the "credenciales" collection.
// Credentials are kept apart from the profile documents in "usuarios";
// registration writes both, and a failure between the two leaves a
// credential with no profile (see the auth service).
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("credenciales")}
}

var (
	// ErrEmailInUse is returned when a credential already exists for the
	// email.
	ErrEmailInUse = errors.New("email is already registered")

	// ErrCredentialNotFound is returned when no credential matches.
	ErrCredentialNotFound = errors.New("credential not found")
)

// resetTokenTTL bounds how long a password-reset link stays valid.
const resetTokenTTL = time.Hour

// Create inserts a credential for a new account. The email is
// normalized so lookups are case-insensitive; a verification token is
// issued up front.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email, passwordHash string) (models.Credential, error) {
	cred := models.Credential{
		ID:           userID,
		Email:        normalize.Email(email),
		PasswordHash: passwordHash,
		VerifyToken:  uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, cred); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Credential{}, ErrEmailInUse
		}
		return models.Credential{}, err
	}
	return cred, nil
}

// GetByEmail looks up a credential by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	if err := s.c.FindOne(ctx, bson.M{"correo": normalize.Email(email)}).Decode(&cred); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// GetByID loads a credential by its user ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Credential, error) {
	var cred models.Credential
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cred); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// SetResetToken issues a fresh reset token for the email and returns
// it. The token expires after an hour.
func (s *Store) SetResetToken(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"correo": normalize.Email(email)},
		bson.M{"$set": bson.M{
			"tokenReset":  token,
			"resetExpira": time.Now().UTC().Add(resetTokenTTL),
		}})
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", ErrCredentialNotFound
	}
	return token, nil
}

// GetByResetToken resolves an unexpired reset token to its credential.
func (s *Store) GetByResetToken(ctx context.Context, token string) (*models.Credential, error) {
	var cred models.Credential
	filter := bson.M{
		"tokenReset":  token,
		"resetExpira": bson.M{"$gt": time.Now().UTC()},
	}
	if err := s.c.FindOne(ctx, filter).Decode(&cred); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// UpdatePassword stores a new hash and clears any outstanding reset
// token.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"hash": passwordHash},
			"$unset": bson.M{"tokenReset": "", "resetExpira": ""},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// MarkVerified flips the credential to verified when the token matches.
func (s *Store) MarkVerified(ctx context.Context, token string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"tokenVerificacion": token},
		bson.M{
			"$set":   bson.M{"verificado": true},
			"$unset": bson.M{"tokenVerificacion": ""},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// Delete removes a credential, part of account deletion.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
