// internal/domain/models/credential.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential is an email/password identity stored in the "credenciales"
// collection, kept separate from the profile document the way the hosted
// auth service kept identities apart from user records. A register flow
// creates the credential first and the profile second; the two can
// therefore disagree after a partial failure.
type Credential struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"correo" json:"email"`
	PasswordHash  string             `bson:"hash" json:"-"`
	EmailVerified bool               `bson:"verificado,omitempty" json:"email_verified"`
	VerifyToken   string             `bson:"tokenVerificacion,omitempty" json:"-"`
	ResetToken    string             `bson:"tokenReset,omitempty" json:"-"`
	ResetExpires  time.Time          `bson:"resetExpira,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"creado" json:"created_at"`
}
