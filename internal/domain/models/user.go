// internal/domain/models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the public profile stored in the "usuarios" collection.
//
// The bson keys keep the legacy schema names so existing documents decode
// unchanged. Optional fields that are absent in a record decode to their
// zero value; Normalize backfills nil slices so callers always see an
// empty list rather than nil.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nombre" json:"name"`
	Languages   []string           `bson:"lenguajes,omitempty" json:"languages"`
	Description string             `bson:"descripcion,omitempty" json:"description,omitempty"`
	Email       string             `bson:"correo" json:"email"`
}

// Normalize fills in defaults for fields that may be missing in a stored
// record. A sparse document is never a decode error.
func (u *User) Normalize() {
	if u.Languages == nil {
		u.Languages = []string{}
	}
}
