// internal/domain/models/session.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is a server-side session record in the "sesiones" collection.
// The bearer token presented by a client carries the session ID; logout
// deletes the record, which invalidates the token before its expiry.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"usuarioID" json:"user_id"`
	CreatedAt time.Time          `bson:"creado" json:"created_at"`
	ExpiresAt time.Time          `bson:"expira" json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
