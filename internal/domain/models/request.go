// internal/domain/models/request.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Join-request status values. The only transitions are
// Pending -> Accepted and Pending -> Rejected.
const (
	RequestPending  = "Pending"
	RequestAccepted = "Accepted"
	RequestRejected = "Rejected"
)

// ValidRequestStatus reports whether s is one of the known status values.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// JoinRequest is a user's petition to join a project, stored in the
// "solicitudes" collection. It is tracked independently of the
// participant link created when it is accepted.
type JoinRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"usuarioID" json:"user_id"`
	ProjectID primitive.ObjectID `bson:"proyectoID" json:"project_id"`
	Message   string             `bson:"mensaje,omitempty" json:"message,omitempty"`
	Status    string             `bson:"estado" json:"status"`
}

// Normalize fills in defaults for fields that may be missing in a stored
// record.
func (r *JoinRequest) Normalize() {
	if r.Status == "" {
		r.Status = RequestPending
	}
}
