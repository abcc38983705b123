// internal/domain/models/participant.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant links an accepted user to a project, stored in the
// "participantes" collection. The link is removed when the user abandons
// the project or the project is deleted.
type Participant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"usuarioID" json:"user_id"`
	ProjectID primitive.ObjectID `bson:"proyectoID" json:"project_id"`
}
